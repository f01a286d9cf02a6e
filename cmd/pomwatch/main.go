package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/harness/pomwatch/cmd/cmdutils"
	"github.com/harness/pomwatch/cmd/versions"
	"github.com/harness/pomwatch/config"
	pomconfig "github.com/harness/pomwatch/internal/config"
	"github.com/harness/pomwatch/internal/style"
	"github.com/harness/pomwatch/internal/terminal"
	"github.com/harness/pomwatch/util/common/errors"
	"github.com/harness/pomwatch/util/templates"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	factory := cmdutils.NewFactory()
	rootCmd := newRootCmd(factory)

	// Apply styled help text when running in a colour-capable terminal
	termPreCheck := terminal.Detect(false, false)
	style.Init(termPreCheck.ColorEnabled)
	if helpTpl := style.HelpTemplate(); helpTpl != "" {
		rootCmd.SetUsageTemplate(helpTpl)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(factory.ErrOut, factory.Terminal, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(f *cmdutils.Factory) *cobra.Command {
	var (
		verbose  bool
		noColor  bool
		jsonFlag bool
	)

	rootCmd := &cobra.Command{
		Use:           "pomwatch",
		Short:         "Track dependency versions across Maven projects",
		SilenceUsage:  true,
		SilenceErrors: true, //prevent duplicate printing of errors
		Long: templates.LongDesc(`
			pomwatch reads the pom.xml of every configured repository through the
			repository contents API and reports how far each tracked dependency
			version is from the desired one.

			Settings are read from pomwatch.yaml (or the file named by --config or
			POMWATCH_CONFIG). Credentials can also be passed through
			POMWATCH_USERNAME and POMWATCH_PASSWORD.`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			termInfo := terminal.Detect(noColor, jsonFlag)
			style.Init(termInfo.ColorEnabled)
			f.Terminal = termInfo

			// Override format to JSON when --json is explicitly passed
			if termInfo.ForceJSON {
				config.Global.Format = "json"
			}
			if config.Global.Format != "table" && config.Global.Format != "json" {
				return fmt.Errorf("unsupported format %q, expected table or json", config.Global.Format)
			}

			// Set up logging based on verbose flag
			if verbose {
				logWriter := zerolog.ConsoleWriter{
					Out:        f.ErrOut,
					TimeFormat: time.RFC3339,
					NoColor:    noColor || !termInfo.StderrIsTerminal,
				}
				log.Logger = log.Output(logWriter)
			} else {
				// Disable logging when verbose is not enabled
				log.Logger = zerolog.Nop()
			}
			return nil
		},
	}
	rootCmd.SetOut(f.Out)
	rootCmd.SetErr(f.ErrOut)

	// Persistent flags available to all commands - bind them directly to global config
	flags := rootCmd.PersistentFlags()
	addSelectionFlags(flags)
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to console")
	flags.BoolVar(&noColor, "no-color", false,
		"Disable colour output (also respects NO_COLOR env)")
	flags.BoolVar(&jsonFlag, "json", false,
		"Output results as JSON (equivalent to --format=json)")

	versions.AddCommands(rootCmd, f)
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func addSelectionFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&config.Global.ConfigPath, "config", "c", "",
		"Settings file (default pomwatch.yaml, or $POMWATCH_CONFIG)")
	flags.StringVar(&config.Global.Format, "format", "table", "Format of the result (table|json)")
	flags.StringSliceVar(&config.Global.Only, "only", nil,
		"Only include repositories matching this glob (owner/repo), repeatable")
	flags.StringSliceVar(&config.Global.Exclude, "exclude", nil,
		"Exclude repositories matching this glob (owner/repo), repeatable")
}

func printError(w io.Writer, termInfo terminal.Info, err error) {
	if termInfo.StderrIsTerminal && termInfo.ColorEnabled {
		fmt.Fprintln(w, style.ErrorIcon(), style.Error.Render("Error: "+err.Error()))
	} else {
		fmt.Fprintln(w, "Error:", err)
	}
	if hint := hintFor(err); hint != "" {
		fmt.Fprintln(w, style.Hint(hint))
	}
}

// hintFor suggests a next step for errors the user can fix from the command line.
func hintFor(err error) string {
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) && fileErr.Op == "stat" &&
		fileErr.Path == pomconfig.ResolvePath(config.Global.ConfigPath) {
		return "pass --config or set $" + pomconfig.EnvConfig + " to use another settings file"
	}
	return ""
}

// versionCmd returns the version command
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pomwatch",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pomwatch version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Built with %s\n", runtime.Version())
		},
	}
}
