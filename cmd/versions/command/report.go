package command

import (
	"fmt"

	"github.com/harness/pomwatch/cmd/cmdutils"
	"github.com/harness/pomwatch/config"
	"github.com/harness/pomwatch/internal/style"
	"github.com/harness/pomwatch/module/pom/driver"
	"github.com/harness/pomwatch/util/common/errors"
	"github.com/harness/pomwatch/util/templates"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// reportSummary is the --format json output of the report command.
type reportSummary struct {
	RunID     string           `json:"runId"`
	Output    string           `json:"output"`
	Published string           `json:"published,omitempty"`
	Read      int              `json:"read"`
	Omitted   int              `json:"omitted"`
	Outcomes  []outcomeSummary `json:"outcomes"`
}

type outcomeSummary struct {
	Repository string `json:"repository"`
	Name       string `json:"name"`
	ArtifactID string `json:"artifactId,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Error      string `json:"error,omitempty"`
}

func summarize(outcomes []driver.Outcome) []outcomeSummary {
	out := make([]outcomeSummary, 0, len(outcomes))
	for _, o := range outcomes {
		s := outcomeSummary{Repository: o.Repository, Name: o.Name}
		if o.OK() {
			s.ArtifactID = o.Descriptor.ArtifactID
		} else {
			s.Reason = string(o.Reason)
			s.Error = o.Err.Error()
		}
		out = append(out, s)
	}
	return out
}

// NewReportCmd wires up:
//
//	pomwatch report
func NewReportCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the HTML version report",
		Long: templates.LongDesc(`
			Fetches the build descriptor of every configured repository, classifies
			each tracked property against the version policy and writes a single
			HTML page with one row per repository.

			Repositories that cannot be read are left out of the table and listed
			below it.`),
		Example: templates.Examples(`
			# write versions.html from pomwatch.yaml
			pomwatch report

			# only the platform repositories, uploaded after writing
			pomwatch report --only 'platform-org/*' --publish`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := f.Settings()
			if err != nil {
				return err
			}
			if config.Global.Report.Output != "" {
				settings.Output = config.Global.Report.Output
			}
			if config.Global.Report.Publish && !settings.Publish.Enabled() {
				return fmt.Errorf("--publish requires a publish section in the settings file")
			}
			repoFilter, err := f.Filter()
			if err != nil {
				return err
			}

			d := driver.New(settings, f.Fetcher(settings), f.Progress(), repoFilter)
			result, err := d.Run(cmd.Context())
			if err != nil {
				return err
			}

			summary := reportSummary{
				RunID:    result.RunID,
				Output:   result.Output,
				Read:     result.Read,
				Omitted:  result.Omitted,
				Outcomes: summarize(result.Outcomes),
			}

			if config.Global.Report.Publish {
				publisher, err := f.Publisher(settings.Publish)
				if err != nil {
					return err
				}
				location, err := publisher.Publish(cmd.Context(), result.Document)
				if err != nil {
					return errors.Wrap(err, "publish report")
				}
				log.Info().Str("location", location).Msg("Report published")
				summary.Published = location
			}

			if config.Global.Format == "json" {
				return printJSON(f, summary)
			}

			fmt.Fprintf(f.Out, "%s Report written to %s (%d read, %d omitted)\n",
				style.SuccessIcon(), result.Output, result.Read, result.Omitted)
			if summary.Published != "" {
				fmt.Fprintf(f.Out, "%s Published to %s\n", style.SuccessIcon(), summary.Published)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&config.Global.Report.Output, "output", "o", "",
		"Path of the HTML file to write (overrides the settings file)")
	cmd.Flags().BoolVar(&config.Global.Report.Publish, "publish", false,
		"Upload the report to the configured object storage after writing it")

	return cmd
}
