package command

import (
	"fmt"

	"github.com/harness/pomwatch/cmd/cmdutils"
	"github.com/harness/pomwatch/config"
	"github.com/harness/pomwatch/internal/style"
	"github.com/harness/pomwatch/module/pom/driver"
	"github.com/harness/pomwatch/module/pom/policy"
	"github.com/harness/pomwatch/module/pom/report"
	"github.com/harness/pomwatch/util/common/printer"
	"github.com/harness/pomwatch/util/templates"

	"github.com/spf13/cobra"
)

type checkOutput struct {
	Table   report.Table      `json:"table"`
	Omitted []report.Omission `json:"omitted"`
	Counts  map[string]int    `json:"counts"`
}

// tierCounts counts the badge cells of t per tier name.
func tierCounts(t report.Table) map[string]int {
	counts := map[string]int{}
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell.Kind == report.Badge {
				counts[cell.Tier.String()]++
			}
		}
	}
	return counts
}

func toBadgeTable(t report.Table) printer.BadgeTable {
	bt := printer.BadgeTable{Headers: t.Header}
	for _, row := range t.Rows {
		values := make([]string, len(row))
		badges := make([]string, len(row))
		for i, cell := range row {
			values[i] = cell.Value
			if cell.Kind == report.Badge {
				badges[i] = cell.Color()
			}
		}
		bt.Rows = append(bt.Rows, values)
		bt.Badges = append(bt.Badges, badges)
	}
	return bt
}

// NewCheckCmd wires up:
//
//	pomwatch check
func NewCheckCmd(f *cmdutils.Factory) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Print the version status of every repository",
		Long: templates.LongDesc(`
			Fetches and classifies every configured repository like the report
			command does, and prints the result to the terminal instead of writing
			an HTML file.

			With --strict the command fails when any tracked property is below its
			minimum version.`),
		Example: templates.Examples(`
			pomwatch check
			pomwatch check --format json --exclude 'archive/*'`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := f.Settings()
			if err != nil {
				return err
			}
			repoFilter, err := f.Filter()
			if err != nil {
				return err
			}

			d := driver.New(settings, f.Fetcher(settings), f.Progress(), repoFilter)
			result, err := d.Collect(cmd.Context())
			if err != nil {
				return err
			}

			table := report.BuildTable(result.Descriptors(), settings.CompiledPolicy())
			counts := tierCounts(table)

			if config.Global.Format == "json" {
				if err := printJSON(f, checkOutput{
					Table:   table,
					Omitted: result.Omissions(),
					Counts:  counts,
				}); err != nil {
					return err
				}
			} else if err := printCheck(f, result, table); err != nil {
				return err
			}

			if strict && counts[policy.BelowMinimum.String()] > 0 {
				return fmt.Errorf("%d tracked properties are below their minimum version",
					counts[policy.BelowMinimum.String()])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when a property is below its minimum version")

	return cmd
}

func printCheck(f *cmdutils.Factory, result *driver.Result, table report.Table) error {
	if len(table.Rows) == 0 {
		fmt.Fprintln(f.Out, style.DimText.Render("No repository descriptor could be read."))
	} else {
		bt := toBadgeTable(table)
		bt.Footer = fmt.Sprintf("%d read, %d omitted", result.Read, result.Omitted)
		if err := printer.PrintBadgeTable(f.Out, bt); err != nil {
			return err
		}
	}

	omitted := result.Omissions()
	if len(omitted) == 0 {
		return nil
	}
	fmt.Fprintln(f.Out, style.Title.Render("Omitted repositories"))
	for _, o := range omitted {
		fmt.Fprintf(f.Out, "%s %s (%s): %s\n", style.WarningIcon(), o.Repository, o.Reason, o.Detail)
	}
	return nil
}
