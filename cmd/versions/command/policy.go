package command

import (
	"fmt"

	"github.com/harness/pomwatch/cmd/cmdutils"
	"github.com/harness/pomwatch/config"
	"github.com/harness/pomwatch/module/pom/policy"
	"github.com/harness/pomwatch/util/common/printer"
	"github.com/harness/pomwatch/util/templates"

	"github.com/spf13/cobra"
)

// NewPolicyCmd wires up:
//
//	pomwatch policy
func NewPolicyCmd(f *cmdutils.Factory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy [property]",
		Short: "Print the configured version policy",
		Long: templates.LongDesc(`
			Prints every tracked property with its latest and minimum versions, in
			report column order. With a property name only that rule is printed.`),
		Example: templates.Examples(`
			pomwatch policy
			pomwatch policy java.version --format json`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := f.Settings()
			if err != nil {
				return err
			}
			p := settings.CompiledPolicy()
			rules := p.Rules()
			if len(args) == 1 {
				rule, ok := p.Lookup(args[0])
				if !ok {
					return fmt.Errorf("property %q is not tracked by the policy", args[0])
				}
				rules = []policy.Rule{rule}
			}

			if config.Global.Format == "json" {
				return printJSON(f, rules)
			}
			return printer.PrintTableWithOptions(f.Out, rules, printer.TableOptions{
				ColumnMapping: printer.ColumnMapping{
					{"property", "Property"},
					{"latest", "Latest"},
					{"minimum", "Minimum"},
				},
				Footer: fmt.Sprintf("%d tracked properties", len(rules)),
			})
		},
	}

	return cmd
}
