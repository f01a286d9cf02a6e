package versions

import (
	"github.com/harness/pomwatch/cmd/cmdutils"
	"github.com/harness/pomwatch/cmd/versions/command"

	"github.com/spf13/cobra"
)

// GroupID groups the version commands in the root help output.
const GroupID = "versions"

// AddCommands attaches the version report commands to root.
func AddCommands(root *cobra.Command, f *cmdutils.Factory) {
	root.AddGroup(&cobra.Group{ID: GroupID, Title: "Version Report Commands:"})

	for _, cmd := range []*cobra.Command{
		command.NewReportCmd(f),
		command.NewCheckCmd(f),
		command.NewPolicyCmd(f),
	} {
		cmd.GroupID = GroupID
		root.AddCommand(cmd)
	}
}
