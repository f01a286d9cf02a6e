package command

import (
	"github.com/harness/pomwatch/cmd/cmdutils"
	"github.com/harness/pomwatch/util/common/printer"
)

func printJSON(f *cmdutils.Factory, v any) error {
	return printer.PrintJSON(f.Out, v)
}
