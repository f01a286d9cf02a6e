package style

import "github.com/charmbracelet/lipgloss"

// HelpTemplate returns a Cobra usage template with themed section headings,
// or "" when colours are off so Cobra keeps its default.
//
// Only the fixed headings are styled. Command and flag names go through
// Cobra's own template functions.
func HelpTemplate() string {
	if !Enabled {
		return ""
	}

	heading := lipgloss.NewStyle().Bold(true).Foreground(Cyan).Render
	dim := lipgloss.NewStyle().Foreground(Dim).Render

	return heading("Usage") + `:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasExample}}

` + heading("Examples") + `:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{range $group := .Groups}}

` + heading("{{$group.Title}}") + `{{range $cmds}}{{if (and (eq .GroupID $group.ID) .IsAvailableCommand)}}
  {{rpad .Name .NamePadding }}  {{.Short}}{{end}}{{end}}{{end}}

` + heading("Other Commands") + `:{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }}  {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

` + heading("Flags") + `:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

` + heading("Global Flags") + `:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

` + dim(`Use "{{.CommandPath}} [command] --help" for more information about a command.`) + `{{end}}
`
}
