// Package style defines the terminal look of pomwatch output.
// Colours, tier badges and text styles live here so that the status table,
// progress lines and error messages share one palette.
//
// Call Init(colorEnabled) once at startup. After that, use the exported
// styles and helper functions freely.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"
)

// ─── Colour palette ──────────────────────────────────────────────────────────

var (
	Blue = lipgloss.Color("#0078D4")
	Cyan = lipgloss.Color("#00B4D8")

	// Semantic, matching the bootstrap badge colours of the HTML report
	Green  = lipgloss.Color("#22C55E")
	Yellow = lipgloss.Color("#FACC15")
	Red    = lipgloss.Color("#EF4444")
	Grey   = lipgloss.Color("#9CA3AF")

	White  = lipgloss.Color("#FAFAFA")
	Dim    = lipgloss.Color("#6B7280")
	Subtle = lipgloss.Color("#374151")
)

// ─── Reusable text styles ────────────────────────────────────────────────────

var (
	// Title is used for the heading printed above tables.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blue)

	// Success style for positive confirmations.
	Success = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	// Warning style for non-fatal alerts.
	Warning = lipgloss.NewStyle().
		Foreground(Yellow)

	// Error style for error messages.
	Error = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	// DimText is used for hints and secondary info.
	DimText = lipgloss.NewStyle().
		Foreground(Dim)

	// Bold is a simple bold helper.
	Bold = lipgloss.NewStyle().Bold(true)

	// TableHeader styles table column headers.
	TableHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Cyan).
			Padding(0, 1)

	// TableCell is the default table cell style.
	TableCell = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)
)

// badgeColors maps the report badge names onto the palette.
var badgeColors = map[string]lipgloss.Color{
	"success":   Green,
	"warning":   Yellow,
	"danger":    Red,
	"secondary": Grey,
	"light":     White,
}

// Badge returns the cell style for a report badge colour name.
func Badge(name string) lipgloss.Style {
	c, ok := badgeColors[name]
	if !ok {
		c = White
	}
	s := lipgloss.NewStyle().Foreground(c).Padding(0, 1)
	if name == "danger" {
		s = s.Bold(true)
	}
	return s
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// Enabled tracks whether styles should render ANSI output.
// When false, all styles degrade to plain text.
var Enabled = true

// Init configures the style package. Call once at startup.
func Init(colorEnabled bool) {
	Enabled = colorEnabled
	if colorEnabled {
		lipgloss.SetColorProfile(termenv.TrueColor)
		pterm.EnableStyling()
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	pterm.DisableStyling()
}

// SuccessIcon returns a themed check mark.
func SuccessIcon() string {
	if Enabled {
		return Success.Render("✓")
	}
	return "OK"
}

// ErrorIcon returns a themed X mark.
func ErrorIcon() string {
	if Enabled {
		return Error.Render("✗")
	}
	return "ERROR"
}

// WarningIcon returns a themed warning indicator.
func WarningIcon() string {
	if Enabled {
		return Warning.Render("!")
	}
	return "WARN"
}

// Hint renders a "next step" hint message.
func Hint(msg string) string {
	return DimText.Render("→ " + msg)
}
