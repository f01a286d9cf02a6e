// Package progress reports how a run over the configured repositories is
// going.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/harness/pomwatch/internal/style"
)

// Reporter receives one call per stage of a run.
type Reporter interface {
	// Start begins a run over total repositories
	Start(total int)

	// Step reports that a repository is being fetched
	Step(index int, repository string)

	// Omitted reports a repository left out of the report
	Omitted(repository string, reason string)

	// Done finalizes the run with its counts
	Done(read, omitted int)
}

// ConsoleReporter implements Reporter by printing plain lines
type ConsoleReporter struct {
	out   io.Writer
	total int
}

// NewConsoleReporter creates a new ConsoleReporter writing to out,
// or stderr when out is nil
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stderr
	}
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(r.out, "Checking %d repositories...\n", total)
}

func (r *ConsoleReporter) Step(index int, repository string) {
	fmt.Fprintf(r.out, "  [%d/%d] %s\n", index+1, r.total, repository)
}

func (r *ConsoleReporter) Omitted(repository string, reason string) {
	fmt.Fprintf(r.out, "  omitted %s: %s\n", repository, reason)
}

func (r *ConsoleReporter) Done(read, omitted int) {
	fmt.Fprintf(r.out, "Read %d descriptors, omitted %d\n", read, omitted)
}

var (
	startStyle   = lipgloss.NewStyle().Bold(true).Foreground(style.Cyan)
	stepStyle    = lipgloss.NewStyle().Foreground(style.Dim).PaddingLeft(2)
	omittedStyle = lipgloss.NewStyle().Foreground(style.Yellow).PaddingLeft(2)
	doneStyle    = lipgloss.NewStyle().Foreground(style.Green).Bold(true)
)

// StyledReporter implements Reporter with the lipgloss theme
type StyledReporter struct {
	out   io.Writer
	total int
}

// NewStyledReporter creates a reporter with lipgloss-styled output.
func NewStyledReporter(out io.Writer) *StyledReporter {
	if out == nil {
		out = os.Stderr
	}
	return &StyledReporter{out: out}
}

// NewAutoReporter returns a StyledReporter when colours are enabled,
// otherwise the plain ConsoleReporter.
func NewAutoReporter(out io.Writer) Reporter {
	if style.Enabled {
		return NewStyledReporter(out)
	}
	return NewConsoleReporter(out)
}

func (r *StyledReporter) Start(total int) {
	r.total = total
	fmt.Fprintln(r.out, startStyle.Render(fmt.Sprintf("⚡ Checking %d repositories...", total)))
}

func (r *StyledReporter) Step(index int, repository string) {
	fmt.Fprintln(r.out, stepStyle.Render(fmt.Sprintf("→ [%d/%d] %s", index+1, r.total, repository)))
}

func (r *StyledReporter) Omitted(repository string, reason string) {
	fmt.Fprintln(r.out, omittedStyle.Render(fmt.Sprintf("! %s omitted: %s", repository, reason)))
}

func (r *StyledReporter) Done(read, omitted int) {
	fmt.Fprintln(r.out, doneStyle.Render(fmt.Sprintf("✓ Read %d descriptors, omitted %d", read, omitted)))
}

// NopReporter implements Reporter with no-op operations
type NopReporter struct{}

// NewNopReporter creates a new NopReporter
func NewNopReporter() *NopReporter {
	return &NopReporter{}
}

func (r *NopReporter) Start(int)              {}
func (r *NopReporter) Step(int, string)       {}
func (r *NopReporter) Omitted(string, string) {}
func (r *NopReporter) Done(int, int)          {}
