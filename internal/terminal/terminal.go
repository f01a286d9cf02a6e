// Package terminal decides how pomwatch talks to the terminal: whether
// colours are used, whether progress lines are shown, and whether the
// output should be machine readable.
package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// Info holds the resolved terminal state for the current process.
type Info struct {
	// IsTerminal is true when stdout is connected to a TTY.
	IsTerminal bool
	// StderrIsTerminal is true when stderr is connected to a TTY.
	StderrIsTerminal bool
	// ColorEnabled is true when ANSI colours should be emitted.
	ColorEnabled bool
	// ShowProgress is true when per-repository progress lines go to stderr.
	ShowProgress bool
	// ForceJSON is true when --json was explicitly passed.
	ForceJSON bool
}

// Detect inspects the environment and returns a populated Info.
//
//	noColor   – true when --no-color was passed (NO_COLOR env is honoured too)
//	forceJSON – true when --json was passed
func Detect(noColor, forceJSON bool) Info {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	stderrTTY := term.IsTerminal(int(os.Stderr.Fd()))
	return resolve(isTTY, stderrTTY, noColor, forceJSON)
}

func resolve(stdoutTTY, stderrTTY, noColor, forceJSON bool) Info {
	// https://no-color.org/
	envNoColor := os.Getenv("NO_COLOR") != ""

	return Info{
		IsTerminal:       stdoutTTY,
		StderrIsTerminal: stderrTTY,
		ColorEnabled:     stdoutTTY && !noColor && !envNoColor && !IsDumb(),
		ShowProgress:     stderrTTY && !forceJSON && !IsCI(),
		ForceJSON:        forceJSON,
	}
}

// IsDumb returns true when the terminal is known to have no capabilities
// (e.g. TERM=dumb or running inside Emacs).
func IsDumb() bool {
	t := strings.ToLower(os.Getenv("TERM"))
	return t == "dumb" || t == ""
}

// IsCI returns true when a well-known CI environment variable is set.
func IsCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "JENKINS_URL", "GITLAB_CI", "CIRCLECI", "TRAVIS"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}
