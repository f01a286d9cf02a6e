package style

import (
	"strings"
	"testing"
)

func TestInit_TogglesEnabled(t *testing.T) {
	Init(false)
	if Enabled {
		t.Error("expected Enabled=false after Init(false)")
	}
	Init(true)
	if !Enabled {
		t.Error("expected Enabled=true after Init(true)")
	}
}

func TestIcons_NoColor(t *testing.T) {
	Init(false)
	defer Init(true)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"success", SuccessIcon(), "OK"},
		{"error", ErrorIcon(), "ERROR"},
		{"warning", WarningIcon(), "WARN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestSuccessIcon_WithColor(t *testing.T) {
	Init(true)
	if icon := SuccessIcon(); !strings.Contains(icon, "✓") {
		t.Errorf("expected SuccessIcon to contain '✓', got %q", icon)
	}
}

func TestBadge_PlainTextWithoutColor(t *testing.T) {
	Init(false)
	defer Init(true)

	for _, name := range []string{"success", "warning", "danger", "secondary", "light", "unheard-of"} {
		got := Badge(name).Render("1.0")
		if strings.TrimSpace(got) != "1.0" {
			t.Errorf("Badge(%q) rendered %q, want plain value", name, got)
		}
	}
}

func TestHint(t *testing.T) {
	Init(false)
	defer Init(true)
	h := Hint("run pomwatch report")
	if !strings.Contains(h, "run pomwatch report") || !strings.Contains(h, "→") {
		t.Errorf("unexpected hint %q", h)
	}
}

func TestHelpTemplate(t *testing.T) {
	Init(false)
	if got := HelpTemplate(); got != "" {
		t.Errorf("expected empty template without colour, got %q", got)
	}

	Init(true)
	tpl := HelpTemplate()
	for _, want := range []string{"{{.UseLine}}", "{{$group.Title}}", "Global Flags", "{{.Example}}"} {
		if !strings.Contains(tpl, want) {
			t.Errorf("expected template to contain %q", want)
		}
	}
}
