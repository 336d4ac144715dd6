package tui

import (
	"strings"
	"testing"

	"github.com/medboard/medboard/internal/config"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exact", 5, "exact"},
		{"cut with ellipsis", "a longer string", 8, "a longe…"},
		{"tiny width", "abcdef", 2, "ab"},
		{"zero width", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.s, tt.width); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
			}
		})
	}
}

func TestContentWidth(t *testing.T) {
	if got := ContentWidth(40, 60, 0); got != 60 {
		t.Errorf("narrow terminal should clamp to min: got %d", got)
	}
	if got := ContentWidth(200, 60, 120); got != 120 {
		t.Errorf("wide terminal should clamp to max: got %d", got)
	}
	if got := ContentWidth(100, 60, 0); got != 100 {
		t.Errorf("uncapped width changed: got %d", got)
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(40, 7); got != 33 {
		t.Errorf("ContentHeight(40, 7) = %d, want 33", got)
	}
	if got := ContentHeight(8, 7); got != 5 {
		t.Errorf("short terminal should clamp to 5: got %d", got)
	}
}

func TestPanelInlaysTitle(t *testing.T) {
	theme := NewTheme(config.ColorSchemeGreenPhosphor)

	panel := theme.Panel("ALERT", "body text", 40)
	if !strings.Contains(panel, "ALERT") {
		t.Error("panel should contain the title")
	}
	if !strings.Contains(panel, "body text") {
		t.Error("panel should contain the content")
	}
}

func TestNewThemeSchemes(t *testing.T) {
	for _, scheme := range []config.ColorScheme{
		config.ColorSchemeGreenPhosphor,
		config.ColorSchemeAmber,
		config.ColorSchemeWhite,
	} {
		theme := NewTheme(scheme)
		if theme == nil {
			t.Fatalf("NewTheme(%q) returned nil", scheme)
		}
		if theme.PrimaryColor == "" {
			t.Errorf("NewTheme(%q) has empty primary color", scheme)
		}
	}
}
