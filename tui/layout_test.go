package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	"tasklist/app"
	"tasklist/store"
)

func newLayoutModel(t *testing.T, width int) *Model {
	t.Helper()
	svc := app.NewService(store.New(store.NewMemoryKV(), store.WithLogger(nil)))
	m := NewModel(svc, Options{})
	m.width = width
	m.height = 24
	return m
}

func TestFooterFitsViewport(t *testing.T) {
	m := newLayoutModel(t, 100)
	m.setStatus(strings.Repeat("long status ", 20))

	viewW := m.viewportWidth()
	footer := m.renderFooter(viewW)
	plain := stripANSI(footer)
	if got := utf8.RuneCountInString(plain); got > viewW {
		t.Fatalf("expected footer to fit width=%d, got %d runes", viewW, got)
	}
	if !strings.Contains(plain, "q quit") {
		t.Fatalf("expected key help in footer, got %q", plain)
	}
}

func TestFooterNarrowTerminal(t *testing.T) {
	m := newLayoutModel(t, 40)
	m.setStatus(strings.Repeat("status ", 10))

	viewW := m.viewportWidth()
	plain := stripANSI(m.renderFooter(viewW))
	if got := utf8.RuneCountInString(plain); got > viewW {
		t.Fatalf("expected footer to fit width=%d, got %d runes", viewW, got)
	}
}

func TestViewShowsEmptyStateMessage(t *testing.T) {
	m := newLayoutModel(t, 80)
	out := m.View()
	if !strings.Contains(out, "No tasks yet. Add one above!") {
		t.Fatalf("expected empty collection message, got:\n%s", out)
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := newLayoutModel(t, 0)
	if got := m.View(); got != "loading..." {
		t.Fatalf("expected loading placeholder, got %q", got)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "hello", max: 10, want: "hello"},
		{in: "hello", max: 5, want: "hello"},
		{in: "hello", max: 4, want: "hel…"},
		{in: "héllo", max: 3, want: "hé…"},
		{in: "hello", max: 1, want: "…"},
		{in: "hello", max: 0, want: ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(-1, 0, 3); got != 0 {
		t.Fatalf("clamp below = %d", got)
	}
	if got := clamp(9, 0, 3); got != 3 {
		t.Fatalf("clamp above = %d", got)
	}
	if got := clamp(2, 0, 3); got != 2 {
		t.Fatalf("clamp inside = %d", got)
	}
}

// stripANSI drops CSI escape sequences so widths can be measured.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
