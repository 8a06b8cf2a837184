package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/timerunner/internal/core"
)

func TestHoldTrackerWindow(t *testing.T) {
	h := NewHoldTracker(180 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionRight, t0)

	tests := []struct {
		after time.Duration
		held  bool
	}{
		{0, true},
		{100 * time.Millisecond, true},
		{179 * time.Millisecond, true},
		{180 * time.Millisecond, false},
		{time.Second, false},
	}
	for _, tt := range tests {
		if got := h.Held(core.ActionRight, t0.Add(tt.after)); got != tt.held {
			t.Errorf("Held after %v = %v, want %v", tt.after, got, tt.held)
		}
	}
}

func TestHoldTrackerRepeatRefreshes(t *testing.T) {
	h := NewHoldTracker(180 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	// key repeat every 50ms keeps the key down
	for i := range 10 {
		h.Press(core.ActionRight, t0.Add(time.Duration(i)*50*time.Millisecond))
	}
	if !h.Held(core.ActionRight, t0.Add(600*time.Millisecond)) {
		t.Error("repeated presses should keep the key held")
	}
	if h.Held(core.ActionRight, t0.Add(630*time.Millisecond)) {
		t.Error("key should release one window after the last repeat")
	}
}

func TestHoldTrackerOppositeCancels(t *testing.T) {
	h := NewHoldTracker(180 * time.Millisecond)
	t0 := time.Unix(1000, 0)

	h.Press(core.ActionRight, t0)
	h.Press(core.ActionLeft, t0.Add(10*time.Millisecond))

	if h.Held(core.ActionRight, t0.Add(20*time.Millisecond)) {
		t.Error("right should be released by a left press")
	}
	if !h.Held(core.ActionLeft, t0.Add(20*time.Millisecond)) {
		t.Error("left should be held")
	}
}

func TestHoldTrackerSnapshot(t *testing.T) {
	h := NewHoldTracker(100 * time.Millisecond)
	t0 := time.Unix(1000, 0)
	h.Press(core.ActionLeft, t0)

	frame := core.NewInputFrame()
	h.Snapshot(&frame, t0.Add(50*time.Millisecond))
	if !frame.IsHeld(core.ActionLeft) {
		t.Error("snapshot missed a held key")
	}
	if frame.Has(core.ActionLeft) {
		t.Error("snapshot must not add presses")
	}

	frame.Clear()
	h.Snapshot(&frame, t0.Add(150*time.Millisecond))
	if frame.IsHeld(core.ActionLeft) {
		t.Error("expired key still in snapshot")
	}
	if len(h.until) != 0 {
		t.Errorf("expired entries kept: %v", h.until)
	}

	h.Press(core.ActionRight, t0)
	h.Reset()
	if h.Held(core.ActionRight, t0) {
		t.Error("Reset should release all keys")
	}
}

func TestKeyMapperMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runeKey('w'), core.ActionJump},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{"a", runeKey('a'), core.ActionLeft},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight},
		{"d", runeKey('d'), core.ActionRight},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionReveal},
		{"e", runeKey('e'), core.ActionReveal},
		{"r", runeKey('r'), core.ActionRestart},
		{"p", runeKey('p'), core.ActionPause},
		{"q", runeKey('q'), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey('z'), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.MapKey(tt.msg); got != tt.want {
				t.Errorf("MapKey(%q) = %v, want %v", tt.msg.String(), got, tt.want)
			}
		})
	}

	if !km.IsScreenshot(tea.KeyMsg{Type: tea.KeyCtrlS}) {
		t.Error("ctrl+s should take a screenshot")
	}
}

func TestRenderScreenPlainAndColored(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 1, '@', core.ColorBrightCyan)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "ab  " {
		t.Errorf("uncolored row = %q", lines[0])
	}
	if !strings.ContainsRune(lines[1], '@') {
		t.Errorf("colored cell missing from %q", lines[1])
	}
}
