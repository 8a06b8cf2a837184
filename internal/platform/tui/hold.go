package tui

import (
	"time"

	"github.com/vovakirdan/timerunner/internal/core"
)

// HoldTracker turns repeated key presses into a held-key snapshot.
// Terminals report no key releases, so a press keeps its action held for
// a fixed window and every auto-repeat refreshes it.
type HoldTracker struct {
	window time.Duration
	until  map[core.Action]time.Time
}

// NewHoldTracker creates a tracker that holds each press for window.
func NewHoldTracker(window time.Duration) *HoldTracker {
	return &HoldTracker{
		window: window,
		until:  make(map[core.Action]time.Time),
	}
}

// Press marks a held at now. Pressing a direction releases the opposite one.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	if o := opposite(a); o != core.ActionNone {
		delete(h.until, o)
	}
	h.until[a] = now.Add(h.window)
}

// Held reports whether a is held at now.
func (h *HoldTracker) Held(a core.Action, now time.Time) bool {
	t, ok := h.until[a]
	return ok && now.Before(t)
}

// Snapshot copies every action held at now into frame and forgets expired ones.
func (h *HoldTracker) Snapshot(frame *core.InputFrame, now time.Time) {
	for a, t := range h.until {
		if !now.Before(t) {
			delete(h.until, a)
			continue
		}
		frame.Hold(a)
	}
}

// Reset releases everything.
func (h *HoldTracker) Reset() {
	clear(h.until)
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	}
	return core.ActionNone
}
