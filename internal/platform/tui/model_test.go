package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/timerunner/internal/core"
	"github.com/vovakirdan/timerunner/internal/storage"
)

// stubGame records every input frame and ends after a fixed number of steps.
type stubGame struct {
	frames  []core.InputFrame
	endAt   int
	score   int
	resets  int
	renders int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.frames = nil
}

func (g *stubGame) Render(dst *core.Screen) {
	g.renders++
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	if in.Has(core.ActionRestart) {
		g.frames = g.frames[:0]
	}
	return core.StepResult{State: g.State(), Quit: in.Has(core.ActionQuit)}
}

func (g *stubGame) State() core.GameState {
	over := g.endAt > 0 && len(g.frames) >= g.endAt
	return core.GameState{Score: g.score, GameOver: over, Distance: 500, Ticks: len(g.frames), Cause: "fire"}
}

func (g *stubGame) last() core.InputFrame {
	return g.frames[len(g.frames)-1]
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newTestModel(g *stubGame, store *storage.Store) Model {
	return NewModel(g, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestModelResetsGameOnCreate(t *testing.T) {
	g := &stubGame{}
	newTestModel(g, nil)
	if g.resets != 1 {
		t.Errorf("Reset called %d times, want 1", g.resets)
	}
}

func TestModelPressedActionsLastOneTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	now := time.Now()

	m = step(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = step(t, m, TickMsg(now))
	if !g.last().Has(core.ActionJump) {
		t.Error("jump press not delivered on the next tick")
	}

	m = step(t, m, TickMsg(now.Add(time.Millisecond)))
	if g.last().Has(core.ActionJump) {
		t.Error("jump press delivered twice")
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	step(t, m, TickMsg(now.Add(2*time.Millisecond)))
	if !g.last().Has(core.ActionReveal) {
		t.Error("tab did not trigger reveal")
	}
}

func TestModelHoldsDirectionKeys(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)
	now := time.Now()

	// handleKey reads the wall clock, so ticks are placed relative to it
	m = step(t, m, runeKey('d'))
	m = step(t, m, TickMsg(now))
	if !g.last().IsHeld(core.ActionRight) {
		t.Fatal("right not held right after the press")
	}
	if g.last().Has(core.ActionRight) {
		t.Error("direction keys must not be delivered as presses")
	}

	m = step(t, m, TickMsg(now.Add(time.Second)))
	if g.last().IsHeld(core.ActionRight) {
		t.Error("right still held long after the last press")
	}

	m = step(t, m, runeKey('d'))
	m = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	step(t, m, TickMsg(time.Now()))
	if g.last().IsHeld(core.ActionRight) || !g.last().IsHeld(core.ActionLeft) {
		t.Errorf("left should replace right, held = %v", g.last().Held)
	}
}

func TestModelQuit(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not produce tea.Quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelSavesRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{endAt: 3, score: 77}
	m := newTestModel(g, store)
	now := time.Now()
	for i := range 10 {
		m = step(t, m, TickMsg(now.Add(time.Duration(i)*time.Millisecond)))
	}
	if !m.GameState().GameOver {
		t.Fatal("stub game should be over")
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].Score != 77 || runs[0].Distance != 500 || runs[0].Cause != "fire" {
		t.Errorf("unexpected run: %+v", runs[0])
	}

	// restart, then a second game over saves again
	m = step(t, m, runeKey('r'))
	for i := range 10 {
		m = step(t, m, TickMsg(now.Add(time.Duration(20+i)*time.Millisecond)))
	}
	runs, _ = store.RecentRuns("stub", 10)
	if len(runs) != 2 {
		t.Errorf("expected 2 saved runs after restart, got %d", len(runs))
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g, nil)

	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40-helpRows {
		t.Errorf("screen is %dx%d", m.screen.Width(), m.screen.Height())
	}

	view := m.View()
	if !strings.Contains(view, "stub") {
		t.Error("view does not contain the game render")
	}
	if !strings.Contains(view, "jump") {
		t.Error("view does not contain the help line")
	}
}
