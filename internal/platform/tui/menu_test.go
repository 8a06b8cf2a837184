package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/timerunner/internal/config"
	"github.com/vovakirdan/timerunner/internal/core"
	"github.com/vovakirdan/timerunner/internal/storage"
)

func sendKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm
}

func TestMenuSelectDifficulty(t *testing.T) {
	m := NewMenuModel(nil, "timerunner", core.DefaultConfig())

	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("expected a selection")
	}
	if sel.Difficulty != config.DifficultyHard {
		t.Errorf("selected %q, want hard", sel.Difficulty)
	}
}

func TestMenuCursorBounds(t *testing.T) {
	m := NewMenuModel(nil, "timerunner", core.DefaultConfig())

	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor moved above first item: %d", m.cursor)
	}
	for range 10 {
		m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, want last item %d", m.cursor, len(m.items)-1)
	}
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if sel := m.Selected(); sel == nil || !sel.Scores {
		t.Errorf("last item should open scores, got %+v", sel)
	}
}

func TestMenuScoresShortcutAndQuit(t *testing.T) {
	m := NewMenuModel(nil, "timerunner", core.DefaultConfig())
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if sel := m.Selected(); sel == nil || !sel.Scores {
		t.Error("tab should select the scoreboard")
	}

	m = NewMenuModel(nil, "timerunner", core.DefaultConfig())
	m = sendKey(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit the menu")
	}
	if m.View() != "" {
		t.Error("quitting menu should render nothing")
	}
}

func TestMenuShowsBestScore(t *testing.T) {
	store, err := storage.Open(t.TempDir() + "/scores.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if _, err := store.SaveScore("timerunner", 321); err != nil {
		t.Fatalf("save score: %v", err)
	}

	m := NewMenuModel(store, "timerunner", core.DefaultConfig())
	view := m.View()
	if !strings.Contains(view, "Best: 321") {
		t.Errorf("view missing best score:\n%s", view)
	}
	if !strings.Contains(view, "Play - Normal") {
		t.Errorf("view missing menu items:\n%s", view)
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, "timerunner", core.DefaultConfig())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := next.(MenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config not resized: %+v", cfg)
	}
}
