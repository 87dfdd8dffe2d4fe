package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ziadkadry99/sketchbook/internal/content"
)

func setupModel(t *testing.T) (*Model, *time.Time) {
	t.Helper()
	stack, err := content.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	now := time.Unix(1000, 0)
	m, err := New(Config{Stack: stack, Brand: "Hira", Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(m.engine.Close)
	return m, &now
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyTurnsPage(t *testing.T) {
	m, now := setupModel(t)

	m.Update(key("down"))
	st := m.Navigator().State()
	if !st.Transitioning || st.Index != 0 {
		t.Fatalf("after down: %+v", st)
	}

	// A second press mid-turn is ignored.
	m.Update(key("j"))

	*now = now.Add(time.Second)
	m.Update(tickMsg(*now))
	if st := m.Navigator().State(); st.Transitioning || st.Index != 1 {
		t.Errorf("after turn: %+v", st)
	}
	if !m.frame.Done || m.frame.Current.Page != 1 {
		t.Errorf("frame = %+v", m.frame)
	}
}

func TestMidTurnFrame(t *testing.T) {
	m, now := setupModel(t)
	m.Update(key("down"))

	*now = now.Add(300 * time.Millisecond)
	m.Update(tickMsg(*now))
	if m.frame.Incoming == nil || m.frame.Progress <= 0 || m.frame.Progress >= 1 {
		t.Errorf("frame = %+v", m.frame)
	}
	if view := m.View(); view == "" {
		t.Error("empty view mid-turn")
	}
}

func TestNumberAndShortcutJumps(t *testing.T) {
	m, _ := setupModel(t)

	tests := []struct {
		key  string
		want int
	}{
		{"5", 4},
		{"p", 6},
		{"c", 8},
		{"0", 9},
		{"g", 0},
		{"G", 10},
		{"w", 4},
	}
	for _, tt := range tests {
		m.Update(key(tt.key))
		if got := m.Navigator().State().Index; got != tt.want {
			t.Errorf("key %q: index = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestViewShowsNavBarAfterFirstPage(t *testing.T) {
	m, _ := setupModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	if strings.Contains(m.View(), "Process (7)") {
		t.Error("nav bar should be hidden on the first page")
	}

	m.Update(key("p"))
	view := m.View()
	if !strings.Contains(view, "Process (7)") {
		t.Errorf("nav bar missing:\n%s", view)
	}
	if !strings.Contains(view, "page 7/11") {
		t.Errorf("footer missing:\n%s", view)
	}
}

func TestQuitFlushes(t *testing.T) {
	m, _ := setupModel(t)
	m.Update(key("down"))

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if st := m.Navigator().State(); st.Transitioning || st.Index != 1 {
		t.Errorf("state after quit = %+v", st)
	}
}

func TestMouseWheel(t *testing.T) {
	m, _ := setupModel(t)
	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if !m.Navigator().State().Transitioning {
		t.Error("wheel down should start a turn")
	}
}
