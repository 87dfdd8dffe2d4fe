// Package tui is a terminal sketchbook: the same navigator and turn engine
// as the web page, drawn with lipgloss.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ziadkadry99/sketchbook/internal/book"
	"github.com/ziadkadry99/sketchbook/internal/content"
	"github.com/ziadkadry99/sketchbook/internal/input"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Stack      *content.Stack
	Brand      string
	Duration   time.Duration
	FrameRate  int
	Thresholds input.Thresholds
	// Now replaces time.Now, for tests.
	Now func() time.Time
}

// wheelStep is the delta a single mouse wheel notch reports.
const wheelStep = 100

var (
	navStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("#2b2621")).
			Background(lipgloss.Color("#f7f1e6"))
	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#b4532a"))
	pageStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2b2621")).
			Padding(1, 2)
	darkPageStyle = pageStyle.
			Foreground(lipgloss.Color("#f7f1e6")).
			Background(lipgloss.Color("#1d1a17"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Faint(true)
)

type tickMsg time.Time

// Model is the bubbletea model of the terminal sketchbook.
type Model struct {
	cfg     Config
	nav     *book.Navigator
	engine  *book.Engine
	adapter *input.Adapter
	frame   book.Frame

	width  int
	height int
}

// New builds a model showing the first page.
func New(cfg Config) (*Model, error) {
	if cfg.Stack == nil {
		return nil, fmt.Errorf("tui: no page stack")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	nav, err := book.NewNavigator(cfg.Stack.Len())
	if err != nil {
		return nil, err
	}
	engine := book.NewEngine(nav,
		book.WithDuration(cfg.Duration),
		book.WithFrameRate(cfg.FrameRate),
		book.WithClock(cfg.Now),
	)
	return &Model{
		cfg:     cfg,
		nav:     nav,
		engine:  engine,
		adapter: input.NewAdapter(cfg.Thresholds),
		frame:   book.RestFrame(0),
		width:   80,
		height:  24,
	}, nil
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(cfg Config) error {
	m, err := New(cfg)
	if err != nil {
		return err
	}
	defer m.engine.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// Navigator exposes the model's navigator.
func (m *Model) Navigator() *book.Navigator { return m.nav }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.engine.Interval(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tickMsg:
		if f, ok := m.engine.Advance(time.Time(msg)); ok {
			m.frame = f
		}
		return m, m.tick()

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.adapter.Handle(m.nav, input.Event{Type: input.EventWheel, DeltaY: wheelStep})
		case tea.MouseButtonWheelUp:
			m.adapter.Handle(m.nav, input.Event{Type: input.EventWheel, DeltaY: -wheelStep})
		}
		m.sync()
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		m.engine.Flush()
		return tea.Quit
	case "down", "j", " ", "pgdown":
		m.adapter.Handle(m.nav, input.Event{Type: input.EventKey, Key: input.KeyArrowDown})
	case "up", "k", "pgup":
		m.adapter.Handle(m.nav, input.Event{Type: input.EventKey, Key: input.KeyArrowUp})
	case "g", "home":
		m.nav.RequestJump(0)
	case "G", "end":
		m.nav.RequestJump(m.cfg.Stack.Len() - 1)
	case "w":
		m.jumpTo("work")
	case "p":
		m.jumpTo("theater")
	case "c":
		m.jumpTo("connect")
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			// 1 is the first page, 0 the tenth.
			idx := int(key[0]-'0') - 1
			if idx < 0 {
				idx = 9
			}
			m.nav.RequestJump(idx)
		}
	}
	m.sync()
	return nil
}

func (m *Model) jumpTo(id string) {
	if idx, ok := m.cfg.Stack.Index(id); ok {
		m.nav.RequestJump(idx)
	}
}

// sync picks up a turn or jump the last input started.
func (m *Model) sync() {
	m.frame = m.engine.Frame()
}

func (m *Model) View() string {
	var b strings.Builder
	state := m.nav.State()

	bar := m.cfg.Stack.NavBar(m.cfg.Brand, state.Index)
	if bar.Visible {
		parts := []string{titleStyle.Render(bar.Brand)}
		for _, l := range bar.Links {
			label := fmt.Sprintf("%s (%d)", l.Label, l.Index+1)
			if l.Active {
				label = activeStyle.Render(label)
			}
			parts = append(parts, label)
		}
		b.WriteString(navStyle.Render(strings.Join(parts, "   ")))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderSlot())
	b.WriteString("\n")

	footer := fmt.Sprintf("page %d/%d  ↑/↓ turn  1-9 jump  w/p/c work/process/connect  q quit",
		state.Index+1, state.Total)
	b.WriteString(footerStyle.Render(footer))
	return b.String()
}

// renderSlot draws whichever slot faces the viewer, foreshortened by the
// cosine of its rotation.
func (m *Model) renderSlot() string {
	slot := m.frame.Current
	if m.frame.Incoming != nil && math.Cos(slot.RotationY*math.Pi/180) <= 0 {
		slot = *m.frame.Incoming
	}
	sec, ok := m.cfg.Stack.At(slot.Page)
	if !ok {
		return ""
	}

	full := m.width - 4
	if full < 20 {
		full = 20
	}
	width := int(math.Round(float64(full) * math.Abs(math.Cos(slot.RotationY*math.Pi/180))))
	if width < 6 {
		width = 6
	}

	style := pageStyle
	if sec.Dark {
		style = darkPageStyle
	}
	body := titleStyle.Render(sec.Title)
	if sec.Subtitle != "" {
		body += "\n" + sec.Subtitle
	}
	if text := plainText(sec.Body); text != "" {
		body += "\n\n" + text
	}
	for _, it := range sec.Items {
		line := "• " + it.Label
		if it.Value != "" {
			line += "  " + it.Value
		}
		body += "\n" + line
	}

	rendered := style.Width(width).MaxHeight(m.height - 4).Render(body)
	// Hinge side stays put; the free edge moves.
	if slot.Origin == book.OriginTrailing {
		return lipgloss.PlaceHorizontal(full+4, lipgloss.Right, rendered)
	}
	if slot.Origin == book.OriginCenter {
		return lipgloss.PlaceHorizontal(full+4, lipgloss.Center, rendered)
	}
	return rendered
}

// plainText strips the markdown markers a terminal cannot show.
func plainText(md string) string {
	r := strings.NewReplacer("**", "", "__", "", "*", "", "`", "", "# ", "")
	return strings.TrimSpace(r.Replace(md))
}
