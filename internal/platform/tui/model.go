package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tangkap-seru/internal/config"
	"github.com/vovakirdan/tangkap-seru/internal/core"
	"github.com/vovakirdan/tangkap-seru/internal/event"
	"github.com/vovakirdan/tangkap-seru/internal/instruction"
	"github.com/vovakirdan/tangkap-seru/internal/leaderboard"
	"github.com/vovakirdan/tangkap-seru/internal/round"
	"github.com/vovakirdan/tangkap-seru/internal/spawn"
)

const (
	toastDuration = 1500 * time.Millisecond
	resultRows    = 5 // Leaderboard rows on the round-over screen
)

// Options configures the play screen.
type Options struct {
	Runtime core.RuntimeConfig
	Game    config.GameConfig
	Board   *leaderboard.Store // nil: results are not recorded
	Logger  *log.Logger
}

type toast struct {
	text     string
	positive bool
	until    time.Time
}

// Model is the Bubble Tea model of one play session.
type Model struct {
	round  *round.Machine
	sched  *teaScheduler
	bus    *event.Bus
	unsub  func()
	board  *leaderboard.Store
	locale *instruction.Locale
	logger *log.Logger

	screen   *core.Screen
	config   core.RuntimeConfig
	name     textinput.Model
	help     help.Model
	keys     GameKeyMap
	selected uint64 // Object the keyboard catch targets
	toast    toast
	result   string // Recorded-entry message of the last round
	quitting bool
	now      func() time.Time
}

// NewModel creates the play screen and its round.
func NewModel(opts Options) *Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Mode == "" {
		cfg.Mode = core.ModeTimed
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if cfg.Locale == "" {
		cfg.Locale = opts.Game.Display.Locale
	}

	m := &Model{
		sched:  newTeaScheduler(),
		bus:    event.NewBus(),
		board:  opts.Board,
		logger: opts.Logger,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config: cfg,
		help:   help.New(),
		keys:   DefaultGameKeyMap(),
		now:    time.Now,
	}
	m.unsub = m.bus.Subscribe(m.onEvent)

	ro := round.Options{
		Mode:      cfg.Mode,
		Config:    opts.Game,
		Scheduler: m.sched,
		Rand:      rand.New(rand.NewSource(cfg.Seed)),
		Notifier:  m.bus,
		Logger:    opts.Logger,
		Locale:    cfg.Locale,
	}
	if opts.Board != nil {
		ro.Recorder = opts.Board
	}
	m.round = round.New(ro)
	m.locale = m.round.Locale()

	ti := textinput.New()
	ti.Placeholder = m.locale.NameLabel
	ti.CharLimit = 24
	ti.Width = 24
	m.name = ti
	return m
}

// Init starts the round.
func (m *Model) Init() tea.Cmd {
	m.round.Start()
	return tea.Batch(m.prepareNameEntry(), m.sched.Flush())
}

func (m *Model) prepareNameEntry() tea.Cmd {
	if m.round.State().Phase != round.PhaseAwaitingIdentity {
		return nil
	}
	m.name.SetValue(m.round.State().PlayerName)
	m.name.CursorEnd()
	return tea.Batch(m.name.Focus(), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case timerMsg:
		m.sched.Fire(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	default:
		if m.round.State().Phase == round.PhaseAwaitingIdentity {
			m.name, cmd = m.name.Update(msg)
		}
	}

	return m, tea.Batch(cmd, m.sched.Flush())
}

// handleKey processes keyboard input.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	st := m.round.State()

	if st.Phase == round.PhaseAwaitingIdentity {
		switch msg.String() {
		case "ctrl+c", "esc":
			return m.quit()
		case "enter":
			if err := m.round.ConfirmIdentity(m.name.Value()); err != nil {
				return nil
			}
			m.name.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return cmd
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Catch):
		if o, ok := m.selectedObject(); ok {
			m.catch(o.ID)
		}

	case key.Matches(msg, m.keys.Next):
		if st.LevelComplete() {
			//nolint:errcheck // Phase checked above
			m.round.AdvanceLevel()
		}

	case key.Matches(msg, m.keys.Restart):
		if st.GameOver() {
			m.result = ""
			//nolint:errcheck // Only fails after Close
			m.round.Restart()
			return m.prepareNameEntry()
		}

	case key.Matches(msg, m.keys.End):
		if st.Phase == round.PhaseInRound || st.LevelComplete() {
			//nolint:errcheck // Phase checked above
			m.round.EndRound()
		}
	}
	return nil
}

// handleMouse catches the object under a left click.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if o, ok := m.objectAt(msg.X, msg.Y); ok {
		m.catch(o.ID)
	}
}

func (m *Model) catch(id uint64) {
	v, err := m.round.Catch(id)
	if err != nil {
		m.logger.Debug("catch ignored", "id", id, "error", err)
		return
	}
	m.logger.Debug("catch", "id", id, "verdict", v)
	if id == m.selected {
		m.selected = 0
	}
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.Close()
	return tea.Quit
}

// Close ends the round: every timer stops and no further ticks run.
func (m *Model) Close() {
	m.round.Close()
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

// onEvent turns round events into toasts.
func (m *Model) onEvent(e event.Event) {
	m.logger.Debug("event", "kind", e.Kind, "score", e.Score, "level", e.Level)
	switch e.Kind {
	case event.KindLevelStarted, event.KindRoundOver, event.KindNone:
		return
	case event.KindEntryRecorded:
		m.result = e.Message
	}
	m.toast = toast{text: e.Message, positive: e.Kind.Positive(), until: m.now().Add(toastDuration)}
}

// fieldRect returns the play field inside its border.
func (m *Model) fieldRect() core.Rect {
	w, h := m.screen.Width(), m.screen.Height()
	return core.NewRect(1, 3, max(w-2, 1), max(h-5, 1))
}

// objectCell returns the screen cell of an object and whether it is visible.
func (m *Model) objectCell(o spawn.Object) (x, y int, visible bool) {
	if o.Y < 0 {
		return 0, 0, false
	}
	f := m.fieldRect()
	x = f.X + core.ProjectPercent(o.X, f.W)
	y = f.Y + core.ProjectPercent(o.Y, f.H)
	return x, y, true
}

// objectAt finds the visible object drawn at or next to a screen cell.
// Objects keep falling between the frame and the click, so the row below
// also counts.
func (m *Model) objectAt(x, y int) (spawn.Object, bool) {
	var best spawn.Object
	bestDist := -1
	for _, o := range m.round.Objects() {
		ox, oy, ok := m.objectCell(o)
		if !ok {
			continue
		}
		w := max(runewidth.StringWidth(o.Glyph), 1)
		if x < ox-1 || x > ox+w || y < oy-1 || y > oy+1 {
			continue
		}
		d := abs(y-oy)*4 + abs(x-ox)
		if bestDist < 0 || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, bestDist >= 0
}

// visibleByX returns the visible objects from left to right.
func (m *Model) visibleByX() []spawn.Object {
	var out []spawn.Object
	for _, o := range m.round.Objects() {
		if _, _, ok := m.objectCell(o); ok {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// selectedObject returns the selected object, or the lowest one when the
// selection has left the field.
func (m *Model) selectedObject() (spawn.Object, bool) {
	objs := m.visibleByX()
	if len(objs) == 0 {
		return spawn.Object{}, false
	}
	lowest := objs[0]
	for _, o := range objs {
		if o.ID == m.selected {
			return o, true
		}
		if o.Y > lowest.Y {
			lowest = o
		}
	}
	return lowest, true
}

func (m *Model) moveSelection(dir int) {
	objs := m.visibleByX()
	if len(objs) == 0 {
		m.selected = 0
		return
	}
	idx := -1
	for i, o := range objs {
		if o.ID == m.selected {
			idx = i
			break
		}
	}
	if idx < 0 {
		cur, _ := m.selectedObject()
		m.selected = cur.ID
		return
	}
	idx = (idx + dir + len(objs)) % len(objs)
	m.selected = objs[idx].ID
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".tangkap", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.config.Mode, timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.round.State()
	switch st.Phase {
	case round.PhaseAwaitingIdentity:
		return m.viewNameEntry()
	case round.PhaseRoundOver:
		return m.viewRoundOver(st)
	}
	m.draw()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// draw renders the HUD and the play field into the screen buffer.
func (m *Model) draw() {
	s := m.screen
	s.Clear()
	st := m.round.State()
	l := m.locale

	hud := fmt.Sprintf(" %s  %s %d  %s %d  %s",
		st.Mode.Title(), l.LevelLabel, st.Level, l.ScoreLabel, st.Score, progressBar(st, 10))
	if st.Mode.Timed() {
		hud += fmt.Sprintf("  %s %ds", l.TimeLabel, st.TimeLeft)
	}
	s.DrawText(0, 0, hud, core.ColorWhite)
	s.DrawTextCentered(1, st.Instruction, core.ColorCyan)

	if m.toast.text != "" && m.now().Before(m.toast.until) {
		c := core.ColorRed
		if m.toast.positive {
			c = core.ColorGreen
		}
		s.DrawTextCentered(2, m.toast.text, c)
	}

	f := m.fieldRect()
	s.DrawBox(core.NewRect(f.X-1, f.Y-1, f.W+2, f.H+2), core.ColorGray)

	sel, hasSel := m.selectedObject()
	for _, o := range m.round.Objects() {
		x, y, ok := m.objectCell(o)
		if !ok {
			continue
		}
		w := s.DrawGlyph(x, y, o.Glyph, core.ColorFor(o.Classification))
		if hasSel && o.ID == sel.ID {
			s.Set(x-1, y, '›', core.ColorWhite)
			s.Set(x+w, y, '‹', core.ColorWhite)
		}
	}

	if st.LevelComplete() {
		mid := f.Y + f.H/2
		s.DrawTextCentered(mid, l.LevelComplete, core.ColorGreen)
		s.DrawTextCentered(mid+1, "[n] "+l.NextLevelHint, core.ColorWhite)
	}
}

func progressBar(st round.State, width int) string {
	filled := core.Clamp(int(st.Progress()*float64(width)), 0, width)
	return fmt.Sprintf("[%s%s] %d/%d",
		strings.Repeat("█", filled), strings.Repeat("░", width-filled), st.Caught, st.Target)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
)

func (m *Model) viewNameEntry() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.round.Mode().Title()))
	b.WriteString("\n\n")
	b.WriteString(m.locale.AwaitingName)
	b.WriteString("\n\n")
	b.WriteString(m.name.View())
	if m.toast.text != "" && m.now().Before(m.toast.until) && !m.toast.positive {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.toast.text))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("enter: ok  esc: quit"))
	return m.center(panelStyle.Render(b.String()))
}

func (m *Model) viewRoundOver(st round.State) string {
	l := m.locale
	var b strings.Builder
	b.WriteString(titleStyle.Render(l.GameOverHeader))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s: %d   %s: %d\n", l.ScoreLabel, st.Score, l.LevelLabel, st.Level)
	if m.result != "" {
		b.WriteString("\n")
		b.WriteString(m.result)
		b.WriteString("\n")
	}

	if m.board != nil {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(l.BoardTitle))
		b.WriteString("\n")
		entries := m.board.TopEntries(st.Mode, resultRows)
		if len(entries) == 0 {
			b.WriteString(mutedStyle.Render(l.EmptyBoard))
			b.WriteString("\n")
		}
		for i, e := range entries {
			fmt.Fprintf(&b, "%2d. %-16s %5d  Lv %d\n", i+1, runewidth.Truncate(e.Name, 16, "…"), e.Score, e.Level)
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("r: play again  q: quit"))
	return m.center(panelStyle.Render(b.String()))
}

func (m *Model) center(s string) string {
	return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Run starts the play screen and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
