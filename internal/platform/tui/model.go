package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Model is the Bubble Tea model driving one flappy session.
//
// The session is only touched from Update and View, which Bubble Tea runs on
// a single goroutine. At most one tick timer is armed at any time: starting a
// session bumps gen, so a tick already in flight for the previous session is
// dropped instead of doubling the tick rate.
type Model struct {
	session  *flappy.Session
	screen   *core.Screen
	store    *storage.Store // nil disables run recording
	logger   *log.Logger
	config   core.RuntimeConfig
	player   string
	keys     KeyMap
	help     help.Model
	gen      uint64
	armed    bool
	quitting bool
}

// runSavedMsg reports the outcome of recording a finished run.
type runSavedMsg struct {
	id  string
	err error
}

// NewModel creates a model for an idle session.
func NewModel(session *flappy.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = session.Config().Timing.TickRate
	}

	return Model{
		session: session,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH-1), // last line is help
		store:   store,
		logger:  logger,
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// WithPlayer tags recorded runs with a player name.
func (m Model) WithPlayer(name string) Model {
	m.player = name
	return m
}

// Init does not arm the timer; the session stays idle until started.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The field is resolution independent, so a resize never resets play
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height-1)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case runSavedMsg:
		if msg.err != nil {
			m.logger.Error("could not record run", "error", msg.err)
		} else {
			m.logger.Info("run recorded", "id", msg.id)
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionStart:
		return m.start()
	case core.ActionJump:
		m.session.Jump()
	}
	return m, nil
}

// start begins a new session and arms a fresh timer generation.
func (m Model) start() (tea.Model, tea.Cmd) {
	seed := m.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m.gen++
	m.armed = true
	m.session.Start(seed)
	m.logger.Debug("session started", "seed", seed, "gen", m.gen)

	return m, tickCmd(m.config.TickRate, m.gen)
}

// handleTick steps the simulation and re-arms the timer while running.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.armed || msg.Gen != m.gen {
		return m, nil
	}

	state := m.session.Tick()
	if state.Running() {
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	// Game over: disarm and record the run
	m.armed = false
	m.logger.Debug("session over", "score", state.Score, "tick", state.Tick)
	return m, m.saveRunCmd()
}

// saveRunCmd records the finished run in the background.
func (m Model) saveRunCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}

	run, err := storage.NewRun(m.session, m.player)
	if err != nil {
		return func() tea.Msg { return runSavedMsg{err: err} }
	}

	store := m.store
	return func() tea.Msg {
		id, err := store.SaveRun(run)
		return runSavedMsg{id: id, err: err}
	}
}

// Armed reports whether a tick timer is pending for the current session.
func (m Model) Armed() bool {
	return m.armed
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	flappy.Render(m.session.Config(), m.session.Snapshot(), m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program for a local session.
func Run(session *flappy.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(session, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
