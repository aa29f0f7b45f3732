package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flap/internal/config"
	"github.com/vovakirdan/tui-flap/internal/core"
	"github.com/vovakirdan/tui-flap/internal/replay"
	"github.com/vovakirdan/tui-flap/internal/sim"
)

// Options configures a play model.
type Options struct {
	Config   config.FlapConfig
	Seed     int64 // 0 picks a time-based seed
	TickRate int   // redraws per second
	Width    int   // initial terminal size, updated on resize
	Height   int
	Source   string // recorded as the replay source
	Logger   *log.Logger
}

// Model is the Bubble Tea model for one player. Every step and tap goes
// through a replay recorder so the run can be saved when the model exits.
type Model struct {
	rec      *replay.Recorder
	clock    *sim.WallClock
	screen   *core.Screen
	renderer Renderer
	keys     KeyMap
	help     help.Model
	logger   *log.Logger
	tickRate int
	seed     int64
	paused   bool
	quitting bool
}

// NewModel creates a new Bubble Tea model.
func NewModel(opts Options) Model {
	// Use time-based seed if not specified
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.Source == "" {
		opts.Source = "play"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		rec:      replay.NewRecorder(opts.Config, opts.Seed, opts.Source),
		clock:    sim.NewWallClock(),
		screen:   core.NewScreen(opts.Width, max(opts.Height-1, 0)),
		renderer: NewRenderer(opts.Config),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		logger:   logger,
		tickRate: opts.TickRate,
		seed:     opts.Seed,
	}
	m.help.Width = opts.Width
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.logger.Debug("session started", "seed", m.seed)
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleAction(m.keys.MapKey(msg))

	case tea.MouseMsg:
		return m.handleAction(MapMouse(msg))

	case tea.WindowSizeMsg:
		// The field keeps its unit size; only the cell scale changes.
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleAction applies one input action.
func (m Model) handleAction(a Action) (tea.Model, tea.Cmd) {
	switch a {
	case ActionQuit:
		m.quitting = true
		m.logger.Debug("session ended", "outcome", m.rec.Recording().Outcome)
		return m, tea.Quit

	case ActionPause:
		m.paused = !m.paused
		if !m.paused {
			// The paused interval must not arrive as one huge step
			m.clock.Reset()
		}

	case ActionTap:
		if !m.paused {
			m.logEvents(m.rec.Tap())
		}
	}
	return m, nil
}

// handleTick advances the session by the wall-clock time since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		m.logEvents(m.rec.Step(m.clock.Tick()))
	}
	return m, tickCmd(m.tickRate)
}

func (m Model) logEvents(res sim.StepResult) {
	for _, e := range res.Events {
		switch e.Kind {
		case sim.EventJumped:
			// Too frequent to be useful in the log
		case sim.EventCrashed:
			m.logger.Debug("crashed", "score", e.Score, "cause", e.Cause, "elapsed", res.Snapshot.Elapsed)
		case sim.EventRespawned:
			m.logger.Debug("respawned", "offset", e.Offset)
		default:
			m.logger.Debug(e.Kind.String(), "score", e.Score)
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Draw(m.screen, m.rec.Session().Snapshot(), m.paused)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Paused reports whether the frontend has stopped stepping the session.
func (m Model) Paused() bool {
	return m.paused
}

// Snapshot returns the session's current state.
func (m Model) Snapshot() sim.Snapshot {
	return m.rec.Session().Snapshot()
}

// Recording returns every input delivered so far.
func (m Model) Recording() replay.Recording {
	return m.rec.Recording()
}

// Run starts the Bubble Tea program and returns the recording of the run
// once the player quits.
func Run(opts Options) (replay.Recording, error) {
	model := NewModel(opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks are taps
	)

	final, err := p.Run()
	if err != nil {
		return replay.Recording{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.Recording(), nil
	}
	return model.Recording(), nil
}
