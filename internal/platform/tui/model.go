package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/registry"
	"github.com/vovakirdan/orbital-drift/internal/storage"
)

var logger = log.New(io.Discard)

// SetLogger routes TUI logs to l. Nil discards them.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Session identifies who is playing and at which difficulty.
type Session struct {
	Player     string // Stored with each run; empty for local play
	Difficulty string // Applied to games implementing registry.Tunable
}

// GameModel is the Bubble Tea model running a single game. It is used
// directly for local play and embedded in SessionModel over SSH.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	session    Session
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been stored
}

// NewGameModel creates a game model. A zero seed is replaced with the clock.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, session Session) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	if session.Difficulty != "" {
		if t, ok := game.(registry.Tunable); ok {
			if err := t.SetDifficulty(session.Difficulty); err != nil {
				logger.Warn("ignoring difficulty", "game", game.ID(), "err", err)
				session.Difficulty = ""
			}
		}
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		session:    session,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Game.Screenshot) {
		if path, err := m.saveScreenshot(); err != nil {
			logger.Warn("screenshot failed", "err", err)
		} else {
			logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.saveRun()
		m.backToMenu = true
		return m, nil
	}

	return m, nil
}

// handleResize processes window resize events. A running game restarts at
// the new size; whatever it scored so far is stored as abandoned.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver {
		m.saveRun()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
	}

	return m, nil
}

// handleTick advances the simulation by one step.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	switch {
	case m.gameState.GameOver:
		m.saveRun()
	case wasOver:
		// The game restarted itself
		m.runSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current run once. Runs without points are skipped.
func (m *GameModel) saveRun() {
	if m.runSaved || m.store == nil {
		return
	}

	reporter, ok := m.game.(registry.Reporter)
	if !ok {
		if m.gameState.Score > 0 {
			if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
				logger.Warn("cannot save score", "game", m.game.ID(), "err", err)
			}
		}
		m.runSaved = true
		return
	}

	report := reporter.Report()
	m.runSaved = true
	if report.Score <= 0 {
		return
	}

	id, err := m.store.SaveRun(RunFromReport(m.game.ID(), m.session, report))
	if err != nil {
		logger.Warn("cannot save run", "game", m.game.ID(), "err", err)
		return
	}
	logger.Debug("run saved", "id", id, "score", report.Score, "cause", report.Cause)
}

// RunFromReport builds a storage record for a finished run.
func RunFromReport(gameID string, session Session, r core.RunReport) storage.Run {
	return storage.Run{
		GameID:     gameID,
		Player:     session.Player,
		Difficulty: session.Difficulty,
		Seed:       r.Seed,
		Score:      r.Score,
		Distance:   r.Distance,
		Duration:   r.Duration,
		Ticks:      r.Ticks,
		Hits:       r.Hits,
		Thrusts:    r.Thrusts,
		Cause:      r.Cause,
	}
}

// saveScreenshot writes the current frame to ~/.drift/screenshots.
func (m *GameModel) saveScreenshot() (string, error) {
	m.render()

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".drift", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func (m *GameModel) render() {
	m.screen.Clear()
	m.game.Render(m.screen)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// GameResult reports how a local game session ended.
type GameResult struct {
	BackToMenu bool
	Quit       bool
}

// Run starts the Bubble Tea program for one game and blocks until the
// player quits or returns to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, session Session) (GameResult, error) {
	model := NewGameModel(game, store, cfg, session)

	p := tea.NewProgram(
		localGame{model},
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return GameResult{Quit: true}, err
	}

	lg, ok := final.(localGame)
	if !ok {
		return GameResult{Quit: true}, nil
	}
	return GameResult{
		BackToMenu: lg.BackToMenu(),
		Quit:       lg.IsQuitting(),
	}, nil
}

// localGame ends the program when the embedded game asks for the menu.
type localGame struct {
	GameModel
}

func (l localGame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := l.GameModel.Update(msg)
	if gm, ok := next.(GameModel); ok {
		l.GameModel = gm
	}
	if l.BackToMenu() {
		return l, tea.Quit
	}
	return l, cmd
}
