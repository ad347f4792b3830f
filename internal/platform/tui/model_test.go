package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/registry"
	"github.com/vovakirdan/orbital-drift/internal/storage"
)

// stubGame scores 10 points per tick and ends after overAt ticks.
type stubGame struct {
	ticks  int
	overAt int
	paused bool
	preset string
	resets int
}

func (g *stubGame) ID() string {
	return "stub"
}

func (g *stubGame) Title() string {
	return "Stub Flight"
}

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.ticks = 0
	g.paused = false
	g.resets++
}

func (g *stubGame) over() bool {
	return g.overAt > 0 && g.ticks >= g.overAt
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.over() {
		g.Reset(core.RuntimeConfig{})
	}
	if in.Has(core.ActionPause) && !g.over() {
		g.paused = !g.paused
	}
	if !g.paused && !g.over() {
		g.ticks++
	}
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.ticks * 10, GameOver: g.over(), Paused: g.paused}
}

func (g *stubGame) Report() core.RunReport {
	cause := "abandoned"
	if g.over() {
		cause = "collision"
	}
	return core.RunReport{
		Score:    g.ticks * 10,
		Distance: float64(g.ticks),
		Duration: float64(g.ticks) / 60,
		Ticks:    g.ticks,
		Seed:     7,
		Cause:    cause,
	}
}

func (g *stubGame) SetDifficulty(preset string) error {
	if preset == "bogus" {
		return errors.New("unknown preset")
	}
	g.preset = preset
	return nil
}

func init() {
	registry.Register("stub", func() registry.Game {
		return &stubGame{}
	})
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 7}
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T, expected GameModel", next)
	}
	return gm, cmd
}

func tick(t *testing.T, m GameModel, n int) GameModel {
	t.Helper()
	for i := 0; i < n; i++ {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	return m
}

func TestGameModelSavesRunOnGameOver(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{overAt: 3}

	m := NewGameModel(game, store, testConfig(), Session{Player: "alice", Difficulty: "hard"})
	m.Init()
	m = tick(t, m, 6)

	if !m.State().GameOver {
		t.Fatal("Game should be over")
	}
	if game.preset != "hard" {
		t.Errorf("Difficulty should reach the game, got %q", game.preset)
	}

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected exactly one stored run, got %d", len(runs))
	}
	r := runs[0]
	if r.Score != 30 || r.Player != "alice" || r.Difficulty != "hard" || r.Cause != "collision" {
		t.Errorf("Unexpected run: %+v", r)
	}
}

func TestGameModelRestartSavesNextRun(t *testing.T) {
	store := openTestStore(t)
	game := &stubGame{overAt: 2}

	m := NewGameModel(game, store, testConfig(), Session{})
	m.Init()
	m = tick(t, m, 3)

	m, _ = update(t, m, runeKey('r'))
	m = tick(t, m, 4)

	runs, err := store.TopRuns("stub", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected one run per game over, got %d", len(runs))
	}
}

func TestGameModelQuitSavesAbandonedRun(t *testing.T) {
	store := openTestStore(t)
	m := NewGameModel(&stubGame{}, store, testConfig(), Session{})
	m.Init()
	m = tick(t, m, 5)

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("View should be empty after quitting")
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Cause != "abandoned" || runs[0].Score != 50 {
		t.Errorf("Expected one abandoned run worth 50, got %+v", runs)
	}
}

func TestGameModelSkipsEmptyRuns(t *testing.T) {
	store := openTestStore(t)
	m := NewGameModel(&stubGame{}, store, testConfig(), Session{})
	m.Init()

	update(t, m, runeKey('q'))

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Runs without points should not be stored, got %d", len(runs))
	}
}

func TestGameModelBack(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, testConfig(), Session{})
	m.Init()
	m = tick(t, m, 2)

	m, _ = update(t, m, runeKey('b'))
	m = tick(t, m, 1)
	if m.BackToMenu() {
		t.Fatal("Back should be ignored while playing")
	}

	m, _ = update(t, m, runeKey('p'))
	m = tick(t, m, 1)
	if !m.State().Paused {
		t.Fatal("Game should be paused")
	}

	m, _ = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("Back should return to the menu while paused")
	}
}

func TestGameModelRejectedDifficulty(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, nil, testConfig(), Session{Difficulty: "bogus"})

	if game.preset != "" {
		t.Errorf("Rejected preset should not be applied, got %q", game.preset)
	}
	if m.session.Difficulty != "" {
		t.Errorf("Rejected preset should not be stored, got %q", m.session.Difficulty)
	}
}

func TestGameModelResizeRestarts(t *testing.T) {
	game := &stubGame{}
	m := NewGameModel(game, nil, testConfig(), Session{})
	m.Init()
	m = tick(t, m, 3)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if game.resets != 2 {
		t.Errorf("Resize should restart the game, resets = %d", game.resets)
	}
	if m.screen.Width() != 60 || m.screen.Height() != 20 {
		t.Errorf("Screen = %dx%d, expected 60x20", m.screen.Width(), m.screen.Height())
	}
}

func TestRunFromReport(t *testing.T) {
	report := core.RunReport{Score: 12, Distance: 3.5, Duration: 9, Ticks: 540, Seed: 99, Hits: 2, Thrusts: 14, Cause: "exit"}
	run := RunFromReport("drift", Session{Player: "bob", Difficulty: "easy"}, report)

	expected := storage.Run{
		GameID:     "drift",
		Player:     "bob",
		Difficulty: "easy",
		Seed:       99,
		Score:      12,
		Distance:   3.5,
		Duration:   9,
		Ticks:      540,
		Hits:       2,
		Thrusts:    14,
		Cause:      "exit",
	}
	if run != expected {
		t.Errorf("RunFromReport() = %+v, expected %+v", run, expected)
	}
}

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.SetColored(3, 1, '*', core.ColorGray)

	got := ansiEscape.ReplaceAllString(RenderScreen(s), "")
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "ab  " || lines[1] != "   *" {
		t.Errorf("RenderScreen() = %q", got)
	}
}

func TestMenuPicksGameAndDifficulty(t *testing.T) {
	m := NewMenuModel(nil, testConfig())

	cursor := -1
	for i, item := range m.items {
		if item.GameID == "stub" {
			cursor = i
		}
	}
	if cursor < 0 {
		t.Fatal("Registered games should be listed")
	}
	m.cursor = cursor

	press := func(msg tea.KeyMsg) {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}

	press(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.choosingPreset {
		t.Fatal("Selecting a game should open the difficulty list")
	}

	press(tea.KeyMsg{Type: tea.KeyEsc})
	if m.choosingPreset {
		t.Fatal("Back should return to the game list")
	}

	press(tea.KeyMsg{Type: tea.KeyEnter})
	press(tea.KeyMsg{Type: tea.KeyDown})
	press(tea.KeyMsg{Type: tea.KeyEnter})

	result := m.Result()
	if result.Quit || result.GameID != "stub" || result.Difficulty != "hard" {
		t.Errorf("Unexpected menu result: %+v", result)
	}
}

func TestMenuScoreboardAndQuit(t *testing.T) {
	m := NewMenuModel(nil, testConfig())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).Result().WantsScoreboard {
		t.Error("Tab should open the scoreboard")
	}

	next, _ = m.Update(runeKey('q'))
	if !next.(MenuModel).Result().Quit {
		t.Error("q should quit the menu")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "0:00"},
		{59.9, "0:59"},
		{61, "1:01"},
		{3600, "60:00"},
	}

	for _, tc := range tests {
		if got := formatDuration(tc.seconds); got != tc.expected {
			t.Errorf("formatDuration(%v) = %q, expected %q", tc.seconds, got, tc.expected)
		}
	}
}
