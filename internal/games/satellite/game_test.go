package satellite

import (
	"strings"
	"testing"

	"github.com/vovakirdan/orbital-drift/internal/config"
	"github.com/vovakirdan/orbital-drift/internal/core"
	"github.com/vovakirdan/orbital-drift/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.UseConfig(config.DefaultSatelliteConfig())
	g.Reset(testRuntime(seed))
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameDeterminism(t *testing.T) {
	run := func() core.RunReport {
		g := newTestGame(t, 12345)
		pilot := NewAutopilot()
		for i := 0; i < 1800 && !g.State().GameOver; i++ {
			g.Step(pilot.Next(g))
		}
		return g.Report()
	}

	r1 := run()
	r2 := run()
	if r1 != r2 {
		t.Errorf("Determinism failed:\nrun1=%+v\nrun2=%+v", r1, r2)
	}
	if r1.Thrusts == 0 {
		t.Error("autopilot never fired the thruster")
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, 42)

	for i := 0; i < 100; i++ {
		g.Step(press(core.ActionThrust))
	}
	if g.Report().Ticks != 100 {
		t.Fatalf("Expected 100 ticks, got %d", g.Report().Ticks)
	}

	g.Reset(testRuntime(42))

	r := g.Report()
	if r.Ticks != 0 || r.Score != 0 || r.Thrusts != 0 || r.Hits != 0 {
		t.Errorf("Reset should clear the run, got %+v", r)
	}
	if r.Cause != CauseAbandoned {
		t.Errorf("Unfinished run cause = %q, expected %q", r.Cause, CauseAbandoned)
	}
	if g.State().GameOver || g.State().Paused {
		t.Error("Reset should clear game over and pause")
	}
}

func TestGameExitKillsSatellite(t *testing.T) {
	g := newTestGame(t, 1)

	g.World().Satellite().Teleport(core.V(0, 100))
	g.Step(core.NewInputFrame())

	if !g.World().Health().IsDead() {
		t.Fatal("Leaving the viewport should kill the satellite even while invincible")
	}
	if g.State().GameOver {
		t.Error("Game over should wait for the delay")
	}

	for i := 0; i < 60 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("Expected game over after the delay")
	}
	if cause := g.Report().Cause; cause != CauseExit {
		t.Errorf("Cause = %q, expected %q", cause, CauseExit)
	}
}

func TestGameScoreFrozenAfterDeath(t *testing.T) {
	g := newTestGame(t, 1)

	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
	}
	before := g.State().Score
	if before == 0 {
		t.Fatal("Scrolling camera should have earned some score")
	}

	g.World().Satellite().Teleport(core.V(0, -100))
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
	}

	if got := g.State().Score; got != before {
		t.Errorf("Score changed after death: %d -> %d", before, got)
	}
	if !g.Camera().Paused() {
		t.Error("Camera should stop when the satellite dies")
	}
}

func TestGameScoreTracksCamera(t *testing.T) {
	g := newTestGame(t, 7)

	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}

	camY := g.Camera().Position().Y
	if d := g.World().Score().Distance(); d < camY-1e-9 || d > camY+1e-9 {
		t.Errorf("Distance = %v, expected camera height %v", d, camY)
	}
	if g.World().Satellite().Position().Y != 0 {
		t.Error("Satellite should not move without input")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(core.NewInputFrame())
	result := g.Step(press(core.ActionPause))
	if !result.State.Paused {
		t.Fatal("Expected paused state")
	}

	ticks := g.World().Ticks()
	for i := 0; i < 10; i++ {
		g.Step(press(core.ActionThrust))
	}
	if g.World().Ticks() != ticks {
		t.Error("Simulation should not advance while paused")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("Second pause press should resume")
	}
}

func TestGameRotationHold(t *testing.T) {
	g := newTestGame(t, 1)
	sat := g.World().Satellite()

	g.Step(press(core.ActionRotateLeft))
	first := sat.AngularVelocity()
	if first <= 0 {
		t.Fatalf("RotateLeft should spin counter-clockwise, got %v", first)
	}

	for i := 0; i < 14; i++ {
		g.Step(core.NewInputFrame())
	}
	held := sat.AngularVelocity()
	if held < first*5 {
		t.Errorf("Rotation should stay active during the hold window: %v after 15 ticks", held)
	}

	for i := 0; i < 5; i++ {
		g.Step(core.NewInputFrame())
	}
	if sat.AngularVelocity() != held {
		t.Errorf("Rotation should stop after the hold window: %v -> %v", held, sat.AngularVelocity())
	}
}

func TestGameOppositeRotationCancels(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(press(core.ActionRotateLeft, core.ActionRotateRight))
	if w := g.World().Satellite().AngularVelocity(); w != 0 {
		t.Errorf("Pressing both directions should not rotate, got %v", w)
	}
}

func TestGameCountsThrusts(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(press(core.ActionThrust))
	g.Step(press(core.ActionThrust)) // Still cooling down

	if n := g.Report().Thrusts; n != 1 {
		t.Errorf("Thrusts = %d, expected 1", n)
	}
	if vy := g.World().Satellite().Velocity().Y; vy <= 0 {
		t.Errorf("Thrust at angle 0 should push up, got vy=%v", vy)
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, 1)

	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	g.Step(press(core.ActionRestart))
	if g.World().Ticks() != 31 {
		t.Error("Restart should be ignored before game over")
	}

	g.World().Satellite().Teleport(core.V(50, 0))
	for i := 0; i < 60 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("Expected game over")
	}

	ticks := g.World().Ticks()
	g.Step(core.NewInputFrame())
	if g.World().Ticks() != ticks {
		t.Error("World should freeze once the game is over")
	}

	g.Step(press(core.ActionRestart))
	if g.State().GameOver {
		t.Error("Restart should start a new run")
	}
	if g.World().Ticks() != 0 {
		t.Errorf("New run should start at tick 0, got %d", g.World().Ticks())
	}
}

func TestGameTooSmall(t *testing.T) {
	g := New()
	g.UseConfig(config.DefaultSatelliteConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 8, TickRate: 60, Seed: 1})

	g.Step(core.NewInputFrame())
	if g.World().Ticks() != 0 {
		t.Error("Game should not run on a screen that is too small")
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too small") {
		t.Error("Expected a too small message")
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, 1)
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"HP", "BAT", "THR", "SCORE"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	x, y := g.toScreen(g.World().Satellite().Position())
	if got := screen.Get(x, y); got != '↑' {
		t.Errorf("Satellite glyph at (%d, %d) = %q, expected '↑'", x, y, got)
	}
	if y != 1+23/2 || x != 40 {
		t.Errorf("Satellite should start mid-screen, drawn at (%d, %d)", x, y)
	}
}

func TestGameRenderGameOver(t *testing.T) {
	g := newTestGame(t, 1)
	g.World().Satellite().Teleport(core.V(0, -100))
	for i := 0; i < 60 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "SIGNAL LOST") {
		t.Error("Expected the game over panel")
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		angle    float64
		expected rune
	}{
		{0, '↑'},
		{20, '↑'},
		{45, '↖'},
		{90, '←'},
		{180, '↓'},
		{270, '→'},
		{-45, '↗'},
		{350, '↑'},
	}

	for _, tc := range tests {
		if got := headingGlyph(tc.angle); got != tc.expected {
			t.Errorf("headingGlyph(%v) = %q, expected %q", tc.angle, got, tc.expected)
		}
	}
}

func TestDifficultyPresetApplies(t *testing.T) {
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := newTestGame(t, 1)
	if hp := g.World().Health().MaxHP(); hp != 2 {
		t.Errorf("Hard preset MaxHP = %d, expected 2", hp)
	}

	SetDifficultyPreset("bogus")
	if DifficultyPreset() != "" {
		t.Error("Unknown presets should clear the selection")
	}
}

func TestInstanceDifficulty(t *testing.T) {
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := New()
	g.UseConfig(config.DefaultSatelliteConfig())
	if err := g.SetDifficulty("easy"); err != nil {
		t.Fatalf("SetDifficulty(easy) failed: %v", err)
	}
	g.Reset(testRuntime(1))

	if hp := g.World().Health().MaxHP(); hp != 5 {
		t.Errorf("Instance preset MaxHP = %d, expected 5", hp)
	}
	if g.Difficulty() != config.DifficultyEasy {
		t.Errorf("Difficulty() = %q, expected easy", g.Difficulty())
	}

	if err := g.SetDifficulty("impossible"); err == nil {
		t.Error("Unknown preset should be rejected")
	}
	if g.Difficulty() != config.DifficultyEasy {
		t.Error("Rejected preset should keep the previous one")
	}

	var _ registry.Tunable = g
}

func TestRegisteredGames(t *testing.T) {
	tests := []struct {
		id   string
		mode CameraMode
	}{
		{"drift", CameraScroll},
		{"drift_free", CameraFollow},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			game, err := registry.Create(tc.id)
			if err != nil {
				t.Fatalf("Create(%q) failed: %v", tc.id, err)
			}
			if game.ID() != tc.id {
				t.Errorf("ID() = %q", game.ID())
			}
			if _, ok := game.(registry.Reporter); !ok {
				t.Error("Game should implement registry.Reporter")
			}
			if g := game.(*Game); g.mode != tc.mode {
				t.Errorf("mode = %v, expected %v", g.mode, tc.mode)
			}
		})
	}
}
