package jumper

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/combo-jump/internal/config"
	"github.com/vovakirdan/combo-jump/internal/core"
)

func TestRunStartsFresh(t *testing.T) {
	g := newTestGame(t)
	s := g.State()

	if s.Score != 0 || s.Combo != 0 || s.TimeRemaining != 120 {
		t.Errorf("unexpected initial state %+v", s)
	}
	if !s.Running || s.GameOver {
		t.Errorf("run should be live after Reset, got %+v", s)
	}
	if !g.run.Player.Grounded() {
		t.Error("player should start grounded")
	}
}

func TestSixtyTicksDrainOneSecond(t *testing.T) {
	g := newTestGame(t)

	for i := 0; i < 60; i++ {
		if g.Update() {
			t.Fatalf("run ended early on tick %d", i+1)
		}
	}

	s := g.State()
	if !approx(s.TimeRemaining, 119) {
		t.Errorf("TimeRemaining = %f, expected 119", s.TimeRemaining)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, expected 0", s.Score)
	}
}

func TestCoinCollectionAtComboTwo(t *testing.T) {
	g := newTestGame(t)
	g.run.Economy.Combo = 2
	// Lands on the player after this frame's scroll
	g.run.Coins = []Coin{{X: 107, Y: 0, Width: 50, Height: 50, Kind: CoinBasic, TimeBonus: 1}}

	g.Update()

	s := g.State()
	if s.Combo != 3 {
		t.Errorf("Combo = %d, expected 3", s.Combo)
	}
	if s.Score != 15 {
		t.Errorf("Score = %d, expected 15", s.Score)
	}
	if expected := 120 - 1.0/60 + 1; !approx(s.TimeRemaining, expected) {
		t.Errorf("TimeRemaining = %f, expected %f", s.TimeRemaining, expected)
	}
	if len(g.run.Coins) != 0 {
		t.Error("collected coin should be removed")
	}
	if len(g.run.Effects.Texts) != 1 || g.run.Effects.Texts[0].Text != "+1s" || !g.run.Effects.Texts[0].Positive {
		t.Errorf("expected a positive +1s marker, got %+v", g.run.Effects.Texts)
	}

	if d := g.run.Spawner.ObstacleDelay(s.Combo, 0); d != 1746*time.Millisecond {
		t.Errorf("next obstacle interval = %v, expected tightened 1746ms", d)
	}
}

func TestObstacleCollision(t *testing.T) {
	g := newTestGame(t)
	g.run.Economy.Combo = 4
	g.run.Economy.ArmBoost(0)
	g.run.Player.GrantCharge()
	g.run.Spawner.consecutive = 2
	g.run.Obstacles = []Obstacle{{X: 107, Width: 62, Height: 62}}

	g.Update()

	s := g.State()
	if s.Combo != 0 {
		t.Errorf("Combo = %d, expected 0", s.Combo)
	}
	if expected := 120 - 1.0/60 - 1; !approx(s.TimeRemaining, expected) {
		t.Errorf("TimeRemaining = %f, expected %f", s.TimeRemaining, expected)
	}
	if g.run.Player.DoubleJump {
		t.Error("collision should revoke the double-jump charge")
	}
	if g.run.Economy.Boost.Active {
		t.Error("collision should cancel the boost")
	}
	if g.run.Spawner.Consecutive() != 0 {
		t.Errorf("Consecutive() = %d, expected 0 after a hit", g.run.Spawner.Consecutive())
	}
	if len(g.run.Obstacles) != 0 {
		t.Error("hit obstacle should be removed")
	}
	if len(g.run.Effects.Texts) != 1 || g.run.Effects.Texts[0].Text != "-1s" || g.run.Effects.Texts[0].Positive {
		t.Errorf("expected a negative -1s marker, got %+v", g.run.Effects.Texts)
	}
	if !g.Frame().Player.Hit {
		t.Error("player projection should flag the hit")
	}
}

func TestJumpingClearsObstacle(t *testing.T) {
	g := newTestGame(t)
	g.run.Player.Y = 200
	g.run.Player.Airborne = true
	g.run.Obstacles = []Obstacle{{X: 107, Width: 62, Height: 62}}

	g.Update()

	if g.State().TimeRemaining < 119.9 {
		t.Error("an airborne player above the obstacle should not be hit")
	}
	if len(g.run.Obstacles) != 1 {
		t.Error("obstacle should keep scrolling")
	}
}

func TestDodgeScores(t *testing.T) {
	g := newTestGame(t)
	g.run.Obstacles = []Obstacle{{X: -60, Width: 62, Height: 62}}

	g.Update()

	if g.State().Score != 1 {
		t.Errorf("Score = %d, expected 1 for a dodged obstacle", g.State().Score)
	}
	if len(g.run.Obstacles) != 0 {
		t.Error("dodged obstacle should be removed")
	}
}

func TestMissedCoinDisappearsSilently(t *testing.T) {
	g := newTestGame(t)
	g.run.Coins = []Coin{{X: -48, Y: 300, Width: 50, Height: 50, TimeBonus: 1}}

	g.Update()

	if len(g.run.Coins) != 0 {
		t.Error("off-screen coin should be removed")
	}
	if s := g.State(); s.Score != 0 || s.Combo != 0 {
		t.Errorf("missing a coin should not change the economy, got %+v", s)
	}
}

func TestEmpoweredCoinEffects(t *testing.T) {
	g := newTestGame(t)
	g.run.Economy.Combo = 6
	g.run.Coins = []Coin{{X: 107, Y: 0, Width: 50, Height: 50, Kind: CoinEmpowered, TimeBonus: 5}}

	g.Update()

	if !g.run.Player.DoubleJump {
		t.Error("empowered coin should grant the double-jump charge")
	}
	if !g.run.Economy.Boost.Active {
		t.Error("empowered coin should arm the boost")
	}
	if g.State().Score != 35 {
		t.Errorf("Score = %d, expected 5*7 = 35", g.State().Score)
	}

	f := g.Frame()
	if !f.Player.Powered || !f.Player.Collected || !f.HUD.Boosted {
		t.Errorf("projection should show powered, collected and boosted, got %+v", f)
	}
}

func TestTimeOutEndsRun(t *testing.T) {
	g := newTestGame(t)
	g.run.Economy.TimeRemaining = 0.001
	// Would be hit this frame if entities were still updated
	g.run.Obstacles = []Obstacle{{X: 107, Width: 62, Height: 62}}

	if !g.Update() {
		t.Fatal("Update should report the run ending")
	}

	s := g.State()
	if !s.GameOver || s.Running {
		t.Errorf("expected terminal state, got %+v", s)
	}
	if s.TimeRemaining != 0 {
		t.Errorf("TimeRemaining = %f, expected 0", s.TimeRemaining)
	}
	if len(g.run.Obstacles) != 1 || g.run.Obstacles[0].X != 107 {
		t.Error("game over must pre-empt entity updates")
	}
	if g.run.Spawner.Running() {
		t.Error("game over should disarm the spawner")
	}

	// Further frames and ends are no-ops
	if g.Update() {
		t.Error("Update on a stopped run should not report ending again")
	}
	g.end()
	if res := g.Step(core.NewInputFrame()); res.Ended || !res.State.GameOver {
		t.Errorf("Step on a stopped run = %+v", res)
	}
	if g.Jump() != JumpNone {
		t.Error("jumping after game over should be ignored")
	}
}

func TestResetCancelsPreviousRun(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 200; i++ {
		g.Update()
	}
	old := g.run.Spawner

	g.Reset(core.DefaultConfig())

	if old.Running() {
		t.Error("previous run's spawner should be disarmed")
	}
	s := g.State()
	if s.Score != 0 || s.Combo != 0 || s.TimeRemaining != 120 || !s.Running {
		t.Errorf("unexpected state after Reset: %+v", s)
	}
	if len(g.run.Obstacles) != 0 || len(g.run.Coins) != 0 || g.run.Clock.Now() != 0 {
		t.Error("Reset should clear entities and the clock")
	}
}

func TestStepJumpAndPause(t *testing.T) {
	g := newTestGame(t)

	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	g.Step(in)
	if !g.run.Player.Airborne {
		t.Fatal("jump input should launch the player")
	}

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("pause input should pause the run")
	}

	now, y := g.run.Clock.Now(), g.run.Player.Y
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.run.Clock.Now() != now || g.run.Player.Y != y {
		t.Error("paused run should not advance")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause input should resume")
	}
}

func TestStepCountsEveryJumpPress(t *testing.T) {
	tests := []struct {
		name       string
		presses    int
		wantCharge bool
	}{
		{"single press keeps the charge", 1, true},
		{"double tap in one tick spends the charge", 2, false},
		{"extra presses are ignored", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t)
			g.run.Player.GrantCharge()

			in := core.NewInputFrame()
			for range tt.presses {
				in.Set(core.ActionJump)
			}
			g.Step(in)

			if !g.run.Player.Airborne {
				t.Fatal("jump input should launch the player")
			}
			if g.run.Player.DoubleJump != tt.wantCharge {
				t.Errorf("charge held = %v, expected %v", g.run.Player.DoubleJump, tt.wantCharge)
			}
		})
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345}

	run := func() core.GameState {
		g := New(config.DefaultJumperConfig())
		g.Reset(cfg)
		var state core.GameState
		for i := 0; i < 3000; i++ {
			in := core.NewInputFrame()
			if i%40 == 0 {
				in.Set(core.ActionJump)
			}
			state = g.Step(in).State
		}
		return state
	}

	s1, s2 := run(), run()
	if s1 != s2 {
		t.Errorf("same seed and inputs diverged: %+v vs %+v", s1, s2)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	g.run.Obstacles = []Obstacle{{X: 500, Width: 62, Height: 62}}
	g.run.Coins = []Coin{{X: 700, Y: 200, Width: 50, Height: 50, Kind: CoinBoosted}}

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected score", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Time: 120s") {
		t.Errorf("HUD row = %q, expected time", screen.Row(0))
	}
	if screen.Get(0, 22) != GroundChar {
		t.Errorf("expected ground line on row 22, got %q", screen.Row(22))
	}
	if !strings.ContainsRune(screen.String(), ObstacleChar) {
		t.Error("obstacle not drawn")
	}
	if !strings.ContainsRune(screen.String(), CoinChar) {
		t.Error("coin not drawn")
	}
	// Player stands on the ground at x=100 -> column 8
	if c := screen.GetCell(8, 21); c.Rune != PlayerChar {
		t.Errorf("expected player above the ground at column 8, got %q", c.Rune)
	}
}

func TestRenderKeepsFloatingTextsOnScreen(t *testing.T) {
	f := Frame{
		WorldW: 1000,
		WorldH: 500,
		Texts: []FloatingText{
			{X: 0, Y: 100, Text: "+1s", Positive: true},
			{X: 1000, Y: 900, Text: "-2s"},
		},
	}

	screen := core.NewScreen(80, 24)
	RenderFrame(screen, f)

	// Left edge text would start at column -1
	if row := screen.Row(18); !strings.HasPrefix(row, "+1s") {
		t.Errorf("row 18 = %q, expected text pinned to the left edge", row)
	}
	// Text above the world is pinned under the HUD, flush right
	if row := screen.Row(1); !strings.HasSuffix(row, "-2s") {
		t.Errorf("row 1 = %q, expected text pinned to the right edge", row)
	}
	if strings.Contains(screen.Row(0), "-2s") {
		t.Error("floating text drawn over the HUD")
	}
}

func TestRenderHighJumpStaysOffHUD(t *testing.T) {
	g := newTestGame(t)
	g.run.Player.Y = 600

	screen := core.NewScreen(40, 12)
	g.Render(screen)

	if strings.ContainsRune(screen.Row(0), PlayerChar) {
		t.Error("player should be clipped below the HUD row")
	}
}
