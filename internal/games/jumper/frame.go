package jumper

import "github.com/vovakirdan/combo-jump/internal/core"

// PlayerView is the render projection of the player.
type PlayerView struct {
	Box       core.Box
	Airborne  bool
	Powered   bool // Holds a double-jump charge
	Jumping   bool // Jump flash
	Collected bool // Coin flash
	Hit       bool // Collision flash
}

// EntityView is the render projection of an obstacle or coin.
type EntityView struct {
	Box     core.Box
	Variant string
	Color   core.Color
}

// HUD carries the values shown in the status line.
type HUD struct {
	Score         int
	Combo         int
	TimeRemaining float64
	Boosted       bool
	Speed         float64
}

// Frame is a read-only snapshot of everything a host needs to draw one frame.
// All coordinates are world units with Y measured up from the ground.
type Frame struct {
	WorldW, WorldH float64
	Player         PlayerView
	Obstacles      []EntityView
	Coins          []EntityView
	Texts          []FloatingText
	HUD            HUD
	Running        bool
	GameOver       bool
	Paused         bool
}

// Frame projects the current run into render commands.
func (g *Game) Frame() Frame {
	r := &g.run
	now := r.Clock.Now()

	f := Frame{
		WorldW: g.cfg.World.Width,
		WorldH: g.cfg.World.Height,
		Player: PlayerView{
			Box:       g.playerBox(),
			Airborne:  r.Player.Airborne,
			Powered:   r.Player.DoubleJump,
			Jumping:   r.Effects.Jumping(now),
			Collected: r.Effects.Collecting(now),
			Hit:       r.Effects.Hurt(now),
		},
		Obstacles: make([]EntityView, 0, len(r.Obstacles)),
		Coins:     make([]EntityView, 0, len(r.Coins)),
		Texts:     append([]FloatingText(nil), r.Effects.Texts...),
		HUD: HUD{
			Score:         r.Economy.Score,
			Combo:         r.Economy.Combo,
			TimeRemaining: r.Economy.TimeRemaining,
			Boosted:       r.Economy.Boost.Active,
			Speed:         r.Economy.Speed,
		},
		Running:  r.Running,
		GameOver: r.GameOver,
		Paused:   r.Paused,
	}

	for _, o := range r.Obstacles {
		v := EntityView{Box: o.Box(), Variant: "obstacle", Color: core.ColorRed}
		if o.Large {
			v.Variant = "obstacle-large"
			v.Color = core.ColorOrange
		}
		f.Obstacles = append(f.Obstacles, v)
	}
	for _, c := range r.Coins {
		f.Coins = append(f.Coins, EntityView{Box: c.Box(), Variant: c.Kind.String(), Color: c.Kind.Color()})
	}
	return f
}
