package jumper

import "github.com/vovakirdan/combo-jump/internal/core"

// Obstacle is a ground obstacle scrolling toward the player.
type Obstacle struct {
	X      float64
	Width  float64
	Height float64
	Large  bool
}

// Box returns the obstacle's hit box. Obstacles stand on the ground.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, 0, o.Width, o.Height)
}

// CoinKind is the coin variant, decided by the combo tier at spawn time.
type CoinKind int

const (
	CoinBasic     CoinKind = iota // Time bonus only
	CoinBoosted                   // Also arms the speed boost
	CoinEmpowered                 // Also grants the double-jump charge
)

// String returns the coin kind's name.
func (k CoinKind) String() string {
	switch k {
	case CoinBasic:
		return "basic"
	case CoinBoosted:
		return "boosted"
	case CoinEmpowered:
		return "empowered"
	default:
		return "unknown"
	}
}

// Color returns the display color of the coin kind.
func (k CoinKind) Color() core.Color {
	switch k {
	case CoinBoosted:
		return core.ColorBlue
	case CoinEmpowered:
		return core.ColorYellow
	default:
		return core.ColorGreen
	}
}

// Coin is a collectible floating above the ground.
type Coin struct {
	X         float64
	Y         float64 // Height of the coin's bottom edge above the ground
	Width     float64
	Height    float64
	Kind      CoinKind
	TimeBonus int
}

// Box returns the coin's hit box.
func (c Coin) Box() core.Box {
	return core.NewBox(c.X, c.Y, c.Width, c.Height)
}
