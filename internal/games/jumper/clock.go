package jumper

import "time"

// Clock is the simulated run clock. It advances by a fixed frame duration on
// every tick, so a run behaves identically regardless of wall-clock jitter.
type Clock struct {
	frame time.Duration
	now   time.Duration
	ticks int
}

// NewClock creates a clock that advances 1/frameRate seconds per tick.
func NewClock(frameRate int) Clock {
	if frameRate <= 0 {
		frameRate = 60
	}
	return Clock{frame: time.Second / time.Duration(frameRate)}
}

// Advance moves the clock forward by one frame and returns the new time.
func (c *Clock) Advance() time.Duration {
	c.now += c.frame
	c.ticks++
	return c.now
}

// Now returns the simulated time since the run started.
func (c Clock) Now() time.Duration { return c.now }

// Frame returns the duration of one tick.
func (c Clock) Frame() time.Duration { return c.frame }

// Ticks returns the number of frames advanced since the last reset.
func (c Clock) Ticks() int { return c.ticks }

// Reset rewinds the clock to zero.
func (c *Clock) Reset() {
	c.now = 0
	c.ticks = 0
}

// Countdown is a one-shot timer advanced explicitly by the update loop.
// It fires once when its remaining time reaches zero and stays disarmed
// until re-armed.
type Countdown struct {
	remaining time.Duration
	armed     bool
}

// Arm (re)starts the countdown with the given delay.
func (c *Countdown) Arm(d time.Duration) {
	c.remaining = d
	c.armed = true
}

// Disarm cancels a pending countdown.
func (c *Countdown) Disarm() {
	c.remaining = 0
	c.armed = false
}

// Armed reports whether the countdown is pending.
func (c Countdown) Armed() bool { return c.armed }

// Remaining returns the time left before the countdown fires.
func (c Countdown) Remaining() time.Duration { return c.remaining }

// Tick advances the countdown by dt. It returns true exactly once, on the
// tick the countdown reaches zero, and disarms itself.
func (c *Countdown) Tick(dt time.Duration) bool {
	if !c.armed {
		return false
	}
	c.remaining -= dt
	if c.remaining > 0 {
		return false
	}
	c.Disarm()
	return true
}
