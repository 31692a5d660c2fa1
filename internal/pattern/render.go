package pattern

import (
	"fmt"
	"time"

	"github.com/callebjorkell/rgbled/internal/led"
)

// DefaultTick is the interval between brightness updates while breathing.
const DefaultTick = 5 * time.Millisecond

// Driver is the LED an Executor renders onto. *led.Driver implements it.
type Driver interface {
	SetColour(c led.Colour) error
	SetBrightness(b float64) error
	SetEnabled(enable bool) error
	Close() error
}

// Sleeper blocks for the given duration. Effects only ever suspend through it.
type Sleeper func(time.Duration)

func sleep(d time.Duration) {
	<-time.After(d)
}

// renderer stops issuing writes and sleeps after the first error, so an effect can be written as a flat sequence.
type renderer struct {
	driver Driver
	sleep  Sleeper
	tick   time.Duration
	err    error
}

func (r *renderer) colour(c led.Colour) {
	if r.err == nil {
		r.err = r.driver.SetColour(c)
	}
}

func (r *renderer) brightness(b float64) {
	if r.err == nil {
		r.err = r.driver.SetBrightness(b)
	}
}

func (r *renderer) wait(d time.Duration) {
	if r.err == nil && d > 0 {
		r.sleep(d)
	}
}

// render plays one full cycle of the effect.
func (r *renderer) render(e Effect) error {
	r.err = nil
	d := e.duration

	switch e.kind {
	case KindBlink:
		r.colour(e.colour)
		r.brightness(1)
		r.wait(d / 2)
		r.brightness(0)
		r.wait(d - d/2)
	case KindBlinkTwice:
		r.colour(e.colour)
		r.brightness(1)
		r.wait(d / 8)
		r.brightness(0)
		r.wait(d / 8)
		r.brightness(1)
		r.wait(d / 8)
		r.brightness(0)
		r.wait(d - 3*(d/8))
	case KindBlinkBetween:
		r.colour(e.colour)
		r.brightness(1)
		r.wait(d / 2)
		r.colour(e.secondary)
		r.wait(d - d/2)
	case KindBreathe:
		r.breathe(d, e.colour, e.colour, false)
	case KindBreatheBetween:
		r.breathe(d, e.colour, e.secondary, true)
	case KindFull:
		r.colour(e.colour)
		r.brightness(1)
	default:
		return fmt.Errorf("%w: unknown pattern %v", led.ErrValidation, e.kind)
	}
	return r.err
}

// breathe ramps the brightness linearly from 0 to 1 over the first half of the steps and back towards 0 over the
// second half, one step per tick. With switchColour set, out replaces in on the first step of the falling half.
func (r *renderer) breathe(d time.Duration, in, out led.Colour, switchColour bool) {
	tick := r.tick
	if d < 2*tick {
		tick = d / 2
	}
	n := breathSteps(d, tick)
	half := n / 2

	r.colour(in)
	for i := 0; i < n; i++ {
		if switchColour && i == half {
			r.colour(out)
		}
		r.brightness(breathLevel(i, n))
		r.wait(tick)
	}
	r.wait(d - time.Duration(n)*tick)
}

func breathSteps(d, tick time.Duration) int {
	if tick <= 0 {
		return 2
	}
	n := int(d / tick)
	if n < 2 {
		return 2
	}
	return n
}

// breathLevel is the brightness at step i of n. It reaches 1 at n/2 and is 0 at step 0.
func breathLevel(i, n int) float64 {
	half := n / 2
	if i < half {
		return float64(i) / float64(half)
	}
	return float64(n-i) / float64(n-half)
}
