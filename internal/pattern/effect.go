package pattern

import (
	"fmt"
	"strings"
	"time"

	"github.com/callebjorkell/rgbled/internal/led"
)

type Kind int

const (
	KindFull Kind = iota
	KindBlink
	KindBlinkTwice
	KindBlinkBetween
	KindBreathe
	KindBreatheBetween
)

var kindNames = map[Kind]string{
	KindFull:           "full",
	KindBlink:          "blink",
	KindBlinkTwice:     "blink-twice",
	KindBlinkBetween:   "blink-between",
	KindBreathe:        "breathe",
	KindBreatheBetween: "breathe-between",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps names like "blink-twice" to a Kind. Underscores are accepted in place of dashes.
func ParseKind(s string) (Kind, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown pattern type %q", led.ErrValidation, s)
}

// Effect describes a lighting behaviour. It is a plain value: to change what is displayed, build a new Effect and
// hand it to the Executor.
type Effect struct {
	kind      Kind
	duration  time.Duration
	colour    led.Colour
	secondary led.Colour
}

// Off keeps the LED dark.
var Off = Full(led.Off)

// Blink is on for half the duration and off for the other half.
func Blink(d time.Duration, c led.Colour) Effect {
	return Effect{kind: KindBlink, duration: d, colour: c}
}

// BlinkTwice flashes twice, each on and off phase lasting an eighth of the duration, and then rests.
func BlinkTwice(d time.Duration, c led.Colour) Effect {
	return Effect{kind: KindBlinkTwice, duration: d, colour: c}
}

// BlinkBetween shows a for the first half of the duration and b for the second.
func BlinkBetween(d time.Duration, a, b led.Colour) Effect {
	return Effect{kind: KindBlinkBetween, duration: d, colour: a, secondary: b}
}

// Breathe ramps the brightness up to full over the first half of the duration and back down over the second.
func Breathe(d time.Duration, c led.Colour) Effect {
	return Effect{kind: KindBreathe, duration: d, colour: c}
}

// BreatheBetween breathes in with a and out with b.
func BreatheBetween(d time.Duration, a, b led.Colour) Effect {
	return Effect{kind: KindBreatheBetween, duration: d, colour: a, secondary: b}
}

// Full holds a colour at full brightness.
func Full(c led.Colour) Effect {
	return Effect{kind: KindFull, colour: c}
}

func (e Effect) Kind() Kind {
	return e.kind
}

// Duration of one render cycle. Zero for static effects.
func (e Effect) Duration() time.Duration {
	return e.duration
}

func (e Effect) Colour() led.Colour {
	return e.colour
}

// Secondary is the second colour of the two colour effects.
func (e Effect) Secondary() led.Colour {
	return e.secondary
}

// Static effects render once and then hold until they are replaced.
func (e Effect) Static() bool {
	return e.kind == KindFull
}

func (e Effect) Validate() error {
	if _, ok := kindNames[e.kind]; !ok {
		return fmt.Errorf("%w: unknown pattern %v", led.ErrValidation, e.kind)
	}
	if !e.Static() && e.duration <= 0 {
		return fmt.Errorf("%w: %v needs a duration above zero, got %v", led.ErrValidation, e.kind, e.duration)
	}
	return nil
}

func (e Effect) String() string {
	switch e.kind {
	case KindFull:
		return fmt.Sprintf("%v(%v)", e.kind, e.colour)
	case KindBlinkBetween, KindBreatheBetween:
		return fmt.Sprintf("%v(%v, %v, %v)", e.kind, e.duration, e.colour, e.secondary)
	default:
		return fmt.Sprintf("%v(%v, %v)", e.kind, e.duration, e.colour)
	}
}
