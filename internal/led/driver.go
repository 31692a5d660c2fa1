// Package led turns a colour and a brightness into duty cycles for the three PWM channels of an RGB LED.
package led

import (
	"errors"
	"fmt"
	"math"

	"github.com/callebjorkell/rgbled/internal/pwm"
	log "github.com/sirupsen/logrus"
)

// DefaultPeriodNs gives a 500 Hz PWM frequency.
const DefaultPeriodNs uint32 = 2000000

var channelNames = [3]string{"red", "green", "blue"}

type Option func(*Driver)

// WithPeriod sets the PWM period used for all three channels.
func WithPeriod(periodNs uint32) Option {
	return func(d *Driver) {
		d.period = periodNs
	}
}

// Driver owns the three channels of an RGB LED. It is not safe for concurrent use; whoever drives the LED must be
// its only user.
type Driver struct {
	channels   [3]pwm.Channel
	period     uint32
	colour     Colour
	brightness float64
	closed     bool
}

// NewDriver exports the channels and sets their period. Outputs are left disabled.
func NewDriver(r, g, b pwm.Channel, opts ...Option) (*Driver, error) {
	d := &Driver{
		channels:   [3]pwm.Channel{r, g, b},
		period:     DefaultPeriodNs,
		colour:     Off,
		brightness: 1.0,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.period == 0 {
		return nil, fmt.Errorf("%w: period must be above zero", ErrConstruction)
	}

	for i, ch := range d.channels {
		if err := ch.Export(); err != nil {
			d.unexport(i)
			return nil, fmt.Errorf("%w: export %s channel: %w", ErrConstruction, channelNames[i], err)
		}
	}
	for i, ch := range d.channels {
		if err := ch.SetPeriodNs(d.period); err != nil {
			d.unexport(len(d.channels))
			return nil, fmt.Errorf("%w: set period of %s channel: %w", ErrConstruction, channelNames[i], err)
		}
	}

	log.Debugf("LED channels exported with a period of %dns", d.period)
	return d, nil
}

// unexport releases the first n channels after a failed construction.
func (d *Driver) unexport(n int) {
	for i := 0; i < n; i++ {
		if err := d.channels[i].Unexport(); err != nil {
			log.Warnf("Unable to unexport %s channel: %v", channelNames[i], err)
		}
	}
}

func (d *Driver) Colour() Colour {
	return d.colour
}

func (d *Driver) Brightness() float64 {
	return d.brightness
}

func (d *Driver) Period() uint32 {
	return d.period
}

// SetColour writes the colour at the current brightness. The colour is kept even if the write fails.
func (d *Driver) SetColour(c Colour) error {
	if d.closed {
		return ErrClosed
	}
	d.colour = c
	return d.render(d.colour, d.brightness)
}

// SetBrightness re-renders the current colour with a brightness between 0 and 1.
func (d *Driver) SetBrightness(b float64) error {
	if d.closed {
		return ErrClosed
	}
	if !(b >= 0 && b <= 1) {
		return fmt.Errorf("%w: brightness %v out of range, expected 0..1", ErrValidation, b)
	}
	d.brightness = b
	return d.render(d.colour, d.brightness)
}

// SetEnabled switches all channels on or off. Every channel is attempted even if an earlier one fails.
func (d *Driver) SetEnabled(enable bool) error {
	if d.closed {
		return ErrClosed
	}
	var errs []error
	for i, ch := range d.channels {
		if err := ch.Enable(enable); err != nil {
			errs = append(errs, fmt.Errorf("%s channel: %w", channelNames[i], err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: enable=%v: %w", ErrHardwareWrite, enable, errors.Join(errs...))
	}
	return nil
}

func (d *Driver) render(c Colour, brightness float64) error {
	var duties [3]uint32
	for i, f := range c.Fractions() {
		f *= brightness
		if !(f >= 0 && f <= 1) {
			return fmt.Errorf("%w: duty cycle %v of %s channel out of range, expected 0..1", ErrValidation, f, channelNames[i])
		}
		duties[i] = dutyCycle(f, d.period)
	}

	for i, ch := range d.channels {
		if err := ch.SetDutyCycleNs(duties[i]); err != nil {
			return fmt.Errorf("%w: %s channel: %w", ErrHardwareWrite, channelNames[i], err)
		}
	}
	return nil
}

func dutyCycle(fraction float64, period uint32) uint32 {
	duty := math.Round(fraction * float64(period))
	if duty >= float64(period) {
		return period
	}
	if duty <= 0 {
		return 0
	}
	return uint32(duty)
}

// Close disables and then unexports all channels. All steps are attempted and every failure is reported; the
// driver cannot be used or closed again afterwards.
func (d *Driver) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true

	var errs []error
	for i, ch := range d.channels {
		if err := ch.Enable(false); err != nil {
			errs = append(errs, fmt.Errorf("disable %s channel: %w", channelNames[i], err))
		}
	}
	for i, ch := range d.channels {
		if err := ch.Unexport(); err != nil {
			errs = append(errs, fmt.Errorf("unexport %s channel: %w", channelNames[i], err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrTeardown, errors.Join(errs...))
	}

	log.Debug("LED channels released")
	return nil
}
