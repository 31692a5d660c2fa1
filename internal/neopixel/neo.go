// Package neopixel drives a WS281x strip as a single RGB LED. The red, green and blue components of the strip
// colour are exposed as three pwm.Channels, where the duty cycle sets the intensity of the component.
package neopixel

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/callebjorkell/rgbled/internal/pwm"
	log "github.com/sirupsen/logrus"
)

// stripBrightness caps the global brightness of the strip. Colour intensity is set per component.
const stripBrightness = 90

type wsEngine interface {
	Init() error
	Render() error
	Wait() error
	Fini()
	Leds(channel int) []uint32
}

var componentNames = [3]string{"red", "green", "blue"}

// Pixel is a strip where every LED shows the same colour.
type Pixel struct {
	ws wsEngine

	mu       sync.Mutex
	exported int
	enabled  [3]bool
	period   [3]uint32
	duty     [3]uint32
}

func newPixel(engine wsEngine) *Pixel {
	return &Pixel{ws: engine}
}

// Channels returns the red, green and blue components of the strip.
func (p *Pixel) Channels() (r, g, b pwm.Channel) {
	return &component{p, 0}, &component{p, 1}, &component{p, 2}
}

// Colour is the colour currently shown, as 0xRRGGBB.
func (p *Pixel) Colour() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.colour()
}

func (p *Pixel) colour() uint32 {
	var c uint32
	for i := range p.duty {
		v := uint32(0)
		if p.enabled[i] {
			v = level(p.duty[i], p.period[i])
		}
		c = c<<8 | v
	}
	return c
}

// level maps a duty cycle onto the 0-255 range of a colour component.
func level(duty, period uint32) uint32 {
	if period == 0 || duty == 0 {
		return 0
	}
	if duty >= period {
		return 0xff
	}
	return uint32(math.Round(float64(duty) / float64(period) * 0xff))
}

func (p *Pixel) render() error {
	color := p.colour()
	leds := p.ws.Leds(0)
	for i := range leds {
		leds[i] = color
	}
	if err := p.ws.Render(); err != nil {
		return err
	}
	if err := p.ws.Wait(); err != nil {
		return err
	}
	log.Tracef("neopixel: rendered %06x", color)
	return nil
}

// export initialises the engine for the first exported component.
func (p *Pixel) export() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exported == 0 {
		if err := p.ws.Init(); err != nil {
			return fmt.Errorf("init ws281x: %w", err)
		}
		log.Debug("neopixel: engine initialised")
	}
	p.exported++
	return nil
}

// unexport darkens the strip and releases the engine when the last component is unexported.
func (p *Pixel) unexport() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exported == 0 {
		return errors.New("not exported")
	}
	p.exported--
	if p.exported > 0 {
		return nil
	}

	p.enabled = [3]bool{}
	p.duty = [3]uint32{}
	err := p.render()
	p.ws.Fini()
	log.Debug("neopixel: engine released")
	return err
}

func (p *Pixel) update(i int, apply func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exported == 0 {
		return fmt.Errorf("%s component is not exported", componentNames[i])
	}
	apply()
	return p.render()
}

type component struct {
	p *Pixel
	i int
}

func (c *component) Export() error {
	return c.p.export()
}

func (c *component) Unexport() error {
	return c.p.unexport()
}

func (c *component) Enable(enable bool) error {
	return c.p.update(c.i, func() { c.p.enabled[c.i] = enable })
}

func (c *component) SetPeriodNs(period uint32) error {
	if period == 0 {
		return errors.New("period must be above zero")
	}
	return c.p.update(c.i, func() { c.p.period[c.i] = period })
}

func (c *component) SetDutyCycleNs(duty uint32) error {
	return c.p.update(c.i, func() { c.p.duty[c.i] = duty })
}
