//go:build !pi

package neopixel

import (
	log "github.com/sirupsen/logrus"
)

type mockEngine struct {
	colors []uint32
}

func (d *mockEngine) Init() error {
	log.Debug("neopixel: Init")
	return nil
}

func (d *mockEngine) Render() error {
	log.Tracef("neopixel: Render %06x", d.colors)
	return nil
}

func (d *mockEngine) Wait() error {
	return nil
}

func (d *mockEngine) Fini() {
	log.Debug("neopixel: Fini")
}

func (d *mockEngine) Leds(_ int) []uint32 {
	return d.colors
}

// NewPixel returns a pixel backed by an in-memory strip of count LEDs.
func NewPixel(count int) (*Pixel, error) {
	if count < 1 {
		count = 1
	}
	log.Infof("No ws281x hardware in this build, simulating %d LEDs", count)
	return newPixel(&mockEngine{
		colors: make([]uint32, count),
	}), nil
}
