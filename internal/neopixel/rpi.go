//go:build pi

package neopixel

import (
	ws "github.com/rpi-ws281x/rpi-ws281x-go"
)

// NewPixel sets up a WS281x strip of count LEDs on the default channel.
func NewPixel(count int) (*Pixel, error) {
	if count < 1 {
		count = 1
	}

	opt := ws.DefaultOptions
	opt.Channels[0].Brightness = stripBrightness
	opt.Channels[0].LedCount = count

	dev, err := ws.MakeWS2811(&opt)
	if err != nil {
		return nil, err
	}
	return newPixel(dev), nil
}
