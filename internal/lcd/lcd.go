//go:build pi

package lcd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Open looks up the register select, enable and D4-D7 pins by name and initialises the display.
func Open(rs, e string, data [4]string) (*Display, error) {
	log.Infoln("Initializing LCD")
	if _, err := host.Init(); err != nil {
		return nil, err
	}

	lookup := func(name string) (gpio.PinIO, error) {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("no such pin: %s", name)
		}
		return p, nil
	}

	rsPin, err := lookup(rs)
	if err != nil {
		return nil, err
	}
	ePin, err := lookup(e)
	if err != nil {
		return nil, err
	}
	var dataPins [4]gpio.PinIO
	for i, name := range data {
		if dataPins[i], err = lookup(name); err != nil {
			return nil, err
		}
	}

	d := newDisplay(rsPin, ePin, dataPins)
	return d, d.Init()
}
