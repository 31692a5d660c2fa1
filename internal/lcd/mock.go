//go:build !pi

package lcd

import (
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// Open returns a display on simulated pins. Printed lines only show up in the debug log.
func Open(rs, e string, data [4]string) (*Display, error) {
	log.Infoln("No LCD hardware in this build, simulating the display")

	var dataPins [4]gpio.PinIO
	for i, name := range data {
		dataPins[i] = &gpiotest.Pin{N: name}
	}
	d := newDisplay(&gpiotest.Pin{N: rs}, &gpiotest.Pin{N: e}, dataPins)
	d.sleep = func(time.Duration) {}
	return d, d.Init()
}
