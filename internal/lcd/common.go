// Package lcd writes text to a 16x2 HD44780 character display wired in 4-bit mode.
package lcd

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

type Line byte

func (l Line) String() string {
	switch l {
	case Line1:
		return "L1"
	case Line2:
		return "L2"
	}
	return "N/A"
}

const (
	Line1 Line = 0x80
	Line2 Line = 0xC0

	lineWidth   = 16
	character   = gpio.High
	command     = gpio.Low
	signalPulse = 500000 * time.Nanosecond
	signalDelay = 500000 * time.Nanosecond
)

var initSequence = []byte{0x33, 0x32, 0x28, 0x0C, 0x06, 0x01}

type Display struct {
	mu                sync.Mutex
	registerSelection gpio.PinIO
	clockEdge         gpio.PinIO
	dataPins          [4]gpio.PinIO
	sleep             func(time.Duration)
}

func newDisplay(rs, e gpio.PinIO, data [4]gpio.PinIO) *Display {
	return &Display{
		registerSelection: rs,
		clockEdge:         e,
		dataPins:          data,
		sleep:             time.Sleep,
	}
}

// Init puts the display in 4-bit mode and clears it.
func (d *Display) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range initSequence {
		if err := d.sendByte(b, command); err != nil {
			return fmt.Errorf("init display: %w", err)
		}
	}
	return nil
}

// PrintLine replaces the content of a line. Text beyond the width of the display is cut off.
func (d *Display) PrintLine(l Line, msg string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	log.Debugf("Print line %v: %q", l, msg)
	if err := d.sendByte(byte(l), command); err != nil {
		return err
	}
	m := fmt.Sprintf("%-16s", msg)
	for i := 0; i < lineWidth; i++ {
		if err := d.sendByte(m[i], character); err != nil {
			return err
		}
	}
	return nil
}

func (d *Display) Clear(l Line) error {
	return d.PrintLine(l, "")
}

func (d *Display) sendByte(bits byte, mode gpio.Level) error {
	if err := d.registerSelection.Out(mode); err != nil {
		return err
	}
	if err := d.pulseByte(bits, 0x10); err != nil {
		return err
	}
	return d.pulseByte(bits, 0x01)
}

func (d *Display) pulseByte(bits, mask byte) error {
	for i, pin := range d.dataPins {
		level := bits&(mask<<uint(i)) != 0
		if err := pin.Out(gpio.Level(level)); err != nil {
			return err
		}
	}
	d.sleep(signalDelay)
	if err := d.clockEdge.Out(gpio.High); err != nil {
		return err
	}
	d.sleep(signalPulse)
	if err := d.clockEdge.Out(gpio.Low); err != nil {
		return err
	}
	d.sleep(signalDelay)
	return nil
}
