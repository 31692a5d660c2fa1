//go:build !linux

package pwm

import "errors"

var errNoGPIOChardev = errors.New("gpio character devices are only available on linux")

type Digital struct{}

func NewDigital(chip, line string) *Digital {
	return &Digital{}
}

func (d *Digital) Export() error                   { return errNoGPIOChardev }
func (d *Digital) Unexport() error                 { return nil }
func (d *Digital) Enable(enable bool) error        { return errNoGPIOChardev }
func (d *Digital) SetPeriodNs(period uint32) error { return nil }
func (d *Digital) SetDutyCycleNs(duty uint32) error {
	return errNoGPIOChardev
}
