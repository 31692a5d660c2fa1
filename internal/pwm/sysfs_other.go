//go:build !linux

package pwm

import "errors"

var errNoSysfs = errors.New("sysfs pwm is only available on linux")

type Sysfs struct{}

func NewSysfs(chip, channel int) *Sysfs {
	return &Sysfs{}
}

func (s *Sysfs) Export() error                   { return errNoSysfs }
func (s *Sysfs) Unexport() error                 { return errNoSysfs }
func (s *Sysfs) Enable(enable bool) error        { return errNoSysfs }
func (s *Sysfs) SetPeriodNs(period uint32) error { return errNoSysfs }
func (s *Sysfs) SetDutyCycleNs(duty uint32) error {
	return errNoSysfs
}
