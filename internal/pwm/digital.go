//go:build linux

package pwm

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/warthog618/go-gpiocdev"
)

const consumer = "rgbled"

// Digital drives a plain GPIO line through the GPIO character device. It has no hardware PWM, so any duty cycle
// above zero turns the line on and zero turns it off.
type Digital struct {
	chipPath string
	lineName string

	mu      sync.Mutex
	chip    *gpiocdev.Chip
	line    *gpiocdev.Line
	enabled bool
	duty    uint32
}

// NewDigital takes the chip as a device path or name ("/dev/gpiochip0" or "gpiochip0") and the line by name,
// e.g. "GPIO17".
func NewDigital(chip, line string) *Digital {
	if !strings.HasPrefix(chip, "/") {
		chip = filepath.Join("/dev", chip)
	}
	return &Digital{chipPath: chip, lineName: line}
}

func (d *Digital) Export() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.line != nil {
		return nil
	}

	chip, err := gpiocdev.NewChip(d.chipPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.chipPath, err)
	}
	offset, err := chip.FindLine(d.lineName)
	if err != nil {
		_ = chip.Close()
		return fmt.Errorf("find line %s on %s: %w", d.lineName, d.chipPath, err)
	}
	line, err := chip.RequestLine(offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(consumer))
	if err != nil {
		_ = chip.Close()
		return fmt.Errorf("request line %s on %s: %w", d.lineName, d.chipPath, err)
	}
	log.Debugf("Requested %s (offset %d) on %s", d.lineName, offset, d.chipPath)

	d.chip = chip
	d.line = line
	return nil
}

func (d *Digital) Unexport() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.line == nil {
		return nil
	}
	_ = d.line.SetValue(0)
	err := d.line.Close()
	d.line = nil
	if d.chip != nil {
		_ = d.chip.Close()
		d.chip = nil
	}
	return err
}

func (d *Digital) Enable(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enable
	return d.apply()
}

// SetPeriodNs is accepted and ignored.
func (d *Digital) SetPeriodNs(period uint32) error {
	return nil
}

func (d *Digital) SetDutyCycleNs(duty uint32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.duty = duty
	return d.apply()
}

func (d *Digital) apply() error {
	if d.line == nil {
		return fmt.Errorf("line %s is not exported", d.lineName)
	}
	return d.line.SetValue(level(d.enabled, d.duty))
}

func level(enabled bool, duty uint32) int {
	if enabled && duty > 0 {
		return 1
	}
	return 0
}
