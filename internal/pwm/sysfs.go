//go:build linux

package pwm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

var (
	sysfsBase = "/sys/class/pwm"

	// exportTimeout is how long Export waits for the kernel to create the pwmN node.
	exportTimeout = 500 * time.Millisecond
	// retryWindow covers the window after export where udev has not yet fixed up the attribute permissions.
	retryWindow   = 2 * time.Second
	retryInterval = 25 * time.Millisecond
)

// Sysfs drives a hardware PWM channel through /sys/class/pwm/pwmchipN/pwmM.
type Sysfs struct {
	chipPath string
	pwmPath  string
	channel  int
}

func NewSysfs(chip, channel int) *Sysfs {
	chipPath := filepath.Join(sysfsBase, fmt.Sprintf("pwmchip%d", chip))
	return &Sysfs{
		chipPath: chipPath,
		pwmPath:  filepath.Join(chipPath, fmt.Sprintf("pwm%d", channel)),
		channel:  channel,
	}
}

func (s *Sysfs) String() string {
	return s.pwmPath
}

func (s *Sysfs) Export() error {
	if _, err := os.Stat(s.pwmPath); err == nil {
		log.Debugf("%s already exported", s.pwmPath)
		return nil
	}

	if err := writeSysfs(filepath.Join(s.chipPath, "export"), strconv.Itoa(s.channel)); err != nil {
		// someone else may have exported it in the meantime
		if _, statErr := os.Stat(s.pwmPath); statErr == nil {
			return nil
		}
		return fmt.Errorf("export %s: %w", s.pwmPath, err)
	}

	deadline := time.Now().Add(exportTimeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(s.pwmPath); err == nil {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	if _, err := os.Stat(s.pwmPath); err != nil {
		return fmt.Errorf("%s not created after export: %w", s.pwmPath, err)
	}
	return nil
}

func (s *Sysfs) Unexport() error {
	if err := writeSysfs(filepath.Join(s.chipPath, "unexport"), strconv.Itoa(s.channel)); err != nil {
		return fmt.Errorf("unexport %s: %w", s.pwmPath, err)
	}
	return nil
}

func (s *Sysfs) Enable(enable bool) error {
	v := "0"
	if enable {
		v = "1"
	}
	return s.write("enable", v)
}

func (s *Sysfs) SetPeriodNs(period uint32) error {
	return s.write("period", strconv.FormatUint(uint64(period), 10))
}

func (s *Sysfs) SetDutyCycleNs(duty uint32) error {
	return s.write("duty_cycle", strconv.FormatUint(uint64(duty), 10))
}

func (s *Sysfs) write(attr, value string) error {
	if err := writeSysfs(filepath.Join(s.pwmPath, attr), value); err != nil {
		return fmt.Errorf("write %s to %s/%s: %w", value, s.pwmPath, attr, err)
	}
	return nil
}

// writeSysfs opens with O_WRONLY only. Some sysfs attributes refuse O_TRUNC/O_CREATE even when the mode bits allow
// writing.
func writeSysfs(path, value string) error {
	deadline := time.Now().Add(retryWindow)
	for {
		err := writeOnce(path, value)
		if err == nil {
			return nil
		}
		if !isRetryable(err) || !time.Now().Before(deadline) {
			return err
		}
		time.Sleep(retryInterval)
	}
}

func writeOnce(path, value string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	_, werr := f.WriteString(value)
	cerr := f.Close()
	if werr != nil && cerr != nil {
		return errors.Join(werr, cerr)
	}
	if werr != nil {
		return werr
	}
	return cerr
}

func isRetryable(err error) bool {
	return errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM) || errors.Is(err, unix.ENOENT)
}
