// Package config reads the YAML file describing which hardware drives the LED and what it should display.
package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/callebjorkell/rgbled/internal/pattern"
	"gopkg.in/yaml.v3"
)

const (
	BackendSysfs    = "sysfs"
	BackendPeriph   = "periph"
	BackendDigital  = "digital"
	BackendNeopixel = "neopixel"
	BackendMock     = "mock"
)

const (
	defaultBackend = BackendSysfs
	defaultPeriod  = time.Duration(led.DefaultPeriodNs) * time.Nanosecond
	defaultTick    = pattern.DefaultTick
	defaultLEDs    = 1
)

// Channel addresses one colour channel. Which fields are used depends on the backend: chip and channel for sysfs,
// pin for periph, gpiochip and line name for digital.
type Channel struct {
	Chip     *int   `yaml:"chip"`
	Channel  *int   `yaml:"channel"`
	Pin      string `yaml:"pin"`
	GPIOChip string `yaml:"gpiochip"`
	Line     string `yaml:"line"`
}

// Pattern is the YAML form of an effect.
type Pattern struct {
	Type      string        `yaml:"type"`
	Duration  time.Duration `yaml:"duration"`
	Colour    string        `yaml:"colour"`
	Secondary string        `yaml:"secondary"`
}

type Config struct {
	Backend  string        `yaml:"backend"`
	Period   time.Duration `yaml:"period"`
	Tick     time.Duration `yaml:"tick"`
	LEDs     int           `yaml:"leds"`
	Channels struct {
		Red   Channel `yaml:"red"`
		Green Channel `yaml:"green"`
		Blue  Channel `yaml:"blue"`
	} `yaml:"channels"`
	Pattern  Pattern   `yaml:"pattern"`
	Playlist []Pattern `yaml:"playlist"`
	Button   string    `yaml:"button"`
	Display  *Display  `yaml:"display"`
	HTTP     struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
}

// Display holds the pins of an optional HD44780 character display in 4-bit mode.
type Display struct {
	RS   string    `yaml:"rs"`
	E    string    `yaml:"e"`
	Data [4]string `yaml:"data"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := parseConfig(content)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func parseConfig(content []byte) (*Config, error) {
	c := &Config{}
	err := yaml.Unmarshal(content, c)
	if err != nil {
		return nil, err
	}

	if c.Backend == "" {
		c.Backend = defaultBackend
	}
	if c.Period <= 0 {
		c.Period = defaultPeriod
	}
	if c.Period.Nanoseconds() > math.MaxUint32 {
		return nil, fmt.Errorf("period %v is too long", c.Period)
	}
	if c.Tick <= 0 {
		c.Tick = defaultTick
	}
	if c.LEDs <= 0 {
		c.LEDs = defaultLEDs
	}

	if c.Display != nil {
		c.Display.setDefaults()
	}

	for i, ch := range c.channels() {
		if err := checkChannel(c.Backend, channelNames[i], ch); err != nil {
			return nil, err
		}
	}

	if c.Pattern.Type == "" {
		c.Pattern = Pattern{Type: "full", Colour: "off"}
	}
	if _, err := c.Pattern.Effect(); err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	for i, p := range c.Playlist {
		if _, err := p.Effect(); err != nil {
			return nil, fmt.Errorf("playlist entry %d: %w", i, err)
		}
	}

	return c, nil
}

func (d *Display) setDefaults() {
	if d.RS == "" {
		d.RS = "GPIO4"
	}
	if d.E == "" {
		d.E = "GPIO17"
	}
	for i, pin := range [4]string{"GPIO25", "GPIO22", "GPIO23", "GPIO24"} {
		if d.Data[i] == "" {
			d.Data[i] = pin
		}
	}
}

var channelNames = [3]string{"red", "green", "blue"}

func (c *Config) channels() [3]Channel {
	return [3]Channel{c.Channels.Red, c.Channels.Green, c.Channels.Blue}
}

func checkChannel(backend, name string, ch Channel) error {
	switch backend {
	case BackendSysfs:
		if ch.Chip == nil || ch.Channel == nil {
			return fmt.Errorf("chip and channel must be specified for the %s channel", name)
		}
		if *ch.Chip < 0 || *ch.Channel < 0 {
			return fmt.Errorf("chip and channel of the %s channel cannot be negative", name)
		}
	case BackendPeriph:
		if ch.Pin == "" {
			return fmt.Errorf("pin must be specified for the %s channel", name)
		}
	case BackendDigital:
		if ch.GPIOChip == "" || ch.Line == "" {
			return fmt.Errorf("gpiochip and line must be specified for the %s channel", name)
		}
	case BackendNeopixel, BackendMock:
	default:
		return fmt.Errorf("unknown backend %q", backend)
	}
	return nil
}

// Default is the config used when there is no config file: simulated channels showing nothing.
func Default() *Config {
	c, err := parseConfig([]byte("backend: mock"))
	if err != nil {
		panic(err)
	}
	return c
}

// PeriodNs is the PWM period in nanoseconds.
func (c *Config) PeriodNs() uint32 {
	return uint32(c.Period.Nanoseconds())
}

// Effects returns the playlist. Without a playlist, it holds only the configured pattern.
func (c *Config) Effects() ([]pattern.Effect, error) {
	if len(c.Playlist) == 0 {
		e, err := c.Pattern.Effect()
		if err != nil {
			return nil, err
		}
		return []pattern.Effect{e}, nil
	}

	effects := make([]pattern.Effect, 0, len(c.Playlist))
	for i, p := range c.Playlist {
		e, err := p.Effect()
		if err != nil {
			return nil, fmt.Errorf("playlist entry %d: %w", i, err)
		}
		effects = append(effects, e)
	}
	return effects, nil
}

// Effect builds the effect the pattern describes.
func (p Pattern) Effect() (pattern.Effect, error) {
	kind, err := pattern.ParseKind(p.Type)
	if err != nil {
		return pattern.Effect{}, err
	}
	if p.Colour == "" {
		return pattern.Effect{}, fmt.Errorf("%w: colour of %v must be specified", led.ErrValidation, kind)
	}
	colour, err := led.ParseColour(p.Colour)
	if err != nil {
		return pattern.Effect{}, err
	}

	var e pattern.Effect
	switch kind {
	case pattern.KindFull:
		e = pattern.Full(colour)
	case pattern.KindBlink:
		e = pattern.Blink(p.Duration, colour)
	case pattern.KindBlinkTwice:
		e = pattern.BlinkTwice(p.Duration, colour)
	case pattern.KindBreathe:
		e = pattern.Breathe(p.Duration, colour)
	case pattern.KindBlinkBetween, pattern.KindBreatheBetween:
		if p.Secondary == "" {
			return pattern.Effect{}, fmt.Errorf("%w: secondary colour of %v must be specified", led.ErrValidation, kind)
		}
		secondary, err := led.ParseColour(p.Secondary)
		if err != nil {
			return pattern.Effect{}, err
		}
		if kind == pattern.KindBlinkBetween {
			e = pattern.BlinkBetween(p.Duration, colour, secondary)
		} else {
			e = pattern.BreatheBetween(p.Duration, colour, secondary)
		}
	}
	if err := e.Validate(); err != nil {
		return pattern.Effect{}, err
	}
	return e, nil
}
