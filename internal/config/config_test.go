package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/callebjorkell/rgbled/internal/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
backend: sysfs
period: 1ms
tick: 10ms
channels:
  red:   {chip: 4, channel: 0}
  green: {chip: 3, channel: 0}
  blue:  {chip: 0, channel: 0}
pattern: {type: blink, duration: 1s, colour: red}
playlist:
  - {type: breathe, duration: 2s, colour: green}
  - {type: blink_between, duration: 1s, colour: "#ff0000", secondary: blue}
button: GPIO20
display:
  rs: GPIO5
http:
  addr: ":8090"
`

func TestParseConfig(t *testing.T) {
	c, err := parseConfig([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, BackendSysfs, c.Backend)
	assert.Equal(t, uint32(1000000), c.PeriodNs())
	assert.Equal(t, 10*time.Millisecond, c.Tick)
	assert.Equal(t, 1, c.LEDs)
	assert.Equal(t, 4, *c.Channels.Red.Chip)
	assert.Equal(t, 0, *c.Channels.Blue.Channel)
	assert.Equal(t, "GPIO20", c.Button)
	assert.Equal(t, ":8090", c.HTTP.Addr)
	require.NotNil(t, c.Display)
	assert.Equal(t, "GPIO5", c.Display.RS)
	assert.Equal(t, "GPIO17", c.Display.E)
	assert.Equal(t, [4]string{"GPIO25", "GPIO22", "GPIO23", "GPIO24"}, c.Display.Data)

	e, err := c.Pattern.Effect()
	require.NoError(t, err)
	assert.Equal(t, pattern.Blink(time.Second, led.Red), e)

	effects, err := c.Effects()
	require.NoError(t, err)
	assert.Equal(t, []pattern.Effect{
		pattern.Breathe(2*time.Second, led.Green),
		pattern.BlinkBetween(time.Second, led.Red, led.Blue),
	}, effects)
}

func TestParseConfigDefaults(t *testing.T) {
	c := Default()
	assert.Equal(t, BackendMock, c.Backend)

	assert.Equal(t, led.DefaultPeriodNs, c.PeriodNs())
	assert.Equal(t, pattern.DefaultTick, c.Tick)
	assert.Equal(t, 1, c.LEDs)
	assert.Nil(t, c.Display)
	assert.Empty(t, c.HTTP.Addr)

	effects, err := c.Effects()
	require.NoError(t, err)
	assert.Equal(t, []pattern.Effect{pattern.Off}, effects)
}

func TestParseConfigErrors(t *testing.T) {
	tt := []struct {
		name    string
		content string
		err     string
	}{
		{
			"unknown backend",
			"backend: spi",
			`unknown backend "spi"`,
		},
		{
			"sysfs without addressing",
			"backend: sysfs\nchannels: {red: {chip: 1, channel: 0}, green: {chip: 1}}",
			"chip and channel must be specified for the green channel",
		},
		{
			"periph without pin",
			"backend: periph\nchannels: {red: {pin: GPIO12}, green: {pin: GPIO13}}",
			"pin must be specified for the blue channel",
		},
		{
			"digital without line",
			"backend: digital\nchannels: {red: {gpiochip: gpiochip0}}",
			"gpiochip and line must be specified for the red channel",
		},
		{
			"digital channel without chip",
			"backend: digital\nchannels: {red: {gpiochip: gpiochip0, line: GPIO17}, green: {gpiochip: gpiochip0, line: GPIO27}, blue: {line: GPIO22}}",
			"gpiochip and line must be specified for the blue channel",
		},
		{
			"unknown pattern type",
			"backend: mock\npattern: {type: strobe, duration: 1s, colour: red}",
			`unknown pattern type "strobe"`,
		},
		{
			"unknown colour",
			"backend: mock\npattern: {type: blink, duration: 1s, colour: mauve}",
			`unknown colour "mauve"`,
		},
		{
			"timed pattern without duration",
			"backend: mock\npattern: {type: breathe, colour: red}",
			"breathe needs a duration above zero",
		},
		{
			"two colour pattern without secondary",
			"backend: mock\npattern: {type: breathe-between, duration: 1s, colour: red}",
			"secondary colour of breathe-between must be specified",
		},
		{
			"broken playlist entry",
			"backend: mock\nplaylist: [{type: full, colour: red}, {type: blink, colour: red}]",
			"playlist entry 1",
		},
		{
			"period too long",
			"backend: mock\nperiod: 10s",
			"period 10s is too long",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseConfig([]byte(tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.err)
		})
	}
}

func TestPatternValidationError(t *testing.T) {
	_, err := Pattern{Type: "blink", Colour: "red"}.Effect()
	assert.ErrorIs(t, err, led.ErrValidation)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendSysfs, c.Backend)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
