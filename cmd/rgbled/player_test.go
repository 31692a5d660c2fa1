package main

import (
	"testing"
	"time"

	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/callebjorkell/rgbled/internal/pattern"
	"github.com/stretchr/testify/assert"
)

func TestDisplayLines(t *testing.T) {
	tt := []struct {
		name   string
		effect pattern.Effect
		top    string
		bottom string
	}{
		{"full", pattern.Full(led.Orange), "full", "#ffa500"},
		{"blink", pattern.Blink(time.Second, led.Red), "blink 1s", "#ff0000"},
		{"two colours", pattern.BreatheBetween(2500*time.Millisecond, led.Red, led.Blue), "breathe-between 2.5s", "#ff0000 #0000ff"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			top, bottom := displayLines(tc.effect)
			assert.Equal(t, tc.top, top)
			assert.Equal(t, tc.bottom, bottom)
		})
	}
}
