package main

import (
	"fmt"

	"github.com/callebjorkell/rgbled/internal/lcd"
	"github.com/callebjorkell/rgbled/internal/pattern"
	log "github.com/sirupsen/logrus"
)

// player hands patterns to the executor and mirrors them on the display, when there is one.
type player struct {
	x       *pattern.Executor
	display *lcd.Display
}

func (p *player) SetPattern(e pattern.Effect) error {
	if err := p.x.SetPattern(e); err != nil {
		return err
	}
	log.Infof("Playing %v", e)
	p.show(e)
	return nil
}

func (p *player) Status() pattern.Status {
	return p.x.Status()
}

func (p *player) show(e pattern.Effect) {
	if p.display == nil {
		return
	}
	top, bottom := displayLines(e)
	if err := p.display.PrintLine(lcd.Line1, top); err != nil {
		log.Warnf("Unable to update display: %v", err)
		return
	}
	if err := p.display.PrintLine(lcd.Line2, bottom); err != nil {
		log.Warnf("Unable to update display: %v", err)
	}
}

// displayLines fits an effect onto the two 16 character lines of the display.
func displayLines(e pattern.Effect) (string, string) {
	top := e.Kind().String()
	if !e.Static() {
		top = fmt.Sprintf("%s %v", top, e.Duration())
	}
	switch e.Kind() {
	case pattern.KindBlinkBetween, pattern.KindBreatheBetween:
		return top, fmt.Sprintf("%v %v", e.Colour(), e.Secondary())
	}
	return top, e.Colour().String()
}
