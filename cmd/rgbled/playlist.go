package main

import (
	"sync"

	"github.com/callebjorkell/rgbled/internal/pattern"
)

// playlist steps through the configured effects, one step per button press. The config watcher replaces it.
type playlist struct {
	mu      sync.Mutex
	effects []pattern.Effect
	pos     int
}

func newPlaylist(effects []pattern.Effect) *playlist {
	return &playlist{effects: effects}
}

func (p *playlist) Current() pattern.Effect {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.effects) == 0 {
		return pattern.Off
	}
	return p.effects[p.pos]
}

// Next moves on to the following effect, wrapping around at the end.
func (p *playlist) Next() pattern.Effect {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.effects) == 0 {
		return pattern.Off
	}
	p.pos = (p.pos + 1) % len(p.effects)
	return p.effects[p.pos]
}

// Replace swaps in new effects and starts over from the first one.
func (p *playlist) Replace(effects []pattern.Effect) pattern.Effect {
	p.mu.Lock()
	p.effects = effects
	p.pos = 0
	p.mu.Unlock()
	return p.Current()
}
