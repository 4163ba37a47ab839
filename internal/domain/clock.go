package domain

import "github.com/jonboulle/clockwork"

// clock stamps Render.GeneratedAt.
var clock = clockwork.NewRealClock()

// SetClock swaps the render time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
