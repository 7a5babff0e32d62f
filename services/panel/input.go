package panel

import (
	"preampcode-go/drivers/rc5"
	"preampcode-go/drivers/rotary"
)

// EventKind classifies the at-most-one input event of a control cycle.
type EventKind uint8

const (
	EventNone EventKind = iota
	EventRotaryCW
	EventRotaryCCW
	EventButton
	EventRemote
)

// Event is one normalized input occurrence. Frame is set for EventRemote.
type Event struct {
	Kind  EventKind
	Frame rc5.Frame
}

// pollInput yields zero or one event per tick. The remote is drained first,
// then the encoder; the button is only sampled on ticks without a rotation,
// so a turn-while-pressing never double-fires.
func (c *Controller) pollInput() Event {
	if f, ok := c.rem.Poll(); ok {
		return Event{Kind: EventRemote, Frame: f}
	}
	switch c.rot.Process() {
	case rotary.Clockwise:
		return Event{Kind: EventRotaryCW}
	case rotary.CounterClockwise:
		return Event{Kind: EventRotaryCCW}
	}
	if c.rot.ButtonPressedReleased(c.cfg.Debounce) {
		return Event{Kind: EventButton}
	}
	return Event{Kind: EventNone}
}
