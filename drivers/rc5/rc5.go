// Package rc5 decodes the Philips RC-5 infra-red remote protocol from timed
// logic-level edges, as seen on the output of a demodulating IR receiver
// (idle high, carrier pulls the line low).
//
// A frame is 14 Manchester-encoded bits at 1.778 ms per bit: two start bits,
// one toggle bit, a 5-bit system address and a 6-bit command. The extended
// variant reuses the inverted second start bit as command bit 6.
//
// Feed edges from a pin interrupt:
//
//	dec.Edge(pin.Get(), time.Since(t0))
//
// and poll for complete frames from the control loop:
//
//	if f, ok := dec.Poll(); ok { ... }
//
// Edge never blocks and never allocates; the last complete frame is handed
// over through a lock-free mailbox, so a slow poller only ever loses older
// frames, never tears one.
package rc5

import (
	"time"

	"go.uber.org/atomic"
)

// Nominal RC-5 timing. A half bit is 889 µs; classification windows are
// half-open and generous to tolerate receiver jitter.
const (
	HalfBit = 889 * time.Microsecond

	shortMin = HalfBit / 2
	shortMax = HalfBit + HalfBit/2
	longMax  = 2*HalfBit + HalfBit/2
)

// Frame is one validated RC-5 frame.
type Frame struct {
	Toggle uint8 // flips on each fresh key press
	Addr   uint8 // 5-bit system address
	Cmd    uint8 // 6-bit command (7-bit for extended RC-5)
}

// Decoder states track the position within the Manchester bit cell.
const (
	stateIdle uint8 = iota
	stateMid1       // at the middle of a '1' cell, line just went low
	stateBound1     // at a cell boundary following a '1'
	stateMid0       // at the middle of a '0' cell, line just went high
	stateBound0     // at a cell boundary following a '0'
)

const mailFull = uint32(1) << 31

// Decoder is a single-frame RC-5 decoder. Edge is interrupt-context safe with
// respect to Poll; Edge itself must not be reentered.
type Decoder struct {
	state uint8
	bits  uint8
	raw   uint16
	last  time.Duration // timestamp of the previous edge

	mail atomic.Uint32
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Edge consumes one logic transition. level is the line level after the edge;
// t is a monotonic timestamp with at least microsecond resolution.
func (d *Decoder) Edge(level bool, t time.Duration) {
	if d.state == stateIdle {
		// A frame starts with the falling edge in the middle of the first
		// start bit; rising edges in idle are trailing noise.
		if !level {
			d.begin(t)
		}
		return
	}

	dur := t - d.last
	d.last = t

	var short bool
	switch {
	case dur >= shortMin && dur < shortMax:
		short = true
	case dur >= shortMax && dur < longMax:
		short = false
	default:
		// Gap outside both windows. A falling edge may start a new frame.
		d.reset()
		if !level {
			d.begin(t)
		}
		return
	}

	switch d.state {
	case stateMid1: // line low
		if level {
			if short {
				d.state = stateBound1
			} else {
				d.emit(0)
				d.state = stateMid0
			}
			return
		}
	case stateBound1: // line high
		if !level && short {
			d.emit(1)
			d.state = stateMid1
			return
		}
	case stateMid0: // line high
		if !level {
			if short {
				d.state = stateBound0
			} else {
				d.emit(1)
				d.state = stateMid1
			}
			return
		}
	case stateBound0: // line low
		if level && short {
			d.emit(0)
			d.state = stateMid0
			return
		}
	}

	d.reset()
	if !level {
		d.begin(t)
	}
}

// Poll returns the most recent complete frame, if any, consuming it.
func (d *Decoder) Poll() (Frame, bool) {
	v := d.mail.Swap(0)
	if v&mailFull == 0 {
		return Frame{}, false
	}
	raw := uint16(v)
	f := Frame{
		Toggle: uint8(raw>>11) & 1,
		Addr:   uint8(raw>>6) & 0x1F,
		Cmd:    uint8(raw) & 0x3F,
	}
	// Extended RC-5: inverted second start bit is command bit 6.
	if raw&(1<<12) == 0 {
		f.Cmd |= 0x40
	}
	return f, true
}

func (d *Decoder) begin(t time.Duration) {
	d.state = stateMid1
	d.raw = 1
	d.bits = 1
	d.last = t
}

func (d *Decoder) emit(bit uint16) {
	d.raw = d.raw<<1 | bit
	d.bits++
	if d.bits == 14 {
		d.mail.Store(mailFull | uint32(d.raw))
		d.reset()
	}
}

func (d *Decoder) reset() {
	d.state = stateIdle
	d.raw = 0
	d.bits = 0
}
