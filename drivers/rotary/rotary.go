// Package rotary decodes a detented quadrature encoder with an integrated
// push button. The decoder is a table-driven state machine that emits exactly
// one step per full quadrature cycle and rejects contact bounce and partial
// movements without any time-based debouncing on the rotation contacts.
//
// Pin reads are injected as closures so the same decoder runs against machine
// pins on hardware and plain fakes in tests. Both encoder contacts are
// expected to read high at a detent (common pin to ground, pull-ups on).
package rotary

import "time"

// Direction of one full detent step.
type Direction uint8

const (
	None Direction = iota
	Clockwise
	CounterClockwise
)

// Decoder states. The low nibble is the position in the quadrature cycle;
// flagCW/flagCCW mark a completed cycle on return to rest.
const (
	sRest uint8 = iota
	sCWBegin
	sCWMid
	sCWFinal
	sCCWBegin
	sCCWMid
	sCCWFinal

	flagCW  uint8 = 0x10
	flagCCW uint8 = 0x20
)

// transitions[state][input] where input = (levelA<<1)|levelB.
// Rest is input 3 (both high); a clockwise detent walks 3,1,0,2,3 and a
// counter-clockwise detent walks 3,2,0,1,3. Any out-of-order input falls
// back towards rest, which is what absorbs bounce.
var transitions = [7][4]uint8{
	sRest:     {sRest, sCWBegin, sCCWBegin, sRest},
	sCWBegin:  {sCWMid, sCWBegin, sRest, sRest},
	sCWMid:    {sCWMid, sCWBegin, sCWFinal, sRest},
	sCWFinal:  {sCWMid, sRest, sCWFinal, sRest | flagCW},
	sCCWBegin: {sCCWMid, sRest, sCCWBegin, sRest},
	sCCWMid:   {sCCWMid, sCCWFinal, sCCWBegin, sRest},
	sCCWFinal: {sCCWMid, sCCWFinal, sRest, sRest | flagCCW},
}

// Device is one encoder-plus-button unit.
type Device struct {
	readA   func() bool
	readB   func() bool
	readBtn func() bool // true = pressed (caller handles inversion)

	state uint8

	now        func() time.Time
	btnRaw     bool
	btnChanged time.Time
	btnStable  bool // a debounced press has been observed
}

// New creates a decoder over the given pin read closures.
func New(readA, readB, readBtn func() bool) *Device {
	return &Device{
		readA:   readA,
		readB:   readB,
		readBtn: readBtn,
		state:   sRest,
		now:     time.Now,
	}
}

// Process samples both contacts and advances the state machine.
// It returns a direction only on the sample that completes a full cycle.
func (d *Device) Process() Direction {
	var in uint8
	if d.readA() {
		in |= 2
	}
	if d.readB() {
		in |= 1
	}
	d.state = transitions[d.state&0x0F][in]
	switch d.state & 0x30 {
	case flagCW:
		return Clockwise
	case flagCCW:
		return CounterClockwise
	default:
		return None
	}
}

// ButtonPressedReleased reports one true per completed press-and-release,
// after both the press and the release have been stable for the debounce
// window. Intended to be called every control-cycle tick.
func (d *Device) ButtonPressedReleased(debounce time.Duration) bool {
	pressed := d.readBtn()
	now := d.now()
	if pressed != d.btnRaw {
		d.btnRaw = pressed
		d.btnChanged = now
		return false
	}
	if now.Sub(d.btnChanged) < debounce {
		return false
	}
	if pressed {
		d.btnStable = true
		return false
	}
	if d.btnStable {
		d.btnStable = false
		return true
	}
	return false
}
