// Package muses72323 drives the NJR MUSES72323 two-channel resistor-ladder
// volume IC over SPI. Attenuation is set per channel in 0.25 dB steps from
// 0 dB down to -111.75 dB, plus a hard mute.
//
// The device latches 16-bit words, MSB first, while chip select is high:
// 9 data bits, a 3-bit register select and a 3-bit chip address.
package muses72323

import (
	"tinygo.org/x/drivers"
)

// Volume limits in quarter-dB. 0 is unity gain, -447 is -111.75 dB.
const (
	VolumeMax int16 = 0
	VolumeMin int16 = -447
)

// Register selects.
const (
	regAttL uint16 = 0x0
	regAttR uint16 = 0x1
	regGain uint16 = 0x2
	regCtl  uint16 = 0x4
)

// Control register bits.
const (
	ctlZeroCrossingOff uint16 = 1 << 8
	ctlExternalClock   uint16 = 1 << 7
)

// attenuation codes: 0 mutes the channel, 0x10 is 0 dB, each further
// step adds 0.25 dB of attenuation.
const (
	codeMute  uint16 = 0
	codeZeroA uint16 = 0x10
)

// Device wraps a MUSES72323 behind an SPI bus and a chip select line.
type Device struct {
	bus  drivers.SPI
	cs   func(high bool)
	chip uint16
	ctl  uint16
}

// Config holds device options applied by Configure.
type Config struct {
	// ZeroCrossing delays volume register loads until the signal crosses
	// zero, suppressing zipper noise.
	ZeroCrossing bool
	// ExternalClock selects the external clock pin over the internal
	// oscillator for the zero-crossing timeout.
	ExternalClock bool
}

// New creates a device handle for the given chip address (set by the
// ADR0/ADR1 pins, 0-3). The chip select closure drives the latch pin; the
// device clocks data in while it is high.
func New(bus drivers.SPI, chip uint8, cs func(high bool)) Device {
	return Device{
		bus:  bus,
		cs:   cs,
		chip: uint16(chip) & 0x7,
	}
}

// Configure writes the control register. Must be called before the first
// volume write; the device powers up muted.
func (d *Device) Configure(cfg Config) error {
	d.ctl = 0
	if !cfg.ZeroCrossing {
		d.ctl |= ctlZeroCrossingOff
	}
	if cfg.ExternalClock {
		d.ctl |= ctlExternalClock
	}
	return d.write(regCtl, d.ctl)
}

// SetVolume sets both channel attenuations in quarter-dB, 0 down to -447.
// Values outside the range are clamped.
func (d *Device) SetVolume(left, right int16) error {
	if err := d.write(regAttL, attCode(left)); err != nil {
		return err
	}
	return d.write(regAttR, attCode(right))
}

// Mute silences both channels without touching the stored volume.
func (d *Device) Mute() error {
	if err := d.write(regAttL, codeMute); err != nil {
		return err
	}
	return d.write(regAttR, codeMute)
}

func attCode(v int16) uint16 {
	if v > VolumeMax {
		v = VolumeMax
	}
	if v < VolumeMin {
		v = VolumeMin
	}
	return codeZeroA + uint16(-v)
}

func (d *Device) write(sel, data uint16) error {
	word := data<<7 | sel<<4 | d.chip
	buf := [2]byte{byte(word >> 8), byte(word)}
	d.cs(true)
	err := d.bus.Tx(buf[:], nil)
	d.cs(false)
	return err
}
