package panel

import (
	"time"

	"preampcode-go/drivers/rc5"
	"preampcode-go/drivers/rotary"
)

// Display is the 20x4 character display behind the front glass.
// tinygo.org/x/drivers/hd44780i2c satisfies it directly.
type Display interface {
	ClearDisplay() error
	SetCursor(col, row int8) error
	Print(data []byte) error
	BacklightOn(on bool) error
	DisplayOn(on bool) error
}

// Attenuator is the stereo volume device. drivers/muses72323 satisfies it.
type Attenuator interface {
	// SetVolume sets both channel levels in quarter-dB, 0 down to -447.
	SetVolume(left, right int16) error
	// Mute silences both channels without losing the level registers.
	Mute() error
}

// SourceLines drives the input selection relays, one line per source 1..4.
type SourceLines interface {
	Set(line uint8, enabled bool) error
}

// Storage is byte-addressed durable storage for the persisted settings.
// tinygo.org/x/drivers/at24cx satisfies it.
type Storage interface {
	ReadByte(addr uint16) (byte, error)
	WriteByte(addr uint16, value byte) error
}

// RotaryInput is the polled encoder-plus-button unit. drivers/rotary
// satisfies it.
type RotaryInput interface {
	Process() rotary.Direction
	ButtonPressedReleased(debounce time.Duration) bool
}

// RemoteInput yields at most one decoded remote frame per poll.
// drivers/rc5 satisfies it.
type RemoteInput interface {
	Poll() (rc5.Frame, bool)
}

// Devices bundles everything the controller drives and reads.
type Devices struct {
	Display    Display
	Attenuator Attenuator
	Sources    SourceLines
	Storage    Storage
	Rotary     RotaryInput
	Remote     RemoteInput
}
