// Package types holds the payload structs shared across services and the bus.
package types

// Mode is the control state of the front panel.
type Mode uint8

const (
	ModeRun Mode = iota // normal run state: rotary adjusts volume
	ModeSelect          // input select state: rotary cycles sources
	ModePoweredDown     // terminal state after a power-loss event
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeSelect:
		return "select"
	case ModePoweredDown:
		return "powered_down"
	default:
		return "unknown"
	}
}

// PanelState is the retained state document published on panel/state.
type PanelState struct {
	Mode      Mode
	Volume    int16 // attenuation level in quarter-dB steps, [-447, 0]
	Source    uint8 // active input line, 1..4
	Muted     bool
	Backlight bool // true = ACTIVE, false = STANDBY
	TSms      int64
}

// Settings is the persisted pair written on power loss and read at boot.
type Settings struct {
	Volume int16 // attenuation level, [-447, 0]
	Source uint8 // 1..4
}

// PanelConfig is the embedded per-device configuration published retained on
// config/panel. Zero fields leave the compiled-in defaults untouched.
type PanelConfig struct {
	PollIntervalMS  int
	SelectTimeoutMS int
	DebounceMS      int
	SplashMS        int
	SourceNames     [4]string
}
