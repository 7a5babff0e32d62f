// Package panel implements the front-panel controller: a single control-cycle
// goroutine that polls the inputs, walks the run/select mode machine, drives
// the attenuator, source relays and display, and persists the listening state
// on power loss.
//
// The controller owns all mutable state. Everything except PowerFail and
// State must be called from the control goroutine; those two are safe from
// any goroutine, including interrupt-context callers on hardware.
package panel

import (
	"context"
	"time"

	"go.uber.org/atomic"

	"preampcode-go/bus"
	"preampcode-go/errcode"
	"preampcode-go/types"
	"preampcode-go/x/timex"
)

// Compiled-in defaults, overridable per device through config/panel.
const (
	DefaultPollInterval  = 2 * time.Millisecond
	DefaultSelectTimeout = 5 * time.Second
	DefaultDebounce      = 20 * time.Millisecond
	DefaultSplash        = 2 * time.Second
	DefaultVersion       = "2.03"
)

// DefaultSourceNames matches the four-line relay input board.
var DefaultSourceNames = [4]string{"Phono ", "Media ", "CD    ", "Tuner "}

// Config carries the controller timing and labels.
type Config struct {
	PollInterval  time.Duration
	SelectTimeout time.Duration
	Debounce      time.Duration
	Splash        time.Duration
	SourceNames   [4]string
	Version       string
}

func (c *Config) applyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.SelectTimeout <= 0 {
		c.SelectTimeout = DefaultSelectTimeout
	}
	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
	if c.Splash <= 0 {
		c.Splash = DefaultSplash
	}
	for i, n := range c.SourceNames {
		if n == "" {
			c.SourceNames[i] = DefaultSourceNames[i]
		}
	}
	if c.Version == "" {
		c.Version = DefaultVersion
	}
}

var topicState = bus.T("panel", "state")
var topicConfig = bus.T("config", "panel")

// Controller is the front-panel control state machine.
type Controller struct {
	cfg Config

	disp  Display
	att   Attenuator
	lines SourceLines
	store Storage
	rot   RotaryInput
	rem   RemoteInput

	conn *bus.Connection

	// Shared snapshot fields, readable from any goroutine.
	mode      atomic.Int32
	volume    atomic.Int32 // quarter-dB, [-447, 0]
	source    atomic.Int32 // 1..4
	muted     atomic.Bool
	backlight atomic.Bool
	failed    atomic.Bool

	// Control-goroutine state.
	lastToggle uint16
	selectLast time.Time
	lastPub    types.PanelState
	published  bool
	scratch    [24]byte

	sleep func(time.Duration)
}

// New wires a controller over its devices. Call Boot before Run.
func New(cfg Config, d Devices) *Controller {
	cfg.applyDefaults()
	c := &Controller{
		cfg:        cfg,
		disp:       d.Display,
		att:        d.Attenuator,
		lines:      d.Sources,
		store:      d.Storage,
		rot:        d.Rotary,
		rem:        d.Remote,
		lastToggle: toggleNone,
		sleep:      time.Sleep,
	}
	return c
}

// AttachBus enables retained panel/state publication and config/panel
// subscription on Run. Optional; the controller runs standalone without it.
func (c *Controller) AttachBus(conn *bus.Connection) { c.conn = conn }

// Boot brings the panel to its initial run state: splash screen, persisted
// settings, attenuator level, source relay and backlight.
func (c *Controller) Boot() error {
	c.splash()
	c.sleep(c.cfg.Splash)

	s := c.loadSettings()
	c.volume.Store(int32(s.Volume))
	c.source.Store(int32(s.Source))
	c.muted.Store(false)
	c.backlight.Store(true)
	c.mode.Store(int32(types.ModeRun))

	_ = c.att.Mute()
	if err := c.lines.Set(s.Source, true); err != nil {
		return &errcode.E{C: errcode.Error, Op: "panel.boot", Msg: "source relay", Err: err}
	}
	c.applyVolume()
	if err := c.paintMain(); err != nil {
		return &errcode.E{C: errcode.DisplayFault, Op: "panel.boot", Err: err}
	}
	return nil
}

// Run drives the control cycle until the context ends.
func (c *Controller) Run(ctx context.Context) error {
	var cfgCh <-chan *bus.Message
	if c.conn != nil {
		sub := c.conn.Subscribe(topicConfig)
		defer sub.Unsubscribe()
		cfgCh = sub.Channel()
	}

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			c.Step(now)
		case m := <-cfgCh:
			if pc, ok := m.Payload.(types.PanelConfig); ok {
				if c.applyConfig(pc) {
					ticker.Reset(c.cfg.PollInterval)
				}
			}
		}
	}
}

// Step runs one control cycle: poll, dispatch, mode timeout, state publish.
// It is a no-op once the panel has powered down.
func (c *Controller) Step(now time.Time) {
	if c.Mode() == types.ModePoweredDown {
		return
	}

	switch ev := c.pollInput(); ev.Kind {
	case EventRotaryCW:
		if c.Mode() == types.ModeSelect {
			c.sourceNext()
			c.selectLast = now
		} else {
			c.rotaryVolume(1)
		}
	case EventRotaryCCW:
		if c.Mode() == types.ModeSelect {
			c.sourcePrev()
			c.selectLast = now
		} else {
			c.rotaryVolume(-1)
		}
	case EventButton:
		if c.Mode() == types.ModeRun {
			c.mode.Store(int32(types.ModeSelect))
			c.selectLast = now
		}
	case EventRemote:
		c.handleRemote(ev.Frame)
	}

	if c.Mode() == types.ModeSelect && now.Sub(c.selectLast) > c.cfg.SelectTimeout {
		c.mode.Store(int32(types.ModeRun))
	}

	c.publishState()
}

// Mode returns the current control mode.
func (c *Controller) Mode() types.Mode { return types.Mode(c.mode.Load()) }

// State snapshots the externally visible panel state. Safe from any
// goroutine.
func (c *Controller) State() types.PanelState {
	return types.PanelState{
		Mode:      c.Mode(),
		Volume:    int16(c.volume.Load()),
		Source:    uint8(c.source.Load()),
		Muted:     c.muted.Load(),
		Backlight: c.backlight.Load(),
	}
}

func (c *Controller) publishState() {
	if c.conn == nil {
		return
	}
	st := c.State()
	if c.published && st == c.lastPub {
		return
	}
	c.lastPub = st
	c.published = true
	st.TSms = timex.NowMs()
	c.conn.Publish(c.conn.NewMessage(topicState, st, true))
}

// applyConfig folds non-zero override fields into the running config and
// reports whether the poll interval changed.
func (c *Controller) applyConfig(pc types.PanelConfig) bool {
	resetTicker := false
	if pc.PollIntervalMS > 0 {
		c.cfg.PollInterval = time.Duration(pc.PollIntervalMS) * time.Millisecond
		resetTicker = true
	}
	if pc.SelectTimeoutMS > 0 {
		c.cfg.SelectTimeout = time.Duration(pc.SelectTimeoutMS) * time.Millisecond
	}
	if pc.DebounceMS > 0 {
		c.cfg.Debounce = time.Duration(pc.DebounceMS) * time.Millisecond
	}
	names := false
	for i, n := range pc.SourceNames {
		if n != "" {
			c.cfg.SourceNames[i] = n
			names = true
		}
	}
	if names {
		c.paintSource()
	}
	return resetTicker
}
