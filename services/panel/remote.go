package panel

import "preampcode-go/drivers/rc5"

// RC-5 address/command assignments of the handset.
const (
	addrPreamp uint8 = 0x10 // preamplifier system address
	addrDisc   uint8 = 0x14 // CD player address, one key borrowed

	cmdSource1   uint8 = 1
	cmdSource2   uint8 = 8
	cmdSource3   uint8 = 7
	cmdSource4   uint8 = 3
	cmdMute      uint8 = 13
	cmdVolUp     uint8 = 16
	cmdVolDown   uint8 = 17
	cmdBacklight uint8 = 59

	cmdDiscPlay uint8 = 53 // mapped to source 3
)

// toggleNone marks "no frame seen yet", so the very first key press always
// counts as fresh whatever its toggle bit is.
const toggleNone uint16 = 0xFFFF

// handleRemote dispatches one decoded frame. Toggle-keyed commands act once
// per key press; the volume pair acts on every repeat frame so a held key
// ramps. Unknown addresses and commands are ignored. Remote commands never
// touch the run/select mode.
func (c *Controller) handleRemote(f rc5.Frame) {
	fresh := c.lastToggle == toggleNone || uint16(f.Toggle) != c.lastToggle
	c.lastToggle = uint16(f.Toggle)

	switch f.Addr {
	case addrPreamp:
		switch f.Cmd {
		case cmdSource1:
			if fresh {
				c.wakeSelect(1)
			}
		case cmdSource2:
			if fresh {
				c.wakeSelect(2)
			}
		case cmdSource3:
			if fresh {
				c.wakeSelect(3)
			}
		case cmdSource4:
			if fresh {
				c.wakeSelect(4)
			}
		case cmdMute:
			if fresh {
				c.toggleMute()
			}
		case cmdVolUp:
			c.remoteVolume(1)
		case cmdVolDown:
			c.remoteVolume(-1)
		case cmdBacklight:
			if fresh {
				c.toggleBacklight()
			}
		}
	case addrDisc:
		if f.Cmd == cmdDiscPlay && fresh {
			c.setSource(3)
		}
	}
}

// wakeSelect selects a source from the handset, waking a standby panel
// first so the change is audible and visible.
func (c *Controller) wakeSelect(n uint8) {
	if !c.backlight.Load() {
		c.unmute()
	}
	c.setSource(n)
}
