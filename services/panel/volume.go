package panel

import (
	"preampcode-go/drivers/muses72323"
	"preampcode-go/x/mathx"
)

// rotaryVolume steps the level by delta quarter-dB, saturating at the range
// ends. A step that actually moves the level also unmutes; a step against a
// bound is a complete no-op, so turning further at the stop changes nothing.
func (c *Controller) rotaryVolume(delta int16) {
	v := int16(c.volume.Load())
	nv := mathx.Clamp(v+delta, muses72323.VolumeMin, muses72323.VolumeMax)
	if nv == v {
		return
	}
	c.volume.Store(int32(nv))
	if c.muted.Load() {
		c.unmute()
	} else {
		c.applyVolume()
	}
	c.paintVolume()
}

// remoteVolume is the remote's ramp step. Unlike the encoder it unmutes
// before the bounds check, so a held volume key on a muted panel unmutes
// even when the level cannot move.
func (c *Controller) remoteVolume(delta int16) {
	if c.muted.Load() {
		c.unmute()
	}
	v := int16(c.volume.Load())
	nv := mathx.Clamp(v+delta, muses72323.VolumeMin, muses72323.VolumeMax)
	if nv == v {
		return
	}
	c.volume.Store(int32(nv))
	c.applyVolume()
	c.paintVolume()
}

// applyVolume pushes the current level to both channels. Push failures leave
// the panel state authoritative; the next step retries.
func (c *Controller) applyVolume() {
	v := int16(c.volume.Load())
	_ = c.att.SetVolume(v, v)
}
