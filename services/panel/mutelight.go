package panel

// Mute and backlight are deliberately coupled: standby kills the sound with
// the light, and waking either brings both back.

func (c *Controller) mute() {
	c.muted.Store(true)
	_ = c.att.Mute()
	c.paintMuted()
}

func (c *Controller) unmute() {
	if !c.backlight.Load() {
		c.backlight.Store(true)
		_ = c.disp.BacklightOn(true)
	}
	c.muted.Store(false)
	c.applyVolume()
	c.paintMuted()
}

func (c *Controller) toggleMute() {
	if c.muted.Load() {
		c.unmute()
	} else {
		c.mute()
	}
}

func (c *Controller) toggleBacklight() {
	if c.backlight.Load() {
		c.backlight.Store(false)
		_ = c.disp.BacklightOn(false)
		c.mute()
	} else {
		c.backlight.Store(true)
		_ = c.disp.BacklightOn(true)
		c.unmute()
	}
}
