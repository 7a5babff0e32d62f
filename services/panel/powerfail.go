package panel

import "preampcode-go/types"

// PowerFail is the power-loss persistence handler. Call it the moment the
// supply monitor detects the rail dropping; the reservoir capacitors hold
// the logic up for the few milliseconds the writes need.
//
// Safe from any goroutine or interrupt context, any number of times: the
// first call wins and every later call returns immediately. It runs to
// completion without blocking, locking or allocating, in fixed order:
// persist the settings first, then quiesce the outputs, then mark the
// terminal mode.
func (c *Controller) PowerFail() {
	if !c.failed.CompareAndSwap(false, true) {
		return
	}

	c.saveSettings()

	_ = c.disp.BacklightOn(false)
	_ = c.disp.DisplayOn(false)
	_ = c.att.Mute()

	c.backlight.Store(false)
	c.muted.Store(true)
	c.mode.Store(int32(types.ModePoweredDown))
}
