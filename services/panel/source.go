package panel

const (
	sourceFirst uint8 = 1
	sourceLast  uint8 = 4
)

func (c *Controller) sourceNext() {
	s := uint8(c.source.Load())
	if s >= sourceLast {
		s = sourceFirst
	} else {
		s++
	}
	c.setSource(s)
}

func (c *Controller) sourcePrev() {
	s := uint8(c.source.Load())
	if s <= sourceFirst {
		s = sourceLast
	} else {
		s--
	}
	c.setSource(s)
}

// setSource switches the input relays, old line off before the new line on
// so two sources are never bridged. Selecting the active source again or an
// out-of-range index is a no-op.
func (c *Controller) setSource(n uint8) {
	old := uint8(c.source.Load())
	if n == old || n < sourceFirst || n > sourceLast {
		return
	}
	_ = c.lines.Set(old, false)
	_ = c.lines.Set(n, true)
	c.source.Store(int32(n))
	c.paintSource()
}
