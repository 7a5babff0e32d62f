package panel

import "preampcode-go/x/conv"

// 20x4 layout: row 0 source name, row 1 mute indicator, row 2 the raw level
// in quarter-dB, row 3 the same level as dB. Labels are painted once; value
// fields are repainted in place and padded to cover stale characters.

var (
	lblVol    = []byte("Vol: ")
	lblAtt    = []byte("Att: ")
	lblMuted  = []byte("Muted ")
	lblBlank6 = []byte("      ")
	lblDB     = []byte("dB")
	lblSplash = []byte("SW ver ")
	spaces    = []byte("        ")
)

const (
	rowSource int8 = 0
	rowMuted  int8 = 1
	rowVol    int8 = 2
	rowAtt    int8 = 3
	colValue  int8 = 5
)

func (c *Controller) splash() {
	_ = c.disp.DisplayOn(true)
	_ = c.disp.BacklightOn(true)
	_ = c.disp.ClearDisplay()
	_ = c.disp.SetCursor(0, 1)
	buf := append(c.scratch[:0], lblSplash...)
	buf = append(buf, c.cfg.Version...)
	_ = c.disp.Print(buf)
}

func (c *Controller) paintMain() error {
	if err := c.disp.ClearDisplay(); err != nil {
		return err
	}
	_ = c.disp.SetCursor(0, rowVol)
	_ = c.disp.Print(lblVol)
	_ = c.disp.SetCursor(0, rowAtt)
	_ = c.disp.Print(lblAtt)
	c.paintSource()
	c.paintMuted()
	c.paintVolume()
	return nil
}

func (c *Controller) paintSource() {
	name := c.cfg.SourceNames[uint8(c.source.Load())-1]
	buf := append(c.scratch[:0], name...)
	_ = c.disp.SetCursor(0, rowSource)
	c.printPadded(buf, 6)
}

func (c *Controller) paintMuted() {
	_ = c.disp.SetCursor(0, rowMuted)
	if c.muted.Load() {
		_ = c.disp.Print(lblMuted)
	} else {
		_ = c.disp.Print(lblBlank6)
	}
}

func (c *Controller) paintVolume() {
	v := int64(c.volume.Load())

	_ = c.disp.SetCursor(colValue, rowVol)
	c.printPadded(conv.Itoa(c.scratch[:], v), 4)

	_ = c.disp.SetCursor(colValue, rowAtt)
	val := conv.Quarters(c.scratch[:], v)
	_ = c.disp.Print(val)
	c.printPadded(lblDB, 9-len(val))
}

// printPadded writes a value field and pads it with spaces to a fixed width
// so shorter values cover what was there before.
func (c *Controller) printPadded(val []byte, width int) {
	_ = c.disp.Print(val)
	if n := width - len(val); n > 0 && n <= len(spaces) {
		_ = c.disp.Print(spaces[:n])
	}
}
