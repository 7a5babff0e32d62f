package panel

import (
	"strconv"
	"strings"
	"time"

	"preampcode-go/drivers/rc5"
	"preampcode-go/drivers/rotary"
)

// fakeDisplay keeps a character buffer so tests can assert row contents.
type fakeDisplay struct {
	cells     [4][20]byte
	col, row  int
	on        bool
	backlight bool
}

func newFakeDisplay() *fakeDisplay {
	d := &fakeDisplay{}
	d.clear()
	return d
}

func (d *fakeDisplay) clear() {
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
	d.col, d.row = 0, 0
}

func (d *fakeDisplay) ClearDisplay() error {
	d.clear()
	return nil
}

func (d *fakeDisplay) SetCursor(col, row int8) error {
	d.col, d.row = int(col), int(row)
	return nil
}

func (d *fakeDisplay) Print(data []byte) error {
	for _, b := range data {
		if d.row >= 0 && d.row < 4 && d.col >= 0 && d.col < 20 {
			d.cells[d.row][d.col] = b
		}
		d.col++
	}
	return nil
}

func (d *fakeDisplay) BacklightOn(on bool) error {
	d.backlight = on
	return nil
}

func (d *fakeDisplay) DisplayOn(on bool) error {
	d.on = on
	return nil
}

// Row returns a row's text with trailing spaces trimmed.
func (d *fakeDisplay) Row(r int) string {
	return strings.TrimRight(string(d.cells[r][:]), " ")
}

// fakeAtt models the attenuator: a level write clears a preceding mute.
type fakeAtt struct {
	level int16
	muted bool
	sets  int
	mutes int
}

func (a *fakeAtt) SetVolume(left, right int16) error {
	a.level = left
	a.muted = false
	a.sets++
	return nil
}

func (a *fakeAtt) Mute() error {
	a.muted = true
	a.mutes++
	return nil
}

// fakeLines records relay operations in order.
type fakeLines struct {
	enabled [5]bool
	ops     []string
}

func (l *fakeLines) Set(line uint8, enabled bool) error {
	if int(line) < len(l.enabled) {
		l.enabled[line] = enabled
	}
	op := strconv.Itoa(int(line))
	if enabled {
		op += "+"
	} else {
		op += "-"
	}
	l.ops = append(l.ops, op)
	return nil
}

// fakeStore is an in-memory byte store; unwritten cells read as 0xFF like a
// blank EEPROM.
type fakeStore struct {
	data    map[uint16]byte
	writes  int
	readErr error
}

func newFakeStore(seed map[uint16]byte) *fakeStore {
	s := &fakeStore{data: map[uint16]byte{}}
	for k, v := range seed {
		s.data[k] = v
	}
	return s
}

func (s *fakeStore) ReadByte(addr uint16) (byte, error) {
	if s.readErr != nil {
		return 0, s.readErr
	}
	if v, ok := s.data[addr]; ok {
		return v, nil
	}
	return 0xFF, nil
}

func (s *fakeStore) WriteByte(addr uint16, value byte) error {
	s.data[addr] = value
	s.writes++
	return nil
}

// fakeRotary pops one queued direction per Process call; button presses are
// consumed one per ButtonPressedReleased call.
type fakeRotary struct {
	dirs    []rotary.Direction
	presses int
}

func (f *fakeRotary) Process() rotary.Direction {
	if len(f.dirs) == 0 {
		return rotary.None
	}
	d := f.dirs[0]
	f.dirs = f.dirs[1:]
	return d
}

func (f *fakeRotary) ButtonPressedReleased(time.Duration) bool {
	if f.presses > 0 {
		f.presses--
		return true
	}
	return false
}

// fakeRemote pops one queued frame per poll.
type fakeRemote struct {
	frames []rc5.Frame
}

func (f *fakeRemote) Poll() (rc5.Frame, bool) {
	if len(f.frames) == 0 {
		return rc5.Frame{}, false
	}
	fr := f.frames[0]
	f.frames = f.frames[1:]
	return fr, true
}

func (f *fakeRemote) push(toggle, addr, cmd uint8) {
	f.frames = append(f.frames, rc5.Frame{Toggle: toggle, Addr: addr, Cmd: cmd})
}
