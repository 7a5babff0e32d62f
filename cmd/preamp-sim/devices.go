package main

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"preampcode-go/drivers/rc5"
	"preampcode-go/drivers/rotary"
)

// simDisplay is the 20x4 panel rendered on demand.
type simDisplay struct {
	mu        sync.Mutex
	cells     [4][20]byte
	col, row  int
	on        bool
	backlight bool
}

func newSimDisplay() *simDisplay {
	d := &simDisplay{}
	d.blank()
	return d
}

func (d *simDisplay) blank() {
	for r := range d.cells {
		for c := range d.cells[r] {
			d.cells[r][c] = ' '
		}
	}
	d.col, d.row = 0, 0
}

func (d *simDisplay) ClearDisplay() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.blank()
	return nil
}

func (d *simDisplay) SetCursor(col, row int8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.col, d.row = int(col), int(row)
	return nil
}

func (d *simDisplay) Print(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range data {
		if d.row >= 0 && d.row < 4 && d.col >= 0 && d.col < 20 {
			d.cells[d.row][d.col] = b
		}
		d.col++
	}
	return nil
}

func (d *simDisplay) BacklightOn(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.backlight = on
	return nil
}

func (d *simDisplay) DisplayOn(on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = on
	return nil
}

// Render draws the glass as ASCII art.
func (d *simDisplay) Render() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	b.WriteString("+--------------------+")
	if !d.on {
		b.WriteString("  (display off)")
	} else if !d.backlight {
		b.WriteString("  (backlight off)")
	}
	b.WriteByte('\n')
	for r := range d.cells {
		b.WriteByte('|')
		b.Write(d.cells[r][:])
		b.WriteString("|\n")
	}
	b.WriteString("+--------------------+")
	return b.String()
}

// simAtt logs attenuator writes.
type simAtt struct {
	log zerolog.Logger
}

func (a *simAtt) SetVolume(left, right int16) error {
	a.log.Debug().Int16("left", left).Int16("right", right).Msg("attenuator set")
	return nil
}

func (a *simAtt) Mute() error {
	a.log.Debug().Msg("attenuator mute")
	return nil
}

// simLines logs relay switching.
type simLines struct {
	log zerolog.Logger
}

func (l *simLines) Set(line uint8, enabled bool) error {
	l.log.Debug().Uint8("line", line).Bool("enabled", enabled).Msg("source relay")
	return nil
}

// simStore is a file-backed byte store, write-through on every byte so a
// simulated power loss leaves the image behind exactly like the real part.
type simStore struct {
	mu   sync.Mutex
	path string
	data [16]byte
	log  zerolog.Logger
}

func newSimStore(path string, log zerolog.Logger) *simStore {
	s := &simStore{path: path, log: log}
	for i := range s.data {
		s.data[i] = 0xFF // blank EEPROM
	}
	if img, err := os.ReadFile(path); err == nil {
		copy(s.data[:], img)
	}
	return s
}

func (s *simStore) ReadByte(addr uint16) (byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(addr) >= len(s.data) {
		return 0, os.ErrInvalid
	}
	return s.data[addr], nil
}

func (s *simStore) WriteByte(addr uint16, value byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(addr) >= len(s.data) {
		return os.ErrInvalid
	}
	s.data[addr] = value
	if err := os.WriteFile(s.path, s.data[:], 0o644); err != nil {
		s.log.Warn().Err(err).Msg("eeprom image write failed")
		return err
	}
	return nil
}

// simInput feeds the controller's rotary and remote polls from the console
// goroutine through locked queues.
type simInput struct {
	mu      sync.Mutex
	dirs    []rotary.Direction
	presses int
	frames  []rc5.Frame
}

func (s *simInput) Process() rotary.Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.dirs) == 0 {
		return rotary.None
	}
	d := s.dirs[0]
	s.dirs = s.dirs[1:]
	return d
}

func (s *simInput) ButtonPressedReleased(time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.presses > 0 {
		s.presses--
		return true
	}
	return false
}

func (s *simInput) Poll() (rc5.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.frames) == 0 {
		return rc5.Frame{}, false
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, true
}

func (s *simInput) turn(d rotary.Direction, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.dirs = append(s.dirs, d)
	}
}

func (s *simInput) press() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presses++
}

func (s *simInput) send(f rc5.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, f)
}
