package rc5

import (
	"testing"
	"time"
)

// feedFrame replays the edge stream of one RC-5 frame starting at t0 and
// returns the timestamp of the last edge. jitter is added to every period.
func feedFrame(d *Decoder, raw uint16, t0, jitter time.Duration) time.Duration {
	t := t0
	d.Edge(false, t) // falling edge at the middle of the first start bit
	prev := uint16(1)
	level := false // line level after the mid-bit edge of a '1'
	for i := 12; i >= 0; i-- {
		bit := (raw >> uint(i)) & 1
		if bit == prev {
			// Equal neighbours: an edge at the cell boundary, then the mid-bit edge.
			t += HalfBit + jitter
			level = !level
			d.Edge(level, t)
			t += HalfBit + jitter
			level = !level
			d.Edge(level, t)
		} else {
			// Differing neighbours: a single long period to the next mid-bit edge.
			t += 2*HalfBit + jitter
			level = bit == 0
			d.Edge(level, t)
		}
		prev = bit
	}
	return t
}

func rawFrame(toggle, addr, cmd uint8) uint16 {
	return 1<<13 | 1<<12 | uint16(toggle&1)<<11 | uint16(addr&0x1F)<<6 | uint16(cmd&0x3F)
}

func TestDecode_VolumeUp(t *testing.T) {
	d := NewDecoder()
	feedFrame(d, rawFrame(1, 0x10, 16), 0, 0)

	f, ok := d.Poll()
	if !ok {
		t.Fatal("no frame decoded")
	}
	if f.Toggle != 1 || f.Addr != 0x10 || f.Cmd != 16 {
		t.Fatalf("got %+v, want toggle=1 addr=0x10 cmd=16", f)
	}
	if _, again := d.Poll(); again {
		t.Fatal("frame not consumed by Poll")
	}
}

func TestDecode_AllZeroCommand(t *testing.T) {
	d := NewDecoder()
	feedFrame(d, rawFrame(0, 0, 0), 0, 0)

	f, ok := d.Poll()
	if !ok {
		t.Fatal("no frame decoded")
	}
	if f.Toggle != 0 || f.Addr != 0 || f.Cmd != 0 {
		t.Fatalf("got %+v, want zero frame", f)
	}
}

func TestDecode_ExtendedCommand(t *testing.T) {
	// Clearing the second start bit sets command bit 6 (extended RC-5).
	raw := rawFrame(0, 0x14, 53) &^ (1 << 12)
	d := NewDecoder()
	feedFrame(d, raw, 0, 0)

	f, ok := d.Poll()
	if !ok {
		t.Fatal("no frame decoded")
	}
	if f.Cmd != 53|0x40 {
		t.Fatalf("cmd = %d, want %d", f.Cmd, 53|0x40)
	}
}

func TestDecode_ToleratesJitter(t *testing.T) {
	for _, jitter := range []time.Duration{-120 * time.Microsecond, 120 * time.Microsecond} {
		d := NewDecoder()
		feedFrame(d, rawFrame(1, 0x10, 13), 0, jitter)
		if _, ok := d.Poll(); !ok {
			t.Fatalf("frame lost with jitter %v", jitter)
		}
	}
}

func TestDecode_TruncatedFrameIsDiscarded(t *testing.T) {
	d := NewDecoder()
	// Feed only the start of a frame, then silence past the frame gap.
	d.Edge(false, 0)
	d.Edge(true, HalfBit)
	d.Edge(false, 2*HalfBit)

	if _, ok := d.Poll(); ok {
		t.Fatal("truncated frame produced output")
	}

	// A fresh frame after the gap still decodes.
	end := feedFrame(d, rawFrame(0, 0x10, 59), 50*time.Millisecond, 0)
	f, ok := d.Poll()
	if !ok {
		t.Fatal("no frame decoded after recovery")
	}
	if f.Cmd != 59 {
		t.Fatalf("cmd = %d, want 59", f.Cmd)
	}
	_ = end
}

func TestDecode_BackToBackFrames(t *testing.T) {
	d := NewDecoder()
	end := feedFrame(d, rawFrame(0, 0x10, 16), 0, 0)
	// Repeat of a held key follows after the inter-frame gap (~50 bit times).
	feedFrame(d, rawFrame(0, 0x10, 16), end+89*time.Millisecond, 0)

	f, ok := d.Poll()
	if !ok {
		t.Fatal("no frame decoded")
	}
	if f.Cmd != 16 || f.Toggle != 0 {
		t.Fatalf("got %+v", f)
	}
}
