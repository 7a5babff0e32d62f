package monitor

import (
	"context"
	"strings"
	"testing"
	"time"

	"preampcode-go/bus"
	"preampcode-go/types"
)

func TestRun_ReportsTransitions(t *testing.T) {
	b := bus.NewBus(8)
	s := New(b.NewConnection("monitor"), time.Hour)

	lines := make(chan string, 8)
	s.emit = func(line string) { lines <- line }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx)
		close(done)
	}()

	panel := b.NewConnection("panel")
	// Give Run a moment to subscribe; the state is not retained here.
	time.Sleep(20 * time.Millisecond)
	panel.Publish(panel.NewMessage(bus.T("panel", "state"), types.PanelState{
		Mode: types.ModeRun, Volume: -100, Source: 2, Backlight: true,
	}, true))

	select {
	case line := <-lines:
		for _, want := range []string{"mode=run", "vol=-100", "src=2", "muted=false", "light=true"} {
			if !strings.Contains(line, want) {
				t.Fatalf("line %q missing %q", line, want)
			}
		}
	case <-time.After(time.Second):
		t.Fatal("no transition line")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}

func TestFormatState(t *testing.T) {
	line := formatState(types.PanelState{
		Mode: types.ModeSelect, Volume: -447, Source: 4, Muted: true,
	})
	want := "panel mode=select vol=-447 src=4 muted=true light=false"
	if line != want {
		t.Fatalf("got %q, want %q", line, want)
	}
}
