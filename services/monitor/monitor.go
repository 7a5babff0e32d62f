// Package monitor tails the retained panel state and writes transitions and
// a periodic heartbeat to the debug console. It is a pure observer; nothing
// reads its output programmatically.
package monitor

import (
	"context"
	"time"

	"preampcode-go/bus"
	"preampcode-go/types"
	"preampcode-go/x/conv"
)

const DefaultInterval = 10 * time.Second

var topicState = bus.T("panel", "state")

type Service struct {
	conn     *bus.Connection
	interval time.Duration

	emit func(line string)

	changes int
	started time.Time
}

func New(conn *bus.Connection, interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		conn:     conn,
		interval: interval,
		emit:     func(line string) { println(line) },
	}
}

// Run observes until the context ends.
func (s *Service) Run(ctx context.Context) error {
	s.started = time.Now()

	sub := s.conn.Subscribe(topicState)
	defer sub.Unsubscribe()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-sub.Channel():
			if st, ok := m.Payload.(types.PanelState); ok {
				s.changes++
				s.emit(formatState(st))
			}
		case <-ticker.C:
			s.emit(s.heartbeat())
		}
	}
}

func formatState(st types.PanelState) string {
	var buf [64]byte
	b := append(buf[:0], "panel mode="...)
	b = append(b, st.Mode.String()...)
	b = append(b, " vol="...)
	b = append(b, conv.Itoa(make([]byte, 8), int64(st.Volume))...)
	b = append(b, " src="...)
	b = append(b, conv.Itoa(make([]byte, 4), int64(st.Source))...)
	b = append(b, " muted="...)
	b = appendBool(b, st.Muted)
	b = append(b, " light="...)
	b = appendBool(b, st.Backlight)
	return string(b)
}

func (s *Service) heartbeat() string {
	var buf [48]byte
	b := append(buf[:0], "monitor alive uptime_s="...)
	b = append(b, conv.Itoa(make([]byte, 12), int64(time.Since(s.started)/time.Second))...)
	b = append(b, " changes="...)
	b = append(b, conv.Itoa(make([]byte, 8), int64(s.changes))...)
	return string(b)
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, "true"...)
	}
	return append(b, "false"...)
}
