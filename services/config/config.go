// Package config distributes per-device configuration over the bus. The
// tables are compiled in; the service publishes the selected device's panel
// config retained on config/panel, so the controller picks it up whether it
// subscribes before or after this service starts, and answers config/get
// requests for late one-shot readers.
package config

import (
	"context"

	"preampcode-go/bus"
	"preampcode-go/errcode"
	"preampcode-go/types"
)

// DefaultDevice selects the stock build.
const DefaultDevice = "elektor"

var devices = map[string]types.PanelConfig{
	// The stock Elektor build runs on compiled-in defaults.
	"elektor": {},

	// Bench build: slow everything down so signals are observable.
	"bench": {
		PollIntervalMS:  20,
		SelectTimeoutMS: 10000,
		SourceNames:     [4]string{"In 1  ", "In 2  ", "In 3  ", "In 4  "},
	},
}

var (
	topicPanel = bus.T("config", "panel")
	topicGet   = bus.T("config", "get")
)

type Service struct {
	conn   *bus.Connection
	device string
}

// New creates the service for one device profile. An unknown name falls
// back to the default profile.
func New(conn *bus.Connection, device string) *Service {
	if _, ok := devices[device]; !ok {
		device = DefaultDevice
	}
	return &Service{conn: conn, device: device}
}

// Publish pushes the device's panel config retained onto the bus.
func (s *Service) Publish() {
	s.conn.Publish(s.conn.NewMessage(topicPanel, devices[s.device], true))
}

// Run publishes the retained config and then serves config/get requests
// until the context ends.
func (s *Service) Run(ctx context.Context) error {
	s.Publish()

	sub := s.conn.Subscribe(topicGet)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m := <-sub.Channel():
			if !m.CanReply() {
				continue
			}
			name, ok := m.Payload.(string)
			if !ok {
				name = s.device
			}
			cfg, found := devices[name]
			if !found {
				s.conn.Reply(m, errcode.UnknownSource, false)
				continue
			}
			s.conn.Reply(m, cfg, false)
		}
	}
}
