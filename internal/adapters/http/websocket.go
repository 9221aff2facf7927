package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/clustermap/internal/adapters/nats"
	"github.com/samirrijal/clustermap/internal/pkg/metrics"
)

// wsMessage is sent from client to subscribe/unsubscribe to channels.
type wsMessage struct {
	Action  string `json:"action"`  // "subscribe" | "unsubscribe"
	Channel string `json:"channel"` // "all" | "markers" | "camera" | "clear" (default: all)
}

// wsEvent is relayed to clients for every map event.
type wsEvent struct {
	Event   string          `json:"event"`
	Subject string          `json:"subject"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// ChannelSubject maps a client channel name to its NATS subject.
func ChannelSubject(channel string) (string, bool) {
	switch channel {
	case "", "all":
		return natsadapter.SubjectAll, true
	case "markers":
		return natsadapter.SubjectMarkerPrefix + ">", true
	case "camera":
		return natsadapter.SubjectCamera, true
	case "clear":
		return natsadapter.SubjectClear, true
	default:
		return "", false
	}
}

// ResolveSubscribe reports which active subjects a subscribe to subject
// replaces and whether a new subscription is needed. The all-events
// subject overlaps every other one, so the two never stay active together
// and no event is relayed twice.
func ResolveSubscribe(active []string, subject string) (drop []string, add bool) {
	for _, a := range active {
		if a == subject {
			return nil, false
		}
	}
	for _, a := range active {
		if subject == natsadapter.SubjectAll || a == natsadapter.SubjectAll {
			drop = append(drop, a)
		}
	}
	return drop, true
}

// WebSocketHandler returns a handler that relays map events from NATS to
// connected clients. Every client starts subscribed to all map events and
// may narrow or widen with {"action":"subscribe","channel":"markers"}.
// Narrow channels may be combined; choosing "all" replaces them.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		logger := slog.Default().With("remote", remoteAddr)
		logger.Info("ws client connected")
		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription) // subject -> subscription

		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		relay := func(msg *nats.Msg) {
			ev := wsEvent{Event: natsadapter.EventKind(msg.Subject), Subject: msg.Subject}
			if len(msg.Data) > 0 {
				ev.Data = msg.Data
			}
			_ = writeJSON(ev)
		}

		subscribe := func(subject string) error {
			if nc == nil {
				return nats.ErrConnectionClosed
			}
			s, err := nc.Subscribe(subject, relay)
			if err != nil {
				return err
			}
			subs[subject] = s
			return nil
		}

		if err := subscribe(natsadapter.SubjectAll); err != nil {
			logger.Warn("ws default subscribe failed", "error", err)
			_ = writeJSON(map[string]string{"error": "events unavailable"})
			return
		}

		// Keep-alive ping
		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			subject, ok := ChannelSubject(m.Channel)
			if !ok {
				_ = writeJSON(map[string]string{"error": "unknown channel: " + m.Channel})
				continue
			}

			switch m.Action {
			case "subscribe":
				active := make([]string, 0, len(subs))
				for a := range subs {
					active = append(active, a)
				}
				drop, add := ResolveSubscribe(active, subject)
				if !add {
					_ = writeJSON(map[string]string{"status": "already subscribed", "subject": subject})
					continue
				}
				for _, a := range drop {
					_ = subs[a].Unsubscribe()
					delete(subs, a)
				}
				if err := subscribe(subject); err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				_ = writeJSON(map[string]string{"status": "subscribed", "subject": subject})

			case "unsubscribe":
				if s, exists := subs[subject]; exists {
					_ = s.Unsubscribe()
					delete(subs, subject)
					_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})
				} else {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		logger.Info("ws client disconnected")
	}
}
