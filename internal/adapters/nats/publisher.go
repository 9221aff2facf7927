package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/clustermap/internal/core/domain"
)

// Publisher implements ports.MapSurface by publishing map events to NATS
// JetStream. It also implements ports.Clearer.
type Publisher struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	origin string
}

// NewPublisher connects to NATS, enables JetStream and ensures the map
// event stream exists. Events carry origin in their headers.
func NewPublisher(url, origin string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := StreamConfig()
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist; try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			conn.Close()
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js, origin: origin}, nil
}

func (p *Publisher) MoveCamera(ctx context.Context, cam domain.Camera) error {
	data, err := json.Marshal(cam)
	if err != nil {
		return err
	}
	return p.publish(ctx, SubjectCamera, data)
}

func (p *Publisher) AddMarker(ctx context.Context, m domain.Marker) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return p.publish(ctx, MarkerSubject(m.ID), data)
}

func (p *Publisher) Clear(ctx context.Context) error {
	return p.publish(ctx, SubjectClear, nil)
}

func (p *Publisher) publish(ctx context.Context, subject string, data []byte) error {
	msg := nats.NewMsg(subject)
	msg.Data = data
	msg.Header.Set(HeaderOrigin, p.origin)
	if _, err := p.js.PublishMsg(msg, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

// Ping reports whether the connection is up.
func (p *Publisher) Ping(ctx context.Context) error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("nats: %s", p.conn.Status())
	}
	return nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
