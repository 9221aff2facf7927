package natsadapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/clustermap/internal/core/ports"
	"github.com/samirrijal/clustermap/internal/pkg/metrics"
)

// Subscriber implements ports.EventSubscriber using NATS JetStream.
type Subscriber struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	origin string
	subs   []*nats.Subscription
}

// NewSubscriber connects to NATS. Events published with the same origin
// are skipped.
func NewSubscriber(url, origin string) (*Subscriber, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js, origin: origin}, nil
}

// Mirror applies every new map event to dst through an ordered consumer,
// so a clear is never applied after the markers that follow it.
func (s *Subscriber) Mirror(ctx context.Context, dst ports.MapSurface) error {
	sub, err := s.js.Subscribe(SubjectAll, func(msg *nats.Msg) {
		if s.origin != "" && msg.Header.Get(HeaderOrigin) == s.origin {
			return
		}
		kind := EventKind(msg.Subject)
		if err := Dispatch(ctx, msg.Subject, msg.Data, dst); err != nil {
			slog.Warn("mirror event failed", "subject", msg.Subject, "error", err)
			return
		}
		metrics.MirroredEvents.WithLabelValues(kind).Inc()
	},
		nats.OrderedConsumer(),
		nats.DeliverNew(),
	)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", SubjectAll, err)
	}
	s.subs = append(s.subs, sub)

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
