package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/ports"
)

const (
	StreamName = "MAP_EVENTS"

	SubjectAll          = "map.>"
	SubjectCamera       = "map.camera"
	SubjectClear        = "map.clear"
	SubjectMarkerPrefix = "map.marker."

	// HeaderOrigin identifies the process that published an event.
	HeaderOrigin = "Clustermap-Origin"
)

// StreamConfig is the JetStream stream holding every map event.
func StreamConfig() nats.StreamConfig {
	return nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectAll},
		Retention: nats.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
}

// MarkerSubject returns the subject a marker is published on.
func MarkerSubject(id string) string {
	return SubjectMarkerPrefix + id
}

// Dispatch applies one map event to dst.
func Dispatch(ctx context.Context, subject string, data []byte, dst ports.MapSurface) error {
	switch {
	case subject == SubjectCamera:
		var cam domain.Camera
		if err := json.Unmarshal(data, &cam); err != nil {
			return fmt.Errorf("decode camera: %w", err)
		}
		return dst.MoveCamera(ctx, cam)
	case subject == SubjectClear:
		if c, ok := dst.(ports.Clearer); ok {
			return c.Clear(ctx)
		}
		return nil
	case strings.HasPrefix(subject, SubjectMarkerPrefix):
		var m domain.Marker
		if err := json.Unmarshal(data, &m); err != nil {
			return fmt.Errorf("decode marker: %w", err)
		}
		return dst.AddMarker(ctx, m)
	default:
		return fmt.Errorf("unknown subject %q", subject)
	}
}

// EventKind names a subject for metrics and logs.
func EventKind(subject string) string {
	switch {
	case subject == SubjectCamera:
		return "camera"
	case subject == SubjectClear:
		return "clear"
	case strings.HasPrefix(subject, SubjectMarkerPrefix):
		return "marker"
	default:
		return "unknown"
	}
}
