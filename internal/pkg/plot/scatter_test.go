package plot_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/pkg/plot"
)

func TestMarkers_RendersHTML(t *testing.T) {
	center := domain.GeoPoint{Lat: 16.07333, Lon: 108.225862}
	markers := []domain.Marker{
		{Title: "Marker 1", Position: domain.GeoPoint{Lat: 16.1, Lon: 108.3}},
		{Title: "Marker 2", Position: domain.GeoPoint{Lat: 15.9, Lon: 108.1}},
	}

	var buf bytes.Buffer
	if err := plot.Markers(&buf, "Clustering", center, markers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"<html", "Clustering", "Marker 2", "echarts"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output", want)
		}
	}
}

func TestMarkers_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := plot.Markers(&buf, "Empty", domain.GeoPoint{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected output for empty marker set")
	}
}
