package plot

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/samirrijal/clustermap/internal/core/domain"
)

// Markers renders an HTML scatter chart of the markers (x = longitude,
// y = latitude) with the center highlighted.
func Markers(w io.Writer, title string, center domain.GeoPoint, markers []domain.Marker) error {
	b := bounds(center, markers)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "900px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Formatter: "{b}"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lon", Type: "value", Min: b.MinLon, Max: b.MaxLon}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lat", Type: "value", Min: b.MinLat, Max: b.MaxLat}),
	)

	points := make([]opts.ScatterData, 0, len(markers))
	for _, m := range markers {
		points = append(points, opts.ScatterData{
			Name:       m.Title,
			Value:      []float64{m.Position.Lon, m.Position.Lat},
			SymbolSize: 6,
		})
	}

	scatter.AddSeries("markers", points)
	scatter.AddSeries("center", []opts.ScatterData{{
		Name:       "center",
		Value:      []float64{center.Lon, center.Lat},
		SymbolSize: 14,
	}})

	return scatter.Render(w)
}

func bounds(center domain.GeoPoint, markers []domain.Marker) domain.Bounds {
	b := domain.Bounds{MinLat: center.Lat, MinLon: center.Lon, MaxLat: center.Lat, MaxLon: center.Lon}
	for _, m := range markers {
		b.MinLat = min(b.MinLat, m.Position.Lat)
		b.MinLon = min(b.MinLon, m.Position.Lon)
		b.MaxLat = max(b.MaxLat, m.Position.Lat)
		b.MaxLon = max(b.MaxLon, m.Position.Lon)
	}
	return b
}
