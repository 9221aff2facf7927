package telemetry

// Span attribute keys.
const (
	AttrSeedCount  = "seed.count"
	AttrSeedExtent = "seed.extent"
	AttrCenterLat  = "map.center.lat"
	AttrCenterLon  = "map.center.lon"
)
