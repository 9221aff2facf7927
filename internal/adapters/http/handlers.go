package http

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/clustermap/internal/core/domain"
	"github.com/samirrijal/clustermap/internal/core/usecases"
	"github.com/samirrijal/clustermap/internal/pkg/plot"
)

const (
	defaultViewportWidth  = 1024
	defaultViewportHeight = 768
)

// CameraHandler returns the current camera.
func CameraHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cam, err := deps.Markers.Camera(c.UserContext())
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(cam)
	}
}

// ListMarkersHandler returns a page of markers with their distance from
// the camera target.
func ListMarkersHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		offset := c.QueryInt("offset", 0)
		if offset < 0 {
			offset = 0
		}
		limit := usecases.ClampLimit(c.QueryInt("limit", 100))

		markers, total, err := deps.Markers.List(c.UserContext(), offset, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: markers, Pagination: pg})
	}
}

// GeoJSONHandler returns every marker as a FeatureCollection.
func GeoJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := deps.Markers.FeatureCollection(c.UserContext())
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set(fiber.HeaderContentType, "application/geo+json")
		return c.Send(data)
	}
}

// RegionResponse is the visible region of a viewport and what it shows.
type RegionResponse struct {
	Region  domain.VisibleRegion `json:"region"`
	Bounds  domain.Bounds        `json:"bounds"`
	Markers []domain.Marker      `json:"markers"`
}

// RegionHandler returns the markers visible in a width x height viewport.
func RegionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		width := c.QueryInt("width", defaultViewportWidth)
		height := c.QueryInt("height", defaultViewportHeight)

		region, markers, err := deps.Markers.VisibleRegion(c.UserContext(), width, height)
		if errors.Is(err, domain.ErrInvalidViewport) {
			return errBadRequest(c, "width and height must be between 1 and 8192 pixels")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(RegionResponse{Region: region, Bounds: region.Bounds(), Markers: markers})
	}
}

// PlotHandler renders the markers as an HTML scatter chart.
func PlotHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		cam, err := deps.Markers.Camera(ctx)
		if err != nil {
			return errInternal(c, err.Error())
		}
		markers, err := deps.Markers.All(ctx)
		if err != nil {
			return errInternal(c, err.Error())
		}

		var buf bytes.Buffer
		if err := plot.Markers(&buf, "Clustering", cam.Target, markers); err != nil {
			return errInternal(c, err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	}
}

// SeedBody is the body of a reseed request. Missing fields take the
// configured defaults.
type SeedBody struct {
	Count  *int     `json:"count"`
	Extent *float64 `json:"extent"`
}

// SeedHandler replaces the markers with a fresh seed run around the
// current camera target.
func SeedHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Seeder == nil {
			return errUnavailable(c, "seeding not available")
		}

		var body SeedBody
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return errBadRequest(c, "invalid request body")
			}
		}

		ctx := c.UserContext()
		cam, err := deps.Markers.Camera(ctx)
		if err != nil {
			return errInternal(c, err.Error())
		}

		req := deps.SeedDefaults
		req.Center = cam.Target
		if body.Count != nil {
			req.Count = *body.Count
		}
		if body.Extent != nil {
			req.Extent = *body.Extent
		}

		markers, err := deps.Seeder.Reseed(ctx, req)
		if errors.Is(err, domain.ErrInvalidSeed) {
			return errBadRequest(c, err.Error())
		}
		if err != nil {
			return errInternal(c, err.Error())
		}
		if err := deps.Markers.Invalidate(ctx); err != nil {
			LoggerFromCtx(ctx).Warn("invalidate marker cache", "error", err)
		}

		LoggerFromCtx(ctx).Info("markers reseeded", "count", len(markers), "extent", req.Extent)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"seeded": len(markers),
			"center": req.Center,
			"extent": req.Extent,
		})
	}
}
