package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// PaginatedResponse wraps list results with pagination metadata.
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination contains offset-based pagination info.
type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Total  int `json:"total"`
}

type pageLink struct {
	rel    string
	offset int
}

// pageLinks lists the RFC 8288 relations for p, first to last.
func pageLinks(p Pagination) []pageLink {
	links := []pageLink{{"first", 0}}
	if p.Offset > 0 {
		links = append(links, pageLink{"prev", max(p.Offset-p.Limit, 0)})
	}
	if p.Offset+p.Limit < p.Total {
		links = append(links, pageLink{"next", p.Offset + p.Limit})
	}
	return append(links, pageLink{"last", max(p.Total-p.Limit, 0)})
}

// SetLinkHeaders adds RFC 8288 Link headers for paginated responses on the
// current request path.
func SetLinkHeaders(c *fiber.Ctx, p Pagination) {
	base := c.Path()
	parts := make([]string, 0, 4)
	for _, l := range pageLinks(p) {
		parts = append(parts, fmt.Sprintf(`<%s?offset=%d&limit=%d>; rel="%s"`, base, l.offset, p.Limit, l.rel))
	}
	c.Set("Link", strings.Join(parts, ", "))
}
