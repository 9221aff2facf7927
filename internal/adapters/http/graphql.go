package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

type markerPage struct {
	Total int `json:"total"`
	Items any `json:"items"`
}

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	cameraType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Camera",
		Fields: graphql.Fields{
			"target": &graphql.Field{Type: geoPointType},
			"zoom":   &graphql.Field{Type: graphql.Float},
		},
	})

	markerType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Marker",
		Fields: graphql.Fields{
			"id":         &graphql.Field{Type: graphql.String},
			"seq":        &graphql.Field{Type: graphql.Int},
			"title":      &graphql.Field{Type: graphql.String},
			"position":   &graphql.Field{Type: geoPointType},
			"distance":   &graphql.Field{Type: graphql.Float, Description: "Meters from the camera target"},
			"created_at": &graphql.Field{Type: graphql.DateTime},
		},
	})

	markerPageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MarkerPage",
		Fields: graphql.Fields{
			"total": &graphql.Field{Type: graphql.Int},
			"items": &graphql.Field{Type: graphql.NewList(markerType)},
		},
	})

	regionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "VisibleRegion",
		Fields: graphql.Fields{
			"near_left":  &graphql.Field{Type: geoPointType},
			"near_right": &graphql.Field{Type: geoPointType},
			"far_left":   &graphql.Field{Type: geoPointType},
			"far_right":  &graphql.Field{Type: geoPointType},
		},
	})

	regionResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Region",
		Fields: graphql.Fields{
			"region":  &graphql.Field{Type: regionType},
			"markers": &graphql.Field{Type: graphql.NewList(markerType)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"camera": &graphql.Field{
				Type:        cameraType,
				Description: "Current map camera",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Markers.Camera(p.Context)
				},
			},
			"markers": &graphql.Field{
				Type:        markerPageType,
				Description: "Markers in insertion order",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 100},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					offset := p.Args["offset"].(int)
					limit := p.Args["limit"].(int)
					markers, total, err := deps.Markers.List(p.Context, offset, limit)
					if err != nil {
						return nil, err
					}
					return markerPage{Total: total, Items: markers}, nil
				},
			},
			"region": &graphql.Field{
				Type:        regionResultType,
				Description: "Markers visible in a viewport of the given pixel size",
				Args: graphql.FieldConfigArgument{
					"width":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"height": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					width := p.Args["width"].(int)
					height := p.Args["height"].(int)
					region, markers, err := deps.Markers.VisibleRegion(p.Context, width, height)
					if err != nil {
						return nil, err
					}
					return RegionResponse{Region: region, Bounds: region.Bounds(), Markers: markers}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
