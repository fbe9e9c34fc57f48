package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/usecases"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/metrics"
)

// buildSchema creates the GraphQL schema wired to the editing session.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	ringFields := func() graphql.Fields {
		return graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"points":       &graphql.Field{Type: graphql.NewList(geoPointType)},
			"stroke_color": &graphql.Field{Type: graphql.String},
			"fill_color":   &graphql.Field{Type: graphql.String},
			"stroke_width": &graphql.Field{Type: graphql.Float},
			"selected":     &graphql.Field{Type: graphql.Boolean},
		}
	}

	polygonType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Polygon",
		Fields: ringFields(),
	})

	freehandType := graphql.NewObject(graphql.ObjectConfig{
		Name:   "FreehandPolygon",
		Fields: ringFields(),
	})

	circleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Circle",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"center":       &graphql.Field{Type: geoPointType},
			"radius":       &graphql.Field{Type: graphql.Float},
			"stroke_color": &graphql.Field{Type: graphql.String},
			"fill_color":   &graphql.Field{Type: graphql.String},
			"selected":     &graphql.Field{Type: graphql.Boolean},
		},
	})

	rectangleType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Rectangle",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"southwest":    &graphql.Field{Type: geoPointType},
			"northeast":    &graphql.Field{Type: geoPointType},
			"anchor":       &graphql.Field{Type: geoPointType},
			"stroke_color": &graphql.Field{Type: graphql.String},
			"fill_color":   &graphql.Field{Type: graphql.String},
			"selected":     &graphql.Field{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"mode": &graphql.Field{
				Type:        graphql.String,
				Description: "Active drawing mode",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return string(deps.Session.Mode()), nil
				},
			},
			"revision": &graphql.Field{
				Type:        graphql.Int,
				Description: "Number of state changes so far",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(deps.Session.Revision()), nil
				},
			},
			"polygons": &graphql.Field{
				Type:        graphql.NewList(polygonType),
				Description: "Committed polygons, including one still being drawn",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var out []map[string]interface{}
					deps.Session.View(func(ed *usecases.Editor) {
						sel := ed.Selection().Polygon
						for _, poly := range ed.Polygons().All() {
							out = append(out, ringMap(poly.ID, poly.Points, poly.StrokeColor, poly.FillColor, poly.StrokeWidth, poly.ID == sel))
						}
					})
					return out, nil
				},
			},
			"freehand": &graphql.Field{
				Type:        graphql.NewList(freehandType),
				Description: "Committed freehand polygons",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var out []map[string]interface{}
					deps.Session.View(func(ed *usecases.Editor) {
						sel := ed.Selection().Freehand
						for _, f := range ed.Freehand().All() {
							out = append(out, ringMap(f.ID, f.Points, f.StrokeColor, f.FillColor, f.StrokeWidth, f.ID == sel))
						}
					})
					return out, nil
				},
			},
			"circles": &graphql.Field{
				Type:        graphql.NewList(circleType),
				Description: "Committed circles",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var out []map[string]interface{}
					deps.Session.View(func(ed *usecases.Editor) {
						sel := ed.Selection().Circle
						for _, c := range ed.Circles().All() {
							out = append(out, map[string]interface{}{
								"id":           c.ID,
								"center":       pointMap(c.Center),
								"radius":       c.Radius,
								"stroke_color": c.StrokeColor.Hex(),
								"fill_color":   c.FillColor.Hex(),
								"selected":     c.ID == sel,
							})
						}
					})
					return out, nil
				},
			},
			"rectangles": &graphql.Field{
				Type:        graphql.NewList(rectangleType),
				Description: "Committed rectangles",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var out []map[string]interface{}
					deps.Session.View(func(ed *usecases.Editor) {
						sel := ed.Selection().Rectangle
						for _, r := range ed.Rectangles().All() {
							out = append(out, map[string]interface{}{
								"id":           r.ID,
								"southwest":    pointMap(r.Bounds.Southwest),
								"northeast":    pointMap(r.Bounds.Northeast),
								"anchor":       pointMap(r.Anchor),
								"stroke_color": r.StrokeColor.Hex(),
								"fill_color":   r.FillColor.Hex(),
								"selected":     r.ID == sel,
							})
						}
					})
					return out, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"setMode": &graphql.Field{
				Type:        graphql.String,
				Description: "Switch the drawing mode and return the new one",
				Args: graphql.FieldConfigArgument{
					"mode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					mode, err := domain.ParseMode(p.Args["mode"].(string))
					if err != nil {
						return nil, err
					}
					deps.Session.Do(p.Context, func(ed *usecases.Editor) { ed.SetMode(mode) })
					metrics.ModeChanges.WithLabelValues(string(mode)).Inc()
					return string(mode), nil
				},
			},
			"deleteSelected": &graphql.Field{
				Type:        graphql.Int,
				Description: "Delete the selected shape of a kind and return the new revision",
				Args: graphql.FieldConfigArgument{
					"kind": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					kind, err := domain.ParseShapeKind(p.Args["kind"].(string))
					if err != nil {
						return nil, fmt.Errorf("%w: %s", err, p.Args["kind"])
					}
					var rev uint64
					deps.Session.Do(p.Context, func(ed *usecases.Editor) {
						ed.DeleteSelected(kind)
						rev = ed.Revision()
					})
					return int(rev), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func pointMap(p domain.GeoPoint) map[string]interface{} {
	return map[string]interface{}{"lat": p.Lat, "lon": p.Lon}
}

func ringMap(id string, pts []domain.GeoPoint, stroke, fill domain.Color, width float64, selected bool) map[string]interface{} {
	points := make([]map[string]interface{}, len(pts))
	for i, p := range pts {
		points[i] = pointMap(p)
	}
	return map[string]interface{}{
		"id":           id,
		"points":       points,
		"stroke_color": stroke.Hex(),
		"fill_color":   fill.Hex(),
		"stroke_width": width,
		"selected":     selected,
	}
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
