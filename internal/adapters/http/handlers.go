package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/usecases"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/metrics"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/pkg/telemetry"
)

// ModeResponse reports the active drawing mode.
type ModeResponse struct {
	Mode     domain.Mode `json:"mode"`
	Revision uint64      `json:"revision"`
}

// CornerResponse is the outcome of a rectangle corner drag. OK is false when
// the drag was rejected and the marker must snap back to Position.
type CornerResponse struct {
	Position domain.GeoPoint `json:"position"`
	OK       bool            `json:"ok"`
}

// ImportResponse reports how many shapes an import added.
type ImportResponse struct {
	Imported int    `json:"imported"`
	Revision uint64 `json:"revision"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type colorRequest struct {
	Color string `json:"color"`
}

type pointRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// parsePoint reads a {"lat","lon"} body. Both coordinates are required.
func parsePoint(c *fiber.Ctx) (domain.GeoPoint, error) {
	var req pointRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.GeoPoint{}, errors.New("invalid request body")
	}
	if req.Lat == nil || req.Lon == nil {
		return domain.GeoPoint{}, errors.New("lat and lon are required")
	}
	p := domain.GeoPoint{Lat: *req.Lat, Lon: *req.Lon}
	if err := validatePoint(p); err != nil {
		return domain.GeoPoint{}, err
	}
	return p, nil
}

func validatePoint(p domain.GeoPoint) error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("lat %v out of range [-90, 90]", p.Lat)
	}
	if p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("lon %v out of range [-180, 180]", p.Lon)
	}
	return nil
}

// iconOverrides reads per-request icon handles from query parameters named
// after marker roles, e.g. ?vertex=pin-small.
func iconOverrides(c *fiber.Ctx) domain.IconSet {
	return domain.IconSet{
		FirstVertex:     c.Query(string(domain.MarkerFirstVertex)),
		Vertex:          c.Query(string(domain.MarkerVertex)),
		Midpoint:        c.Query(string(domain.MarkerMidpoint)),
		CircleCenter:    c.Query(string(domain.MarkerCircleCenter)),
		CircleRadius:    c.Query(string(domain.MarkerCircleRadius)),
		RectangleStart:  c.Query(string(domain.MarkerRectangleStart)),
		RectangleCorner: c.Query(string(domain.MarkerRectangleCorner)),
	}
}

// respondState runs fn against the editor and replies with the resulting
// render snapshot. Unknown shape IDs are no-ops inside the editor, so the
// caller always gets the current state back.
func respondState(c *fiber.Ctx, deps *Dependencies, fn func(ed *usecases.Editor)) error {
	deps.Session.Do(c.UserContext(), fn)
	return c.JSON(deps.Session.Render(iconOverrides(c)))
}

func kindParam(c *fiber.Ctx) (domain.ShapeKind, bool) {
	kind, err := domain.ParseShapeKind(c.Params("kind"))
	return kind, err == nil
}

// ---- Mode ----

// GetModeHandler returns the active drawing mode.
func GetModeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var resp ModeResponse
		deps.Session.View(func(ed *usecases.Editor) {
			resp = ModeResponse{Mode: ed.Mode(), Revision: ed.Revision()}
		})
		return c.JSON(resp)
	}
}

// SetModeHandler switches the drawing mode, finishing whatever was in
// progress in the previous one.
func SetModeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req modeRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		mode, err := domain.ParseMode(req.Mode)
		if err != nil {
			return errBadRequest(c, fmt.Sprintf("unknown mode %q", req.Mode))
		}

		ctx, span := telemetry.Tracer().Start(c.UserContext(), telemetry.SpanSetMode)
		defer span.End()
		span.SetAttributes(attribute.String(telemetry.AttrMode, string(mode)))

		var resp ModeResponse
		deps.Session.Do(ctx, func(ed *usecases.Editor) {
			ed.SetMode(mode)
			resp = ModeResponse{Mode: ed.Mode(), Revision: ed.Revision()}
		})
		metrics.ModeChanges.WithLabelValues(string(mode)).Inc()

		return c.JSON(resp)
	}
}

// ---- Gestures ----

// InputHandler feeds one host gesture into the editor.
// Body: {"type":"tap","point":{"lat":..,"lon":..},"zoom":15,"handle":{...}}
func InputHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in domain.Input
		if err := c.BodyParser(&in); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		switch in.Type {
		case domain.InputTap, domain.InputDragStart, domain.InputDragMove, domain.InputDragEnd:
		default:
			return errBadRequest(c, fmt.Sprintf("unknown input type %q", in.Type))
		}
		if err := validatePoint(in.Point); err != nil {
			return errBadRequest(c, err.Error())
		}
		if in.Handle != nil && in.Handle.ShapeID == "" {
			return errBadRequest(c, "handle.shape_id is required")
		}

		ctx, span := telemetry.Tracer().Start(c.UserContext(), telemetry.SpanInput)
		defer span.End()
		span.SetAttributes(attribute.String("geodraw.input_type", string(in.Type)))

		deps.Session.Do(ctx, func(ed *usecases.Editor) { ed.Handle(in) })
		return c.JSON(deps.Session.Render(iconOverrides(c)))
	}
}

// SetColorHandler changes the color used for shapes drawn from now on.
func SetColorHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req colorRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		col, err := domain.ParseColor(req.Color)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		return respondState(c, deps, func(ed *usecases.Editor) { ed.SetDrawingColor(col) })
	}
}

// ---- Reads ----

// RenderHandler returns everything a map layer needs to draw the session.
func RenderHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Session.Render(iconOverrides(c)))
	}
}

// ListShapesHandler returns the committed shapes of one kind.
func ListShapesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, ok := kindParam(c)
		if !ok {
			return errNotFound(c, "unknown shape kind: "+c.Params("kind"))
		}

		var all []domain.Shape
		deps.Session.View(func(ed *usecases.Editor) { all = ed.Shapes(kind) })

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		total := len(all)
		page := []domain.Shape{}
		if offset < total {
			end := offset + limit
			if end > total {
				end = total
			}
			page = all[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// ---- Selection ----

// SelectShapeHandler toggles selection of a shape.
func SelectShapeHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, ok := kindParam(c)
		if !ok {
			return errNotFound(c, "unknown shape kind: "+c.Params("kind"))
		}
		id := c.Params("id")

		var sel usecases.Selection
		deps.Session.Do(c.UserContext(), func(ed *usecases.Editor) {
			ed.Select(kind, id)
			sel = ed.Selection()
		})
		return c.JSON(sel)
	}
}

// DeleteSelectedHandler deletes the selected shape of one kind. With nothing
// selected it changes nothing.
func DeleteSelectedHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, ok := kindParam(c)
		if !ok {
			return errNotFound(c, "unknown shape kind: "+c.Params("kind"))
		}
		return respondState(c, deps, func(ed *usecases.Editor) { ed.DeleteSelected(kind) })
	}
}

// SetShapeColorHandler recolors one committed shape.
func SetShapeColorHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, ok := kindParam(c)
		if !ok {
			return errNotFound(c, "unknown shape kind: "+c.Params("kind"))
		}
		var req colorRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		col, err := domain.ParseColor(req.Color)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		id := c.Params("id")
		return respondState(c, deps, func(ed *usecases.Editor) { ed.SetShapeColor(kind, id, col) })
	}
}

// ---- Polygon edits ----

// pointEdit parses the :index param and a point body, then applies fn.
func pointEdit(deps *Dependencies, fn func(ed *usecases.Editor, id string, index int, p domain.GeoPoint)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := c.ParamsInt("index")
		if err != nil {
			return errBadRequest(c, "index must be an integer")
		}
		p, err := parsePoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		id := c.Params("id")
		return respondState(c, deps, func(ed *usecases.Editor) { fn(ed, id, index, p) })
	}
}

// UpdateVertexHandler moves one polygon vertex.
func UpdateVertexHandler(deps *Dependencies) fiber.Handler {
	return pointEdit(deps, func(ed *usecases.Editor, id string, index int, p domain.GeoPoint) {
		ed.Polygons().UpdatePoint(id, index, p)
	})
}

// InsertVertexHandler promotes a midpoint marker to a vertex at index.
func InsertVertexHandler(deps *Dependencies) fiber.Handler {
	return pointEdit(deps, func(ed *usecases.Editor, id string, index int, p domain.GeoPoint) {
		ed.Polygons().InsertMidpointAsVertex(id, index, p)
	})
}

// UpdateMidpointHandler drags the midpoint of an edge, moving its neighbours.
func UpdateMidpointHandler(deps *Dependencies) fiber.Handler {
	return pointEdit(deps, func(ed *usecases.Editor, id string, index int, p domain.GeoPoint) {
		ed.Polygons().UpdateMidpointPosition(id, index, p)
	})
}

// ClosePolygonHandler finishes the polygon being drawn.
func ClosePolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return respondState(c, deps, func(ed *usecases.Editor) { ed.Polygons().Finish() })
	}
}

// ---- Circle edits ----

// UpdateCircleCenterHandler moves a circle, keeping its radius.
func UpdateCircleCenterHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parsePoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		id := c.Params("id")
		return respondState(c, deps, func(ed *usecases.Editor) { ed.Circles().UpdateCenter(id, p) })
	}
}

// UpdateCircleRadiusHandler sets the radius to the distance between the
// circle center and the posted radius handle position.
func UpdateCircleRadiusHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parsePoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		id := c.Params("id")
		return respondState(c, deps, func(ed *usecases.Editor) { ed.Circles().UpdateRadius(id, p) })
	}
}

// ---- Rectangle edits ----

// DragCornerHandler moves one rectangle corner. A drag that would invert
// the rectangle is not an error: the response carries ok=false and the
// position the marker should return to.
func DragCornerHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		corner, err := domain.ParseCorner(c.Params("corner"))
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		p, err := parsePoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		id := c.Params("id")

		var resp CornerResponse
		deps.Session.Do(c.UserContext(), func(ed *usecases.Editor) {
			resp.Position, resp.OK = ed.Rectangles().DragCorner(id, corner, p)
		})
		return c.JSON(resp)
	}
}

// ---- Interchange ----

// ExportHandler returns every finalized shape as a GeoJSON document.
func ExportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, span := telemetry.Tracer().Start(c.UserContext(), telemetry.SpanExport)
		defer span.End()

		doc, err := deps.Interchange.ExportDocument(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "export failed")
			LoggerFromCtx(ctx).ErrorContext(ctx, "export failed", "error", err)
			return errInternal(c, "export failed")
		}

		span.SetAttributes(
			attribute.Int64(telemetry.AttrRevision, int64(doc.Revision)),
			attribute.Bool(telemetry.AttrCacheHit, doc.Cached),
			attribute.String(telemetry.AttrContentType, doc.ContentType),
		)
		if doc.Cached {
			metrics.CacheHits.WithLabelValues("export").Inc()
		} else {
			metrics.CacheMisses.WithLabelValues("export").Inc()
		}
		metrics.InterchangeDocuments.WithLabelValues("export").Inc()

		c.Set("X-Revision", fmt.Sprintf("%d", doc.Revision))
		c.Set("Cache-Control", "no-cache")
		c.Set(fiber.HeaderContentType, doc.ContentType)
		return c.Send(doc.Data)
	}
}

// ImportHandler appends the shapes of a posted GeoJSON document.
func ImportHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ct := c.Get(fiber.HeaderContentType); ct != "" && !acceptedImportType(ct, deps.Interchange.ContentType()) {
			return errUnsupportedMedia(c, "unsupported content type: "+ct)
		}
		body := c.Body()
		if len(body) == 0 {
			return errBadRequest(c, "empty document")
		}

		ctx, span := telemetry.Tracer().Start(c.UserContext(), telemetry.SpanImport)
		defer span.End()

		n, err := deps.Interchange.ImportDocument(ctx, body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "import failed")
			return errBadRequest(c, err.Error())
		}
		span.SetAttributes(attribute.Int(telemetry.AttrShapeCount, n))
		metrics.InterchangeDocuments.WithLabelValues("import").Inc()
		metrics.InterchangeShapes.WithLabelValues("import").Add(float64(n))

		return c.JSON(ImportResponse{Imported: n, Revision: deps.Session.Revision()})
	}
}

func acceptedImportType(ct, codecType string) bool {
	mediaType := strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])
	return mediaType == codecType || mediaType == fiber.MIMEApplicationJSON
}
