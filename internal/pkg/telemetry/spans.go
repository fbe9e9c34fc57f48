package telemetry

// Span names used for instrumentation.
const (
	SpanExport     = "interchange.export"
	SpanImport     = "interchange.import"
	SpanInput      = "editor.input"
	SpanSetMode    = "editor.set_mode"
	SpanAuditEvent = "auditor.event"
	SpanShpConvert = "shpconvert.convert"
)

// Attribute keys.
const (
	AttrShapeKind   = "geodraw.shape_kind"
	AttrEventType   = "geodraw.event_type"
	AttrMode        = "geodraw.mode"
	AttrRevision    = "geodraw.revision"
	AttrShapeCount  = "geodraw.shape_count"
	AttrCacheHit    = "geodraw.cache_hit"
	AttrContentType = "geodraw.content_type"
)
