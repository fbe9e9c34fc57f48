package usecases

import (
	"context"
	"fmt"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/ports"
)

// exportCacheTTL bounds how long an encoded document outlives its revision
// in a shared cache.
const exportCacheTTL = 60

// Document is an encoded export of the session.
type Document struct {
	Data        []byte
	ContentType string
	Revision    uint64
	Cached      bool
}

// InterchangeService imports and exports the session's shapes through a
// document codec.
type InterchangeService struct {
	session *SessionService
	codec   ports.InterchangeCodec
	cache   ports.CacheService
}

// NewInterchangeService creates an InterchangeService. cache may be nil.
func NewInterchangeService(session *SessionService, codec ports.InterchangeCodec, cache ports.CacheService) *InterchangeService {
	return &InterchangeService{session: session, codec: codec, cache: cache}
}

func (s *InterchangeService) ContentType() string { return s.codec.ContentType() }

// ExportDocument encodes every finalized shape. Encodings are cached per
// revision, so repeated exports of an unchanged session skip the codec.
func (s *InterchangeService) ExportDocument(ctx context.Context) (Document, error) {
	var (
		set domain.ShapeSet
		rev uint64
	)
	s.session.View(func(ed *Editor) {
		set = ed.Export()
		rev = ed.Revision()
	})

	doc := Document{ContentType: s.codec.ContentType(), Revision: rev}

	cacheKey := fmt.Sprintf("shapes:export:%s:%d", s.session.ID(), rev)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil && len(data) > 0 {
			doc.Data = data
			doc.Cached = true
			return doc, nil
		}
	}

	data, err := s.codec.Encode(set)
	if err != nil {
		return Document{}, fmt.Errorf("encode shapes: %w", err)
	}
	doc.Data = data

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, data, exportCacheTTL)
	}

	return doc, nil
}

// ImportDocument decodes data and appends its shapes to the session under
// fresh IDs. It returns how many shapes were added.
func (s *InterchangeService) ImportDocument(ctx context.Context, data []byte) (int, error) {
	set, err := s.codec.Decode(data)
	if err != nil {
		return 0, fmt.Errorf("decode document: %w", err)
	}

	var added int
	s.session.Do(ctx, func(ed *Editor) {
		added = ed.Import(set)
	})
	return added, nil
}
