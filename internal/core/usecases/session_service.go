package usecases

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/ports"
)

// SessionService shares one Editor between goroutines. Every call holds the
// session lock for its whole duration; events raised by the editor are
// buffered and published once the lock is released.
type SessionService struct {
	id        string
	publisher ports.EventPublisher
	logger    *slog.Logger

	mu      sync.Mutex
	editor  *Editor
	hooks   []func(domain.ShapeEvent)
	pending []domain.ShapeEvent
	changed bool
}

// NewSessionService takes ownership of editor. It claims every event handler
// slot of the editor, so register additional consumers with AddEventHook.
// publisher may be nil.
func NewSessionService(editor *Editor, publisher ports.EventPublisher) *SessionService {
	s := &SessionService{
		id:        uuid.NewString(),
		publisher: publisher,
		logger:    editor.logger,
		editor:    editor,
	}
	editor.OnAll(func(ev domain.ShapeEvent) { s.pending = append(s.pending, ev) })
	editor.Subscribe(func() { s.changed = true })
	return s
}

// ID identifies this session, e.g. in cache keys shared between processes.
func (s *SessionService) ID() string { return s.id }

// AddEventHook registers fn to see every shape event. Hooks run after the
// session lock is released.
func (s *SessionService) AddEventHook(fn func(domain.ShapeEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Do runs fn with exclusive access to the editor. fn must not keep the
// editor past its return.
func (s *SessionService) Do(ctx context.Context, fn func(ed *Editor)) {
	events, hooks, changed, notice := s.apply(fn)
	s.flush(ctx, events, hooks, changed, notice)
}

// apply runs fn under the lock and collects what it raised. The lock is
// released even when fn panics.
func (s *SessionService) apply(fn func(ed *Editor)) ([]domain.ShapeEvent, []func(domain.ShapeEvent), bool, domain.ChangeNotice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.editor)

	events := s.pending
	s.pending = nil
	changed := s.changed
	s.changed = false
	notice := domain.ChangeNotice{
		Session:  s.id,
		Revision: s.editor.revision,
		Mode:     s.editor.mode,
		At:       s.editor.now(),
	}
	hooks := append([]func(domain.ShapeEvent){}, s.hooks...)
	return events, hooks, changed, notice
}

// View runs fn with exclusive access to the editor. fn should only read.
func (s *SessionService) View(fn func(ed *Editor)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.editor)
}

func (s *SessionService) Render(overrides domain.IconSet) domain.RenderSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Render(overrides)
}

func (s *SessionService) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.revision
}

func (s *SessionService) Mode() domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.mode
}

// flush publishes buffered events. Broker failures are logged and dropped:
// the mutation has already happened and readers can always re-fetch.
func (s *SessionService) flush(ctx context.Context, events []domain.ShapeEvent, hooks []func(domain.ShapeEvent), changed bool, notice domain.ChangeNotice) {
	for _, ev := range events {
		for _, h := range hooks {
			h(ev)
		}
		if s.publisher == nil {
			continue
		}
		if err := s.publisher.PublishShapeEvent(ctx, ev); err != nil {
			s.logger.WarnContext(ctx, "publish shape event failed",
				"kind", ev.Kind, "type", ev.Type, "error", err)
		}
	}

	if !changed || s.publisher == nil {
		return
	}
	if err := s.publisher.PublishChange(ctx, notice); err != nil {
		s.logger.WarnContext(ctx, "publish change notice failed", "revision", notice.Revision, "error", err)
	}
}
