package usecases

import (
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
)

// EventHandler receives typed shape events.
type EventHandler func(domain.ShapeEvent)

type eventKey struct {
	kind domain.ShapeKind
	typ  domain.EventType
}

// observers is an ordered registry of change subscribers.
type observers struct {
	next  int
	fns   map[int]func()
	order []int
}

func (o *observers) add(fn func()) int {
	if o.fns == nil {
		o.fns = make(map[int]func())
	}
	o.next++
	o.fns[o.next] = fn
	o.order = append(o.order, o.next)
	return o.next
}

func (o *observers) remove(id int) {
	if _, ok := o.fns[id]; !ok {
		return
	}
	delete(o.fns, id)
	for i, v := range o.order {
		if v == id {
			o.order = append(o.order[:i], o.order[i+1:]...)
			break
		}
	}
}

func (o *observers) snapshot() []func() {
	out := make([]func(), 0, len(o.order))
	for _, id := range o.order {
		out = append(out, o.fns[id])
	}
	return out
}

// Subscribe registers fn to run after every mutation. The returned function
// removes it again and is safe to call more than once.
func (e *Editor) Subscribe(fn func()) (unsubscribe func()) {
	id := e.observers.add(fn)
	return func() { e.observers.remove(id) }
}

// On sets the handler for one (kind, type) pair, replacing any previous one.
// A nil handler clears the slot.
func (e *Editor) On(kind domain.ShapeKind, typ domain.EventType, h EventHandler) {
	key := eventKey{kind: kind, typ: typ}
	if h == nil {
		delete(e.handlers, key)
		return
	}
	e.handlers[key] = h
}

// OnAll installs h for every kind and event type.
func (e *Editor) OnAll(h EventHandler) {
	for _, k := range domain.ShapeKinds {
		for _, t := range domain.EventTypes {
			e.On(k, t, h)
		}
	}
}

func (e *Editor) emit(ev domain.ShapeEvent) {
	h, ok := e.handlers[eventKey{kind: ev.Kind, typ: ev.Type}]
	if !ok {
		return
	}
	ev.At = e.now()
	h(ev)
}

// notify bumps the revision and fans out to observers, unless a batch is
// open, in which case a single notification is sent when it closes.
func (e *Editor) notify() {
	if e.batch > 0 {
		e.dirty = true
		return
	}
	e.revision++
	for _, fn := range e.observers.snapshot() {
		fn()
	}
}

// batched runs fn with notifications coalesced into at most one.
func (e *Editor) batched(fn func()) {
	e.batch++
	fn()
	e.batch--
	if e.batch == 0 && e.dirty {
		e.dirty = false
		e.notify()
	}
}

func shapes[T domain.Shape](in []T) []domain.Shape {
	out := make([]domain.Shape, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
