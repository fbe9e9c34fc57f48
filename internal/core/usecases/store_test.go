package usecases_test

import (
	"testing"

	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/domain"
	"github.com/ExploreAritra/google-maps-drawing-tools/internal/core/usecases"
)

func TestStore_AddKeepsInsertionOrder(t *testing.T) {
	s := usecases.NewStore[domain.Circle]()
	s.Add(domain.Circle{ID: "b", Radius: 1})
	s.Add(domain.Circle{ID: "a", Radius: 2})
	s.Add(domain.Circle{ID: "b", Radius: 3})

	all := s.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].ID != "b" || all[1].ID != "a" {
		t.Errorf("unexpected order: %s, %s", all[0].ID, all[1].ID)
	}
	if all[0].Radius != 3 {
		t.Errorf("expected re-added entry to be replaced in place, got radius %v", all[0].Radius)
	}
}

func TestStore_ReplaceUnknownIsIgnored(t *testing.T) {
	s := usecases.NewStore[domain.Circle]()
	if s.Replace(domain.Circle{ID: "x"}) {
		t.Fatal("expected Replace on unknown ID to report false")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestStore_Remove(t *testing.T) {
	s := usecases.NewStore[domain.Rectangle]()
	s.Add(domain.Rectangle{ID: "r1"})
	s.Add(domain.Rectangle{ID: "r2"})
	s.Add(domain.Rectangle{ID: "r3"})

	if !s.Remove("r2") {
		t.Fatal("expected r2 to be removed")
	}
	if s.Remove("r2") {
		t.Error("second remove should report false")
	}
	if s.Has("r2") {
		t.Error("r2 still present")
	}
	all := s.All()
	if len(all) != 2 || all[0].ID != "r1" || all[1].ID != "r3" {
		t.Errorf("unexpected contents after remove: %+v", all)
	}
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := usecases.NewStore[domain.Circle]()
	s.Add(domain.Circle{ID: "c", Radius: 10})

	all := s.All()
	all[0].Radius = 99

	got, _ := s.Get("c")
	if got.Radius != 10 {
		t.Errorf("store mutated through All(): radius %v", got.Radius)
	}
}

func TestStore_Clear(t *testing.T) {
	s := usecases.NewStore[domain.Circle]()
	s.Add(domain.Circle{ID: "c"})
	s.Clear()
	if s.Len() != 0 || s.Has("c") {
		t.Error("expected empty store after Clear")
	}
	s.Add(domain.Circle{ID: "d"})
	if s.Len() != 1 {
		t.Errorf("expected store to be usable after Clear, len %d", s.Len())
	}
}
