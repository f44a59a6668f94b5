package service

import (
	"testing"

	"github.com/timmy/memeforge/internal/domain"
)

func TestMemeStore_PositionsAndSnapshot(t *testing.T) {
	store := newMemeStore()

	a := &domain.Meme{ID: "meme-a"}
	b := &domain.Meme{ID: "meme-b"}
	store.Add(a)
	store.Add(b)

	if a.Position >= b.Position {
		t.Errorf("expected increasing positions, got %d then %d", a.Position, b.Position)
	}

	snap := store.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 memes, got %d", len(snap))
	}
	if snap[0].ID != "meme-a" || snap[1].ID != "meme-b" {
		t.Errorf("snapshot out of insertion order: %q, %q", snap[0].ID, snap[1].ID)
	}

	// Snapshot copies are detached from the store.
	snap[0].Prompt = "mutated"
	if got, _ := store.Get("meme-a"); got.Prompt == "mutated" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestMemeStore_MutateRefreshesDerivedState(t *testing.T) {
	store := newMemeStore()
	store.Add(&domain.Meme{ID: "meme-a"})

	updated, ok := store.Mutate("meme-a", func(m *domain.Meme) {
		m.Metrics.Likes = 10
		m.Metrics.Shares = 5
		m.Metrics.Views = 100
	})
	if !ok {
		t.Fatal("expected mutate to find the meme")
	}
	if updated.Score != 155 {
		t.Errorf("expected derived score 155, got %d", updated.Score)
	}
	if !updated.Eligible {
		t.Error("expected derived eligibility")
	}

	if _, ok := store.Mutate("meme-missing", func(m *domain.Meme) {}); ok {
		t.Error("expected mutate to miss an unknown meme")
	}
}

func TestMemeStore_LoadPreservesPositions(t *testing.T) {
	store := newMemeStore()
	store.Load([]domain.Meme{
		{ID: "meme-b", Position: 2},
		{ID: "meme-a", Position: 1},
	})

	snap := store.Snapshot()
	if len(snap) != 2 || snap[0].ID != "meme-a" {
		t.Fatalf("expected position order after load, got %+v", snap)
	}

	// New memes continue past the loaded positions.
	c := &domain.Meme{ID: "meme-c"}
	store.Add(c)
	if c.Position <= 2 {
		t.Errorf("expected position past the loaded maximum, got %d", c.Position)
	}
}

func TestMemeStore_Remove(t *testing.T) {
	store := newMemeStore()
	store.Add(&domain.Meme{ID: "meme-a"})

	if !store.Remove("meme-a") {
		t.Error("expected removal to succeed")
	}
	if store.Remove("meme-a") {
		t.Error("expected second removal to fail")
	}
	if store.Len() != 0 {
		t.Errorf("expected empty store, got %d", store.Len())
	}
}
