package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/timmy/memeforge/internal/config"
	"github.com/timmy/memeforge/internal/domain"
)

func newTestDB(t *testing.T) *MemeRepository {
	t.Helper()

	db, err := InitDB(&config.DatabaseConfig{
		Driver:          "sqlite",
		Path:            filepath.Join(t.TempDir(), "test.db"),
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Minute,
		AutoMigrate:     true,
	})
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	return NewMemeRepository(db)
}

func TestMemeRepository_RoundTrip(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	meme := &domain.Meme{
		ID:           "meme-1",
		TemplateID:   "drake",
		TemplateName: "Drake",
		ImageURL:     "https://example.com/drake.jpg",
		TopText:      "The old way",
		BottomText:   "the new way",
		Prompt:       "the new way",
		Category:     "Classic",
		Language:     "en",
		Metrics: domain.EngagementMetrics{
			Views:           100,
			Likes:           10,
			Shares:          5,
			CreatedAt:       now,
			LastInteraction: now,
		},
		Position:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	meme.RefreshDerived()

	if err := repo.Create(ctx, meme); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := repo.GetByID(ctx, "meme-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if loaded.TemplateID != meme.TemplateID || loaded.Prompt != meme.Prompt {
		t.Errorf("identity fields changed: %+v", loaded)
	}
	if loaded.Metrics.Views != 100 || loaded.Metrics.Likes != 10 || loaded.Metrics.Shares != 5 {
		t.Errorf("counters changed: %+v", loaded.Metrics)
	}
	if loaded.Score != meme.Score {
		t.Errorf("expected score %d, got %d", meme.Score, loaded.Score)
	}
	if !loaded.Eligible {
		t.Error("expected eligibility to survive the round trip")
	}
	if !loaded.Metrics.LastInteraction.Equal(now) {
		t.Errorf("last interaction drifted: %v != %v", loaded.Metrics.LastInteraction, now)
	}
}

func TestMemeRepository_UpdateUpserts(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	meme := &domain.Meme{ID: "meme-1", TemplateID: "drake", Prompt: "p", Position: 1}

	// Update of a missing row inserts it.
	if err := repo.Update(ctx, meme); err != nil {
		t.Fatalf("upsert insert: %v", err)
	}

	meme.Metrics.Likes = 3
	meme.RefreshDerived()
	if err := repo.Update(ctx, meme); err != nil {
		t.Fatalf("upsert update: %v", err)
	}

	loaded, err := repo.GetByID(ctx, "meme-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Metrics.Likes != 3 || loaded.Score != 9 {
		t.Errorf("update lost counters: likes=%d score=%d", loaded.Metrics.Likes, loaded.Score)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single row after upserts, got %d", count)
	}
}

func TestMemeRepository_ListAllOrdersByPosition(t *testing.T) {
	repo := newTestDB(t)
	ctx := context.Background()

	for _, m := range []*domain.Meme{
		{ID: "meme-b", TemplateID: "t", Prompt: "p", Position: 2},
		{ID: "meme-a", TemplateID: "t", Prompt: "p", Position: 1},
	} {
		if err := repo.Create(ctx, m); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	memes, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(memes) != 2 || memes[0].ID != "meme-a" || memes[1].ID != "meme-b" {
		t.Errorf("unexpected order: %+v", memes)
	}
}
