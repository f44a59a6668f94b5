package service

import (
	"sort"
	"sync"

	"github.com/timmy/memeforge/internal/domain"
)

// memeStore is the in-memory source of truth for memes. All mutations go
// through Mutate under the write lock, so derived fields are always
// consistent with the counters. Reads hand out copies; callers never hold a
// pointer into the store.
type memeStore struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Meme
	nextPos int64
}

func newMemeStore() *memeStore {
	return &memeStore{byID: make(map[string]*domain.Meme)}
}

// Load replaces the store contents with persisted records, preserving
// positions. Used at startup and after a state import.
func (st *memeStore) Load(memes []domain.Meme) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.byID = make(map[string]*domain.Meme, len(memes))
	st.nextPos = 0
	for i := range memes {
		m := memes[i]
		st.byID[m.ID] = &m
		if m.Position >= st.nextPos {
			st.nextPos = m.Position + 1
		}
	}
}

// Add inserts a meme and assigns its position.
func (st *memeStore) Add(m *domain.Meme) {
	st.mu.Lock()
	defer st.mu.Unlock()
	m.Position = st.nextPos
	st.nextPos++
	stored := *m
	st.byID[m.ID] = &stored
}

// Get returns a copy of the meme with the given ID.
func (st *memeStore) Get(id string) (domain.Meme, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	m, ok := st.byID[id]
	if !ok {
		return domain.Meme{}, false
	}
	return *m, true
}

// Remove deletes a meme. Returns false if it does not exist.
func (st *memeStore) Remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.byID[id]; !ok {
		return false
	}
	delete(st.byID, id)
	return true
}

// Mutate applies fn to the stored meme under the write lock and returns a
// copy of the result. Derived fields are refreshed after fn runs.
func (st *memeStore) Mutate(id string, fn func(*domain.Meme)) (domain.Meme, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	m, ok := st.byID[id]
	if !ok {
		return domain.Meme{}, false
	}
	fn(m)
	m.RefreshDerived()
	return *m, true
}

// Snapshot returns copies of all memes ordered by insertion position.
func (st *memeStore) Snapshot() []domain.Meme {
	st.mu.RLock()
	defer st.mu.RUnlock()
	memes := make([]domain.Meme, 0, len(st.byID))
	for _, m := range st.byID {
		memes = append(memes, *m)
	}
	sort.Slice(memes, func(i, j int) bool {
		return memes[i].Position < memes[j].Position
	})
	return memes
}

// Len returns the number of stored memes.
func (st *memeStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.byID)
}
