package memory

import (
	"context"
	"iter"

	"github.com/fuad-daoud/discord-cache/entity"
)

// table is the map-backed repository core shared by every kind. The
// backend's lock covers each call; nothing here ever fails.
type table[E entity.Entity[K], K comparable] struct {
	b     *Backend
	items map[K]E
}

func (t *table[E, K]) Get(ctx context.Context, key K) (E, bool, error) {
	t.b.mu.RLock()
	defer t.b.mu.RUnlock()

	ent, ok := t.items[key]
	return ent, ok, nil
}

func (t *table[E, K]) Upsert(ctx context.Context, ent E) error {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()

	t.items[ent.Key()] = ent
	return nil
}

func (t *table[E, K]) UpsertBulk(ctx context.Context, ents []E) error {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()

	for _, ent := range ents {
		t.items[ent.Key()] = ent
	}
	return nil
}

func (t *table[E, K]) Remove(ctx context.Context, key K) error {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()

	delete(t.items, key)
	return nil
}

// seq yields an already-collected snapshot as a one-shot sequence.
func seq[V any](vals []V) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		for _, v := range vals {
			if !yield(v, nil) {
				return
			}
		}
	}
}
