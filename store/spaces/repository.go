package spaces

import (
	"context"
	"encoding/json"
	"iter"

	"github.com/disgoorg/snowflake/v2"

	"github.com/fuad-daoud/discord-cache/entity"
)

// objectRepository implements the storage contract for one object
// kind. key names the flat object for a record key; marker, when set,
// names the extra object kept under the record's parent prefix and
// may reuse the record's marshaled body.
type objectRepository[E entity.Entity[K], K comparable] struct {
	store  *Backend
	key    func(K) string
	marker func(ent E, body []byte) (key string, markerBody []byte)
}

func (r objectRepository[E, K]) Get(ctx context.Context, key K) (E, bool, error) {
	var zero E
	body, ok, err := r.store.getObject(ctx, r.key(key))
	if err != nil || !ok {
		return zero, false, err
	}
	var ent E
	if err := json.Unmarshal(body, &ent); err != nil {
		return zero, false, err
	}
	return ent, true, nil
}

func (r objectRepository[E, K]) Upsert(ctx context.Context, ent E) error {
	body, err := json.Marshal(ent)
	if err != nil {
		return err
	}
	if r.marker != nil {
		markerKey, markerBody := r.marker(ent, body)
		if err := r.store.putObject(ctx, markerKey, markerBody); err != nil {
			return err
		}
	}
	return r.store.putObject(ctx, r.key(ent.Key()), body)
}

func (r objectRepository[E, K]) UpsertBulk(ctx context.Context, ents []E) error {
	for _, ent := range ents {
		if err := r.Upsert(ctx, ent); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the record's objects. Kinds with a marker read the
// record first to locate it; an absent record is already removed.
func (r objectRepository[E, K]) Remove(ctx context.Context, key K) error {
	if r.marker != nil {
		ent, ok, err := r.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			markerKey, _ := r.marker(ent, nil)
			if err := r.store.deleteObject(ctx, markerKey); err != nil {
				return err
			}
		}
	}
	return r.store.deleteObject(ctx, r.key(key))
}

// idSeq lists a prefix as a one-shot sequence of the snowflakes naming
// its objects.
func idSeq(ctx context.Context, store *Backend, prefix string) iter.Seq2[snowflake.ID, error] {
	return func(yield func(snowflake.ID, error) bool) {
		keys, err := store.listKeys(ctx, prefix)
		if err != nil {
			yield(0, err)
			return
		}
		for _, key := range keys {
			id, err := idFromKey(key)
			if err != nil {
				yield(0, err)
				return
			}
			if !yield(id, nil) {
				return
			}
		}
	}
}
