package graph

import (
	"encoding/json"
	"iter"

	"golang.org/x/net/context"

	"github.com/fuad-daoud/discord-cache/entity"
)

// Shapes decoded back out of node properties. Unlisted properties are
// ignored by the decoder.
type dataRecord struct {
	Data string
}

type idRecord struct {
	Id string
}

type userRecord struct {
	UserId string
}

type guildRecord struct {
	GuildId string
}

type channelRecord struct {
	Id   string
	Kind string
}

// nodeRepository implements the storage contract for one node kind.
// match renders the key-only node used in MATCH and MERGE patterns,
// node the full node with its record json, and link the relationship
// statements merged alongside an upsert.
type nodeRepository[E entity.Entity[K], K comparable] struct {
	conn  *Connection
	match func(K) any
	node  func(E, string) any
	link  func(E) []string
}

func (r nodeRepository[E, K]) Get(ctx context.Context, key K) (E, bool, error) {
	var zero E
	result, err := r.conn.Query(ctx, MatchN("n", r.match(key)), Return("n"))
	if err != nil {
		return zero, false, err
	}
	rec, ok := ParseKey[dataRecord]("n", result.Records)
	if !ok {
		return zero, false, nil
	}
	var ent E
	if err := json.Unmarshal([]byte(rec.Data), &ent); err != nil {
		return zero, false, err
	}
	return ent, true, nil
}

func (r nodeRepository[E, K]) Upsert(ctx context.Context, ent E) error {
	return r.conn.Transaction(ctx, func(write Write) error {
		return r.merge(write, ent)
	})
}

func (r nodeRepository[E, K]) UpsertBulk(ctx context.Context, ents []E) error {
	if len(ents) == 0 {
		return nil
	}
	return r.conn.Transaction(ctx, func(write Write) error {
		for _, ent := range ents {
			if err := r.merge(write, ent); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r nodeRepository[E, K]) merge(write Write, ent E) error {
	data, err := json.Marshal(ent)
	if err != nil {
		return err
	}
	set, err := Set("n", r.node(ent, string(data)))
	if err != nil {
		return err
	}
	stmts := []string{MergeN("n", r.match(ent.Key())), set}
	if r.link != nil {
		stmts = append(stmts, r.link(ent)...)
	}
	return write(stmts...)
}

func (r nodeRepository[E, K]) Remove(ctx context.Context, key K) error {
	return r.conn.Transaction(ctx, func(write Write) error {
		return write(MatchN("n", r.match(key)), DetachDelete("n"))
	})
}

// list eagerly matches every node of the pattern and decodes its
// properties.
func list[N any](ctx context.Context, conn *Connection, match any) ([]N, error) {
	result, err := conn.Query(ctx, MatchN("n", match), Return("n"))
	if err != nil {
		return nil, err
	}
	nodes, _ := ParseAll[N]("n", result.Records)
	return nodes, nil
}

// listSeq wraps list as a one-shot sequence, converting each decoded
// node with pick. The first failure ends the sequence.
func listSeq[N, V any](ctx context.Context, conn *Connection, match any, pick func(N) (V, error)) iter.Seq2[V, error] {
	return func(yield func(V, error) bool) {
		var zero V
		nodes, err := list[N](ctx, conn, match)
		if err != nil {
			yield(zero, err)
			return
		}
		for _, n := range nodes {
			v, err := pick(n)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
