package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "uptask:"

var ErrNotFound = errors.New("document not found")

// Index names a secondary sorted set a document belongs to,
// e.g. {Field: "creator", Value: userID}.
type Index struct {
	Field string
	Value string
}

// Collection stores JSON documents of type T under uptask:<name>:doc:<id>.
// Secondary indexes are sorted sets scored by a per-collection insert sequence
// so listings come back newest first.
type Collection[T any] struct {
	client *redis.Client
	name   string
}

func NewCollection[T any](client *redis.Client, name string) *Collection[T] {
	return &Collection[T]{client: client, name: name}
}

func (c *Collection[T]) docKey(id string) string {
	return keyPrefix + c.name + ":doc:" + id
}

func (c *Collection[T]) seqKey() string {
	return keyPrefix + c.name + ":seq"
}

func (c *Collection[T]) indexKey(idx Index) string {
	return keyPrefix + c.name + ":by_" + idx.Field + ":" + idx.Value
}

func (c *Collection[T]) uniqueKey(field, value string) string {
	return keyPrefix + c.name + ":unique_" + field + ":" + value
}

// Insert writes a new document and adds it to the given indexes in one
// transaction. A document inserted later always ranks newer.
func (c *Collection[T]) Insert(ctx context.Context, id string, doc *T, indexes ...Index) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.name, err)
	}

	seq, err := c.client.Incr(ctx, c.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("insert %s: %w", c.name, err)
	}
	score := float64(seq)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, c.docKey(id), data, 0)
	for _, idx := range indexes {
		pipe.ZAdd(ctx, c.indexKey(idx), redis.Z{Score: score, Member: id})
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert %s: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.client.Get(ctx, c.docKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.name, err)
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", c.name, err)
	}
	return &doc, nil
}

// Replace overwrites an existing document. Index membership is unchanged.
func (c *Collection[T]) Replace(ctx context.Context, id string, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.name, err)
	}

	ok, err := c.client.SetXX(ctx, c.docKey(id), data, 0).Result()
	if err != nil {
		return fmt.Errorf("replace %s: %w", c.name, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (c *Collection[T]) Delete(ctx context.Context, id string, indexes ...Index) error {
	pipe := c.client.TxPipeline()
	del := pipe.Del(ctx, c.docKey(id))
	for _, idx := range indexes {
		pipe.ZRem(ctx, c.indexKey(idx), id)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	if del.Val() == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the documents in an index, newest first. Index entries whose
// document has vanished are skipped.
func (c *Collection[T]) List(ctx context.Context, idx Index) ([]T, error) {
	ids, err := c.client.ZRevRange(ctx, c.indexKey(idx), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}

	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.docKey(id)
	}

	vals, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}

	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var doc T
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", c.name, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

// DeleteIndex removes every document in idx together with the index itself
// and reports how many documents were deleted.
func (c *Collection[T]) DeleteIndex(ctx context.Context, idx Index) (int, error) {
	key := c.indexKey(idx)
	ids, err := c.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("delete %s index: %w", c.name, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.docKey(id)
	}

	pipe := c.client.TxPipeline()
	del := pipe.Del(ctx, keys...)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("delete %s index: %w", c.name, err)
	}
	return int(del.Val()), nil
}

// Reserve claims field=value for id. It returns false if another document
// already holds the value.
func (c *Collection[T]) Reserve(ctx context.Context, field, value, id string) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.uniqueKey(field, value), id, 0).Result()
	if err != nil {
		return false, fmt.Errorf("reserve %s %s: %w", c.name, field, err)
	}
	return ok, nil
}

func (c *Collection[T]) Release(ctx context.Context, field, value string) error {
	if err := c.client.Del(ctx, c.uniqueKey(field, value)).Err(); err != nil {
		return fmt.Errorf("release %s %s: %w", c.name, field, err)
	}
	return nil
}

// Lookup resolves a reserved unique value to its document id.
func (c *Collection[T]) Lookup(ctx context.Context, field, value string) (string, error) {
	id, err := c.client.Get(ctx, c.uniqueKey(field, value)).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup %s %s: %w", c.name, field, err)
	}
	return id, nil
}
