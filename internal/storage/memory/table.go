// Package memory is an in-process store with the same semantics as the
// Mongo backend. It backs tests and STORE_DRIVER=memory.
package memory

import (
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"estate_hub/internal/domain"
)

// table keeps rows in insertion order, which is also the natural order of
// an unsorted Mongo find on a fresh collection.
type table[T any] struct {
	mu   sync.RWMutex
	rows []T
	id   func(*T) *primitive.ObjectID
}

func newTable[T any](id func(*T) *primitive.ObjectID) *table[T] {
	return &table[T]{id: id}
}

func (t *table[T]) insert(v *T) domain.InsertResult {
	idp := t.id(v)
	if idp.IsZero() {
		*idp = primitive.NewObjectID()
	}
	t.mu.Lock()
	t.rows = append(t.rows, *v)
	t.mu.Unlock()
	return domain.InsertResult{Acknowledged: true, InsertedID: *idp}
}

func (t *table[T]) findOne(match func(*T) bool) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := range t.rows {
		if match(&t.rows[i]) {
			return t.rows[i], nil
		}
	}
	var zero T
	return zero, domain.ErrNotFound
}

func (t *table[T]) findByID(id primitive.ObjectID) (T, error) {
	return t.findOne(func(v *T) bool { return *t.id(v) == id })
}

func (t *table[T]) findMany(match func(*T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := []T{}
	for i := range t.rows {
		if match == nil || match(&t.rows[i]) {
			out = append(out, t.rows[i])
		}
	}
	return out
}

// update applies mutate to every matching row (or only the first when one
// is set). mutate reports whether it changed the row.
func (t *table[T]) update(match func(*T) bool, one bool, mutate func(*T) bool) domain.UpdateResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	res := domain.UpdateResult{Acknowledged: true}
	for i := range t.rows {
		if !match(&t.rows[i]) {
			continue
		}
		res.MatchedCount++
		if mutate(&t.rows[i]) {
			res.ModifiedCount++
		}
		if one {
			break
		}
	}
	return res
}

func (t *table[T]) updateByID(id primitive.ObjectID, mutate func(*T) bool) domain.UpdateResult {
	return t.update(func(v *T) bool { return *t.id(v) == id }, true, mutate)
}

func (t *table[T]) deleteByID(id primitive.ObjectID) domain.DeleteResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.rows {
		if *t.id(&t.rows[i]) == id {
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
			return domain.DeleteResult{Acknowledged: true, DeletedCount: 1}
		}
	}
	return domain.DeleteResult{Acknowledged: true}
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// setString is the mutate helper for single-field string updates.
func setString(dst *string, v string) bool {
	if *dst == v {
		return false
	}
	*dst = v
	return true
}
