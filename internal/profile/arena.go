package profile

import (
	"fmt"

	"github.com/google/uuid"
)

// Keyed pairs an arena entry with its stable id.
type Keyed[T any] struct {
	ID    uuid.UUID
	Value T
}

// arena stores entries addressed by UUID while remembering insertion order.
type arena[T any] struct {
	order []uuid.UUID
	items map[uuid.UUID]T
}

func (a *arena[T]) add(v T) uuid.UUID {
	if a.items == nil {
		a.items = make(map[uuid.UUID]T)
	}
	id := uuid.New()
	for _, exists := a.items[id]; exists; _, exists = a.items[id] {
		id = uuid.New()
	}
	a.items[id] = v
	a.order = append(a.order, id)
	return id
}

func (a *arena[T]) update(id uuid.UUID, v T) error {
	if _, ok := a.items[id]; !ok {
		return fmt.Errorf("entry not found: %s", id)
	}
	a.items[id] = v
	return nil
}

func (a *arena[T]) remove(id uuid.UUID) {
	if _, ok := a.items[id]; !ok {
		return
	}
	delete(a.items, id)
	for i, existing := range a.order {
		if existing == id {
			a.order = append(a.order[:i], a.order[i+1:]...)
			break
		}
	}
}

func (a *arena[T]) list() []Keyed[T] {
	out := make([]Keyed[T], 0, len(a.order))
	for _, id := range a.order {
		out = append(out, Keyed[T]{ID: id, Value: a.items[id]})
	}
	return out
}
