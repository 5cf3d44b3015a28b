package memory

import (
	"context"
	"sync"

	"github.com/baechuer/eventflow/internal/domain"
)

type EventRepo struct {
	mu    sync.RWMutex
	byID  map[string]domain.Event
	order []string // insertion order for stable listings
}

func NewEventRepo() *EventRepo {
	return &EventRepo{byID: make(map[string]domain.Event)}
}

func (r *EventRepo) List(ctx context.Context) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Event, 0, len(r.order))
	for _, id := range r.order {
		if e, ok := r.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *EventRepo) Get(ctx context.Context, id string) (domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound()
	}
	return e, nil
}

func (r *EventRepo) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return domain.Event{}, domain.ErrInternal(nil)
	}
	if _, exists := r.byID[e.ID]; !exists {
		r.order = append(r.order, e.ID)
	}
	r.byID[e.ID] = e
	return e, nil
}

// Delete is idempotent: removing an id that is not present is not an error.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
