package store

import (
	"context"
	"sync"

	"github.com/harentsoaR/healthease-api/internal/models"
)

// MemoryCollection keeps records in process memory.
type MemoryCollection[T Record] struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]T
}

func NewMemoryCollection[T Record](seed ...T) *MemoryCollection[T] {
	c := &MemoryCollection[T]{byID: make(map[string]T, len(seed))}
	for _, rec := range seed {
		c.order = append(c.order, rec.RecordID())
		c.byID[rec.RecordID()] = rec
	}
	return c
}

func (c *MemoryCollection[T]) List(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out, nil
}

func (c *MemoryCollection[T]) Get(_ context.Context, id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.byID[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return rec, nil
}

func (c *MemoryCollection[T]) Insert(_ context.Context, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := rec.RecordID()
	if _, ok := c.byID[id]; ok {
		return ErrDuplicate
	}
	c.order = append(c.order, id)
	c.byID[id] = rec
	return nil
}

func (c *MemoryCollection[T]) Update(_ context.Context, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := rec.RecordID()
	if _, ok := c.byID[id]; !ok {
		return ErrNotFound
	}
	c.byID[id] = rec
	return nil
}

func (c *MemoryCollection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[id]; !ok {
		return ErrNotFound
	}
	delete(c.byID, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *MemoryCollection[T]) Count(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order), nil
}

// NewMemoryRepositories builds in-memory collections holding data.
func NewMemoryRepositories(data Dataset) *Repositories {
	return &Repositories{
		Appointments: NewMemoryCollection(data.Appointments...),
		Doctors:      NewMemoryCollection(data.Doctors...),
		Waitlist:     NewMemoryCollection(data.Waitlist...),
		MedicalNotes: NewMemoryCollection(data.MedicalNotes...),
		Patients:     NewMemoryCollection(data.Patients...),
		Schedule:     NewMemoryCollection(data.Schedule...),
		Emergencies:  NewMemoryCollection(data.Emergencies...),
		Users:        NewMemoryCollection(data.Users...),
		Activities:   NewMemoryCollection(data.Activities...),
		Profiles:     NewMemoryCollection[models.Profile](),
	}
}
