// Package memory provides an in-memory room repository used as the default
// storage driver and in tests.
package memory

import (
	"context"
	"sync"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// Repository implements persistence.RoomRepository with a mutex-guarded map.
// Registration order is tracked explicitly so ListRooms can reproduce it.
type Repository struct {
	mu    sync.RWMutex
	rooms map[string]persistence.Room
	order []string
}

// NewRepository returns an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{rooms: make(map[string]persistence.Room)}
}

// CreateRoom stores a new room at the end of the registration order.
func (r *Repository) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.Capacity <= 0 {
		return persistence.ErrConstraintViolation
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.ID]; ok {
		return persistence.ErrDuplicate
	}
	r.rooms[room.ID] = room
	r.order = append(r.order, room.ID)
	return nil
}

// UpdateRoom replaces an existing room's attributes. The registration order
// is unaffected.
func (r *Repository) UpdateRoom(ctx context.Context, room persistence.Room) error {
	if room.Capacity <= 0 {
		return persistence.ErrConstraintViolation
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.ID]; !ok {
		return persistence.ErrNotFound
	}
	r.rooms[room.ID] = room
	return nil
}

// GetRoom retrieves a room by id.
func (r *Repository) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return room, nil
}

// ListRooms returns all rooms in registration order.
func (r *Repository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]persistence.Room, 0, len(r.order))
	for _, id := range r.order {
		rooms = append(rooms, r.rooms[id])
	}
	return rooms, nil
}

// DeleteRoom removes a room from the catalog and the registration order.
func (r *Repository) DeleteRoom(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.rooms, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
