// Package redis provides a Redis-backed room repository for deployments that
// share the catalog between instances.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/meeting-scheduler/internal/persistence"
)

// Config carries the connection settings for the Redis catalog.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// roomRecord is the stored representation of a catalog entry.
type roomRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository implements persistence.RoomRepository with Redis storage. Each
// room lives under its own key; a companion list records registration order
// so ListRooms can reproduce it.
type Repository struct {
	client    *redis.Client
	keyPrefix string
}

// NewRepository connects to Redis and verifies the connection.
func NewRepository(cfg Config) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Repository{client: client, keyPrefix: cfg.KeyPrefix}, nil
}

// Close closes the Redis connection.
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) roomKey(id string) string {
	return fmt.Sprintf("%srooms:%s", r.keyPrefix, id)
}

func (r *Repository) orderKey() string {
	return r.keyPrefix + "rooms:order"
}

// CreateRoom stores a new room and appends it to the registration order.
func (r *Repository) CreateRoom(ctx context.Context, room persistence.Room) error {
	if room.ID == "" || room.Capacity <= 0 {
		return persistence.ErrConstraintViolation
	}

	data, err := json.Marshal(toRecord(room))
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.roomKey(room.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("store room: %w", err)
	}
	if !created {
		return persistence.ErrDuplicate
	}

	if err := r.client.RPush(ctx, r.orderKey(), room.ID).Err(); err != nil {
		return fmt.Errorf("record registration order: %w", err)
	}
	return nil
}

// UpdateRoom replaces an existing room record. Registration order is kept.
func (r *Repository) UpdateRoom(ctx context.Context, room persistence.Room) error {
	if room.Capacity <= 0 {
		return persistence.ErrConstraintViolation
	}

	data, err := json.Marshal(toRecord(room))
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}

	updated, err := r.client.SetXX(ctx, r.roomKey(room.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if !updated {
		return persistence.ErrNotFound
	}
	return nil
}

// GetRoom retrieves a room by id.
func (r *Repository) GetRoom(ctx context.Context, id string) (persistence.Room, error) {
	data, err := r.client.Get(ctx, r.roomKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return persistence.Room{}, persistence.ErrNotFound
		}
		return persistence.Room{}, fmt.Errorf("get room: %w", err)
	}

	var record roomRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return persistence.Room{}, fmt.Errorf("unmarshal room: %w", err)
	}
	return fromRecord(record), nil
}

// ListRooms returns all rooms in registration order. Ids that linger in the
// order list after a concurrent delete are skipped.
func (r *Repository) ListRooms(ctx context.Context) ([]persistence.Room, error) {
	ids, err := r.client.LRange(ctx, r.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list registration order: %w", err)
	}

	rooms := make([]persistence.Room, 0, len(ids))
	for _, id := range ids {
		room, err := r.GetRoom(ctx, id)
		if err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				continue
			}
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// DeleteRoom removes a room and its registration order entry.
func (r *Repository) DeleteRoom(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, r.roomKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if deleted == 0 {
		return persistence.ErrNotFound
	}

	if err := r.client.LRem(ctx, r.orderKey(), 0, id).Err(); err != nil {
		return fmt.Errorf("remove registration order entry: %w", err)
	}
	return nil
}

func toRecord(room persistence.Room) roomRecord {
	return roomRecord{
		ID:        room.ID,
		Name:      room.Name,
		Location:  room.Location,
		Capacity:  room.Capacity,
		CreatedAt: room.CreatedAt,
		UpdatedAt: room.UpdatedAt,
	}
}

func fromRecord(record roomRecord) persistence.Room {
	return persistence.Room{
		ID:        record.ID,
		Name:      record.Name,
		Location:  record.Location,
		Capacity:  record.Capacity,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
}
