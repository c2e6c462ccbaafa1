package persistence

import "context"

// RoomRepository exposes CRUD operations for the room catalog.
//
// ListRooms returns rooms in registration order. The scheduling engine seeds
// its first-fit iteration from that order, so implementations must preserve
// it across restarts.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}
