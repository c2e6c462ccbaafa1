package application

import "time"

// Meeting represents an active booking exposed by the application services.
type Meeting struct {
	ID     string
	RoomID string
	Start  time.Time
	End    time.Time
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name     string
	Location string
	Capacity int
}

// Room represents a catalog entry for a bookable meeting room.
type Room struct {
	ID        string
	Name      string
	Location  string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
