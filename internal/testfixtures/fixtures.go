// Package testfixtures provides deterministic building blocks shared by the
// test suites: a controllable clock, a sequential id generator, and canonical
// room and interval fixtures.
package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/meeting-scheduler/internal/persistence"
	"github.com/example/meeting-scheduler/internal/scheduler"
)

var roomCounter uint64

var referenceTime = time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// All interval fixtures are offsets from this instant.
func ReferenceTime() time.Time {
	return referenceTime
}

// RoomOption configures a generated room fixture.
type RoomOption func(*persistence.Room)

// WithRoomID pins the room identifier instead of drawing a sequential one.
func WithRoomID(id string) RoomOption {
	return func(r *persistence.Room) { r.ID = id }
}

// WithRoomName overrides the generated room name.
func WithRoomName(name string) RoomOption {
	return func(r *persistence.Room) { r.Name = name }
}

// WithRoomLocation sets the room location.
func WithRoomLocation(location string) RoomOption {
	return func(r *persistence.Room) { r.Location = location }
}

// WithRoomCapacity overrides the default capacity.
func WithRoomCapacity(capacity int) RoomOption {
	return func(r *persistence.Room) { r.Capacity = capacity }
}

// Room builds a deterministic room record. Identifiers are sequential across
// a test binary so parallel subtests never collide.
func Room(opts ...RoomOption) persistence.Room {
	n := atomic.AddUint64(&roomCounter, 1)
	room := persistence.Room{
		ID:        fmt.Sprintf("room-%d", n),
		Name:      fmt.Sprintf("Room %d", n),
		Capacity:  6,
		CreatedAt: referenceTime,
		UpdatedAt: referenceTime,
	}
	for _, opt := range opts {
		opt(&room)
	}
	return room
}

// HourRange returns a half-open interval spanning whole hours offset from
// ReferenceTime, so HourRange(9, 10) is 09:00-10:00 on the reference day.
func HourRange(startHour, endHour int) scheduler.Interval {
	return scheduler.Interval{
		Start: referenceTime.Add(time.Duration(startHour) * time.Hour),
		End:   referenceTime.Add(time.Duration(endHour) * time.Hour),
	}
}
