package scheduler

import (
	"errors"
	"strconv"
	"sync"
	"time"
)

var (
	// ErrInvalidInterval is returned when a requested range does not satisfy start < end.
	ErrInvalidInterval = errors.New("scheduler: start must be before end")
	// ErrNoRoomAvailable is returned when every tracked room conflicts with the requested range.
	ErrNoRoomAvailable = errors.New("scheduler: no room available")
	// ErrRoomOccupied is returned when a room cannot be removed because it still holds meetings.
	ErrRoomOccupied = errors.New("scheduler: room has active meetings")
)

// Meeting is an active booking: a unique, immutable interval assigned to
// exactly one room. Meetings are created by Schedule and destroyed by Cancel;
// there is no move or resize.
type Meeting struct {
	ID       string
	RoomID   string
	Interval Interval
}

// Engine assigns rooms to meeting requests and guarantees that no two active
// meetings in the same room overlap. Room selection is deterministic
// first-fit in registration order; no load-balancing or best-fit policy is
// applied.
//
// All methods are safe for concurrent use. Every mutation updates the
// per-room store and the meeting index under one write lock, so the two
// structures always describe the same set of meetings; reads take the read
// lock and may run concurrently with each other.
type Engine struct {
	mu       sync.RWMutex
	roomIDs  []string // registration order, drives first-fit
	stores   map[string]*intervalStore
	index    meetingIndex
	generate func() string
}

// NewEngine constructs an engine tracking the given rooms in order. Duplicate
// and empty ids are ignored. When generate is nil, sequential decimal ids
// starting at 1 are issued.
func NewEngine(roomIDs []string, generate func() string) *Engine {
	e := &Engine{
		stores:   make(map[string]*intervalStore),
		index:    make(meetingIndex),
		generate: generate,
	}
	if e.generate == nil {
		var counter uint64
		e.generate = func() string {
			counter++
			return strconv.FormatUint(counter, 10)
		}
	}
	for _, id := range roomIDs {
		e.addRoomLocked(id)
	}
	return e
}

// AddRoom starts tracking a room. Rooms added later sort after existing ones
// in first-fit order. Adding a known room is a no-op.
func (e *Engine) AddRoom(roomID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addRoomLocked(roomID)
}

func (e *Engine) addRoomLocked(roomID string) {
	if roomID == "" {
		return
	}
	if _, ok := e.stores[roomID]; ok {
		return
	}
	e.stores[roomID] = &intervalStore{}
	e.roomIDs = append(e.roomIDs, roomID)
}

// RemoveRoom stops tracking a room. Unknown rooms are a no-op. A room that
// still holds active meetings cannot be removed; cancel them first.
func (e *Engine) RemoveRoom(roomID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	store, ok := e.stores[roomID]
	if !ok {
		return nil
	}
	if store.len() > 0 {
		return ErrRoomOccupied
	}

	delete(e.stores, roomID)
	for i, id := range e.roomIDs {
		if id == roomID {
			e.roomIDs = append(e.roomIDs[:i], e.roomIDs[i+1:]...)
			break
		}
	}
	return nil
}

// Schedule books [start, end) into the first room in registration order that
// can hold it. On success the meeting is recorded in the room's store and the
// meeting index as one atomic step. Failures mutate nothing.
func (e *Engine) Schedule(start, end time.Time) (Meeting, error) {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return Meeting{}, ErrInvalidInterval
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, roomID := range e.roomIDs {
		store := e.stores[roomID]
		if !store.canFit(iv) {
			continue
		}
		meeting := Meeting{ID: e.generate(), RoomID: roomID, Interval: iv}
		store.insert(meeting.ID, iv)
		e.index.put(meeting.ID, roomID, iv)
		return meeting, nil
	}

	return Meeting{}, ErrNoRoomAvailable
}

// Cancel removes the meeting with the given id from both structures. It
// reports false for unknown ids; that is a defined outcome, not a fault, and
// nothing is mutated.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	loc, ok := e.index.get(id)
	if !ok {
		return false
	}
	if store := e.stores[loc.roomID]; store != nil {
		store.remove(id, loc.interval)
	}
	e.index.remove(id)
	return true
}

// CanBook reports whether the room could hold [start, end) right now, without
// booking it. Unknown rooms and invalid ranges report false.
func (e *Engine) CanBook(roomID string, start, end time.Time) bool {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	store, ok := e.stores[roomID]
	return ok && store.canFit(iv)
}

// FreeRooms returns every tracked room that could hold [start, end), in
// registration order. An invalid range matches no rooms.
func (e *Engine) FreeRooms(start, end time.Time) []string {
	iv := Interval{Start: start, End: end}
	if !iv.Valid() {
		return nil
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	free := make([]string, 0, len(e.roomIDs))
	for _, roomID := range e.roomIDs {
		if e.stores[roomID].canFit(iv) {
			free = append(free, roomID)
		}
	}
	return free
}

// Rooms returns the tracked room ids in registration order.
func (e *Engine) Rooms() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]string, len(e.roomIDs))
	copy(out, e.roomIDs)
	return out
}

// Lookup returns the active meeting with the given id.
func (e *Engine) Lookup(id string) (Meeting, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	loc, ok := e.index.get(id)
	if !ok {
		return Meeting{}, false
	}
	return Meeting{ID: id, RoomID: loc.roomID, Interval: loc.interval}, true
}

// Meetings returns a snapshot of all active meetings grouped by room in
// registration order, each room's meetings ordered by start time.
func (e *Engine) Meetings() []Meeting {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]Meeting, 0, len(e.index))
	for _, roomID := range e.roomIDs {
		out = append(out, meetingsFromStore(roomID, e.stores[roomID])...)
	}
	return out
}

// MeetingsInRoom returns the active meetings for one room ordered by start
// time. Unknown rooms yield an empty snapshot.
func (e *Engine) MeetingsInRoom(roomID string) []Meeting {
	e.mu.RLock()
	defer e.mu.RUnlock()

	store, ok := e.stores[roomID]
	if !ok {
		return nil
	}
	return meetingsFromStore(roomID, store)
}

func meetingsFromStore(roomID string, store *intervalStore) []Meeting {
	out := make([]Meeting, 0, store.len())
	for _, b := range store.bookings {
		out = append(out, Meeting{ID: b.id, RoomID: roomID, Interval: b.interval})
	}
	return out
}
