package scheduler

import (
	"sort"
	"time"
)

// booking pairs a meeting id with its interval inside one room's store.
type booking struct {
	id       string
	interval Interval
}

// intervalStore holds one room's active bookings ordered by start time. The
// ordering lets conflict checks and removals binary search to a position and
// inspect at most the two neighbouring bookings instead of scanning the room.
type intervalStore struct {
	bookings []booking
}

// searchStart returns the index of the first booking whose start is not
// before start, i.e. the position an interval starting at start would occupy.
func (s *intervalStore) searchStart(start time.Time) int {
	return sort.Search(len(s.bookings), func(i int) bool {
		return !s.bookings[i].interval.Start.Before(start)
	})
}

// canFit reports whether iv could be inserted without overlapping an existing
// booking. Only the predecessor and successor at the insertion point can
// conflict; every other booking is separated from iv by one of those two, so
// checking the pair is sufficient.
func (s *intervalStore) canFit(iv Interval) bool {
	idx := s.searchStart(iv.Start)
	if idx > 0 && s.bookings[idx-1].interval.End.After(iv.Start) {
		return false
	}
	if idx < len(s.bookings) && s.bookings[idx].interval.Start.Before(iv.End) {
		return false
	}
	return true
}

// insert places the booking at its sorted position. The caller must have
// verified canFit under the same critical section; insert does not re-check.
func (s *intervalStore) insert(id string, iv Interval) {
	idx := s.searchStart(iv.Start)
	s.bookings = append(s.bookings, booking{})
	copy(s.bookings[idx+1:], s.bookings[idx:])
	s.bookings[idx] = booking{id: id, interval: iv}
}

// remove deletes the booking with the given id and interval. The interval
// acts as the locate handle: starts are unique within a room because overlap
// is forbidden, so a binary search on iv.Start lands on the exact entry. The
// id is still verified before removal.
func (s *intervalStore) remove(id string, iv Interval) bool {
	idx := s.searchStart(iv.Start)
	if idx >= len(s.bookings) || s.bookings[idx].id != id {
		return false
	}
	s.bookings = append(s.bookings[:idx], s.bookings[idx+1:]...)
	return true
}

func (s *intervalStore) len() int {
	return len(s.bookings)
}
