package scheduler

// location records the room and interval a meeting currently occupies.
type location struct {
	roomID   string
	interval Interval
}

// meetingIndex maps meeting ids to their physical location so cancellation
// never scans rooms. The engine keeps it in lockstep with the per-room
// stores: exactly one entry per active meeting, always matching an entry in
// the owning room's store.
type meetingIndex map[string]location

func (m meetingIndex) put(id, roomID string, iv Interval) {
	m[id] = location{roomID: roomID, interval: iv}
}

func (m meetingIndex) get(id string) (location, bool) {
	loc, ok := m[id]
	return loc, ok
}

func (m meetingIndex) remove(id string) {
	delete(m, id)
}
