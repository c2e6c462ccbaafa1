package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/meeting-scheduler/internal/scheduler"
)

// BookingService exposes the scheduling engine to transport callers, adding
// input validation, structured logging, and error mapping in front of it.
// The engine itself stays purely in-memory; bookings are not persisted.
type BookingService struct {
	engine *scheduler.Engine
	logger *slog.Logger
}

// NewBookingService constructs a booking service around the given engine.
func NewBookingService(engine *scheduler.Engine) *BookingService {
	return NewBookingServiceWithLogger(engine, nil)
}

// NewBookingServiceWithLogger constructs a booking service with a specified logger.
func NewBookingServiceWithLogger(engine *scheduler.Engine, logger *slog.Logger) *BookingService {
	return &BookingService{engine: engine, logger: defaultLogger(logger)}
}

func (s *BookingService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "BookingService", operation, attrs...)
}

// ScheduleMeeting books the first room in registration order that can hold
// [start, end). Validation failures and room exhaustion are reported to the
// caller and leave the engine untouched.
func (s *BookingService) ScheduleMeeting(ctx context.Context, start, end time.Time) (meeting Meeting, err error) {
	if s == nil || s.engine == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "ScheduleMeeting",
		"start", start,
		"end", end,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to schedule meeting", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("meeting_id", meeting.ID, "room_id", meeting.RoomID).InfoContext(ctx, "meeting scheduled")
	}()

	vErr := validateInterval(start, end)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	scheduled, schedErr := s.engine.Schedule(start, end)
	switch {
	case errors.Is(schedErr, scheduler.ErrInvalidInterval):
		inner := &ValidationError{}
		inner.add("time", "start must be before end")
		err = inner
		return
	case errors.Is(schedErr, scheduler.ErrNoRoomAvailable):
		err = ErrNoRoomAvailable
		return
	case schedErr != nil:
		err = schedErr
		return
	}

	meeting = toMeeting(scheduled)
	return
}

// CancelMeeting removes the meeting with the given id. Unknown ids report
// false; that is a defined outcome rather than an error, and the caller owns
// any retry decision.
func (s *BookingService) CancelMeeting(ctx context.Context, meetingID string) bool {
	if s == nil || s.engine == nil {
		return false
	}

	logger := s.loggerWith(ctx, "CancelMeeting", "meeting_id", meetingID)
	cancelled := s.engine.Cancel(meetingID)
	if cancelled {
		logger.InfoContext(ctx, "meeting cancelled")
	} else {
		logger.InfoContext(ctx, "cancellation ignored for unknown meeting")
	}
	return cancelled
}

// GetMeeting returns the active meeting with the given id.
func (s *BookingService) GetMeeting(ctx context.Context, meetingID string) (Meeting, error) {
	if s == nil || s.engine == nil {
		return Meeting{}, fmt.Errorf("BookingService is not configured")
	}

	meeting, ok := s.engine.Lookup(meetingID)
	if !ok {
		return Meeting{}, ErrNotFound
	}
	return toMeeting(meeting), nil
}

// ListMeetings returns a snapshot of active meetings. When roomID is empty
// all rooms are included, in registration order.
func (s *BookingService) ListMeetings(ctx context.Context, roomID string) []Meeting {
	if s == nil || s.engine == nil {
		return nil
	}

	var snapshot []scheduler.Meeting
	if roomID == "" {
		snapshot = s.engine.Meetings()
	} else {
		snapshot = s.engine.MeetingsInRoom(roomID)
	}

	meetings := make([]Meeting, 0, len(snapshot))
	for _, meeting := range snapshot {
		meetings = append(meetings, toMeeting(meeting))
	}
	return meetings
}

// GetFreeRooms returns every room that could hold [start, end), in
// registration order.
func (s *BookingService) GetFreeRooms(ctx context.Context, start, end time.Time) (roomIDs []string, err error) {
	if s == nil || s.engine == nil {
		err = fmt.Errorf("BookingService is not configured")
		return
	}

	logger := s.loggerWith(ctx, "GetFreeRooms",
		"start", start,
		"end", end,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to query free rooms", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("result_count", len(roomIDs)).InfoContext(ctx, "free rooms listed")
	}()

	vErr := validateInterval(start, end)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	roomIDs = s.engine.FreeRooms(start, end)
	return
}

// CanBookRoom reports whether the room could hold [start, end) right now.
// Unknown rooms and invalid ranges report false.
func (s *BookingService) CanBookRoom(ctx context.Context, roomID string, start, end time.Time) bool {
	if s == nil || s.engine == nil {
		return false
	}
	return s.engine.CanBook(roomID, start, end)
}

func validateInterval(start, end time.Time) *ValidationError {
	vErr := &ValidationError{}

	if start.IsZero() {
		vErr.add("start", "start is required")
	}
	if end.IsZero() {
		vErr.add("end", "end is required")
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		vErr.add("time", "start must be before end")
	}

	return vErr
}

func toMeeting(meeting scheduler.Meeting) Meeting {
	return Meeting{
		ID:     meeting.ID,
		RoomID: meeting.RoomID,
		Start:  meeting.Interval.Start,
		End:    meeting.Interval.End,
	}
}
