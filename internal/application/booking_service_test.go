package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/meeting-scheduler/internal/scheduler"
)

func hour(h int) time.Time {
	return time.Date(2024, 3, 14, h, 0, 0, 0, time.UTC)
}

func newBookingService(roomIDs ...string) *BookingService {
	counter := 0
	engine := scheduler.NewEngine(roomIDs, func() string {
		counter++
		return fmt.Sprintf("meeting-%d", counter)
	})
	return NewBookingService(engine)
}

func TestBookingService_ScheduleMeeting(t *testing.T) {
	t.Parallel()

	svc := newBookingService("large", "small")

	meeting, err := svc.ScheduleMeeting(context.Background(), hour(10), hour(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meeting.ID != "meeting-1" {
		t.Fatalf("expected injected id generator to be used, got %q", meeting.ID)
	}
	if meeting.RoomID != "large" {
		t.Fatalf("expected first registered room, got %q", meeting.RoomID)
	}
	if !meeting.Start.Equal(hour(10)) || !meeting.End.Equal(hour(12)) {
		t.Fatalf("unexpected interval: %+v", meeting)
	}
}

func TestBookingService_ScheduleMeeting_ValidatesInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantField string
	}{
		{name: "missing start", end: hour(12), wantField: "start"},
		{name: "missing end", start: hour(10), wantField: "end"},
		{name: "equal bounds", start: hour(15), end: hour(15), wantField: "time"},
		{name: "inverted bounds", start: hour(15), end: hour(10), wantField: "time"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newBookingService("solo")
			_, err := svc.ScheduleMeeting(context.Background(), tt.start, tt.end)

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tt.wantField]; !ok {
				t.Fatalf("expected field %q in %v", tt.wantField, vErr.FieldErrors)
			}
			if got := svc.ListMeetings(context.Background(), ""); len(got) != 0 {
				t.Fatalf("validation failure mutated state: %+v", got)
			}
		})
	}
}

func TestBookingService_ScheduleMeeting_NoRoomAvailable(t *testing.T) {
	t.Parallel()

	svc := newBookingService("solo")
	if _, err := svc.ScheduleMeeting(context.Background(), hour(0), hour(23)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.ScheduleMeeting(context.Background(), hour(10), hour(11))
	if !errors.Is(err, ErrNoRoomAvailable) {
		t.Fatalf("expected ErrNoRoomAvailable, got %v", err)
	}
	if got := len(svc.ListMeetings(context.Background(), "")); got != 1 {
		t.Fatalf("failed request mutated state: %d meetings", got)
	}
}

func TestBookingService_CancelMeeting(t *testing.T) {
	t.Parallel()

	svc := newBookingService("solo")
	meeting, err := svc.ScheduleMeeting(context.Background(), hour(10), hour(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !svc.CancelMeeting(context.Background(), meeting.ID) {
		t.Fatal("expected cancellation of known meeting to succeed")
	}
	if svc.CancelMeeting(context.Background(), meeting.ID) {
		t.Fatal("expected repeated cancellation to report false")
	}
	if svc.CancelMeeting(context.Background(), "unknown") {
		t.Fatal("expected cancellation of unknown meeting to report false")
	}
}

func TestBookingService_GetMeeting(t *testing.T) {
	t.Parallel()

	svc := newBookingService("solo")
	scheduled, err := svc.ScheduleMeeting(context.Background(), hour(10), hour(12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetMeeting(context.Background(), scheduled.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != scheduled {
		t.Fatalf("lookup mismatch: got %+v, want %+v", got, scheduled)
	}

	if _, err := svc.GetMeeting(context.Background(), "unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBookingService_ListMeetingsFiltersByRoom(t *testing.T) {
	t.Parallel()

	svc := newBookingService("a", "b")
	for i := 0; i < 2; i++ {
		if _, err := svc.ScheduleMeeting(context.Background(), hour(10), hour(12)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := len(svc.ListMeetings(context.Background(), "")); got != 2 {
		t.Fatalf("expected 2 meetings in total, got %d", got)
	}
	forB := svc.ListMeetings(context.Background(), "b")
	if len(forB) != 1 || forB[0].RoomID != "b" {
		t.Fatalf("unexpected room filter result: %+v", forB)
	}
	if got := len(svc.ListMeetings(context.Background(), "unknown")); got != 0 {
		t.Fatalf("unknown room returned meetings: %d", got)
	}
}

func TestBookingService_GetFreeRooms(t *testing.T) {
	t.Parallel()

	svc := newBookingService("a", "b")
	if _, err := svc.ScheduleMeeting(context.Background(), hour(10), hour(12)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	free, err := svc.GetFreeRooms(context.Background(), hour(11), hour(13))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(free) != 1 || free[0] != "b" {
		t.Fatalf("expected only room b free, got %v", free)
	}

	_, err = svc.GetFreeRooms(context.Background(), hour(13), hour(11))
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBookingService_CanBookRoom(t *testing.T) {
	t.Parallel()

	svc := newBookingService("solo")
	for _, bounds := range [][2]int{{10, 12}, {14, 16}} {
		if _, err := svc.ScheduleMeeting(context.Background(), hour(bounds[0]), hour(bounds[1])); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if svc.CanBookRoom(context.Background(), "solo", hour(9), hour(15)) {
		t.Fatal("overlapping request reported as bookable")
	}
	if !svc.CanBookRoom(context.Background(), "solo", hour(12), hour(14)) {
		t.Fatal("free gap reported as unavailable")
	}
	if svc.CanBookRoom(context.Background(), "unknown", hour(12), hour(14)) {
		t.Fatal("unknown room reported as bookable")
	}
}
