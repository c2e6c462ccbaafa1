package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/meeting-scheduler/internal/application"
)

type bookingService interface {
	ScheduleMeeting(ctx context.Context, start, end time.Time) (application.Meeting, error)
	CancelMeeting(ctx context.Context, meetingID string) bool
	GetMeeting(ctx context.Context, meetingID string) (application.Meeting, error)
	ListMeetings(ctx context.Context, roomID string) []application.Meeting
	GetFreeRooms(ctx context.Context, start, end time.Time) ([]string, error)
	CanBookRoom(ctx context.Context, roomID string, start, end time.Time) bool
}

type MeetingHandler struct {
	service   bookingService
	responder responder
	logger    *slog.Logger
}

func NewMeetingHandler(service bookingService, logger *slog.Logger) *MeetingHandler {
	base := defaultLogger(logger)
	return &MeetingHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *MeetingHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "MeetingHandler", operation, attrs...)
}

// Create books a meeting into the first free room.
func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req meetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode meeting request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")

	meeting, err := h.service.ScheduleMeeting(r.Context(), req.Start, req.End)
	if err != nil {
		logger.ErrorContext(r.Context(), "meeting scheduling failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("meeting_id", meeting.ID, "room_id", meeting.RoomID).InfoContext(r.Context(), "meeting scheduled")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, meetingResponse{Meeting: toMeetingDTO(meeting)})
}

// Get returns one active meeting.
func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, ok := MeetingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(meetingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMeetingID)
		return
	}

	meeting, err := h.service.GetMeeting(r.Context(), meetingID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, meetingResponse{Meeting: toMeetingDTO(meeting)})
}

// List returns all active meetings, optionally filtered by ?room=.
func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	roomID := strings.TrimSpace(r.URL.Query().Get("room"))
	meetings := h.service.ListMeetings(r.Context(), roomID)

	h.log(r.Context(), "List", "result_count", len(meetings)).InfoContext(r.Context(), "meetings listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listMeetingsResponse{Meetings: toMeetingDTOs(meetings)})
}

// Delete cancels a meeting. Unknown ids respond 404; the engine treats them
// as a defined no-op.
func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	meetingID, ok := MeetingIDFromContext(r.Context())
	if !ok || strings.TrimSpace(meetingID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMeetingID)
		return
	}

	logger := h.log(r.Context(), "Delete", "meeting_id", meetingID)
	if !h.service.CancelMeeting(r.Context(), meetingID) {
		logger.InfoContext(r.Context(), "cancellation ignored for unknown meeting")
		h.responder.writeJSON(r.Context(), w, http.StatusNotFound, errorResponse{Message: errMeetingNotFound.Error()})
		return
	}

	logger.InfoContext(r.Context(), "meeting cancelled")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// FreeRooms returns the rooms able to hold the queried range, in
// registration order.
func (h *MeetingHandler) FreeRooms(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	start, end, err := timeRangeFromQuery(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	roomIDs, err := h.service.GetFreeRooms(r.Context(), start, end)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.log(r.Context(), "FreeRooms", "result_count", len(roomIDs)).InfoContext(r.Context(), "free rooms listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, freeRoomsResponse{RoomIDs: roomIDs})
}

// Availability is a read-only probe for a single room.
func (h *MeetingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	roomID, ok := RoomIDFromContext(r.Context())
	if !ok || strings.TrimSpace(roomID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidRoomID)
		return
	}

	start, end, err := timeRangeFromQuery(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	available := h.service.CanBookRoom(r.Context(), roomID, start, end)
	h.responder.writeJSON(r.Context(), w, http.StatusOK, availabilityResponse{RoomID: roomID, Available: available})
}

func timeRangeFromQuery(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()
	start, err := time.Parse(time.RFC3339, query.Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidTimeRange
	}
	end, err := time.Parse(time.RFC3339, query.Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, errInvalidTimeRange
	}
	return start, end, nil
}

type meetingRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type meetingResponse struct {
	Meeting meetingDTO `json:"meeting"`
}

type listMeetingsResponse struct {
	Meetings []meetingDTO `json:"meetings"`
}

type freeRoomsResponse struct {
	RoomIDs []string `json:"room_ids"`
}

type availabilityResponse struct {
	RoomID    string `json:"room_id"`
	Available bool   `json:"available"`
}

type meetingDTO struct {
	ID     string `json:"id"`
	RoomID string `json:"room_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

func toMeetingDTO(meeting application.Meeting) meetingDTO {
	return meetingDTO{
		ID:     meeting.ID,
		RoomID: meeting.RoomID,
		Start:  meeting.Start.Format(time.RFC3339),
		End:    meeting.End.Format(time.RFC3339),
	}
}

func toMeetingDTOs(meetings []application.Meeting) []meetingDTO {
	out := make([]meetingDTO, 0, len(meetings))
	for _, meeting := range meetings {
		out = append(out, toMeetingDTO(meeting))
	}
	return out
}
