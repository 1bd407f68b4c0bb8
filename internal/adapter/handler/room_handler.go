package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
)

type RoomHandler struct {
	svc    *services.RoomService
	logger *zerolog.Logger
}

func NewRoomHandler(svc *services.RoomService, logger *zerolog.Logger) *RoomHandler {
	return &RoomHandler{svc: svc, logger: logger}
}

// ListRooms handles GET /api/rooms, priced for the calling occupant.
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.ListRooms(r.Context(), OccupantFrom(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "room")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	room, err := h.svc.GetRoom(r.Context(), id, OccupantFrom(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req services.CreateRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	room, err := h.svc.CreateRoom(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, room)
}

// Availability handles GET /api/rooms/{id}/availability?date=YYYY-MM-DD.
func (h *RoomHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "room")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err = domain.ParseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date; expected YYYY-MM-DD")
			return
		}
	}

	snapshot, err := h.svc.Availability(r.Context(), id, date, OccupantFrom(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
