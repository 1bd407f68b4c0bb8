package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/adapter/export"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/services"
)

type ReservationHandler struct {
	svc    *services.ReservationService
	logger *zerolog.Logger
}

func NewReservationHandler(svc *services.ReservationService, logger *zerolog.Logger) *ReservationHandler {
	return &ReservationHandler{svc: svc, logger: logger}
}

// CreateReservation handles POST /api/reservations.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req services.CreateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req.OccupantID = OccupantFrom(r.Context())

	reservation, err := h.svc.CreateReservation(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.svc.CommittedView(r.Context(), reservation))
}

// UpdateReservation handles PATCH and PUT /api/reservations/{id}. Only the
// fields present in the body are applied.
func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "reservation")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	var req services.UpdateReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	patch, err := req.Patch()
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	reservation, err := h.svc.UpdateReservation(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.CommittedView(r.Context(), reservation))
}

func (h *ReservationHandler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "reservation")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	if err := h.svc.DeleteReservation(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id", "reservation")
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	reservation, err := h.svc.GetReservation(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.writeView(w, r, http.StatusOK, reservation)
}

// ListReservations handles GET /api/reservations, the admin view.
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.svc.ListReservations(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.writeViews(w, r, reservations)
}

func (h *ReservationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.svc.ListOccupantReservations(r.Context(), OccupantFrom(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	h.writeViews(w, r, reservations)
}

func (h *ReservationHandler) Export(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.svc.ListReservations(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	views, err := h.svc.Views(r.Context(), reservations)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="reservations.xlsx"`)

	if err := export.WriteReservations(w, views); err != nil {
		h.logger.Error().Err(err).Msg("reservation export failed")
	}
}

func (h *ReservationHandler) writeView(w http.ResponseWriter, r *http.Request, status int, reservation *domain.Reservation) {
	view, err := h.svc.View(r.Context(), reservation)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, status, view)
}

func (h *ReservationHandler) writeViews(w http.ResponseWriter, r *http.Request, reservations []domain.Reservation) {
	views, err := h.svc.Views(r.Context(), reservations)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, views)
}
