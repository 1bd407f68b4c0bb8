package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/platform/metrics"
)

type CreateReservationRequest struct {
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	OccupantID   string `json:"-"`
}

type UpdateReservationRequest struct {
	Status                   *string `json:"status"`
	CheckInDate              *string `json:"check_in_date"`
	CheckOutDate             *string `json:"check_out_date"`
	CheckInConfirmedByAdmin  *bool   `json:"check_in_confirmed_by_admin"`
	CheckOutConfirmedByAdmin *bool   `json:"check_out_confirmed_by_admin"`
}

// Patch converts the request into a domain patch, parsing only present dates.
func (r UpdateReservationRequest) Patch() (domain.ReservationPatch, error) {
	patch := domain.ReservationPatch{
		Status:                   r.Status,
		CheckInConfirmedByAdmin:  r.CheckInConfirmedByAdmin,
		CheckOutConfirmedByAdmin: r.CheckOutConfirmedByAdmin,
	}

	if r.CheckInDate != nil {
		d, err := domain.ParseDate(*r.CheckInDate)
		if err != nil {
			return patch, domain.NewValidationError("reservation", "", "invalid check_in_date; expected YYYY-MM-DD")
		}
		patch.CheckIn = &d
	}

	if r.CheckOutDate != nil {
		d, err := domain.ParseDate(*r.CheckOutDate)
		if err != nil {
			return patch, domain.NewValidationError("reservation", "", "invalid check_out_date; expected YYYY-MM-DD")
		}
		patch.CheckOut = &d
	}

	return patch, nil
}

type ReservationView struct {
	ID                       string  `json:"id"`
	RoomID                   string  `json:"room_id"`
	RoomNumber               string  `json:"room_number,omitempty"`
	RoomType                 string  `json:"room_type,omitempty"`
	Price                    float64 `json:"price"`
	DiscountPercent          float64 `json:"discount_percent"`
	CheckInDate              string  `json:"check_in_date,omitempty"`
	CheckOutDate             string  `json:"check_out_date,omitempty"`
	Status                   string  `json:"status"`
	OccupantID               string  `json:"occupant_id"`
	CheckInConfirmedByAdmin  bool    `json:"check_in_confirmed_by_admin"`
	CheckOutConfirmedByAdmin bool    `json:"check_out_confirmed_by_admin"`
}

type ReservationService struct {
	roomRepo        ports.RoomRepository
	reservationRepo ports.ReservationRepository
	pricing         *PricingService
	locks           *roomLocks
	hooks           *hookRunner
	now             ports.Clock
	logger          *zerolog.Logger
}

func NewReservationService(
	roomRepo ports.RoomRepository,
	reservationRepo ports.ReservationRepository,
	pricing *PricingService,
	logger *zerolog.Logger,
) *ReservationService {
	return &ReservationService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		pricing:         pricing,
		locks:           newRoomLocks(),
		hooks:           &hookRunner{logger: logger},
		now:             time.Now,
		logger:          logger,
	}
}

// AddHook appends a post-commit hook; hooks run in registration order.
func (s *ReservationService) AddHook(hook PostCommitHook) {
	s.hooks.add(hook)
}

func (s *ReservationService) SetClock(clock ports.Clock) {
	s.now = clock
}

func (s *ReservationService) today() time.Time {
	return domain.DateOf(s.now())
}

// CreateReservation stores a PENDING reservation unless a CONFIRMED one on the
// same room overlaps the requested stay. Room state is not touched.
func (s *ReservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*domain.Reservation, error) {
	if strings.TrimSpace(req.RoomID) == "" {
		return nil, domain.NewValidationError("reservation", "", "room must be specified for booking")
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, domain.NewValidationError("reservation", "", "invalid room id")
	}

	occupantID := strings.TrimSpace(req.OccupantID)
	if occupantID == "" {
		return nil, domain.NewValidationError("reservation", "", "occupant is required")
	}

	checkIn, err := domain.ParseDate(req.CheckInDate)
	if err != nil {
		return nil, domain.NewValidationError("reservation", "", "invalid check_in_date; expected YYYY-MM-DD")
	}

	checkOut, err := domain.ParseDate(req.CheckOutDate)
	if err != nil {
		return nil, domain.NewValidationError("reservation", "", "invalid check_out_date; expected YYYY-MM-DD")
	}

	span := domain.NewDateRange(checkIn, checkOut)
	if !span.IsValid() {
		return nil, domain.NewValidationError("reservation", "", "check_out_date must be after check_in_date")
	}

	room, err := s.roomRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, keepDomainErr(err, "get room")
	}

	unlock := s.locks.lock(roomID)
	reservation, err := s.insertPending(ctx, roomID, occupantID, span)
	unlock()

	if err != nil {
		return nil, err
	}

	metrics.IncReservationCreated()
	s.logger.Info().
		Str("reservation_id", reservation.ID.String()).
		Str("room_id", roomID.String()).
		Str("occupant_id", occupantID).
		Msg("reservation created")

	s.hooks.run(ctx, RoomChange{Op: OpCreate, Room: room, Reservation: reservation, PriceDate: span.Start})

	return reservation, nil
}

func (s *ReservationService) insertPending(ctx context.Context, roomID uuid.UUID, occupantID string, span domain.DateRange) (*domain.Reservation, error) {
	conflicts, err := s.reservationRepo.FindOverlapping(ctx, roomID, span, domain.ReservationConfirmed)
	if err != nil {
		return nil, fmt.Errorf("find conflicting reservations: %w", err)
	}

	if len(conflicts) > 0 {
		metrics.IncConflict()
		return nil, domain.NewConflictError(roomID.String(), conflicts[0].ID.String(), "")
	}

	now := s.now()
	reservation := &domain.Reservation{
		ID:         uuid.New(),
		OccupantID: occupantID,
		RoomID:     roomID,
		CheckIn:    span.Start,
		CheckOut:   span.End,
		Status:     domain.ReservationPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.IncConflict()
			return nil, err
		}
		return nil, fmt.Errorf("save reservation: %w", err)
	}

	return reservation, nil
}

// UpdateReservation applies the present fields of patch and re-derives the
// room's state from the resulting status. Pricing and broadcast run after the
// room guard is released and cannot fail the update.
func (s *ReservationService) UpdateReservation(ctx context.Context, reservationID uuid.UUID, patch domain.ReservationPatch) (*domain.Reservation, error) {
	current, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, keepDomainErr(err, "get reservation")
	}

	unlock := s.locks.lock(current.RoomID)
	saved, room, err := s.applyUpdate(ctx, reservationID, patch)
	unlock()

	if err != nil {
		return nil, err
	}

	metrics.IncReservationUpdated(statusLabel(saved.Status))
	s.logger.Info().
		Str("reservation_id", saved.ID.String()).
		Str("status", string(saved.Status)).
		Str("room_status", string(room.Status)).
		Msg("reservation updated")

	priceDate := saved.CheckIn
	if priceDate.IsZero() {
		priceDate = s.today()
	}

	s.hooks.run(ctx, RoomChange{Op: OpUpdate, Room: room, Reservation: saved, PriceDate: priceDate})

	return saved, nil
}

func (s *ReservationService) applyUpdate(ctx context.Context, reservationID uuid.UUID, patch domain.ReservationPatch) (*domain.Reservation, *domain.Room, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, nil, keepDomainErr(err, "get reservation")
	}

	room, err := s.roomRepo.GetRoom(ctx, reservation.RoomID)
	if err != nil {
		return nil, nil, keepDomainErr(err, "get room")
	}

	wasConfirmed := reservation.IsConfirmed()
	patch.Apply(reservation)

	if patch.TouchesDates() && !reservation.Range().IsValid() {
		return nil, nil, domain.NewValidationError("reservation", reservationID.String(), "check_out_date must be after check_in_date")
	}

	if reservation.IsConfirmed() && (!wasConfirmed || patch.TouchesDates()) {
		if err := s.ensureNoConflict(ctx, reservation); err != nil {
			return nil, nil, err
		}
	}

	reservation.UpdatedAt = s.now()
	if err := s.reservationRepo.Save(ctx, reservation); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			metrics.IncConflict()
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("save reservation: %w", err)
	}

	switch {
	case reservation.IsCancelled():
		if err := s.releaseIfFreeToday(ctx, room); err != nil {
			return nil, nil, err
		}
	case reservation.IsConfirmed():
		room.SetStatus(domain.RoomBooked)
		if err := s.roomRepo.SaveRoom(ctx, room); err != nil {
			return nil, nil, fmt.Errorf("update room state: %w", err)
		}
	}

	return reservation, room, nil
}

func (s *ReservationService) ensureNoConflict(ctx context.Context, reservation *domain.Reservation) error {
	conflicts, err := s.reservationRepo.FindOverlapping(ctx, reservation.RoomID, reservation.Range(), domain.ReservationConfirmed)
	if err != nil {
		return fmt.Errorf("find conflicting reservations: %w", err)
	}

	for _, c := range conflicts {
		if c.ID == reservation.ID {
			continue
		}
		metrics.IncConflict()
		return domain.NewConflictError(reservation.RoomID.String(), c.ID.String(), "reservation "+reservation.ID.String()+" cannot be confirmed")
	}

	return nil
}

// releaseIfFreeToday marks room AVAILABLE when no CONFIRMED reservation covers today.
func (s *ReservationService) releaseIfFreeToday(ctx context.Context, room *domain.Room) error {
	conflicts, err := s.reservationRepo.FindOverlapping(ctx, room.ID, domain.DayRange(s.today()), domain.ReservationConfirmed)
	if err != nil {
		return fmt.Errorf("find reservations for today: %w", err)
	}

	if len(conflicts) > 0 {
		return nil
	}

	room.SetStatus(domain.RoomAvailable)
	if err := s.roomRepo.SaveRoom(ctx, room); err != nil {
		return fmt.Errorf("update room state: %w", err)
	}

	return nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, reservationID uuid.UUID) error {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return keepDomainErr(err, "get reservation")
	}

	unlock := s.locks.lock(reservation.RoomID)
	room, err := s.applyDelete(ctx, reservation)
	unlock()

	if err != nil {
		return err
	}

	metrics.IncReservationDeleted()
	s.logger.Info().
		Str("reservation_id", reservationID.String()).
		Str("room_id", reservation.RoomID.String()).
		Msg("reservation deleted")

	if room != nil {
		s.hooks.run(ctx, RoomChange{Op: OpDelete, Room: room, Reservation: reservation, PriceDate: s.today()})
	}

	return nil
}

func (s *ReservationService) applyDelete(ctx context.Context, reservation *domain.Reservation) (*domain.Room, error) {
	if err := s.reservationRepo.Delete(ctx, reservation.ID); err != nil {
		return nil, keepDomainErr(err, "delete reservation")
	}

	room, err := s.roomRepo.GetRoom(ctx, reservation.RoomID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	if err := s.releaseIfFreeToday(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, keepDomainErr(err, "get reservation")
	}
	return reservation, nil
}

// ListReservations is the admin view; cancelled reservations are left out.
func (s *ReservationService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	all, err := s.reservationRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}

	active := make([]domain.Reservation, 0, len(all))
	for _, r := range all {
		if r.IsCancelled() {
			continue
		}
		active = append(active, r)
	}

	return active, nil
}

func (s *ReservationService) ListOccupantReservations(ctx context.Context, occupantID string) ([]domain.Reservation, error) {
	if strings.TrimSpace(occupantID) == "" {
		return nil, domain.NewValidationError("reservation", "", "occupant is required")
	}

	reservations, err := s.reservationRepo.FindByOccupant(ctx, occupantID)
	if err != nil {
		return nil, fmt.Errorf("list reservations of occupant: %w", err)
	}

	return reservations, nil
}

// View renders a reservation with the occupant's price for its check-in date.
func (s *ReservationService) View(ctx context.Context, reservation *domain.Reservation) (*ReservationView, error) {
	view := baseView(reservation)

	room, err := s.roomRepo.GetRoom(ctx, reservation.RoomID)
	if errors.Is(err, domain.ErrNotFound) {
		return view, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	view.RoomNumber = room.RoomNumber
	view.RoomType = string(room.Type)
	view.Price = room.BasePrice()

	if reservation.CheckIn.IsZero() {
		return view, nil
	}

	quote, err := s.pricing.Quote(ctx, room, reservation.CheckIn, reservation.OccupantID)
	if err != nil {
		return nil, fmt.Errorf("price reservation %s: %w", reservation.ID, err)
	}

	view.Price = quote.Price
	view.DiscountPercent = quote.DiscountPercent

	return view, nil
}

// CommittedView renders a reservation that is already persisted. A pricing
// failure is logged and the base price is shown, since the write itself
// succeeded.
func (s *ReservationService) CommittedView(ctx context.Context, reservation *domain.Reservation) *ReservationView {
	view, err := s.View(ctx, reservation)
	if err == nil {
		return view
	}

	s.logger.Warn().
		Err(err).
		Str("reservation_id", reservation.ID.String()).
		Msg("pricing committed reservation failed, showing base price")

	view = baseView(reservation)
	if room, err := s.roomRepo.GetRoom(ctx, reservation.RoomID); err == nil {
		view.RoomNumber = room.RoomNumber
		view.RoomType = string(room.Type)
		view.Price = room.BasePrice()
	}

	return view
}

func baseView(reservation *domain.Reservation) *ReservationView {
	view := &ReservationView{
		ID:                       reservation.ID.String(),
		RoomID:                   reservation.RoomID.String(),
		Status:                   string(reservation.Status),
		OccupantID:               reservation.OccupantID,
		CheckInConfirmedByAdmin:  reservation.CheckInConfirmedByAdmin,
		CheckOutConfirmedByAdmin: reservation.CheckOutConfirmedByAdmin,
	}

	if !reservation.CheckIn.IsZero() {
		view.CheckInDate = reservation.CheckIn.Format(domain.DateLayout)
	}
	if !reservation.CheckOut.IsZero() {
		view.CheckOutDate = reservation.CheckOut.Format(domain.DateLayout)
	}
	return view
}

func (s *ReservationService) Views(ctx context.Context, reservations []domain.Reservation) ([]ReservationView, error) {
	views := make([]ReservationView, 0, len(reservations))
	for i := range reservations {
		v, err := s.View(ctx, &reservations[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

func statusLabel(status domain.ReservationStatus) string {
	switch status {
	case domain.ReservationPending, domain.ReservationConfirmed, domain.ReservationCancelled:
		return string(status)
	}
	return "OTHER"
}

// keepDomainErr returns domain error kinds as is and wraps everything else.
func keepDomainErr(err error, action string) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrConflict) {
		return err
	}
	return fmt.Errorf("%s: %w", action, err)
}
