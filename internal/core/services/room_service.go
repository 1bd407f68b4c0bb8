package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
)

var validate = validator.New()

type CreateRoomRequest struct {
	RoomNumber   string   `json:"room_number" validate:"required,max=32"`
	Type         string   `json:"type" validate:"required"`
	BasePrice    *float64 `json:"base_price" validate:"omitempty,gte=0"`
	CurrentPrice *float64 `json:"current_price" validate:"omitempty,gte=0"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Status       string   `json:"status"`
	Description  string   `json:"description" validate:"max=1024"`
}

type RoomView struct {
	ID              string  `json:"id"`
	RoomNumber      string  `json:"room_number"`
	Type            string  `json:"type"`
	BasePrice       float64 `json:"base_price"`
	Status          string  `json:"status"`
	Available       bool    `json:"available"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	PriceDate       string  `json:"price_date"`
	HasPending      bool    `json:"has_pending"`
	DiscountPercent float64 `json:"discount_percent"`
}

// RoomService is the read side of the room catalogue: every room is shown
// with the requesting occupant's price.
type RoomService struct {
	roomRepo        ports.RoomRepository
	reservationRepo ports.ReservationRepository
	pricing         *PricingService
	cache           ports.RoomListCache
	now             ports.Clock
	logger          *zerolog.Logger
}

func NewRoomService(
	roomRepo ports.RoomRepository,
	reservationRepo ports.ReservationRepository,
	pricing *PricingService,
	cache ports.RoomListCache,
	logger *zerolog.Logger,
) *RoomService {
	return &RoomService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		pricing:         pricing,
		cache:           cache,
		now:             time.Now,
		logger:          logger,
	}
}

func (s *RoomService) SetClock(clock ports.Clock) {
	s.now = clock
}

func (s *RoomService) ListRooms(ctx context.Context, occupantID string) ([]RoomView, error) {
	priceDate, err := s.priceDateFor(ctx, occupantID)
	if err != nil {
		return nil, err
	}

	key := cacheKey(occupantID, priceDate)
	generation, cached := s.cacheGeneration(ctx)
	if cached {
		if payload, ok, err := s.cache.Get(ctx, generation, key); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("room list cache read failed")
		} else if ok {
			var cached []RoomView
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
		}
	}

	rooms, err := s.roomRepo.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	views := make([]RoomView, 0, len(rooms))
	for i := range rooms {
		v, err := s.view(ctx, &rooms[i], priceDate, occupantID)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}

	if cached {
		if payload, err := json.Marshal(views); err == nil {
			if err := s.cache.Set(ctx, generation, key, payload); err != nil {
				s.logger.Warn().Err(err).Str("key", key).Msg("room list cache write failed")
			}
		}
	}

	return views, nil
}

// cacheGeneration is read before the store so a list rendered from data an
// invalidation has since retired is written where nobody reads it.
func (s *RoomService) cacheGeneration(ctx context.Context) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}

	generation, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("room list cache generation read failed")
		return 0, false
	}
	return generation, true
}

func (s *RoomService) GetRoom(ctx context.Context, roomID uuid.UUID, occupantID string) (*RoomView, error) {
	room, err := s.roomRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, keepDomainErr(err, "get room")
	}

	return s.view(ctx, room, domain.DateOf(s.now()), occupantID)
}

// Availability is the snapshot a subscriber would receive for room on date,
// priced for occupantID. A zero date means today.
func (s *RoomService) Availability(ctx context.Context, roomID uuid.UUID, date time.Time, occupantID string) (domain.AvailabilitySnapshot, error) {
	room, err := s.roomRepo.GetRoom(ctx, roomID)
	if err != nil {
		return domain.AvailabilitySnapshot{}, keepDomainErr(err, "get room")
	}

	if date.IsZero() {
		date = s.now()
	}

	price, err := s.pricing.Price(ctx, room, date, occupantID)
	if err != nil {
		return domain.AvailabilitySnapshot{}, fmt.Errorf("price room %s: %w", roomID, err)
	}

	return domain.SnapshotOf(room, price), nil
}

// CreateRoom ingests a room, collapsing legacy price fields into the canonical price.
func (s *RoomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	req.RoomNumber = strings.TrimSpace(req.RoomNumber)
	if err := validate.Struct(req); err != nil {
		return nil, domain.NewValidationError("room", req.RoomNumber, validationReason(err))
	}

	roomType, ok := domain.ParseRoomType(req.Type)
	if !ok {
		return nil, domain.NewValidationError("room", "", "type must be one of SINGLE, DOUBLE, SUITE")
	}

	status := domain.RoomAvailable
	if req.Status != "" {
		switch st := domain.RoomStatus(strings.ToUpper(strings.TrimSpace(req.Status))); st {
		case domain.RoomAvailable, domain.RoomBooked, domain.RoomUnderMaintenance:
			status = st
		default:
			return nil, domain.NewValidationError("room", "", "unknown room status "+req.Status)
		}
	}

	room := &domain.Room{
		ID:         uuid.New(),
		RoomNumber: req.RoomNumber,
		Type:       roomType,
		Price: domain.LegacyPrices{
			BasePrice:    req.BasePrice,
			CurrentPrice: req.CurrentPrice,
			Price:        req.Price,
		}.Resolve(),
		Description: req.Description,
	}
	room.SetStatus(status)

	if err := s.roomRepo.SaveRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("save room: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("room list cache invalidation failed")
		}
	}

	return room, nil
}

func (s *RoomService) view(ctx context.Context, room *domain.Room, priceDate time.Time, occupantID string) (*RoomView, error) {
	quote, err := s.pricing.Quote(ctx, room, priceDate, occupantID)
	if err != nil {
		return nil, fmt.Errorf("price room %s: %w", room.ID, err)
	}

	pending, err := s.reservationRepo.CountByRoomAndStatus(ctx, room.ID, domain.ReservationPending)
	if err != nil {
		return nil, fmt.Errorf("count pending reservations: %w", err)
	}

	return &RoomView{
		ID:              room.ID.String(),
		RoomNumber:      room.RoomNumber,
		Type:            string(room.Type),
		BasePrice:       room.BasePrice(),
		Status:          string(room.Status),
		Available:       room.Available,
		Description:     room.Description,
		Price:           quote.Price,
		PriceDate:       quote.Date.Format(domain.DateLayout),
		HasPending:      pending > 0,
		DiscountPercent: quote.DiscountPercent,
	}, nil
}

// priceDateFor picks the occupant's next upcoming check-in so group discounts
// for that day show up; today otherwise.
func (s *RoomService) priceDateFor(ctx context.Context, occupantID string) (time.Time, error) {
	today := domain.DateOf(s.now())
	if occupantID == "" {
		return today, nil
	}

	reservations, err := s.reservationRepo.FindByOccupant(ctx, occupantID)
	if err != nil {
		return time.Time{}, fmt.Errorf("load reservations of occupant %s: %w", occupantID, err)
	}

	var next time.Time
	for _, r := range reservations {
		if r.CheckIn.IsZero() || r.CheckIn.Before(today) {
			continue
		}
		if next.IsZero() || r.CheckIn.Before(next) {
			next = r.CheckIn
		}
	}

	if next.IsZero() {
		return today, nil
	}
	return domain.DateOf(next), nil
}

func cacheKey(occupantID string, date time.Time) string {
	if occupantID == "" {
		occupantID = "-"
	}
	return occupantID + "|" + date.Format(domain.DateLayout)
}

func validationReason(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	fe := fieldErrs[0]
	if fe.Param() == "" {
		return fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Sprintf("%s failed %s=%s", strings.ToLower(fe.Field()), fe.Tag(), fe.Param())
}
