package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/srgjo27/hotel_booking/internal/core/domain"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/platform/metrics"
)

const (
	seasonSurcharge       = 0.20
	demandSurcharge       = 0.10
	demandThreshold       = 10
	maxOccupancySurcharge = 0.5
	maxDiscount           = 0.5
)

// PricingService computes per-date, per-occupant room prices. It only reads
// statistics and is safe for concurrent use.
type PricingService struct {
	roomRepo        ports.RoomRepository
	reservationRepo ports.ReservationRepository
}

func NewPricingService(roomRepo ports.RoomRepository, reservationRepo ports.ReservationRepository) *PricingService {
	return &PricingService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
	}
}

// Price returns the final price of room on date. An empty occupantID means no
// personalised discount.
func (s *PricingService) Price(ctx context.Context, room *domain.Room, date time.Time, occupantID string) (float64, error) {
	b, err := s.Breakdown(ctx, room, date, occupantID)
	if err != nil {
		return 0, err
	}

	return b.Final, nil
}

// Quote is Price plus the discount percentage relative to the room's base price.
func (s *PricingService) Quote(ctx context.Context, room *domain.Room, date time.Time, occupantID string) (domain.PriceQuote, error) {
	price, err := s.Price(ctx, room, date, occupantID)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	return domain.PriceQuote{
		Date:            domain.DateOf(date),
		Price:           price,
		DiscountPercent: DiscountPercent(room.BasePrice(), price),
	}, nil
}

func (s *PricingService) Breakdown(ctx context.Context, room *domain.Room, date time.Time, occupantID string) (domain.PriceBreakdown, error) {
	start := time.Now()
	defer func() { metrics.ObservePriceDuration(time.Since(start).Seconds()) }()

	day := domain.DateOf(date)
	b := domain.PriceBreakdown{Base: room.BasePrice()}

	switch day.Month() {
	case time.June, time.July, time.August:
		b.Season = seasonSurcharge
	}

	demand, err := s.reservationRepo.CountActiveOn(ctx, day.AddDate(0, 0, 1))
	if err != nil {
		return b, fmt.Errorf("count demand: %w", err)
	}
	if demand > demandThreshold {
		b.Demand = demandSurcharge
	}

	booked, err := s.reservationRepo.CountActiveOn(ctx, day)
	if err != nil {
		return b, fmt.Errorf("count bookings on %s: %w", day.Format(domain.DateLayout), err)
	}

	totalRooms, err := s.roomRepo.CountRooms(ctx)
	if err != nil {
		return b, fmt.Errorf("count rooms: %w", err)
	}

	if totalRooms > 0 {
		occupancy := float64(booked) / float64(totalRooms)
		b.Occupancy = math.Min(maxOccupancySurcharge, occupancy*0.5)
	}

	increased := b.Base * (1 + b.Season + b.Demand + b.Occupancy)

	b.SiteWide = siteWideDiscount(booked)

	if occupantID != "" {
		history, err := s.reservationRepo.FindByOccupant(ctx, occupantID)
		if err != nil {
			return b, fmt.Errorf("load reservations of occupant %s: %w", occupantID, err)
		}

		b.Loyalty = loyaltyDiscount(history)
		b.Group = groupDiscount(history, day)
	}

	baseDiscount := math.Min(maxDiscount, b.Loyalty+b.SiteWide)
	b.TotalDiscount = math.Min(maxDiscount, baseDiscount+b.Group)

	b.Final = round2(math.Max(0, increased*(1-b.TotalDiscount)))

	return b, nil
}

func loyaltyDiscount(history []domain.Reservation) float64 {
	var confirmed int
	for i := range history {
		if history[i].IsConfirmed() {
			confirmed++
		}
	}

	switch {
	case confirmed >= 10:
		return 0.15
	case confirmed >= 5:
		return 0.10
	case confirmed >= 1:
		return 0.05
	}
	return 0
}

func siteWideDiscount(confirmedOnDate int64) float64 {
	switch {
	case confirmedOnDate >= 50:
		return 0.10
	case confirmedOnDate >= 20:
		return 0.05
	}
	return 0
}

// groupDiscount counts the occupant's non-cancelled reservations checking in on day.
func groupDiscount(history []domain.Reservation, day time.Time) float64 {
	var sameDay int
	for i := range history {
		r := &history[i]
		if r.IsCancelled() || r.CheckIn.IsZero() {
			continue
		}
		if domain.DateOf(r.CheckIn).Equal(day) {
			sameDay++
		}
	}

	switch {
	case sameDay >= 10:
		return 0.15
	case sameDay >= 5:
		return 0.10
	case sameDay >= 2:
		return 0.05
	}
	return 0
}

// DiscountPercent never reports a negative discount.
func DiscountPercent(base, price float64) float64 {
	if base <= 0 {
		return 0
	}

	return math.Max(0, round2((1-price/base)*100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
