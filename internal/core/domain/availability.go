package domain

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilitySnapshot is what subscribers of the availability stream receive.
type AvailabilitySnapshot struct {
	RoomID     uuid.UUID  `json:"roomId"`
	RoomNumber string     `json:"roomNumber"`
	Status     RoomStatus `json:"status"`
	Available  bool       `json:"available"`
	Price      float64    `json:"price"`
}

func SnapshotOf(room *Room, price float64) AvailabilitySnapshot {
	return AvailabilitySnapshot{
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		Status:     room.Status,
		Available:  room.Available,
		Price:      price,
	}
}

type PriceQuote struct {
	Date            time.Time
	Price           float64
	DiscountPercent float64
}

// PriceBreakdown lists every factor that went into a computed price.
type PriceBreakdown struct {
	Base          float64
	Season        float64
	Demand        float64
	Occupancy     float64
	Loyalty       float64
	SiteWide      float64
	Group         float64
	TotalDiscount float64
	Final         float64
}
