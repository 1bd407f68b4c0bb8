package domain

import (
	"strings"

	"github.com/google/uuid"
)

type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomSuite  RoomType = "SUITE"
)

type RoomStatus string

const (
	RoomAvailable        RoomStatus = "AVAILABLE"
	RoomBooked           RoomStatus = "BOOKED"
	RoomUnderMaintenance RoomStatus = "UNDER_MAINTENANCE"
)

func ParseRoomType(s string) (RoomType, bool) {
	switch t := RoomType(strings.ToUpper(strings.TrimSpace(s))); t {
	case RoomSingle, RoomDouble, RoomSuite:
		return t, true
	}
	return "", false
}

type Room struct {
	ID          uuid.UUID  `json:"id"`
	RoomNumber  string     `json:"room_number"`
	Type        RoomType   `json:"type"`
	Price       float64    `json:"price"`
	Status      RoomStatus `json:"status"`
	Available   bool       `json:"available"`
	Description string     `json:"description,omitempty"`
}

// SetStatus is the only way room status changes; it keeps Available in sync.
func (r *Room) SetStatus(status RoomStatus) {
	r.Status = status
	r.Available = status == RoomAvailable
}

func (r *Room) IsAvailable() bool {
	return r.Status == RoomAvailable
}

// BasePrice is the canonical non-negative nightly price.
func (r *Room) BasePrice() float64 {
	if r.Price > 0 {
		return r.Price
	}
	return 0
}

// LegacyPrices holds the three overlapping price columns older rooms were
// stored with. Resolve picks basePrice, then currentPrice, then price; the
// first positive one wins.
type LegacyPrices struct {
	BasePrice    *float64
	CurrentPrice *float64
	Price        *float64
}

func (p LegacyPrices) Resolve() float64 {
	for _, v := range []*float64{p.BasePrice, p.CurrentPrice, p.Price} {
		if v != nil && *v > 0 {
			return *v
		}
	}
	return 0
}
