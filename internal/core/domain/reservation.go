package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is stored verbatim. Only the three constants below,
// compared case-insensitively, carry behavior.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// NormalizeStatus upper-cases known statuses and leaves anything else as is.
func NormalizeStatus(s string) ReservationStatus {
	trimmed := strings.TrimSpace(s)
	for _, known := range []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCancelled} {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return ReservationStatus(trimmed)
}

func (s ReservationStatus) Is(other ReservationStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

type Reservation struct {
	ID                       uuid.UUID
	OccupantID               string
	RoomID                   uuid.UUID
	CheckIn                  time.Time
	CheckOut                 time.Time
	Status                   ReservationStatus
	CheckInConfirmedByAdmin  bool
	CheckOutConfirmedByAdmin bool
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

func (r *Reservation) Range() DateRange {
	return DateRange{Start: r.CheckIn, End: r.CheckOut}
}

func (r *Reservation) IsConfirmed() bool {
	return r.Status.Is(ReservationConfirmed)
}

func (r *Reservation) IsCancelled() bool {
	return r.Status.Is(ReservationCancelled)
}

// ActiveOn reports whether the stay covers day d.
func (r *Reservation) ActiveOn(d time.Time) bool {
	return r.Range().Contains(d)
}

// ReservationPatch carries a partial update; nil fields are left untouched.
type ReservationPatch struct {
	Status                   *string
	CheckIn                  *time.Time
	CheckOut                 *time.Time
	CheckInConfirmedByAdmin  *bool
	CheckOutConfirmedByAdmin *bool
}

func (p ReservationPatch) Apply(r *Reservation) {
	if p.CheckIn != nil {
		r.CheckIn = DateOf(*p.CheckIn)
	}
	if p.CheckOut != nil {
		r.CheckOut = DateOf(*p.CheckOut)
	}
	if p.Status != nil {
		r.Status = NormalizeStatus(*p.Status)
	}
	if p.CheckInConfirmedByAdmin != nil {
		r.CheckInConfirmedByAdmin = *p.CheckInConfirmedByAdmin
	}
	if p.CheckOutConfirmedByAdmin != nil {
		r.CheckOutConfirmedByAdmin = *p.CheckOutConfirmedByAdmin
	}
}

func (p ReservationPatch) TouchesDates() bool {
	return p.CheckIn != nil || p.CheckOut != nil
}
