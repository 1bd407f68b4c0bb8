package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

type ValidationError struct {
	Entity string
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid %s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.ID, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

type ConflictError struct {
	RoomID        string
	ReservationID string
	Reason        string
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("room %s is already booked for the selected dates", e.RoomID)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NewValidationError(entity, id, reason string) error {
	return &ValidationError{Entity: entity, ID: id, Reason: reason}
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func NewConflictError(roomID, reservationID, reason string) error {
	return &ConflictError{RoomID: roomID, ReservationID: reservationID, Reason: reason}
}
