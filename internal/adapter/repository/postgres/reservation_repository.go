package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type ReservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const reservationColumns = `id, occupant_id, room_id, check_in, check_out, status,
	check_in_confirmed_by_admin, check_out_confirmed_by_admin, created_at, updated_at`

func (r *ReservationRepository) GetByID(ctx context.Context, reservationID uuid.UUID) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, reservationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("reservation", reservationID.String())
		}
		return nil, fmt.Errorf("get reservation %s: %w", reservationID, err)
	}

	return res, nil
}

func (r *ReservationRepository) ListAll(ctx context.Context) ([]domain.Reservation, error) {
	return r.query(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY check_in, created_at`)
}

func (r *ReservationRepository) FindByOccupant(ctx context.Context, occupantID string) ([]domain.Reservation, error) {
	return r.query(ctx, `
	SELECT `+reservationColumns+`
	FROM reservations
	WHERE occupant_id = $1
	ORDER BY check_in, created_at
	`, occupantID)
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, roomID uuid.UUID, span domain.DateRange, statuses ...domain.ReservationStatus) ([]domain.Reservation, error) {
	query := `
	SELECT ` + reservationColumns + `
	FROM reservations
	WHERE room_id = $1 AND check_in < $2 AND check_out > $3
	`
	args := []any{roomID, span.End, span.Start}

	if len(statuses) > 0 {
		upper := make([]string, 0, len(statuses))
		for _, st := range statuses {
			upper = append(upper, strings.ToUpper(string(st)))
		}
		query += ` AND upper(status) = ANY($4)`
		args = append(args, pq.Array(upper))
	}

	query += ` ORDER BY check_in`

	return r.query(ctx, query, args...)
}

func (r *ReservationRepository) CountActiveOn(ctx context.Context, date time.Time) (int64, error) {
	query := `
	SELECT COUNT(*) FROM reservations
	WHERE upper(status) = 'CONFIRMED' AND check_in <= $1 AND check_out > $1
	`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, domain.DateOf(date)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reservations on %s: %w", date.Format(domain.DateLayout), err)
	}
	return n, nil
}

func (r *ReservationRepository) CountByRoomAndStatus(ctx context.Context, roomID uuid.UUID, status domain.ReservationStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE room_id = $1 AND upper(status) = upper($2)`

	var n int64
	if err := r.db.QueryRowContext(ctx, query, roomID, string(status)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reservations of room %s: %w", roomID, err)
	}
	return n, nil
}

// Save upserts the reservation. The exclusion constraint on confirmed stays
// surfaces as a ConflictError.
func (r *ReservationRepository) Save(ctx context.Context, res *domain.Reservation) error {
	query := `
	INSERT INTO reservations (id, occupant_id, room_id, check_in, check_out, status,
		check_in_confirmed_by_admin, check_out_confirmed_by_admin, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE
	SET check_in = EXCLUDED.check_in,
		check_out = EXCLUDED.check_out,
		status = EXCLUDED.status,
		check_in_confirmed_by_admin = EXCLUDED.check_in_confirmed_by_admin,
		check_out_confirmed_by_admin = EXCLUDED.check_out_confirmed_by_admin,
		updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		res.ID, res.OccupantID, res.RoomID, res.CheckIn, res.CheckOut, string(res.Status),
		res.CheckInConfirmedByAdmin, res.CheckOutConfirmedByAdmin, res.CreatedAt, res.UpdatedAt)
	if err != nil {
		switch pqCode(err) {
		case codeExclusionViolation:
			return domain.NewConflictError(res.RoomID.String(), res.ID.String(), "overlaps a confirmed reservation")
		case codeForeignKey:
			return domain.NewNotFoundError("room", res.RoomID.String())
		}
		return fmt.Errorf("save reservation %s: %w", res.ID, err)
	}

	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, reservationID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, reservationID)
	if err != nil {
		return fmt.Errorf("delete reservation %s: %w", reservationID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.NewNotFoundError("reservation", reservationID.String())
	}

	return nil
}

func (r *ReservationRepository) query(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}

	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}

		out = append(out, *res)
	}

	return out, rows.Err()
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var status string

	err := row.Scan(
		&res.ID,
		&res.OccupantID,
		&res.RoomID,
		&res.CheckIn,
		&res.CheckOut,
		&status,
		&res.CheckInConfirmedByAdmin,
		&res.CheckOutConfirmedByAdmin,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)
	res.CheckIn = domain.DateOf(res.CheckIn)
	res.CheckOut = domain.DateOf(res.CheckOut)

	return &res, nil
}
