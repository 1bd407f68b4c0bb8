package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/srgjo27/hotel_booking/internal/core/domain"
)

type RoomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomColumns = `id, room_number, type, price, status, available, description`

func (r *RoomRepository) GetRoom(ctx context.Context, roomID uuid.UUID) (*domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room, err := scanRoom(r.db.QueryRowContext(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("room", roomID.String())
		}
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}

	return room, nil
}

func (r *RoomRepository) ListRooms(ctx context.Context) ([]domain.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms ORDER BY room_number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}

		rooms = append(rooms, *room)
	}

	return rooms, rows.Err()
}

func (r *RoomRepository) SaveRoom(ctx context.Context, room *domain.Room) error {
	query := `
	INSERT INTO rooms (id, room_number, type, price, status, available, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE
	SET room_number = EXCLUDED.room_number,
		type = EXCLUDED.type,
		price = EXCLUDED.price,
		status = EXCLUDED.status,
		available = EXCLUDED.available,
		description = EXCLUDED.description
	`

	_, err := r.db.ExecContext(ctx, query,
		room.ID, room.RoomNumber, room.Type, room.Price, room.Status, room.Available, room.Description)
	if err != nil {
		return fmt.Errorf("save room %s: %w", room.ID, err)
	}

	return nil
}

func (r *RoomRepository) CountRooms(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rooms: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room
	var description sql.NullString

	err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&room.Type,
		&room.Price,
		&room.Status,
		&room.Available,
		&description,
	)
	if err != nil {
		return nil, err
	}

	room.Description = description.String
	return &room, nil
}
