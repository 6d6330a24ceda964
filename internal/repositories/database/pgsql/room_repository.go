package pgsql

import (
	"context"
	"errors"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxRoomRepository struct {
	BaseRepository
}

// newPgxRoomRepository creates a new repository for room data.
func newPgxRoomRepository(pool *pgxpool.Pool) portsrepo.RoomRepository {
	return &PgxRoomRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RoomRepository = (*PgxRoomRepository)(nil)

var FULL_ROOM_SELECT_QUERY = `
SELECT
	r.room_id, r.name, r.description,
	r.created_at, r.created_by, r.last_updated_at, r.last_updated_by
FROM rooms r
`

func (r *PgxRoomRepository) getRooms(ctx context.Context, filterQuery string, args ...any) ([]domain.Room, error) {
	query := FULL_ROOM_SELECT_QUERY + filterQuery
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query rooms", err)
	}
	defer rows.Close()
	rooms, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Room])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Room{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect room rows", err)
	}
	return rooms, nil
}

func (r *PgxRoomRepository) SaveRoom(ctx context.Context, room domain.Room) error {
	query := `
		INSERT INTO rooms (
			room_id, name, description,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		room.RoomID,
		room.Name,
		room.Description,
		room.CreatedAt,
		room.CreatedBy,
		room.LastUpdatedAt,
		room.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("room ID " + room.RoomID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save room "+room.RoomID, err)
	}
	return nil
}

func (r *PgxRoomRepository) FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error) {
	rooms, err := r.getRooms(ctx, `WHERE r.room_id = $1`, roomID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &rooms[0], nil
}

func (r *PgxRoomRepository) ListRoomsByUserID(ctx context.Context, userID string) ([]domain.Room, error) {
	filter := `
		JOIN user_rooms ur ON ur.room_id = r.room_id
		WHERE ur.user_id = $1 AND ur.role <> 'REMOVED'
		ORDER BY r.created_at
	`
	return r.getRooms(ctx, filter, userID)
}

func (r *PgxRoomRepository) AddUserToRoom(ctx context.Context, membership domain.UserRoom) error {
	query := `
		INSERT INTO user_rooms (user_id, room_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, room_id) DO UPDATE SET role = EXCLUDED.role;
	` // Upsert: add user or update their role if they already exist
	_, err := r.Pool.Exec(ctx, query,
		membership.UserID,
		membership.RoomID,
		membership.Role,
		membership.JoinedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return apperrors.NewValidationFailedError("user or room does not exist")
		}
		return apperrors.NewAppError(500, "failed to add user "+membership.UserID+" to room "+membership.RoomID, err)
	}
	return nil
}

func (r *PgxRoomRepository) ListRoomMembers(ctx context.Context, roomID string) ([]domain.UserRoom, error) {
	query := `
		SELECT ur.user_id, u.name AS user_name, ur.room_id, ur.role, ur.joined_at
		FROM user_rooms ur
		JOIN users u ON u.user_id = ur.user_id
		WHERE ur.room_id = $1 AND ur.role <> 'REMOVED'
		ORDER BY u.name
	`
	rows, err := r.Pool.Query(ctx, query, roomID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query room members", err)
	}
	defer rows.Close()
	members, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.UserRoom])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.UserRoom{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect room member rows", err)
	}
	return members, nil
}

func (r *PgxRoomRepository) FindMembership(ctx context.Context, userID, roomID string) (*domain.UserRoom, error) {
	query := `
		SELECT ur.user_id, u.name AS user_name, ur.room_id, ur.role, ur.joined_at
		FROM user_rooms ur
		JOIN users u ON u.user_id = ur.user_id
		WHERE ur.user_id = $1 AND ur.room_id = $2 AND ur.role <> 'REMOVED'
	`
	rows, err := r.Pool.Query(ctx, query, userID, roomID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query membership", err)
	}
	defer rows.Close()
	memberships, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.UserRoom])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect membership rows", err)
	}
	if len(memberships) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &memberships[0], nil
}
