package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"
)

// RoomPostgres is a PostgreSQL implementation of repository.RoomRepository.
type RoomPostgres struct {
	db *sql.DB
}

// NewRoomPostgres creates a new RoomPostgres repository.
func NewRoomPostgres(db *sql.DB) *RoomPostgres {
	return &RoomPostgres{db: db}
}

var _ repository.RoomRepository = (*RoomPostgres)(nil)

func (r *RoomPostgres) Create(ctx context.Context, room *model.Room) (*model.Room, error) {
	data, err := json.Marshal(room)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO rooms (id, room_type_id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING data
	`
	row := r.db.QueryRowContext(ctx, q, room.ID, room.RoomType, data, room.CreatedAt, room.UpdatedAt)
	return scanDoc[model.Room](row)
}

func (r *RoomPostgres) FindByID(ctx context.Context, id string) (*model.Room, error) {
	const q = `SELECT data FROM rooms WHERE id = $1`
	return scanDoc[model.Room](r.db.QueryRowContext(ctx, q, id))
}

// roomWhere builds the WHERE clause for f; placeholders start at $1.
func roomWhere(f repository.RoomFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Search != "" {
		add(`data->>'name' ILIKE $%d`, likePattern(f.Search))
	}
	if f.RoomType != "" {
		add(`room_type_id = $%d`, f.RoomType)
	}
	if f.MinPrice != nil {
		add(`(data->>'price')::numeric >= $%d`, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add(`(data->>'price')::numeric <= $%d`, *f.MaxPrice)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns rooms matching f using LIMIT/OFFSET pagination and a total count.
func (r *RoomPostgres) List(ctx context.Context, f repository.RoomFilter, pq repository.PageQuery) (*repository.PageResult[model.Room], error) {
	where, args := roomWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms`+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(`SELECT data FROM rooms%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	items, err := scanDocs[model.Room](rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Room]{Items: items, Total: total}, nil
}

func (r *RoomPostgres) Update(ctx context.Context, room *model.Room) (*model.Room, error) {
	data, err := json.Marshal(room)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE rooms SET room_type_id = $2, data = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, room.ID, room.RoomType, data, room.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	out := *room
	return &out, nil
}

func (r *RoomPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM rooms WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *RoomPostgres) CountByRoomType(ctx context.Context, roomTypeID string) (int, error) {
	const q = `SELECT COUNT(*) FROM rooms WHERE room_type_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, roomTypeID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
