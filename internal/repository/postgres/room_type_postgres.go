package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"
)

// RoomTypePostgres is a PostgreSQL implementation of repository.RoomTypeRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type RoomTypePostgres struct {
	db *sql.DB
}

// NewRoomTypePostgres creates a new RoomTypePostgres repository.
func NewRoomTypePostgres(db *sql.DB) *RoomTypePostgres {
	return &RoomTypePostgres{db: db}
}

var _ repository.RoomTypeRepository = (*RoomTypePostgres)(nil)

// Create inserts a new room type row and returns the stored document.
func (r *RoomTypePostgres) Create(ctx context.Context, rt *model.RoomType) (*model.RoomType, error) {
	data, err := json.Marshal(rt)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO room_types (id, name, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING data
	`
	row := r.db.QueryRowContext(ctx, q, rt.ID, rt.Name, data, rt.CreatedAt, rt.UpdatedAt)
	return scanDoc[model.RoomType](row)
}

// FindByID fetches a single room type by its ID.
func (r *RoomTypePostgres) FindByID(ctx context.Context, id string) (*model.RoomType, error) {
	const q = `SELECT data FROM room_types WHERE id = $1`
	return scanDoc[model.RoomType](r.db.QueryRowContext(ctx, q, id))
}

// FindByName fetches a single room type by its unique name.
func (r *RoomTypePostgres) FindByName(ctx context.Context, name string) (*model.RoomType, error) {
	const q = `SELECT data FROM room_types WHERE name = $1`
	return scanDoc[model.RoomType](r.db.QueryRowContext(ctx, q, name))
}

// List returns room types using LIMIT/OFFSET pagination and a total count.
func (r *RoomTypePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.RoomType], error) {
	const qCount = `SELECT COUNT(*) FROM room_types`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT data
		FROM room_types
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := scanDocs[model.RoomType](rows)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.RoomType]{Items: items, Total: total}, nil
}

// Update overwrites the stored document. Returns ErrNotFound if no row has the ID.
func (r *RoomTypePostgres) Update(ctx context.Context, rt *model.RoomType) (*model.RoomType, error) {
	data, err := json.Marshal(rt)
	if err != nil {
		return nil, err
	}
	const q = `UPDATE room_types SET name = $2, data = $3, updated_at = $4 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, rt.ID, rt.Name, data, rt.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	if err := requireAffected(res); err != nil {
		return nil, err
	}
	out := *rt
	return &out, nil
}

// Delete removes a room type by ID. Returns ErrNotFound if no row was deleted.
func (r *RoomTypePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM room_types WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
