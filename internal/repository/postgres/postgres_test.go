package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hotelapi/internal/model"
	"hotelapi/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestRoomTypePostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomTypePostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	rt := &model.RoomType{ID: "rt-id", Name: "Deluxe", CreatedAt: now, UpdatedAt: now}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO room_types").
			WithArgs(rt.ID, rt.Name, sqlmock.AnyArg(), rt.CreatedAt, rt.UpdatedAt).
			WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(docJSON(t, rt)))

		got, err := repo.Create(ctx, rt)
		require.NoError(t, err)
		assert.Equal(t, rt.ID, got.ID)
		assert.Equal(t, rt.Name, got.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO room_types").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "room_types_name_key"})

		got, err := repo.Create(ctx, rt)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
		assert.Nil(t, got)
	})
}

func TestRoomTypePostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomTypePostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT data FROM room_types WHERE id = ?").
			WithArgs("rt-id").
			WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(docJSON(t, model.RoomType{ID: "rt-id", Name: "Suite"})))

		rt, err := repo.FindByID(ctx, "rt-id")
		require.NoError(t, err)
		assert.Equal(t, "Suite", rt.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT data FROM room_types WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		rt, err := repo.FindByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, rt)
	})

	t.Run("corrupt document", func(t *testing.T) {
		mock.ExpectQuery("SELECT data FROM room_types WHERE id = ?").
			WithArgs("bad").
			WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("{")))

		_, err := repo.FindByID(ctx, "bad")
		assert.ErrorContains(t, err, "decode document")
	})
}

func TestRoomTypePostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomTypePostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM room_types").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT data FROM room_types ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).
			AddRow(docJSON(t, model.RoomType{ID: "a"})).
			AddRow(docJSON(t, model.RoomType{ID: "b"})))

	res, err := repo.List(context.Background(), repository.PageQuery{Limit: 10, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomTypePostgres_UpdateDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomTypePostgres(db)
	ctx := context.Background()
	rt := &model.RoomType{ID: "rt-id", Name: "Suite", UpdatedAt: time.Now().UTC()}

	mock.ExpectExec("UPDATE room_types SET").
		WithArgs(rt.ID, rt.Name, sqlmock.AnyArg(), rt.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	got, err := repo.Update(ctx, rt)
	require.NoError(t, err)
	assert.Equal(t, "Suite", got.Name)

	mock.ExpectExec("UPDATE room_types SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = repo.Update(ctx, rt)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	mock.ExpectExec("DELETE FROM room_types WHERE id = ?").
		WithArgs("rt-id").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "rt-id"))

	mock.ExpectExec("DELETE FROM room_types WHERE id = ?").
		WithArgs("rt-id").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, "rt-id"), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomPostgres_ListWithFilter(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomPostgres(db)
	lo, hi := 50.0, 200.0
	f := repository.RoomFilter{Search: "50%_off", RoomType: "rt-id", MinPrice: &lo, MaxPrice: &hi}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM rooms WHERE data->>'name' ILIKE \$1 AND room_type_id = \$2 AND \(data->>'price'\)::numeric >= \$3 AND \(data->>'price'\)::numeric <= \$4`).
		WithArgs(`%50\%\_off%`, "rt-id", lo, hi).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT data FROM rooms WHERE .+ ORDER BY created_at DESC, id DESC LIMIT \$5 OFFSET \$6`).
		WithArgs(`%50\%\_off%`, "rt-id", lo, hi, 5, 0).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(docJSON(t, model.Room{ID: "r1", Price: 99})))

	res, err := repo.List(context.Background(), f, repository.PageQuery{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 99.0, res.Items[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomPostgres_CRUD(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRoomPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()
	room := &model.Room{ID: "r1", Name: "101", RoomType: "rt", Price: 10, Capacity: 2, CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("INSERT INTO rooms").
		WithArgs(room.ID, room.RoomType, sqlmock.AnyArg(), now, now).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(docJSON(t, room)))
	created, err := repo.Create(ctx, room)
	require.NoError(t, err)
	assert.Equal(t, room.Capacity, created.Capacity)

	mock.ExpectQuery("SELECT data FROM rooms WHERE id = ?").
		WithArgs("r1").
		WillReturnError(errors.New("conn reset"))
	_, err = repo.FindByID(ctx, "r1")
	assert.EqualError(t, err, "conn reset")

	mock.ExpectExec("UPDATE rooms SET").
		WithArgs(room.ID, room.RoomType, sqlmock.AnyArg(), now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = repo.Update(ctx, room)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM rooms WHERE room_type_id = ?").
		WithArgs("rt").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	n, err := repo.CountByRoomType(ctx, "rt")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	mock.ExpectExec("DELETE FROM rooms WHERE id = ?").
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, "r1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%plain%`, likePattern("plain"))
	assert.Equal(t, `%a\%b\_c\\d%`, likePattern(`a%b_c\d`))
}
