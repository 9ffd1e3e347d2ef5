package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

func fillRegistration(dest []any, r model.Registration) {
	*dest[0].(*int) = r.ID
	*dest[1].(*string) = r.FullName
	*dest[2].(*string) = r.Sex
	*dest[3].(*string) = r.Phone
	*dest[4].(*string) = r.Email
	*dest[5].(*string) = r.Destination
	*dest[6].(*string) = r.City
	*dest[7].(*int) = r.Persons
	*dest[8].(*string) = r.TravelTime
	*dest[9].(*string) = r.Message
	*dest[10].(*time.Time) = r.CreatedAt
}

// fakeRow 支援兩種 Scan：
// 1) len(dest)==11 → GetRegistration
// 2) len(dest)==2  → InsertRegistration (id, created_at)
type fakeRow struct {
	scanErr error
	reg     model.Registration
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	switch len(dest) {
	case 11:
		fillRegistration(dest, r.reg)
	case 2:
		*dest[0].(*int) = r.reg.ID
		*dest[1].(*time.Time) = r.reg.CreatedAt
	default:
		panic("fakeRow.Scan: unexpected dest count")
	}
	return nil
}

type fakeRows struct {
	data    []model.Registration
	idx     int
	scanErr error
	err     error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool                                   { return r.idx < len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	fillRegistration(dest, r.data[r.idx])
	r.idx++
	return nil
}
func (r *fakeRows) Values() ([]any, error) { return nil, nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

func sampleRegistration() model.Registration {
	return model.Registration{
		FullName:    "Ada",
		Sex:         "female",
		Phone:       "+234-801-234-5678",
		Email:       "a@example.com",
		Destination: "Kenya",
		City:        "Nairobi",
		Persons:     2,
		TravelTime:  "2024-05-01T10:00",
	}
}

/* ---------- 測試 ---------- */

func TestInsertRegistration(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				gotSQL = sql
				gotArgs = args
				return &fakeRow{reg: model.Registration{ID: 1, CreatedAt: now}}
			},
		}
		r := sampleRegistration()
		id, err := InsertRegistration(context.Background(), db, &r)
		require.NoError(t, err)
		require.Equal(t, 1, id)
		require.Equal(t, 1, r.ID)
		require.Equal(t, now, r.CreatedAt)
		require.Contains(t, gotSQL, "INSERT INTO registrations")
		require.Contains(t, gotSQL, "RETURNING id, created_at")
		require.NotContains(t, gotSQL, "created_at,")
		require.Len(t, gotArgs, 9)
		require.Contains(t, gotArgs, "Ada")
		require.Contains(t, gotArgs, 2)
	})

	t.Run("error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeRow{scanErr: errors.New("disk full")}
			},
		}
		r := sampleRegistration()
		_, err := InsertRegistration(context.Background(), db, &r)
		require.ErrorContains(t, err, "InsertRegistration")
	})
}

func TestListRegistrations(t *testing.T) {
	t.Run("newest first query", func(t *testing.T) {
		older := sampleRegistration()
		older.ID = 1
		newer := sampleRegistration()
		newer.ID = 2
		rows := &fakeRows{data: []model.Registration{newer, older}}
		var gotSQL string
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
				gotSQL = sql
				return rows, nil
			},
		}
		list, err := ListRegistrations(context.Background(), db)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, 2, list[0].ID)
		require.Contains(t, gotSQL, "ORDER BY created_at DESC, id DESC")
		require.True(t, rows.closed)
	})

	t.Run("empty is not nil", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return &fakeRows{}, nil },
		}
		list, err := ListRegistrations(context.Background(), db)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("query error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return nil, errors.New("q") },
		}
		_, err := ListRegistrations(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("scan error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{data: []model.Registration{{}}, scanErr: errors.New("scan")}, nil
			},
		}
		_, err := ListRegistrations(context.Background(), db)
		require.Error(t, err)
	})

	t.Run("rows error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeRows{err: errors.New("conn reset")}, nil
			},
		}
		_, err := ListRegistrations(context.Background(), db)
		require.Error(t, err)
	})
}

func TestGetRegistration(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		want := sampleRegistration()
		want.ID = 7
		want.CreatedAt = time.Now().UTC()
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeRow{reg: want}
			},
		}
		got, err := GetRegistration(context.Background(), db, 7)
		require.NoError(t, err)
		require.Equal(t, want, *got)
		require.Equal(t, []any{7}, gotArgs)
	})

	t.Run("not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeRow{scanErr: pgx.ErrNoRows} },
		}
		_, err := GetRegistration(context.Background(), db, 999)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeRow{scanErr: errors.New("boom")} },
		}
		_, err := GetRegistration(context.Background(), db, 1)
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdateRegistration(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				gotSQL = sql
				gotArgs = args
				return pgconn.NewCommandTag("UPDATE 1"), nil
			},
		}
		r := sampleRegistration()
		n, err := UpdateRegistration(context.Background(), db, 3, &r)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
		require.Contains(t, gotSQL, "UPDATE registrations SET")
		require.Contains(t, gotSQL, "WHERE id = $10")
		require.NotContains(t, gotSQL, "created_at")
		require.Equal(t, 3, gotArgs[len(gotArgs)-1])
	})

	t.Run("missing row", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("UPDATE 0"), nil
			},
		}
		r := sampleRegistration()
		n, err := UpdateRegistration(context.Background(), db, 999, &r)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("error", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("update failed")
			},
		}
		r := sampleRegistration()
		_, err := UpdateRegistration(context.Background(), db, 1, &r)
		require.Error(t, err)
	})
}

func TestDeleteRegistration(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		var gotSQL string
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
				gotSQL = sql
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		n, err := DeleteRegistration(context.Background(), db, 1)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
		require.Equal(t, "DELETE FROM registrations WHERE id = $1", gotSQL)
	})

	t.Run("missing row", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag("DELETE 0"), nil
			},
		}
		n, err := DeleteRegistration(context.Background(), db, 2)
		require.NoError(t, err)
		require.Zero(t, n)
	})

	t.Run("error", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("delete failed")
			},
		}
		_, err := DeleteRegistration(context.Background(), db, 1)
		require.Error(t, err)
	})
}
