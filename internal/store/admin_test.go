package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// fakeAdminRow 支援 FindAdminByUsername (3 欄) 與 InsertAdmin (1 欄)
type fakeAdminRow struct {
	scanErr error
	admin   model.Admin
}

func (r *fakeAdminRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	switch len(dest) {
	case 3:
		*dest[0].(*int) = r.admin.ID
		*dest[1].(*string) = r.admin.Username
		*dest[2].(*string) = r.admin.PasswordHash
	case 1:
		*dest[0].(*int) = r.admin.ID
	default:
		panic("fakeAdminRow.Scan: unexpected dest count")
	}
	return nil
}

func TestFindAdminByUsername(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeAdminRow{admin: model.Admin{ID: 1, Username: "admin", PasswordHash: "h"}}
			},
		}
		a, err := FindAdminByUsername(context.Background(), db, "admin")
		require.NoError(t, err)
		require.Equal(t, "h", a.PasswordHash)
		require.Equal(t, []any{"admin"}, gotArgs)
	})

	t.Run("not found", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeAdminRow{scanErr: pgx.ErrNoRows} },
		}
		_, err := FindAdminByUsername(context.Background(), db, "Admin")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return &fakeAdminRow{scanErr: errors.New("x")} },
		}
		_, err := FindAdminByUsername(context.Background(), db, "admin")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestInsertAdmin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotSQL string
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, _ ...any) pgx.Row {
				gotSQL = sql
				return &fakeAdminRow{admin: model.Admin{ID: 4}}
			},
		}
		id, err := InsertAdmin(context.Background(), db, "admin", "hash")
		require.NoError(t, err)
		require.Equal(t, 4, id)
		require.Equal(t, "INSERT INTO admins (username,password_hash) VALUES ($1,$2) RETURNING id", gotSQL)
	})

	t.Run("duplicate username", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeAdminRow{scanErr: &pgconn.PgError{Code: pgerrcode.UniqueViolation}}
			},
		}
		_, err := InsertAdmin(context.Background(), db, "admin", "hash")
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("other error", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeAdminRow{scanErr: &pgconn.PgError{Code: pgerrcode.NotNullViolation}}
			},
		}
		_, err := InsertAdmin(context.Background(), db, "admin", "")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrUsernameTaken)
	})
}
