package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
)

// FindAdminByUsername 區分大小寫查詢，查無資料時回傳 ErrNotFound
func FindAdminByUsername(ctx context.Context, db database.DB, username string) (*model.Admin, error) {
	query, args, err := psql.Select("id", "username", "password_hash").
		From("admins").
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("FindAdminByUsername: %w", err)
	}

	a := &model.Admin{}
	if err := db.QueryRow(ctx, query, args...).Scan(&a.ID, &a.Username, &a.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("FindAdminByUsername: %w", err)
	}
	return a, nil
}

// InsertAdmin 新增管理員，username 重複時回傳 ErrUsernameTaken
func InsertAdmin(ctx context.Context, db database.DB, username, passwordHash string) (int, error) {
	query, args, err := psql.Insert("admins").
		Columns("username", "password_hash").
		Values(username, passwordHash).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("InsertAdmin: %w", err)
	}

	var id int
	if err := db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if pgErrorCode(err) == pgerrcode.UniqueViolation {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("InsertAdmin: %w", err)
	}
	return id, nil
}
