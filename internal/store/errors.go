package store

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料列
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken admins.username 唯一限制衝突
	ErrUsernameTaken = errors.New("username already exists")
)

// psql 產生 $1, $2 ... 形式的 placeholder
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// pgErrorCode 取出 PostgreSQL 錯誤碼，非 PgError 時回傳空字串
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
