package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB 是 store 與 health check 用到的 pgx 方法，由 NewPgxPool 回傳的連線池實作
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(context.Context) error
	Close()
}

var _ DB = (*pgxpool.Pool)(nil)

// FakeDB 給 handler / store 測試用：只設定預期會用到的函式，
// 其他查詢會帶著 SQL panic，方便看出哪條報名或管理員查詢不該被執行
type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func unexpected(method, sql string) string {
	return fmt.Sprintf("FakeDB: unexpected %s: %s", method, sql)
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn == nil {
		panic(unexpected("Exec", sql))
	}
	return f.ExecFn(ctx, sql, args...)
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn == nil {
		panic(unexpected("Query", sql))
	}
	return f.QueryFn(ctx, sql, args...)
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn == nil {
		panic(unexpected("QueryRow", sql))
	}
	return f.QueryRowFn(ctx, sql, args...)
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn == nil {
		panic(unexpected("Ping", ""))
	}
	return f.PingFn(ctx)
}

// Close 未設定 CloseFn 時不做事，run() 的 defer 一定會呼叫
func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}
