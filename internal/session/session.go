// Package session 保存管理員登入狀態。
//
// 預設的 MemoryStore 只存在單一 process 內，重啟即全部登出；
// 多實例部署時改用 RedisStore (SESSION_STORE=redis)。
package session

import (
	"context"
	"errors"
	"time"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"
)

// ErrNotFound session 不存在或已過期
var ErrNotFound = errors.New("session not found")

// Store 由 login 寫入、logout 刪除；Get 對過期的 session 回傳 ErrNotFound
type Store interface {
	Save(ctx context.Context, s model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	Delete(ctx context.Context, id string) error
}

// timeNow 可在測試中替換
var timeNow = time.Now
