// File: internal/service/password.go
package service

import (
	"context"
	"sync"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/worker"

	"golang.org/x/crypto/bcrypt"
)

var (
	bcryptGenerateFromPassword   = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
)

// HashPassword 接收明文密碼，回傳 bcrypt 哈希字串
func HashPassword(password string) (string, error) {
	hashBytes, err := bcryptGenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// ComparePassword 比對明文密碼與 bcrypt 哈希，成功回傳 nil，失敗則回傳錯誤
func ComparePassword(hash, password string) error {
	return bcryptCompareHashAndPassword([]byte(hash), []byte(password))
}

// Hasher 把 bcrypt 計算交給 worker pool；pool 為 nil 時直接在呼叫端執行
type Hasher struct {
	pool worker.Pool
}

func NewHasher(pool worker.Pool) *Hasher {
	return &Hasher{pool: pool}
}

func (h *Hasher) run(ctx context.Context, fn func()) error {
	if h == nil || h.pool == nil {
		fn()
		return nil
	}
	return worker.Do(ctx, h.pool, fn)
}

// Hash 產生 bcrypt 哈希
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	var (
		hash    string
		hashErr error
	)
	if err := h.run(ctx, func() { hash, hashErr = HashPassword(password) }); err != nil {
		return "", err
	}
	return hash, hashErr
}

// Compare 回傳密碼是否相符。格式錯誤的 hash 視為不相符；
// error 只代表 pool 或 ctx 的失敗
func (h *Hasher) Compare(ctx context.Context, hash, password string) (bool, error) {
	var cmpErr error
	if err := h.run(ctx, func() { cmpErr = ComparePassword(hash, password) }); err != nil {
		return false, err
	}
	return cmpErr == nil, nil
}

// dummyHash 用於帳號不存在時仍做一次比對，讓回應時間與密碼錯誤相近
var (
	dummyHashOnce  sync.Once
	dummyHashValue string
)

func dummyHash() string {
	dummyHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("travel-registrations/no-such-admin"), bcrypt.DefaultCost)
		if err == nil {
			dummyHashValue = string(h)
		}
	})
	return dummyHashValue
}
