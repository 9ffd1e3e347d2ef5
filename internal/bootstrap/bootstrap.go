// Package bootstrap 在開始處理請求前準備資料庫結構與預設管理員。
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/config"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/logger"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/service"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/store"
)

var (
	runMigrations       = database.RunMigrations
	findAdminByUsername = store.FindAdminByUsername
	insertAdmin         = store.InsertAdmin
	hashPassword        = service.HashPassword
)

// Run 套用 migration 後確保管理員存在。
// 只有 migration 失敗會回傳錯誤；管理員建立失敗只記錄 log，服務仍照常啟動
func Run(ctx context.Context, log *logger.Logger, db database.DB, dbURL string, admin config.Admin) error {
	if err := runMigrations(dbURL); err != nil {
		return fmt.Errorf("bootstrap: migrations: %w", err)
	}
	if err := EnsureAdmin(ctx, log, db, admin); err != nil {
		log.Error().Err(err).Str("username", admin.Username).
			Msg("admin account not provisioned; login unavailable until fixed")
	}
	return nil
}

// EnsureAdmin 帳號不存在時以 admin.Password 建立；已存在則不做任何事
func EnsureAdmin(ctx context.Context, log *logger.Logger, db database.DB, admin config.Admin) error {
	username := admin.Username
	_, err := findAdminByUsername(ctx, db, username)
	if err == nil {
		log.Debug().Str("username", username).Msg("admin already exists")
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}

	if admin.UsesDefaultPassword() {
		log.Warn().Str("username", username).
			Msg("creating admin with the default password; set ADMIN_PASSWORD before deploying")
	}
	hash, err := hashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("EnsureAdmin: hash: %w", err)
	}
	id, err := insertAdmin(ctx, db, username, hash)
	if errors.Is(err, store.ErrUsernameTaken) {
		// 另一個實例剛好先建立
		log.Info().Str("username", username).Msg("admin created concurrently")
		return nil
	}
	if err != nil {
		return fmt.Errorf("EnsureAdmin: %w", err)
	}
	log.Info().Int("id", id).Str("username", username).Msg("admin created")
	return nil
}
