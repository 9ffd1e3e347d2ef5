package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Mooyguy/Travel-Magazine-Secure/docs" // 引入 swag 產出的 docs
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/bootstrap"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/cache"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/config"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/logger"
	appmw "github.com/Mooyguy/Travel-Magazine-Secure/internal/middleware"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/router"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/service"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/session"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig     = config.Load
	newPgxPool     = database.NewPgxPool
	newRedisClient = cache.NewRedisClient
	runBootstrap   = bootstrap.Run
	newWorkerPool  = worker.NewPool
	startServer    = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	rollbackAll    = database.RollbackAll
	notifyContext  = signal.NotifyContext
	exitFunc       = os.Exit

	logOutput io.Writer = os.Stdout
)

const shutdownTimeout = 10 * time.Second

func newEcho(log *logger.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: service.NewValidator()}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(appmw.AttachLogger(log))
	e.Use(appmw.RequestLogger())
	e.Use(middleware.CORS())
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	log := logger.New(cfg.LogLevel, logOutput)

	if cfg.MigrateDown {
		if err := rollbackAll(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migration rollback 失敗: %w", err)
		}
		log.Warn().Msg("all migrations rolled back")
		return nil
	}

	// SIGINT/SIGTERM 時關閉 server，讓下面的 defer 都有機會執行
	ctx, stop := notifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	// cch 為 nil 代表未使用 Redis
	var cch cache.Cache
	var sessions session.Store
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		cch, err = newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer cch.Close()
		sessions = session.NewRedisStore(cch)
	default:
		log.Warn().Msg("sessions are kept in process memory; a restart logs out every admin")
		mem := session.NewMemoryStore()
		defer mem.Close()
		sessions = mem
	}

	if err := runBootstrap(ctx, log, db, cfg.DatabaseURL, cfg.Admin); err != nil {
		return err
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	if cfg.SessionSecret == config.Defaults().SessionSecret {
		log.Warn().Msg("SESSION_SECRET is the development default")
	}
	authn := service.NewAuthenticator(db, sessions, service.NewHasher(wp), cfg.SessionSecret, cfg.SessionTTL)

	e := newEcho(log)
	router.Setup(e, db, cch, authn, cfg.CookieSecure)
	if cfg.Swagger() {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	log.Info().Str("addr", cfg.Addr()).Str("session_store", cfg.SessionStore).Msg("server starting")
	start, addr := startServer, cfg.Addr()
	errCh := make(chan error, 1)
	go func() { errCh <- start(e, addr) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownServer(shutdownCtx, e); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
