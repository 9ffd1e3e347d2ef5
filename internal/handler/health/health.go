// File: internal/handler/health/health.go
package health

import (
	"net/http"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/api"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/cache"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/logger"

	"github.com/labstack/echo/v4"
)

// HealthHandler 健康檢查
// @Summary     Health Check
// @Description 檢查資料庫 (以及啟用時的 Redis) 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /health [get]
func HealthHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		if err := db.Ping(ctx); err != nil {
			logger.FromContext(ctx).Error().Err(err).Msg("database ping failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "database unhealthy"})
		}
		// 只有 SESSION_STORE=redis 時才有 cache
		if cch != nil {
			if err := cch.Ping(ctx).Err(); err != nil {
				logger.FromContext(ctx).Error().Err(err).Msg("cache ping failed")
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "cache unhealthy"})
			}
		}
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
	}
}
