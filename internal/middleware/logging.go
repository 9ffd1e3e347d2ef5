package middleware

import (
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// AttachLogger 把帶 request_id 的 logger 放進 request context，需排在 middleware.RequestID 之後
func AttachLogger(base *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base
			if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
				l = base.With("request_id", id)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))
			return next(c)
		}
	}
}

// RequestLogger 每個請求結束時寫一筆 access log
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l := logger.FromContext(c.Request().Context())
			ev := l.Info()
			if v.Error != nil || v.Status >= 500 {
				ev = l.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
