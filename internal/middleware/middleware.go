package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/api"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/logger"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextSessionKey = "session"

// SessionResolver 由 *service.Authenticator 實作
type SessionResolver interface {
	CurrentSession(ctx context.Context, token string) (*model.Session, error)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized"})
}

// RequireAdmin 沒有有效 session 時一律回 401，不會呼叫 next
func RequireAdmin(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(service.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return unauthorized(c)
			}
			ctx := c.Request().Context()
			s, err := resolver.CurrentSession(ctx, cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrNoSession) {
					logger.FromContext(ctx).Error().Err(err).Msg("session lookup failed")
				}
				return unauthorized(c)
			}
			c.Set(ContextSessionKey, s)
			return next(c)
		}
	}
}

// SessionFrom 取出 RequireAdmin 放入的 session，未經過 RequireAdmin 時回傳 nil
func SessionFrom(c echo.Context) *model.Session {
	s, _ := c.Get(ContextSessionKey).(*model.Session)
	return s
}
