// File: internal/handler/auth/auth.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/api"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/logger"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/middleware"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/service"

	"github.com/labstack/echo/v4"
)

// Authenticator 由 *service.Authenticator 實作
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*model.Session, string, error)
	Logout(ctx context.Context, token string) error
}

// LoginHandler 驗證帳密並設定 session cookie
// @Summary     管理員登入
// @Description 帳號不存在與密碼錯誤回傳相同訊息
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "帳號密碼"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /admin/login [post]
func LoginHandler(authn Authenticator, secureCookie bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Username and password are required."})
		}

		ctx := c.Request().Context()
		s, token, err := authn.Login(ctx, req.Username, req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Invalid credentials."})
		}
		if err != nil {
			logger.FromContext(ctx).Error().Err(err).Msg("login failed")
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "Server error."})
		}

		setSessionCookie(c, token, s.ExpiresAt, secureCookie)
		logger.FromContext(ctx).Info().Str("username", s.Username).Msg("admin logged in")
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged in"})
	}
}

// LogoutHandler 刪除 session 並清除 cookie，沒有登入也回 200
// @Summary     管理員登出
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Router      /admin/logout [post]
func LogoutHandler(authn Authenticator, secureCookie bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		if cookie, err := c.Cookie(service.SessionCookieName); err == nil {
			ctx := c.Request().Context()
			if err := authn.Logout(ctx, cookie.Value); err != nil {
				logger.FromContext(ctx).Error().Err(err).Msg("logout failed")
			}
		}
		clearSessionCookie(c, secureCookie)
		return c.JSON(http.StatusOK, api.MessageResponse{Message: "Logged out"})
	}
}

// MeHandler 回傳目前登入的管理員
// @Summary     目前的管理員
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.MeResponse
// @Failure     401 {object} api.ErrorResponse
// @Security    SessionCookie
// @Router      /admin/me [get]
func MeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		s := middleware.SessionFrom(c)
		if s == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "Unauthorized"})
		}
		return c.JSON(http.StatusOK, api.MeResponse{Username: s.Username})
	}
}
