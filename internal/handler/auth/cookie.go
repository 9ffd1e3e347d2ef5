package auth

import (
	"net/http"
	"time"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/service"

	"github.com/labstack/echo/v4"
)

var timeNow = time.Now

// setSessionCookie 讓 cookie 與伺服器端 session 在同一時間點失效
func setSessionCookie(c echo.Context, token string, expiresAt time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     service.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(expiresAt.Sub(timeNow()).Seconds()),
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     service.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
