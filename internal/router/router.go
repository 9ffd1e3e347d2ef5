// File: internal/router/router.go
package router

import (
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/cache"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/handler/auth"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/handler/health"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/handler/registrations"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/middleware"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/service"

	"github.com/labstack/echo/v4"
)

// Setup 註冊所有路由與中介層
// cch 只在 SESSION_STORE=redis 時不為 nil
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, authn *service.Authenticator, secureCookie bool) {
	api := e.Group("/api")

	api.GET("/health", health.HealthHandler(db, cch))

	// 公開的報名表單
	api.POST("/registrations", registrations.CreateRegistrationHandler(db))

	// 登入、登出不需 session
	api.POST("/admin/login", auth.LoginHandler(authn, secureCookie))
	api.POST("/admin/logout", auth.LogoutHandler(authn, secureCookie))

	requireAdmin := middleware.RequireAdmin(authn)
	api.GET("/admin/me", auth.MeHandler(), requireAdmin)

	// 管理員專屬 Registrations CRUD
	apiRegistrations := api.Group("/admin/registrations", requireAdmin)
	apiRegistrations.GET("", registrations.ListRegistrationsHandler(db))
	apiRegistrations.GET("/:id", registrations.GetRegistrationHandler(db))
	apiRegistrations.PUT("/:id", registrations.UpdateRegistrationHandler(db))
	apiRegistrations.DELETE("/:id", registrations.DeleteRegistrationHandler(db))
}
