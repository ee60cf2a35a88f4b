package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/igor-kostenevich/woorkroom-BE/domain"
	"github.com/igor-kostenevich/woorkroom-BE/internal/http/handlers"
	"github.com/igor-kostenevich/woorkroom-BE/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, tokenSvc domain.TokenService, authSvc domain.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/logout", ah.Logout)
	auth.POST("/forgot", ah.ForgotPassword)
	auth.POST("/phone/request", ah.RequestOTP)
	auth.POST("/phone/verify", ah.VerifyOTP)

	authed := r.Group("/auth").Use(middleware.AuthMiddleware(tokenSvc, authSvc))
	authed.GET("/me", ah.Me)
	authed.POST("/phone/attach", ah.AttachPhone)

	staff := r.Group("/users").Use(
		middleware.AuthMiddleware(tokenSvc, authSvc),
		middleware.RequireRole(authSvc, domain.RoleManager, domain.RoleAdmin),
	)
	staff.GET("/:id", ah.GetUser)

	return r
}
