package router

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/adapter/api/handler"
	"github.com/campuscare/campuscare-api/internal/adapter/api/middleware"
)

func SetupProfileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	profileHandler := handler.GetProfileHandler()

	profile := e.Group("/v1/profile")
	profile.Use(authMiddleware.Authenticate)

	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)
	profile.PUT("/password", profileHandler.ChangePassword)
}
