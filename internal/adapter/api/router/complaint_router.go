package router

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/adapter/api/handler"
	"github.com/campuscare/campuscare-api/internal/adapter/api/middleware"
)

func SetupComplaintRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	complaintHandler := handler.GetComplaintHandler()

	complaints := e.Group("/v1/complaints")
	complaints.Use(authMiddleware.Authenticate)

	complaints.GET("/:id", complaintHandler.Get)

	students := complaints.Group("")
	students.Use(roleMiddleware.StudentOnly())
	students.POST("", complaintHandler.Create)
	students.GET("/pending", complaintHandler.ListPending)
	students.GET("/resolved", complaintHandler.ListResolved)
	students.DELETE("/:id", complaintHandler.Retract)

	staff := complaints.Group("")
	staff.Use(roleMiddleware.StaffOnly())
	staff.PATCH("/:id/proof", complaintHandler.SubmitProof)
}
