package router

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/adapter/api/handler"
	"github.com/campuscare/campuscare-api/internal/adapter/api/middleware"
)

// SetupStaffRouter wires the task lists a staff member works from.
func SetupStaffRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	complaintHandler := handler.GetComplaintHandler()

	staff := e.Group("/v1/staff")
	staff.Use(authMiddleware.Authenticate)
	staff.Use(roleMiddleware.StaffOnly())

	staff.GET("/assigned", complaintHandler.ListAssignedTasks)
	staff.GET("/awaiting-review", complaintHandler.ListAwaitingReviewTasks)
	staff.GET("/completed", complaintHandler.ListCompletedTasks)
}
