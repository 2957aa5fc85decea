package router

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/adapter/api/handler"
	"github.com/campuscare/campuscare-api/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	complaintHandler := handler.GetComplaintHandler()
	staffHandler := handler.GetStaffHandler()

	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(roleMiddleware.AdminOnly())

	admin.GET("/complaints", complaintHandler.ListByStatus)
	admin.PATCH("/complaints/:id/assign", complaintHandler.Assign)
	admin.PATCH("/complaints/:id/approve", complaintHandler.Approve)
	admin.PATCH("/complaints/:id/reject", complaintHandler.Reject)

	admin.POST("/staff", staffHandler.Create)
	admin.GET("/staff", staffHandler.List)
	admin.GET("/staff/departments", staffHandler.Departments)
	admin.GET("/staff/department/:dept", staffHandler.ListByDepartment)
	admin.PATCH("/staff/:id/status", staffHandler.ToggleStatus)
}
