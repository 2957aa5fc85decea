package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
)

// RoleMiddleware gates routes on the Principal's role. It runs after
// Authenticate; a missing principal means the route was wired wrong and is
// treated as unauthenticated.
type RoleMiddleware struct{}

func NewRoleMiddleware() *RoleMiddleware {
	return &RoleMiddleware{}
}

func (m *RoleMiddleware) require(role entity.Role, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			if principal.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, message)
			}

			return next(c)
		}
	}
}

func (m *RoleMiddleware) AdminOnly() echo.MiddlewareFunc {
	return m.require(entity.RoleAdmin, "Admin privileges required")
}

func (m *RoleMiddleware) StaffOnly() echo.MiddlewareFunc {
	return m.require(entity.RoleStaff, "Staff privileges required")
}

func (m *RoleMiddleware) StudentOnly() echo.MiddlewareFunc {
	return m.require(entity.RoleStudent, "Student privileges required")
}
