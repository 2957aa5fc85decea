package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
	"github.com/campuscare/campuscare-api/internal/domain/repository"
)

const principalKey = "principal"

// TokenVerifier turns a bearer token into a verified account id. The
// Firebase auth client satisfies this; tests swap in a stub.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// AuthMiddleware resolves the request's Principal once: verify the token,
// load the account record, map its stored role onto the closed Role set.
// Unknown roles fail closed with 401, never fall back.
type AuthMiddleware struct {
	verifier TokenVerifier
	userRepo repository.UserRepository
}

func NewAuthMiddleware(verifier TokenVerifier, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		userRepo: userRepo,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
		}

		role, ok := entity.ParseRole(string(user.Role))
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid account role")
		}

		c.Set(principalKey, entity.Principal{ID: uid, Role: role})

		return next(c)
	}
}

// PrincipalFrom returns the Principal resolved by Authenticate.
func PrincipalFrom(c echo.Context) (entity.Principal, bool) {
	principal, ok := c.Get(principalKey).(entity.Principal)
	return principal, ok
}
