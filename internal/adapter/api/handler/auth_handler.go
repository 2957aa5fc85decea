package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/infrastructure/ratelimit"
	"github.com/campuscare/campuscare-api/internal/usecase"
	"github.com/campuscare/campuscare-api/pkg/errors"
	"github.com/campuscare/campuscare-api/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	limiter     *ratelimit.RateLimiter
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, limiter *ratelimit.RateLimiter) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		limiter:     limiter,
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone,omitempty"`
	RollNo   string `json:"roll_no,omitempty"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	if allowed, _ := h.limiter.Allow(c.RealIP(), "register"); !allowed {
		return response.Error(c, errors.TooManyRequests("Too many registration attempts"))
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		RollNo:   req.RollNo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"user":  result.User,
		"token": result.Token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student staff admin"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	if allowed, _ := h.limiter.Allow(c.RealIP(), "login"); !allowed {
		return response.Error(c, errors.TooManyRequests("Too many login attempts"))
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"user":  result.User,
		"token": result.Token,
		"role":  result.User.Role,
	})
}
