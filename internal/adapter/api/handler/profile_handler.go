package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/usecase"
	"github.com/campuscare/campuscare-api/pkg/response"
)

type ProfileHandler struct {
	userUseCase *usecase.UserUseCase
}

func NewProfileHandler(userUseCase *usecase.UserUseCase) *ProfileHandler {
	return &ProfileHandler{
		userUseCase: userUseCase,
	}
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.GetProfile(c.Request().Context(), principal)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type updateProfileRequest struct {
	Name   string `json:"name,omitempty"`
	Phone  string `json:"phone,omitempty"`
	RollNo string `json:"roll_no,omitempty"`
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), principal, usecase.UpdateProfileInput{
		Name:   req.Name,
		Phone:  req.Phone,
		RollNo: req.RollNo,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.userUseCase.ChangePassword(c.Request().Context(), principal, req.CurrentPassword, req.NewPassword); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Password updated successfully"})
}
