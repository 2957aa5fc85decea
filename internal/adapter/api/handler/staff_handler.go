package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/usecase"
	"github.com/campuscare/campuscare-api/pkg/errors"
	"github.com/campuscare/campuscare-api/pkg/response"
)

type StaffHandler struct {
	staffUseCase *usecase.StaffUseCase
}

func NewStaffHandler(staffUseCase *usecase.StaffUseCase) *StaffHandler {
	return &StaffHandler{
		staffUseCase: staffUseCase,
	}
}

type createStaffRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Department string `json:"department" validate:"required"`
	Password   string `json:"password" validate:"required,min=6"`
}

func (h *StaffHandler) Create(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req createStaffRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	staff, err := h.staffUseCase.CreateStaff(c.Request().Context(), principal, usecase.CreateStaffInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Password:   req.Password,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, staff)
}

func (h *StaffHandler) List(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	staff, err := h.staffUseCase.List(c.Request().Context(), principal, c.QueryParam("department"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, staff)
}

func (h *StaffHandler) ListByDepartment(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	staff, err := h.staffUseCase.List(c.Request().Context(), principal, c.Param("dept"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, staff)
}

func (h *StaffHandler) Departments(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	departments, err := h.staffUseCase.Departments(c.Request().Context(), principal)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, departments)
}

type toggleStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func (h *StaffHandler) ToggleStatus(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	staffID := c.Param("id")
	if staffID == "" {
		return response.Error(c, errors.BadRequest("Staff ID is required", nil))
	}

	var req toggleStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	staff, err := h.staffUseCase.SetActive(c.Request().Context(), principal, staffID, *req.IsActive)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, staff)
}
