package handler

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"github.com/campuscare/campuscare-api/internal/adapter/api/middleware"
	"github.com/campuscare/campuscare-api/internal/domain/entity"
	"github.com/campuscare/campuscare-api/internal/usecase"
	"github.com/campuscare/campuscare-api/pkg/errors"
	"github.com/campuscare/campuscare-api/pkg/response"
	"github.com/campuscare/campuscare-api/pkg/utils"
)

type ComplaintHandler struct {
	complaintUseCase *usecase.ComplaintUseCase
	uploadMaxBytes   int64
}

func NewComplaintHandler(complaintUseCase *usecase.ComplaintUseCase, uploadMaxBytes int64) *ComplaintHandler {
	return &ComplaintHandler{
		complaintUseCase: complaintUseCase,
		uploadMaxBytes:   uploadMaxBytes,
	}
}

func principalFrom(c echo.Context) (entity.Principal, error) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return entity.Principal{}, errors.Unauthorized("Authentication required", nil)
	}
	return principal, nil
}

func (h *ComplaintHandler) openFormFile(c echo.Context, field string) (multipart.File, string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}

	if fileHeader.Size > h.uploadMaxBytes {
		return nil, "", errors.BadRequest("File size exceeds maximum allowed", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", errors.BadRequest("Missing or invalid file", err)
	}

	return file, fileHeader.Header.Get("Content-Type"), nil
}

// Create accepts multipart form data: title, description, category, contact
// and an optional attachment file.
func (h *ComplaintHandler) Create(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	input := usecase.CreateComplaintInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Contact:     c.FormValue("contact"),
	}

	file, contentType, err := h.openFormFile(c, "attachment")
	if err != nil {
		return response.Error(c, err)
	}
	if file != nil {
		defer file.Close()
		input.Attachment = file
		input.AttachmentType = contentType
	}

	complaint, err := h.complaintUseCase.Create(c.Request().Context(), principal, input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, complaint)
}

func (h *ComplaintHandler) ListPending(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaints, err := h.complaintUseCase.ListMine(c.Request().Context(), principal, true)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, complaints)
}

func (h *ComplaintHandler) ListResolved(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaints, err := h.complaintUseCase.ListMine(c.Request().Context(), principal, false)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, complaints)
}

func (h *ComplaintHandler) Retract(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaintID := c.Param("id")
	if complaintID == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	if err := h.complaintUseCase.Retract(c.Request().Context(), principal, complaintID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{"deleted": true})
}

// SubmitProof accepts multipart form data with a required proof file.
func (h *ComplaintHandler) SubmitProof(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaintID := c.Param("id")
	if complaintID == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	file, contentType, err := h.openFormFile(c, "proof")
	if err != nil {
		return response.Error(c, err)
	}
	if file == nil {
		return response.Error(c, errors.BadRequest("Resolution proof is required", nil))
	}
	defer file.Close()

	complaint, err := h.complaintUseCase.SubmitProof(c.Request().Context(), principal, complaintID, file, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, complaint)
}

func (h *ComplaintHandler) listForAssignee(c echo.Context, st entity.Status) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaints, err := h.complaintUseCase.ListForAssignee(c.Request().Context(), principal, st)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, complaints)
}

func (h *ComplaintHandler) ListAssignedTasks(c echo.Context) error {
	return h.listForAssignee(c, entity.StatusAssigned)
}

func (h *ComplaintHandler) ListAwaitingReviewTasks(c echo.Context) error {
	return h.listForAssignee(c, entity.StatusAwaitingReview)
}

func (h *ComplaintHandler) ListCompletedTasks(c echo.Context) error {
	return h.listForAssignee(c, entity.StatusCompleted)
}

func (h *ComplaintHandler) Get(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaintID := c.Param("id")
	if complaintID == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	complaint, err := h.complaintUseCase.GetByID(c.Request().Context(), principal, complaintID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, complaint)
}

type assignRequest struct {
	StaffID string `json:"staff_id" validate:"required"`
}

func (h *ComplaintHandler) Assign(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaintID := c.Param("id")
	if complaintID == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	complaint, err := h.complaintUseCase.Assign(c.Request().Context(), principal, complaintID, req.StaffID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, complaint)
}

type approveRequest struct {
	Notes string `json:"notes,omitempty"`
}

func (h *ComplaintHandler) Approve(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaintID := c.Param("id")
	if complaintID == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	complaint, err := h.complaintUseCase.Approve(c.Request().Context(), principal, complaintID, req.Notes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, complaint)
}

func (h *ComplaintHandler) Reject(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	complaintID := c.Param("id")
	if complaintID == "" {
		return response.Error(c, errors.BadRequest("Complaint ID is required", nil))
	}

	complaint, err := h.complaintUseCase.Reject(c.Request().Context(), principal, complaintID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, complaint)
}

func (h *ComplaintHandler) ListByStatus(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return response.Error(c, err)
	}

	status := c.QueryParam("status")
	if status == "" {
		status = string(entity.StatusPending)
	}

	complaints, err := h.complaintUseCase.ListByStatus(c.Request().Context(), principal, status)
	if err != nil {
		return response.Error(c, err)
	}

	params := utils.GetPaginationParams(c)
	total := len(complaints)

	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	return response.Paginated(c, complaints[start:end], int64(total), params.Page, params.PageSize)
}
