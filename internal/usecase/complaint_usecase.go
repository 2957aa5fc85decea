package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
	"github.com/campuscare/campuscare-api/internal/domain/repository"
	"github.com/campuscare/campuscare-api/internal/domain/service"
	"github.com/campuscare/campuscare-api/pkg/errors"
	"github.com/campuscare/campuscare-api/pkg/logger"
)

const (
	attachmentFolder = "campuscare/complaints"
	proofFolder      = "campuscare/resolution-proofs"
)

// ComplaintUseCase is the single coordinator for the complaint lifecycle.
// Every status transition and every staff counter delta goes through here,
// backed by the repository's transactional mutations.
type ComplaintUseCase struct {
	complaintRepo repository.ComplaintRepository
	staffRepo     repository.StaffRepository
	uploader      service.UploadService
}

func NewComplaintUseCase(
	complaintRepo repository.ComplaintRepository,
	staffRepo repository.StaffRepository,
	uploader service.UploadService,
) *ComplaintUseCase {
	return &ComplaintUseCase{
		complaintRepo: complaintRepo,
		staffRepo:     staffRepo,
		uploader:      uploader,
	}
}

type CreateComplaintInput struct {
	Title       string
	Description string
	Category    string
	Contact     string

	// Optional attachment; uploaded before anything is persisted.
	Attachment     io.Reader
	AttachmentType string
}

func (uc *ComplaintUseCase) Create(ctx context.Context, caller entity.Principal, input CreateComplaintInput) (*entity.Complaint, error) {
	if caller.Role != entity.RoleStudent {
		return nil, errors.Forbidden("Only students can raise complaints", nil)
	}

	if input.Title == "" || input.Description == "" || input.Contact == "" {
		return nil, errors.BadRequest("Title, description and contact are required", nil)
	}

	category, ok := entity.ParseCategory(input.Category)
	if !ok {
		return nil, errors.BadRequest("Unknown complaint category", nil)
	}

	var attachment *entity.Attachment
	if input.Attachment != nil {
		uploaded, err := uc.uploader.Upload(ctx, input.Attachment, input.AttachmentType, attachmentFolder)
		if err != nil {
			return nil, errors.Internal("Failed to store attachment", err)
		}
		attachment = uploaded
	}

	now := time.Now()
	complaint := &entity.Complaint{
		ID:             uuid.New().String(),
		Title:          input.Title,
		Description:    input.Description,
		Category:       category,
		Status:         entity.StatusPending,
		CreatedBy:      caller.ID,
		StudentContact: input.Contact,
		Attachment:     attachment,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.complaintRepo.Create(ctx, complaint); err != nil {
		if attachment != nil {
			if delErr := uc.uploader.Delete(ctx, attachment.PublicID); delErr != nil {
				logger.LogComplaintError(complaint.ID, "create-cleanup", delErr)
			}
		}
		return nil, errors.Internal("Failed to create complaint", err)
	}

	return complaint, nil
}

// Assign routes a Pending complaint to a staff member, or reroutes an
// Assigned one. The state observed here is passed to the store as the
// expected state, so a concurrent transition fails the write instead of
// silently rerouting a complaint the caller never saw.
func (uc *ComplaintUseCase) Assign(ctx context.Context, caller entity.Principal, complaintID, staffID string) (*entity.Complaint, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can assign complaints", nil)
	}

	observed, err := uc.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	if observed.Status != entity.StatusPending && observed.Status != entity.StatusAssigned {
		return nil, errors.PreconditionFailed("Complaint cannot be assigned in its current status", nil)
	}

	return uc.complaintRepo.Assign(ctx, complaintID, staffID, observed.Status, observed.AssignedTo)
}

func (uc *ComplaintUseCase) SubmitProof(ctx context.Context, caller entity.Principal, complaintID string, proof io.Reader, proofType string) (*entity.Complaint, error) {
	if caller.Role != entity.RoleStaff {
		return nil, errors.Forbidden("Only staff can submit resolution proof", nil)
	}

	if proof == nil {
		return nil, errors.BadRequest("Resolution proof is required", nil)
	}

	// The proof reference must be durably obtained before the status moves.
	uploaded, err := uc.uploader.Upload(ctx, proof, proofType, proofFolder)
	if err != nil {
		return nil, errors.Internal("Failed to store resolution proof", err)
	}

	complaint, err := uc.complaintRepo.SubmitProof(ctx, complaintID, caller.ID, uploaded.URL)
	if err != nil {
		if delErr := uc.uploader.Delete(ctx, uploaded.PublicID); delErr != nil {
			logger.LogComplaintError(complaintID, "proof-cleanup", delErr)
		}
		return nil, err
	}

	return complaint, nil
}

func (uc *ComplaintUseCase) Approve(ctx context.Context, caller entity.Principal, complaintID, notes string) (*entity.Complaint, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can approve resolutions", nil)
	}

	if notes == "" {
		notes = "Approved"
	}

	return uc.complaintRepo.Approve(ctx, complaintID, notes)
}

func (uc *ComplaintUseCase) Reject(ctx context.Context, caller entity.Principal, complaintID string) (*entity.Complaint, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can reject complaints", nil)
	}

	return uc.complaintRepo.Reject(ctx, complaintID)
}

// Retract deletes the caller's own Pending complaint and releases its
// attachment through the upload collaborator. The record goes first; a
// failed release only orphans a stored object and is logged.
func (uc *ComplaintUseCase) Retract(ctx context.Context, caller entity.Principal, complaintID string) error {
	if caller.Role != entity.RoleStudent {
		return errors.Forbidden("Only the complaint's creator can retract it", nil)
	}

	complaint, err := uc.complaintRepo.Retract(ctx, complaintID, caller.ID)
	if err != nil {
		return err
	}

	if complaint.Attachment != nil {
		if err := uc.uploader.Delete(ctx, complaint.Attachment.PublicID); err != nil {
			logger.LogComplaintError(complaintID, "retract-release", err)
		}
	}

	return nil
}

func (uc *ComplaintUseCase) GetByID(ctx context.Context, caller entity.Principal, complaintID string) (*entity.Complaint, error) {
	complaint, err := uc.complaintRepo.GetByID(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case entity.RoleAdmin:
	case entity.RoleStudent:
		if complaint.CreatedBy != caller.ID {
			return nil, errors.Forbidden("You don't have permission to view this complaint", nil)
		}
	case entity.RoleStaff:
		if complaint.AssignedTo != caller.ID {
			return nil, errors.Forbidden("You don't have permission to view this complaint", nil)
		}
	}

	return complaint, nil
}

// ListMine returns the caller's own complaints: open (Pending, Assigned,
// "Awaiting Review") or closed (Completed, Rejected).
func (uc *ComplaintUseCase) ListMine(ctx context.Context, caller entity.Principal, open bool) ([]*entity.Complaint, error) {
	if caller.Role != entity.RoleStudent {
		return nil, errors.Forbidden("Only students have their own complaint lists", nil)
	}

	statuses := []entity.Status{entity.StatusCompleted, entity.StatusRejected}
	if open {
		statuses = []entity.Status{entity.StatusPending, entity.StatusAssigned, entity.StatusAwaitingReview}
	}

	return uc.complaintRepo.ListByCreator(ctx, caller.ID, statuses)
}

func (uc *ComplaintUseCase) ListForAssignee(ctx context.Context, caller entity.Principal, st entity.Status) ([]*entity.Complaint, error) {
	if caller.Role != entity.RoleStaff {
		return nil, errors.Forbidden("Only staff have assignment lists", nil)
	}

	switch st {
	case entity.StatusAssigned, entity.StatusAwaitingReview, entity.StatusCompleted:
	default:
		return nil, errors.BadRequest("Unsupported assignment list status", nil)
	}

	return uc.complaintRepo.ListByAssignee(ctx, caller.ID, st)
}

func (uc *ComplaintUseCase) ListByStatus(ctx context.Context, caller entity.Principal, status string) ([]*entity.Complaint, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can list all complaints", nil)
	}

	switch entity.Status(status) {
	case entity.StatusPending, entity.StatusAssigned, entity.StatusAwaitingReview,
		entity.StatusCompleted, entity.StatusRejected:
	default:
		return nil, errors.BadRequest("Unknown complaint status", nil)
	}

	return uc.complaintRepo.ListByStatus(ctx, entity.Status(status))
}
