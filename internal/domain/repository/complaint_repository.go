package repository

import (
	"context"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
)

// ComplaintRepository persists complaint records. The lifecycle mutations
// (Assign through Retract) are transactional: each one re-validates the
// complaint's state inside the store transaction and commits the status write
// together with any staff counter delta, or not at all.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	GetByID(ctx context.Context, id string) (*entity.Complaint, error)

	ListByCreator(ctx context.Context, creatorID string, statuses []entity.Status) ([]*entity.Complaint, error)
	ListByAssignee(ctx context.Context, assigneeID string, status entity.Status) ([]*entity.Complaint, error)
	ListByStatus(ctx context.Context, status entity.Status) ([]*entity.Complaint, error)

	// Assign moves a Pending or Assigned complaint to staffID, applying the
	// matching counter deltas. Reassigning the same staff id is a no-op.
	// expectedStatus/expectedAssignee are the state the caller observed; if
	// the complaint moved in between, the write fails and nothing is applied.
	Assign(ctx context.Context, complaintID, staffID string, expectedStatus entity.Status, expectedAssignee string) (*entity.Complaint, error)

	// SubmitProof moves an Assigned complaint to "Awaiting Review" on behalf
	// of its current assignee. No counter delta; the work is still open.
	SubmitProof(ctx context.Context, complaintID, staffID, proofURL string) (*entity.Complaint, error)

	// Approve moves an "Awaiting Review" complaint to Completed and releases
	// the assignee's counter.
	Approve(ctx context.Context, complaintID, notes string) (*entity.Complaint, error)

	// Reject moves a Pending complaint to Rejected. No staff is touched.
	Reject(ctx context.Context, complaintID string) (*entity.Complaint, error)

	// Retract deletes a Pending complaint owned by studentID and returns the
	// deleted record so the caller can release its attachment.
	Retract(ctx context.Context, complaintID, studentID string) (*entity.Complaint, error)
}
