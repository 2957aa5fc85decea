package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
	"github.com/campuscare/campuscare-api/internal/domain/repository"
	apperrors "github.com/campuscare/campuscare-api/pkg/errors"
)

type firestoreComplaintRepository struct {
	client *firestore.Client
}

func NewFirestoreComplaintRepository(client *firestore.Client) repository.ComplaintRepository {
	return &firestoreComplaintRepository{
		client: client,
	}
}

func (r *firestoreComplaintRepository) complaints() *firestore.CollectionRef {
	return r.client.Collection("complaints")
}

func (r *firestoreComplaintRepository) staff() *firestore.CollectionRef {
	return r.client.Collection("staff")
}

func (r *firestoreComplaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	_, err := r.complaints().Doc(complaint.ID).Set(ctx, complaint)
	return err
}

func (r *firestoreComplaintRepository) GetByID(ctx context.Context, id string) (*entity.Complaint, error) {
	doc, err := r.complaints().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Complaint", err)
		}
		return nil, err
	}

	var complaint entity.Complaint
	if err := doc.DataTo(&complaint); err != nil {
		return nil, err
	}

	return &complaint, nil
}

func (r *firestoreComplaintRepository) ListByCreator(ctx context.Context, creatorID string, statuses []entity.Status) ([]*entity.Complaint, error) {
	values := make([]interface{}, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := r.complaints().
		Where("createdBy", "==", creatorID).
		Where("status", "in", values).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query)
}

func (r *firestoreComplaintRepository) ListByAssignee(ctx context.Context, assigneeID string, st entity.Status) ([]*entity.Complaint, error) {
	query := r.complaints().
		Where("assignedTo", "==", assigneeID).
		Where("status", "==", string(st)).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query)
}

func (r *firestoreComplaintRepository) ListByStatus(ctx context.Context, st entity.Status) ([]*entity.Complaint, error) {
	query := r.complaints().
		Where("status", "==", string(st)).
		OrderBy("createdAt", firestore.Desc)

	return r.collect(ctx, query)
}

func (r *firestoreComplaintRepository) collect(ctx context.Context, query firestore.Query) ([]*entity.Complaint, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var complaints []*entity.Complaint
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var complaint entity.Complaint
		if err := doc.DataTo(&complaint); err != nil {
			return nil, err
		}
		complaints = append(complaints, &complaint)
	}

	return complaints, nil
}

// Assign runs the full read-validate-write sequence inside one Firestore
// transaction: the status write and the counter deltas on up to two staff
// documents commit together or not at all. Firestore aborts and retries on
// contention, so two racing assigns against one Pending complaint serialize
// and the loser fails the expected-state check against the winner's write.
func (r *firestoreComplaintRepository) Assign(ctx context.Context, complaintID, staffID string, expectedStatus entity.Status, expectedAssignee string) (*entity.Complaint, error) {
	var result *entity.Complaint

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		complaint, err := r.txGetComplaint(tx, complaintID)
		if err != nil {
			return err
		}

		staffDoc, err := tx.Get(r.staff().Doc(staffID))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return apperrors.NotFound("Staff member", err)
			}
			return err
		}

		var staff entity.StaffAccount
		if err := staffDoc.DataTo(&staff); err != nil {
			return err
		}

		if !staff.IsActive {
			return apperrors.PreconditionFailed("Cannot assign to inactive staff", nil)
		}

		if complaint.Status != entity.StatusPending && complaint.Status != entity.StatusAssigned {
			return apperrors.PreconditionFailed("Complaint cannot be assigned in its current status", nil)
		}

		if complaint.Status != expectedStatus || complaint.AssignedTo != expectedAssignee {
			return apperrors.PreconditionFailed("Complaint was updated concurrently, please retry", nil)
		}

		if complaint.AssignedTo == staffID {
			// Same assignee: status, timestamps and counters all stay put.
			result = complaint
			return nil
		}

		var previous *entity.StaffAccount
		if complaint.AssignedTo != "" {
			prevDoc, err := tx.Get(r.staff().Doc(complaint.AssignedTo))
			if err != nil {
				return err
			}
			previous = &entity.StaffAccount{}
			if err := prevDoc.DataTo(previous); err != nil {
				return err
			}
		}

		now := time.Now()

		if previous != nil {
			previous.ActiveComplaintCount--
			previous.UpdatedAt = now
			if err := tx.Set(r.staff().Doc(previous.ID), previous); err != nil {
				return err
			}
		}

		staff.ActiveComplaintCount++
		staff.UpdatedAt = now
		if err := tx.Set(r.staff().Doc(staff.ID), &staff); err != nil {
			return err
		}

		complaint.Status = entity.StatusAssigned
		complaint.AssignedTo = staffID
		complaint.UpdatedAt = now
		if err := tx.Set(r.complaints().Doc(complaint.ID), complaint); err != nil {
			return err
		}

		result = complaint
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *firestoreComplaintRepository) SubmitProof(ctx context.Context, complaintID, staffID, proofURL string) (*entity.Complaint, error) {
	var result *entity.Complaint

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		complaint, err := r.txGetComplaint(tx, complaintID)
		if err != nil {
			return err
		}

		if complaint.AssignedTo != staffID {
			return apperrors.Forbidden("Only the assigned staff member can submit resolution proof", nil)
		}

		if complaint.Status != entity.StatusAssigned {
			return apperrors.PreconditionFailed("Complaint is not awaiting resolution", nil)
		}

		now := time.Now()
		complaint.Status = entity.StatusAwaitingReview
		complaint.ResolutionProof = proofURL
		complaint.ResolvedAt = &now
		complaint.UpdatedAt = now

		if err := tx.Set(r.complaints().Doc(complaint.ID), complaint); err != nil {
			return err
		}

		result = complaint
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *firestoreComplaintRepository) Approve(ctx context.Context, complaintID, notes string) (*entity.Complaint, error) {
	var result *entity.Complaint

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		complaint, err := r.txGetComplaint(tx, complaintID)
		if err != nil {
			return err
		}

		if complaint.Status != entity.StatusAwaitingReview {
			return apperrors.PreconditionFailed("Complaint is not awaiting review", nil)
		}

		staffDoc, err := tx.Get(r.staff().Doc(complaint.AssignedTo))
		if err != nil {
			return err
		}
		var staff entity.StaffAccount
		if err := staffDoc.DataTo(&staff); err != nil {
			return err
		}

		now := time.Now()

		staff.ActiveComplaintCount--
		staff.UpdatedAt = now
		if err := tx.Set(r.staff().Doc(staff.ID), &staff); err != nil {
			return err
		}

		complaint.Status = entity.StatusCompleted
		complaint.AdminNotes = notes
		complaint.CompletedAt = &now
		complaint.UpdatedAt = now
		if err := tx.Set(r.complaints().Doc(complaint.ID), complaint); err != nil {
			return err
		}

		result = complaint
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *firestoreComplaintRepository) Reject(ctx context.Context, complaintID string) (*entity.Complaint, error) {
	var result *entity.Complaint

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		complaint, err := r.txGetComplaint(tx, complaintID)
		if err != nil {
			return err
		}

		if complaint.Status != entity.StatusPending {
			return apperrors.PreconditionFailed("Only pending complaints can be rejected", nil)
		}

		now := time.Now()
		complaint.Status = entity.StatusRejected
		complaint.RejectedAt = &now
		complaint.UpdatedAt = now

		if err := tx.Set(r.complaints().Doc(complaint.ID), complaint); err != nil {
			return err
		}

		result = complaint
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *firestoreComplaintRepository) Retract(ctx context.Context, complaintID, studentID string) (*entity.Complaint, error) {
	var result *entity.Complaint

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		complaint, err := r.txGetComplaint(tx, complaintID)
		if err != nil {
			return err
		}

		if complaint.CreatedBy != studentID {
			return apperrors.Forbidden("Only the complaint's creator can retract it", nil)
		}

		if complaint.Status != entity.StatusPending {
			return apperrors.PreconditionFailed("Only pending complaints can be retracted", nil)
		}

		if err := tx.Delete(r.complaints().Doc(complaint.ID)); err != nil {
			return err
		}

		result = complaint
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *firestoreComplaintRepository) txGetComplaint(tx *firestore.Transaction, id string) (*entity.Complaint, error) {
	doc, err := tx.Get(r.complaints().Doc(id))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Complaint", err)
		}
		return nil, err
	}

	var complaint entity.Complaint
	if err := doc.DataTo(&complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}
