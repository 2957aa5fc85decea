package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
	"github.com/campuscare/campuscare-api/internal/domain/repository"
	apperrors "github.com/campuscare/campuscare-api/pkg/errors"
)

type firestoreStaffRepository struct {
	client *firestore.Client
}

func NewFirestoreStaffRepository(client *firestore.Client) repository.StaffRepository {
	return &firestoreStaffRepository{
		client: client,
	}
}

func (r *firestoreStaffRepository) staff() *firestore.CollectionRef {
	return r.client.Collection("staff")
}

func (r *firestoreStaffRepository) Create(ctx context.Context, staff *entity.StaffAccount) error {
	_, err := r.staff().Doc(staff.ID).Set(ctx, staff)
	return err
}

func (r *firestoreStaffRepository) GetByID(ctx context.Context, id string) (*entity.StaffAccount, error) {
	doc, err := r.staff().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Staff member", err)
		}
		return nil, err
	}

	var staff entity.StaffAccount
	if err := doc.DataTo(&staff); err != nil {
		return nil, err
	}

	return &staff, nil
}

func (r *firestoreStaffRepository) GetByEmail(ctx context.Context, email string) (*entity.StaffAccount, error) {
	iter := r.staff().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, apperrors.NotFound("Staff member", nil)
	}
	if err != nil {
		return nil, err
	}

	var staff entity.StaffAccount
	if err := doc.DataTo(&staff); err != nil {
		return nil, err
	}

	return &staff, nil
}

func (r *firestoreStaffRepository) Update(ctx context.Context, staff *entity.StaffAccount) error {
	staff.UpdatedAt = time.Now()
	_, err := r.staff().Doc(staff.ID).Set(ctx, staff)
	return err
}

func (r *firestoreStaffRepository) List(ctx context.Context, department entity.Department) ([]*entity.StaffAccount, error) {
	query := r.staff().Query
	if department != "" {
		query = query.Where("department", "==", string(department))
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var members []*entity.StaffAccount
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var staff entity.StaffAccount
		if err := doc.DataTo(&staff); err != nil {
			return nil, err
		}
		members = append(members, &staff)
	}

	return members, nil
}

// Departments collects the distinct departments present in the directory.
// Firestore has no distinct query, so this walks the collection.
func (r *firestoreStaffRepository) Departments(ctx context.Context) ([]entity.Department, error) {
	iter := r.staff().Documents(ctx)
	defer iter.Stop()

	seen := make(map[entity.Department]bool)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var staff entity.StaffAccount
		if err := doc.DataTo(&staff); err != nil {
			return nil, err
		}
		seen[staff.Department] = true
	}

	departments := make([]entity.Department, 0, len(seen))
	for d := range seen {
		departments = append(departments, d)
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i] < departments[j] })

	return departments, nil
}

// SetActive checks the workload counter and flips the flag inside one
// transaction, so a concurrent assignment cannot slip in between the check
// and the write.
func (r *firestoreStaffRepository) SetActive(ctx context.Context, id string, active bool) (*entity.StaffAccount, error) {
	var result *entity.StaffAccount

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(r.staff().Doc(id))
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return apperrors.NotFound("Staff member", err)
			}
			return err
		}

		var staff entity.StaffAccount
		if err := doc.DataTo(&staff); err != nil {
			return err
		}

		if !active && staff.ActiveComplaintCount > 0 {
			return apperrors.PreconditionFailed("Cannot deactivate staff with active complaints", nil)
		}

		staff.IsActive = active
		staff.UpdatedAt = time.Now()

		if err := tx.Set(r.staff().Doc(staff.ID), &staff); err != nil {
			return err
		}

		result = &staff
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}
