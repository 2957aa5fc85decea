package repository

import (
	"context"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
)

type StaffRepository interface {
	Create(ctx context.Context, staff *entity.StaffAccount) error
	GetByID(ctx context.Context, id string) (*entity.StaffAccount, error)
	GetByEmail(ctx context.Context, email string) (*entity.StaffAccount, error)
	Update(ctx context.Context, staff *entity.StaffAccount) error

	List(ctx context.Context, department entity.Department) ([]*entity.StaffAccount, error)
	Departments(ctx context.Context) ([]entity.Department, error)

	// SetActive toggles the active flag. Deactivation fails while the staff
	// member still carries open complaints; the check and the write share one
	// store transaction.
	SetActive(ctx context.Context, id string, active bool) (*entity.StaffAccount, error)
}
