package usecase

import (
	"context"
	"time"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
	"github.com/campuscare/campuscare-api/internal/domain/repository"
	"github.com/campuscare/campuscare-api/pkg/errors"
	"github.com/campuscare/campuscare-api/pkg/logger"
)

// StaffUseCase manages the staff directory. Counter mutations do NOT happen
// here; those belong to the complaint coordinator.
type StaffUseCase struct {
	staffRepo    repository.StaffRepository
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewStaffUseCase(
	staffRepo repository.StaffRepository,
	userRepo repository.UserRepository,
	firebaseAuth FirebaseAuthClient,
) *StaffUseCase {
	return &StaffUseCase{
		staffRepo:    staffRepo,
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type CreateStaffInput struct {
	Name       string
	Email      string
	Phone      string
	Department string
	Password   string
}

func (uc *StaffUseCase) CreateStaff(ctx context.Context, caller entity.Principal, input CreateStaffInput) (*entity.StaffAccount, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can add staff", nil)
	}

	department, ok := entity.ParseDepartment(input.Department)
	if !ok {
		return nil, errors.BadRequest("Unknown department", nil)
	}

	if existing, err := uc.staffRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.Internal("Failed to create staff account in authentication provider", err)
	}

	now := time.Now()

	user := &entity.User{
		ID:        uid,
		Name:      input.Name,
		Email:     input.Email,
		Role:      entity.RoleStaff,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}

	staff := &entity.StaffAccount{
		ID:         uid,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Department: department,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.cleanupProvisioned(ctx, uid)
		return nil, errors.Internal("Failed to create staff user record", err)
	}

	if err := uc.staffRepo.Create(ctx, staff); err != nil {
		uc.cleanupProvisioned(ctx, uid)
		return nil, errors.Internal("Failed to create staff record", err)
	}

	return staff, nil
}

func (uc *StaffUseCase) cleanupProvisioned(ctx context.Context, uid string) {
	if err := uc.firebaseAuth.DeleteUser(ctx, uid); err != nil {
		logger.Warn("Failed to clean up provisioned auth user %s: %v", uid, err)
	}
}

func (uc *StaffUseCase) GetByID(ctx context.Context, caller entity.Principal, staffID string) (*entity.StaffAccount, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can view staff records", nil)
	}

	return uc.staffRepo.GetByID(ctx, staffID)
}

func (uc *StaffUseCase) List(ctx context.Context, caller entity.Principal, department string) ([]*entity.StaffAccount, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can list staff", nil)
	}

	var dept entity.Department
	if department != "" {
		parsed, ok := entity.ParseDepartment(department)
		if !ok {
			return nil, errors.BadRequest("Unknown department", nil)
		}
		dept = parsed
	}

	return uc.staffRepo.List(ctx, dept)
}

func (uc *StaffUseCase) Departments(ctx context.Context, caller entity.Principal) ([]entity.Department, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can list departments", nil)
	}

	return uc.staffRepo.Departments(ctx)
}

// SetActive toggles availability for assignment. Deactivation is refused
// while the staff member still carries open complaints.
func (uc *StaffUseCase) SetActive(ctx context.Context, caller entity.Principal, staffID string, active bool) (*entity.StaffAccount, error) {
	if caller.Role != entity.RoleAdmin {
		return nil, errors.Forbidden("Only administrators can change staff status", nil)
	}

	return uc.staffRepo.SetActive(ctx, staffID, active)
}
