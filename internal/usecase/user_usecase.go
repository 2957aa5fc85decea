package usecase

import (
	"context"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
	"github.com/campuscare/campuscare-api/internal/domain/repository"
	"github.com/campuscare/campuscare-api/pkg/errors"
)

// UserUseCase covers profile reads and updates for any principal.
type UserUseCase struct {
	userRepo     repository.UserRepository
	staffRepo    repository.StaffRepository
	firebaseAuth FirebaseAuthClient
}

func NewUserUseCase(
	userRepo repository.UserRepository,
	staffRepo repository.StaffRepository,
	firebaseAuth FirebaseAuthClient,
) *UserUseCase {
	return &UserUseCase{
		userRepo:     userRepo,
		staffRepo:    staffRepo,
		firebaseAuth: firebaseAuth,
	}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, caller entity.Principal) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, errors.NotFound("Profile", err)
	}

	return user, nil
}

type UpdateProfileInput struct {
	Name   string
	Phone  string
	RollNo string
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, caller entity.Principal, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return nil, errors.NotFound("Profile", err)
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != "" {
		user.Phone = input.Phone
	}
	if input.RollNo != "" {
		user.RollNo = input.RollNo
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Internal("Failed to update profile", err)
	}

	// Staff carry a directory record under the same id; keep it in step.
	if caller.Role == entity.RoleStaff {
		if staff, err := uc.staffRepo.GetByID(ctx, caller.ID); err == nil {
			staff.Name = user.Name
			staff.Phone = user.Phone
			if err := uc.staffRepo.Update(ctx, staff); err != nil {
				return nil, errors.Internal("Failed to update staff record", err)
			}
		}
	}

	return user, nil
}

func (uc *UserUseCase) ChangePassword(ctx context.Context, caller entity.Principal, currentPassword, newPassword string) error {
	user, err := uc.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		return errors.NotFound("Profile", err)
	}

	if _, err := uc.firebaseAuth.SignInWithEmailPassword(user.Email, currentPassword); err != nil {
		return errors.Unauthorized("Incorrect current password", err)
	}

	if err := uc.firebaseAuth.UpdateUserPassword(ctx, caller.ID, newPassword); err != nil {
		return errors.Internal("Failed to update password", err)
	}

	return nil
}
