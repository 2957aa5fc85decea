package usecase

import (
	"context"
	"time"

	"github.com/campuscare/campuscare-api/internal/domain/entity"
	"github.com/campuscare/campuscare-api/internal/domain/repository"
	"github.com/campuscare/campuscare-api/pkg/errors"
	"github.com/campuscare/campuscare-api/pkg/logger"
)

type AuthUseCase struct {
	userRepo     repository.UserRepository
	firebaseAuth FirebaseAuthClient
}

func NewAuthUseCase(userRepo repository.UserRepository, firebaseAuth FirebaseAuthClient) *AuthUseCase {
	return &AuthUseCase{
		userRepo:     userRepo,
		firebaseAuth: firebaseAuth,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	RollNo   string
}

type AuthResult struct {
	User  *entity.User
	Token string
}

// Register creates a student account. Staff and admin accounts are
// provisioned elsewhere (staff via the directory, admins out of band).
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existingUser != nil {
		return nil, errors.BadRequest("Email already in use", nil)
	}

	uid, err := uc.firebaseAuth.CreateUser(ctx, input.Email, input.Password, input.Name)
	if err != nil {
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:        uid,
		Name:      input.Name,
		Email:     input.Email,
		Role:      entity.RoleStudent,
		Phone:     input.Phone,
		RollNo:    input.RollNo,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if delErr := uc.firebaseAuth.DeleteUser(ctx, uid); delErr != nil {
			logger.Warn("Failed to clean up provisioned auth user %s: %v", uid, delErr)
		}
		return nil, errors.Internal("Failed to create user record", err)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to generate authentication token", err)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}

// Login signs in with email/password, scoped to the requested role: a staff
// token can't be minted through the student form. An account whose stored
// role falls outside the closed set fails closed.
func (uc *AuthUseCase) Login(ctx context.Context, email, password, role string) (*AuthResult, error) {
	requested, ok := entity.ParseRole(role)
	if !ok {
		return nil, errors.Unauthorized("Invalid account role", nil)
	}

	token, err := uc.firebaseAuth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials", err)
	}

	uid, err := uc.firebaseAuth.VerifyToken(ctx, token)
	if err != nil {
		return nil, errors.Internal("Failed to verify token", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	if _, ok := entity.ParseRole(string(user.Role)); !ok {
		return nil, errors.Unauthorized("Invalid account role", nil)
	}

	if user.Role != requested {
		return nil, errors.Unauthorized("No "+role+" account found with this email", nil)
	}

	return &AuthResult{
		User:  user,
		Token: token,
	}, nil
}
