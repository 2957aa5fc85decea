package handler

import (
	"github.com/campuscare/campuscare-api/internal/infrastructure/ratelimit"
	"github.com/campuscare/campuscare-api/internal/usecase"
)

var (
	authHandler      *AuthHandler
	complaintHandler *ComplaintHandler
	staffHandler     *StaffHandler
	profileHandler   *ProfileHandler
	healthHandler    *HealthHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	complaintUseCase *usecase.ComplaintUseCase,
	staffUseCase *usecase.StaffUseCase,
	userUseCase *usecase.UserUseCase,
	limiter *ratelimit.RateLimiter,
	uploadMaxBytes int64,
) {
	authHandler = NewAuthHandler(authUseCase, limiter)
	complaintHandler = NewComplaintHandler(complaintUseCase, uploadMaxBytes)
	staffHandler = NewStaffHandler(staffUseCase)
	profileHandler = NewProfileHandler(userUseCase)
	healthHandler = NewHealthHandler()
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetComplaintHandler() *ComplaintHandler {
	return complaintHandler
}

func GetStaffHandler() *StaffHandler {
	return staffHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
