package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/app/repositories"
	"github.com/emre/smartportal/internal/pkg/apperrors"
	"github.com/emre/smartportal/internal/pkg/logger"
)

// AuthorizationService answers the course-ownership and role questions
// the attendance core asks before running any verification logic. It
// trusts the identity carried in the request context; credential checks
// happen upstream.
type AuthorizationService struct {
	userRepo   *repositories.UserRepository
	courseRepo *repositories.CourseRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo *repositories.UserRepository, courseRepo *repositories.CourseRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
	}
}

// IsAdmin checks if the user holds the ADMIN role
func (s *AuthorizationService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting user by ID in IsAdmin")
		return false, err
	}
	return user.RoleType == models.RoleAdmin, nil
}

// IsInstructorOf checks if the user is the instructor of record for the
// course.
func (s *AuthorizationService) IsInstructorOf(ctx context.Context, userID, courseID int64) (bool, error) {
	isInstructor, err := s.courseRepo.IsInstructorOf(ctx, userID, courseID)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Int64("courseID", courseID).Msg("Error checking course instructor")
		return false, err
	}
	return isInstructor, nil
}

// ValidateCourseStaff validates that the user may manage the course's
// lectures and attendance: either the instructor of record or an
// administrator. Rejected callers never reach verification logic.
func (s *AuthorizationService) ValidateCourseStaff(ctx context.Context, userID, courseID int64) error {
	isAdmin, err := s.IsAdmin(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check admin role: %w", err)
	}
	if isAdmin {
		return nil
	}

	isInstructor, err := s.IsInstructorOf(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("failed to check course ownership: %w", err)
	}
	if !isInstructor {
		return apperrors.ErrPermissionDenied
	}

	return nil
}
