package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/pkg/apperrors"
	"github.com/emre/smartportal/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Every rejection
// cause of the verifier has its own error code; the response never
// carries the stored PIN or the measured distance.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrLectureNotFound):
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Lecture not found")))
	case errors.Is(err, apperrors.ErrCourseNotFound):
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")))
	case errors.Is(err, apperrors.ErrUserNotFound), errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
		var customErr *apperrors.CustomError
		if errors.As(err, &customErr) && customErr.Message != "" {
			detail = detail.WithDetails(customErr.Message)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrLectureLocked):
		c.JSON(http.StatusConflict,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceLocked, "Lecture already has attendance records and can no longer be modified")))
	case errors.Is(err, apperrors.ErrNotEnrolled):
		c.JSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeNotEnrolled, "Student is not enrolled in this course")))
	case errors.Is(err, apperrors.ErrAlreadyMarked):
		c.JSON(http.StatusConflict,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeAlreadyMarked, "Attendance already marked for this lecture")))
	case errors.Is(err, apperrors.ErrOutsideWindow):
		c.JSON(http.StatusUnprocessableEntity,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeOutsideWindow, "Outside the lecture verification window")))
	case errors.Is(err, apperrors.ErrPinNotIssued):
		c.JSON(http.StatusUnprocessableEntity,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodePinNotIssued, "No attendance PIN has been issued for this lecture")))
	case errors.Is(err, apperrors.ErrPinExpired):
		c.JSON(http.StatusUnprocessableEntity,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodePinExpired, "Attendance PIN has expired")))
	case errors.Is(err, apperrors.ErrInvalidPin):
		c.JSON(http.StatusUnprocessableEntity,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidPin, "Incorrect attendance PIN")))
	case errors.Is(err, apperrors.ErrOutOfRange):
		c.JSON(http.StatusUnprocessableEntity,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeOutOfRange, "Reported location is outside the attendance radius")))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
