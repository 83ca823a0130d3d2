package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/app/services"
	"github.com/emre/smartportal/internal/middleware"
	"github.com/emre/smartportal/internal/pkg/apperrors"
)

// AttendanceController handles attendance marking and overrides
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
	}
}

func toMarkResponse(record *models.AttendanceRecord) dto.MarkAttendanceResponse {
	return dto.MarkAttendanceResponse{
		Status:     string(record.Status),
		Method:     string(record.Method),
		RecordedAt: record.RecordedAt,
	}
}

// MarkAttendance handles a student's marking attempt
// @Summary Mark attendance
// @Description Verifies the submitted proof (PIN or geolocation, exactly one) and records attendance for the authenticated student. A repeat attempt answers 409 with the already recorded outcome and changes nothing.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Param request body dto.MarkAttendanceRequest true "Proof of presence"
// @Success 201 {object} dto.APIResponse{data=dto.MarkAttendanceResponse} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in this course"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 409 {object} dto.APIResponse{data=dto.MarkAttendanceResponse} "Attendance already marked"
// @Failure 422 {object} dto.ErrorResponse "Proof rejected (window, PIN or geofence)"
// @Failure 429 {object} dto.ErrorResponse "Too many marking attempts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{id}/attendance [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	lectureID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MarkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	studentID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	proof := models.Proof{}
	if req.Pin != nil {
		proof.Pin = &models.PinProof{Code: req.Pin.Code}
	}
	if req.Location != nil {
		proof.Location = &models.LocationProof{Lat: req.Location.Lat, Lon: req.Location.Lon}
	}

	record, err := c.attendanceService.Mark(ctx, studentID, lectureID, proof)
	if err != nil {
		// The duplicate answer is non-destructive: the existing outcome
		// rides along with the conflict so the client can show it.
		if errors.Is(err, apperrors.ErrAlreadyMarked) && record != nil {
			ctx.JSON(http.StatusConflict, dto.APIResponse{
				Data:      toMarkResponse(record),
				Error:     dto.NewErrorDetail(dto.ErrorCodeAlreadyMarked, "Attendance already marked for this lecture"),
				Timestamp: time.Now(),
			})
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      toMarkResponse(record),
		Timestamp: time.Now(),
	})
}

// OverrideAttendance handles a manual attendance override by staff
// @Summary Override attendance
// @Description Sets any attendance status for a roster student, replacing an existing record in place. The write is attributed to the acting staff member.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Param studentId path int true "Student ID"
// @Param request body dto.OverrideAttendanceRequest true "Override status"
// @Success 200 {object} dto.APIResponse{data=dto.MarkAttendanceResponse} "Attendance overridden"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course instructor"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{id}/attendance/{studentId} [put]
func (c *AttendanceController) OverrideAttendance(ctx *gin.Context) {
	lectureID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	var req dto.OverrideAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid override data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	staffID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	record, err := c.attendanceService.Override(ctx, staffID, lectureID, studentID, models.AttendanceStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toMarkResponse(record),
		Timestamp: time.Now(),
	})
}
