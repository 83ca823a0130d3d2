package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/app/services"
	"github.com/emre/smartportal/internal/middleware"
)

// LectureController handles lecture scheduling and PIN issuance
type LectureController struct {
	lectureService *services.LectureService
}

// NewLectureController creates a new LectureController
func NewLectureController(lectureService *services.LectureService) *LectureController {
	return &LectureController{
		lectureService: lectureService,
	}
}

// parseIDParam parses a path parameter as an int64, answering 400 itself
// when the value is not a number.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a valid number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

func toLectureResponse(lecture *models.Lecture) dto.LectureResponse {
	return dto.LectureResponse{
		ID:               lecture.ID,
		CourseID:         lecture.CourseID,
		ScheduledDate:    lecture.ScheduledDate.Format("2006-01-02"),
		StartTime:        lecture.StartTime.Format("15:04"),
		EndTime:          lecture.EndTime.Format("15:04"),
		Timezone:         lecture.Timezone,
		LocationLat:      lecture.LocationLat,
		LocationLon:      lecture.LocationLon,
		AttendanceRadius: lecture.AttendanceRadius,
	}
}

// CreateLecture handles lecture session creation
// @Summary Schedule a lecture session
// @Description Creates a lecture session with its verification window and venue geofence. Caller must be the course's instructor or an administrator.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLectureRequest true "Lecture information"
// @Success 201 {object} dto.APIResponse{data=dto.LectureResponse} "Lecture created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course instructor"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures [post]
func (c *LectureController) CreateLecture(ctx *gin.Context) {
	var req dto.CreateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lecture data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	lecture, err := c.lectureService.CreateLecture(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      toLectureResponse(lecture),
		Timestamp: time.Now(),
	})
}

// GetLecture retrieves a lecture by ID
// @Summary Get lecture by ID
// @Description Retrieves a specific lecture session; the attendance PIN is never included.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Success 200 {object} dto.APIResponse{data=dto.LectureResponse} "Lecture retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid lecture ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{id} [get]
func (c *LectureController) GetLecture(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	lecture, err := c.lectureService.GetLecture(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toLectureResponse(lecture),
		Timestamp: time.Now(),
	})
}

// UpdateLecture updates a lecture's schedule and venue
// @Summary Update a lecture session
// @Description Replaces the schedule and venue of a lecture. Rejected once any attendance record exists for it.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Param request body dto.UpdateLectureRequest true "Updated lecture information"
// @Success 200 {object} dto.APIResponse{data=dto.LectureResponse} "Lecture updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course instructor"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 409 {object} dto.ErrorResponse "Lecture locked by existing attendance"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{id} [put]
func (c *LectureController) UpdateLecture(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid lecture data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	lecture, err := c.lectureService.UpdateLecture(ctx, userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      toLectureResponse(lecture),
		Timestamp: time.Now(),
	})
}

// ListCourseLectures lists a course's lectures
// @Summary List course lectures
// @Description Retrieves all lecture sessions of a course in schedule order
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.LectureResponse} "Lectures retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/lectures [get]
func (c *LectureController) ListCourseLectures(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	lectures, err := c.lectureService.ListLecturesByCourse(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.LectureResponse, 0, len(lectures))
	for _, lecture := range lectures {
		responses = append(responses, toLectureResponse(lecture))
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      responses,
		Timestamp: time.Now(),
	})
}

// IssuePin issues or refreshes the lecture's attendance PIN
// @Summary Issue attendance PIN
// @Description Returns the lecture's current PIN, generating a fresh one when none exists or the previous code expired. This is the only endpoint that ever returns the code.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Success 200 {object} dto.APIResponse{data=dto.PinResponse} "PIN issued successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid lecture ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course instructor"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures/{id}/pin [post]
func (c *LectureController) IssuePin(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return
	}

	issued, err := c.lectureService.IssuePin(ctx, userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.PinResponse{
			Pin:       issued.Code,
			ExpiresAt: issued.ExpiresAt,
		},
		Timestamp: time.Now(),
	})
}
