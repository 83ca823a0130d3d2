package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/app/services"
	"github.com/emre/smartportal/internal/middleware"
)

// ReportController handles course attendance reports
type ReportController struct {
	reportService *services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// GetCourseReport builds the course attendance report
// @Summary Course attendance report
// @Description Aggregates per-student attendance over the course's completed lectures. Lectures whose verification window is still open are excluded from the denominator.
// @Tags reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseAttendanceReport} "Report built successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course instructor"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{courseId}/attendance-report [get]
func (c *ReportController) GetCourseReport(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	report, err := c.reportService.BuildReport(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      report,
		Timestamp: time.Now(),
	})
}
