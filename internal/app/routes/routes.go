package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emre/smartportal/internal/app/controllers"
	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	lectureController *controllers.LectureController,
	attendanceController *controllers.AttendanceController,
	reportController *controllers.ReportController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		lectures := authenticated.Group("/lectures")
		{
			lectures.GET("/:id", lectureController.GetLecture)

			// Scheduling and PIN issuance are staff actions; course
			// ownership is checked again inside the services.
			lecturesStaff := lectures.Group("")
			lecturesStaff.Use(authMiddleware.RoleRequired(models.RoleLecturer, models.RoleAdmin))
			{
				lecturesStaff.POST("", lectureController.CreateLecture)
				lecturesStaff.PUT("/:id", lectureController.UpdateLecture)
				lecturesStaff.POST("/:id/pin", lectureController.IssuePin)
				lecturesStaff.PUT("/:id/attendance/:studentId", attendanceController.OverrideAttendance)
			}

			// Students mark their own attendance; the rate limiter caps
			// PIN guessing.
			lecturesStudent := lectures.Group("")
			lecturesStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				lecturesStudent.POST("/:id/attendance", rateLimiter.LimitMarking(), attendanceController.MarkAttendance)
			}
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("/:courseId/lectures", lectureController.ListCourseLectures)

			coursesStaff := courses.Group("")
			coursesStaff.Use(authMiddleware.RoleRequired(models.RoleLecturer, models.RoleAdmin))
			{
				coursesStaff.GET("/:courseId/attendance-report", reportController.GetCourseReport)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Prometheus metrics (public, scrape target)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
