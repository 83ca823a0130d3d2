package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/config"
)

// ReportService aggregates attendance records into per-course reports.
type ReportService struct {
	courseRepo     CourseStore
	lectureRepo    LectureStore
	enrollmentRepo EnrollmentStore
	attendanceRepo AttendanceStore
	params         config.AttendanceParams

	now func() time.Time
}

// NewReportService creates a new report service instance
func NewReportService(
	courseRepo CourseStore,
	lectureRepo LectureStore,
	enrollmentRepo EnrollmentStore,
	attendanceRepo AttendanceStore,
	params config.AttendanceParams,
) *ReportService {
	return &ReportService{
		courseRepo:     courseRepo,
		lectureRepo:    lectureRepo,
		enrollmentRepo: enrollmentRepo,
		attendanceRepo: attendanceRepo,
		params:         params,
		now:            time.Now,
	}
}

// BuildReport aggregates attendance for every enrolled student of a
// course. Only lectures whose verification window has already closed
// count toward the denominator; a session still accepting marks must not
// show up as an absence. Students with no record for a completed lecture
// are counted ABSENT without any stored row. Reading the same state
// twice yields the same report.
func (s *ReportService) BuildReport(ctx context.Context, courseID int64) (*dto.CourseAttendanceReport, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lectures, err := s.lectureRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving lectures: %w", err)
	}

	now := s.now()
	completed := make(map[int64]bool, len(lectures))
	for _, lecture := range lectures {
		_, end, err := lecture.Bounds()
		if err != nil {
			return nil, fmt.Errorf("error resolving lecture timezone: %w", err)
		}
		if !end.Add(s.params.GraceAfter).After(now) {
			completed[lecture.ID] = true
		}
	}

	students, err := s.enrollmentRepo.GetEnrolledStudents(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving roster: %w", err)
	}

	records, err := s.attendanceRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving attendance records: %w", err)
	}

	type tally struct{ present, late int }
	tallies := make(map[int64]tally, len(students))
	for _, record := range records {
		if !completed[record.LectureID] {
			continue
		}
		t := tallies[record.StudentID]
		switch record.Status {
		case models.StatusPresent:
			t.present++
		case models.StatusLate:
			t.late++
		}
		tallies[record.StudentID] = t
	}

	report := &dto.CourseAttendanceReport{
		CourseID:          courseID,
		TotalSessions:     len(lectures),
		CompletedSessions: len(completed),
		Students:          make([]dto.StudentAttendanceSummary, 0, len(students)),
	}

	for _, student := range students {
		t := tallies[student.ID]
		summary := dto.StudentAttendanceSummary{
			StudentID: student.ID,
			FirstName: student.FirstName,
			LastName:  student.LastName,
			Present:   t.present,
			Late:      t.late,
			Absent:    len(completed) - t.present - t.late,
		}
		if len(completed) > 0 {
			attended := float64(t.present + t.late)
			summary.AttendancePercentage = math.Round(attended/float64(len(completed))*1000) / 10
		}
		report.Students = append(report.Students, summary)
	}

	return report, nil
}
