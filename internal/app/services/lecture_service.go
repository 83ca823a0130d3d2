package services

import (
	"context"
	"fmt"
	"time"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/config"
	"github.com/emre/smartportal/internal/pkg/apperrors"
	"github.com/emre/smartportal/internal/pkg/geo"
	"github.com/emre/smartportal/internal/pkg/logger"
	"github.com/emre/smartportal/internal/pkg/metrics"
	"github.com/emre/smartportal/internal/pkg/pincode"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// IssuedPin is the result of a PIN issuance call: the code itself plus
// its lifetime. The code appears nowhere else.
type IssuedPin struct {
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// LectureService handles lecture scheduling and PIN issuance.
type LectureService struct {
	lectureRepo    LectureStore
	attendanceRepo AttendanceStore
	courseRepo     CourseStore
	authz          Authorizer
	params         config.AttendanceParams

	now func() time.Time
}

// NewLectureService creates a new lecture service instance
func NewLectureService(
	lectureRepo LectureStore,
	attendanceRepo AttendanceStore,
	courseRepo CourseStore,
	authz Authorizer,
	params config.AttendanceParams,
) *LectureService {
	return &LectureService{
		lectureRepo:    lectureRepo,
		attendanceRepo: attendanceRepo,
		courseRepo:     courseRepo,
		authz:          authz,
		params:         params,
		now:            time.Now,
	}
}

// parseSchedule validates and parses the wall-clock schedule fields
// shared by create and update requests.
func parseSchedule(date, start, end, tz string) (scheduledDate, startTime, endTime time.Time, err error) {
	scheduledDate, err = time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, apperrors.NewValidationError("scheduledDate must be in YYYY-MM-DD format")
	}

	startTime, err = time.Parse(clockLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, apperrors.NewValidationError("startTime must be in HH:MM format")
	}

	endTime, err = time.Parse(clockLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, apperrors.NewValidationError("endTime must be in HH:MM format")
	}

	// A session never crosses midnight: both times belong to the
	// scheduled local day, so end must come strictly after start.
	if !endTime.After(startTime) {
		return time.Time{}, time.Time{}, time.Time{}, apperrors.NewValidationError("endTime must be after startTime")
	}

	if _, err := time.LoadLocation(tz); err != nil {
		return time.Time{}, time.Time{}, time.Time{}, apperrors.NewValidationError("timezone must be a valid IANA timezone name")
	}

	return scheduledDate, startTime, endTime, nil
}

// validateVenue checks the geofence fields.
func validateVenue(lat, lon float64, radius int) error {
	if !geo.ValidCoordinates(lat, lon) {
		return apperrors.NewValidationError("location coordinates are out of range")
	}
	if radius <= 0 {
		return apperrors.NewValidationError("attendanceRadius must be positive")
	}
	return nil
}

// CreateLecture schedules a new lecture session for a course. The caller
// must be the course's instructor of record or an administrator.
func (s *LectureService) CreateLecture(ctx context.Context, userID int64, req *dto.CreateLectureRequest) (*models.Lecture, error) {
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	if err := s.authz.ValidateCourseStaff(ctx, userID, req.CourseID); err != nil {
		return nil, err
	}

	scheduledDate, startTime, endTime, err := parseSchedule(req.ScheduledDate, req.StartTime, req.EndTime, req.Timezone)
	if err != nil {
		return nil, err
	}

	if err := validateVenue(req.LocationLat, req.LocationLon, req.AttendanceRadius); err != nil {
		return nil, err
	}

	lecture := &models.Lecture{
		CourseID:         req.CourseID,
		ScheduledDate:    scheduledDate,
		StartTime:        startTime,
		EndTime:          endTime,
		Timezone:         req.Timezone,
		LocationLat:      req.LocationLat,
		LocationLon:      req.LocationLon,
		AttendanceRadius: req.AttendanceRadius,
	}

	if err := s.lectureRepo.Create(ctx, lecture); err != nil {
		return nil, fmt.Errorf("error creating lecture: %w", err)
	}

	logger.Info().
		Int64("lectureID", lecture.ID).
		Int64("courseID", lecture.CourseID).
		Str("scheduledDate", req.ScheduledDate).
		Msg("Lecture scheduled")

	return lecture, nil
}

// UpdateLecture replaces the schedule and venue of a lecture. Once any
// attendance record references the lecture it is locked: the recorded
// proofs were verified against the old window and geofence.
func (s *LectureService) UpdateLecture(ctx context.Context, userID, lectureID int64, req *dto.UpdateLectureRequest) (*models.Lecture, error) {
	lecture, err := s.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateCourseStaff(ctx, userID, lecture.CourseID); err != nil {
		return nil, err
	}

	locked, err := s.attendanceRepo.ExistsForLecture(ctx, lectureID)
	if err != nil {
		return nil, fmt.Errorf("error checking lecture lock: %w", err)
	}
	if locked {
		return nil, apperrors.ErrLectureLocked
	}

	scheduledDate, startTime, endTime, err := parseSchedule(req.ScheduledDate, req.StartTime, req.EndTime, req.Timezone)
	if err != nil {
		return nil, err
	}

	if err := validateVenue(req.LocationLat, req.LocationLon, req.AttendanceRadius); err != nil {
		return nil, err
	}

	lecture.ScheduledDate = scheduledDate
	lecture.StartTime = startTime
	lecture.EndTime = endTime
	lecture.Timezone = req.Timezone
	lecture.LocationLat = req.LocationLat
	lecture.LocationLon = req.LocationLon
	lecture.AttendanceRadius = req.AttendanceRadius

	if err := s.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}

	return lecture, nil
}

// GetLecture retrieves a lecture by ID.
func (s *LectureService) GetLecture(ctx context.Context, id int64) (*models.Lecture, error) {
	return s.lectureRepo.GetByID(ctx, id)
}

// ListLecturesByCourse retrieves a course's lectures in schedule order.
func (s *LectureService) ListLecturesByCourse(ctx context.Context, courseID int64) ([]*models.Lecture, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.lectureRepo.GetByCourseID(ctx, courseID)
}

// IssuePin returns the lecture's current attendance PIN, generating a
// fresh one when none exists or the previous code has expired. A still
// valid code is returned unchanged so repeated calls inside the validity
// window do not churn what students already typed. Generating a new code
// invalidates the old one immediately: the lecture row holds exactly one
// PIN.
func (s *LectureService) IssuePin(ctx context.Context, userID, lectureID int64) (*IssuedPin, error) {
	lecture, err := s.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateCourseStaff(ctx, userID, lecture.CourseID); err != nil {
		return nil, err
	}

	now := s.now()
	if lecture.PinActive(now, s.params.PinValidity) {
		return &IssuedPin{
			Code:      *lecture.Pin,
			IssuedAt:  *lecture.PinIssuedAt,
			ExpiresAt: lecture.PinIssuedAt.Add(s.params.PinValidity),
		}, nil
	}

	code, err := pincode.Generate(s.params.PinLength)
	if err != nil {
		return nil, fmt.Errorf("error generating attendance pin: %w", err)
	}

	if err := s.lectureRepo.SetPin(ctx, lectureID, code, now); err != nil {
		return nil, err
	}

	metrics.PinIssuedTotal.Inc()
	logger.Info().
		Int64("lectureID", lectureID).
		Int64("issuedBy", userID).
		Time("expiresAt", now.Add(s.params.PinValidity)).
		Msg("Attendance PIN issued")

	return &IssuedPin{
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.params.PinValidity),
	}, nil
}
