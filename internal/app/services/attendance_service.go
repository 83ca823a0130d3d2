package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/config"
	"github.com/emre/smartportal/internal/pkg/apperrors"
	"github.com/emre/smartportal/internal/pkg/geo"
	"github.com/emre/smartportal/internal/pkg/logger"
	"github.com/emre/smartportal/internal/pkg/metrics"
)

// AttendanceService verifies marking attempts and applies staff
// overrides.
type AttendanceService struct {
	lectureRepo    LectureStore
	attendanceRepo AttendanceStore
	enrollmentRepo EnrollmentStore
	authz          Authorizer
	params         config.AttendanceParams

	now func() time.Time
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	lectureRepo LectureStore,
	attendanceRepo AttendanceStore,
	enrollmentRepo EnrollmentStore,
	authz Authorizer,
	params config.AttendanceParams,
) *AttendanceService {
	return &AttendanceService{
		lectureRepo:    lectureRepo,
		attendanceRepo: attendanceRepo,
		enrollmentRepo: enrollmentRepo,
		authz:          authz,
		params:         params,
		now:            time.Now,
	}
}

func proofMethodLabel(proof models.Proof) string {
	switch {
	case proof.Pin != nil:
		return "pin"
	case proof.Location != nil:
		return "geolocation"
	}
	return "none"
}

func countMarking(outcome string, proof models.Proof) {
	metrics.MarkingTotal.WithLabelValues(outcome, proofMethodLabel(proof)).Inc()
}

// Mark runs the verification pipeline for a student's marking attempt.
// The checks run in a fixed order so a student who is both unenrolled
// and outside the window always hears about the enrollment first; the
// reported rejection cause is deterministic regardless of proof type.
//
// The final insert relies on the storage uniqueness constraint rather
// than the earlier duplicate read, so two racing attempts still produce
// exactly one record; the loser receives the winner's record and
// apperrors.ErrAlreadyMarked.
func (s *AttendanceService) Mark(ctx context.Context, studentID, lectureID int64, proof models.Proof) (*models.AttendanceRecord, error) {
	if !proof.Valid() {
		return nil, apperrors.NewValidationError("exactly one proof of pin or location must be provided")
	}

	lecture, err := s.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, studentID, lecture.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if !enrolled {
		countMarking("not_enrolled", proof)
		return nil, apperrors.ErrNotEnrolled
	}

	existing, err := s.attendanceRepo.GetByStudentAndLecture(ctx, studentID, lectureID)
	if err != nil {
		return nil, fmt.Errorf("error checking existing attendance: %w", err)
	}
	if existing != nil {
		countMarking("already_marked", proof)
		return existing, apperrors.ErrAlreadyMarked
	}

	start, end, err := lecture.Bounds()
	if err != nil {
		return nil, fmt.Errorf("error resolving lecture timezone: %w", err)
	}

	// Window bounds are inclusive: an attempt at exactly start-grace or
	// exactly end+grace is accepted.
	now := s.now()
	windowOpen := start.Add(-s.params.GraceBefore)
	windowClose := end.Add(s.params.GraceAfter)
	if now.Before(windowOpen) || now.After(windowClose) {
		countMarking("outside_window", proof)
		return nil, apperrors.ErrOutsideWindow
	}

	record := &models.AttendanceRecord{
		StudentID:  studentID,
		CourseID:   lecture.CourseID,
		LectureID:  lectureID,
		RecordedAt: now,
	}

	switch {
	case proof.Pin != nil:
		if err := s.verifyPin(lecture, proof.Pin.Code, now); err != nil {
			countMarking(rejectionLabel(err), proof)
			return nil, err
		}
		record.Method = models.MethodPin

	case proof.Location != nil:
		if err := s.verifyLocation(lecture, proof.Location); err != nil {
			countMarking(rejectionLabel(err), proof)
			return nil, err
		}
		record.Method = models.MethodGeolocation
		record.Latitude = &proof.Location.Lat
		record.Longitude = &proof.Location.Lon
	}

	record.Status = models.StatusPresent
	if now.After(start.Add(s.params.LateThreshold)) {
		record.Status = models.StatusLate
	}

	if err := s.attendanceRepo.Insert(ctx, record); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyMarked) {
			// Lost the race against a concurrent attempt; answer with
			// the record that won.
			winner, getErr := s.attendanceRepo.GetByStudentAndLecture(ctx, studentID, lectureID)
			if getErr == nil && winner != nil {
				countMarking("already_marked", proof)
				return winner, apperrors.ErrAlreadyMarked
			}
		}
		return nil, err
	}

	countMarking(strings.ToLower(string(record.Status)), proof)
	logger.Info().
		Int64("studentID", studentID).
		Int64("lectureID", lectureID).
		Str("status", string(record.Status)).
		Str("method", string(record.Method)).
		Msg("Attendance marked")

	return record, nil
}

// verifyPin checks the submitted code against the lecture's stored PIN.
// Comparison is constant time; the error never reveals the stored code.
func (s *AttendanceService) verifyPin(lecture *models.Lecture, code string, now time.Time) error {
	if lecture.Pin == nil {
		return apperrors.ErrPinNotIssued
	}
	if !lecture.PinActive(now, s.params.PinValidity) {
		return apperrors.ErrPinExpired
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(*lecture.Pin)) != 1 {
		return apperrors.ErrInvalidPin
	}
	return nil
}

// verifyLocation checks the reported coordinates against the lecture's
// geofence. The boundary is inclusive: a distance of exactly the radius
// passes. The computed distance is never surfaced to the client.
func (s *AttendanceService) verifyLocation(lecture *models.Lecture, loc *models.LocationProof) error {
	if !geo.ValidCoordinates(loc.Lat, loc.Lon) {
		return apperrors.NewValidationError("reported coordinates are out of range")
	}

	distance := geo.Distance(loc.Lat, loc.Lon, lecture.LocationLat, lecture.LocationLon)
	if distance > float64(lecture.AttendanceRadius) {
		return apperrors.ErrOutOfRange
	}
	return nil
}

func rejectionLabel(err error) string {
	switch err {
	case apperrors.ErrPinNotIssued:
		return "pin_not_issued"
	case apperrors.ErrPinExpired:
		return "pin_expired"
	case apperrors.ErrInvalidPin:
		return "invalid_pin"
	case apperrors.ErrOutOfRange:
		return "out_of_range"
	}
	return "rejected"
}

// Override lets course staff set any attendance status for a roster
// student, replacing whatever record exists for the (student, lecture)
// pair. The write is attributed to the acting staff member and leaves an
// audit log entry; the upsert keeps the one-record-per-pair guarantee.
func (s *AttendanceService) Override(ctx context.Context, staffID, lectureID, studentID int64, status models.AttendanceStatus) (*models.AttendanceRecord, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status must be PRESENT, LATE or ABSENT")
	}

	lecture, err := s.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.ValidateCourseStaff(ctx, staffID, lecture.CourseID); err != nil {
		return nil, err
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, studentID, lecture.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if !enrolled {
		return nil, apperrors.ErrNotEnrolled
	}

	record := &models.AttendanceRecord{
		StudentID:  studentID,
		CourseID:   lecture.CourseID,
		LectureID:  lectureID,
		Status:     status,
		Method:     models.MethodManual,
		RecordedAt: s.now(),
		RecordedBy: &staffID,
	}

	if err := s.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, err
	}

	metrics.OverrideTotal.Inc()
	logger.Audit().
		Int64("staffID", staffID).
		Int64("studentID", studentID).
		Int64("lectureID", lectureID).
		Str("status", string(status)).
		Msg("Attendance manually overridden")

	return record, nil
}
