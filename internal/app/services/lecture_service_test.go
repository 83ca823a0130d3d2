package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/app/models/dto"
	"github.com/emre/smartportal/internal/pkg/apperrors"
)

type lectureFixture struct {
	service    *LectureService
	lectures   *fakeLectureStore
	attendance *fakeAttendanceStore
	authz      *fakeAuthorizer
}

func newLectureFixture(t *testing.T) *lectureFixture {
	t.Helper()

	lectures := newFakeLectureStore()
	attendance := newFakeAttendanceStore()
	courses := newFakeCourseStore(testCourseID)
	authz := newFakeAuthorizer()
	authz.allow(testStaffID, testCourseID)

	return &lectureFixture{
		service:    NewLectureService(lectures, attendance, courses, authz, testParams()),
		lectures:   lectures,
		attendance: attendance,
		authz:      authz,
	}
}

func validCreateRequest() *dto.CreateLectureRequest {
	return &dto.CreateLectureRequest{
		CourseID:         testCourseID,
		ScheduledDate:    "2025-09-15",
		StartTime:        "09:00",
		EndTime:          "10:30",
		Timezone:         "Africa/Cairo",
		LocationLat:      30.0444,
		LocationLon:      31.2357,
		AttendanceRadius: 100,
	}
}

func TestCreateLecture(t *testing.T) {
	f := newLectureFixture(t)

	lecture, err := f.service.CreateLecture(context.Background(), testStaffID, validCreateRequest())
	require.NoError(t, err)

	assert.NotZero(t, lecture.ID)
	assert.Equal(t, testCourseID, lecture.CourseID)
	assert.Equal(t, "Africa/Cairo", lecture.Timezone)

	start, end, err := lecture.Bounds()
	require.NoError(t, err)
	assert.True(t, end.After(start))
	assert.Equal(t, 90*time.Minute, end.Sub(start))
}

func TestCreateLectureValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *dto.CreateLectureRequest)
	}{
		{"end before start", func(r *dto.CreateLectureRequest) { r.EndTime = "08:00" }},
		{"end equals start", func(r *dto.CreateLectureRequest) { r.EndTime = r.StartTime }},
		{"bad date format", func(r *dto.CreateLectureRequest) { r.ScheduledDate = "15/09/2025" }},
		{"bad time format", func(r *dto.CreateLectureRequest) { r.StartTime = "9am" }},
		{"unknown timezone", func(r *dto.CreateLectureRequest) { r.Timezone = "Mars/Olympus" }},
		{"zero radius", func(r *dto.CreateLectureRequest) { r.AttendanceRadius = 0 }},
		{"negative radius", func(r *dto.CreateLectureRequest) { r.AttendanceRadius = -5 }},
		{"latitude out of range", func(r *dto.CreateLectureRequest) { r.LocationLat = 90.5 }},
		{"longitude out of range", func(r *dto.CreateLectureRequest) { r.LocationLon = -180.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLectureFixture(t)
			req := validCreateRequest()
			tt.mutate(req)

			_, err := f.service.CreateLecture(context.Background(), testStaffID, req)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestCreateLectureAuthorization(t *testing.T) {
	f := newLectureFixture(t)

	_, err := f.service.CreateLecture(context.Background(), int64(999), validCreateRequest())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateLectureUnknownCourse(t *testing.T) {
	f := newLectureFixture(t)
	req := validCreateRequest()
	req.CourseID = 404

	_, err := f.service.CreateLecture(context.Background(), testStaffID, req)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestUpdateLecture(t *testing.T) {
	f := newLectureFixture(t)

	lecture, err := f.service.CreateLecture(context.Background(), testStaffID, validCreateRequest())
	require.NoError(t, err)

	update := &dto.UpdateLectureRequest{
		ScheduledDate:    "2025-09-16",
		StartTime:        "11:00",
		EndTime:          "12:30",
		Timezone:         "Europe/Istanbul",
		LocationLat:      41.0082,
		LocationLon:      28.9784,
		AttendanceRadius: 50,
	}

	updated, err := f.service.UpdateLecture(context.Background(), testStaffID, lecture.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Istanbul", updated.Timezone)
	assert.Equal(t, 50, updated.AttendanceRadius)
}

func TestUpdateLectureLockedByAttendance(t *testing.T) {
	f := newLectureFixture(t)

	lecture, err := f.service.CreateLecture(context.Background(), testStaffID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, f.attendance.Insert(context.Background(), &models.AttendanceRecord{
		StudentID: testStudentID,
		CourseID:  testCourseID,
		LectureID: lecture.ID,
		Status:    models.StatusPresent,
		Method:    models.MethodGeolocation,
	}))

	update := &dto.UpdateLectureRequest{
		ScheduledDate:    "2025-09-16",
		StartTime:        "11:00",
		EndTime:          "12:30",
		Timezone:         "Africa/Cairo",
		LocationLat:      30.0444,
		LocationLon:      31.2357,
		AttendanceRadius: 100,
	}

	_, err = f.service.UpdateLecture(context.Background(), testStaffID, lecture.ID, update)
	assert.ErrorIs(t, err, apperrors.ErrLectureLocked)
}

func TestIssuePin(t *testing.T) {
	f := newLectureFixture(t)

	lecture, err := f.service.CreateLecture(context.Background(), testStaffID, validCreateRequest())
	require.NoError(t, err)

	issuedAt := time.Date(2025, 9, 15, 9, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return issuedAt }

	issued, err := f.service.IssuePin(context.Background(), testStaffID, lecture.ID)
	require.NoError(t, err)

	assert.Len(t, issued.Code, testParams().PinLength)
	assert.Equal(t, issuedAt, issued.IssuedAt)
	assert.Equal(t, issuedAt.Add(testParams().PinValidity), issued.ExpiresAt)
}

func TestIssuePinReturnsCurrentWhileValid(t *testing.T) {
	f := newLectureFixture(t)

	lecture, err := f.service.CreateLecture(context.Background(), testStaffID, validCreateRequest())
	require.NoError(t, err)

	issuedAt := time.Date(2025, 9, 15, 9, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return issuedAt }

	first, err := f.service.IssuePin(context.Background(), testStaffID, lecture.ID)
	require.NoError(t, err)

	f.service.now = func() time.Time { return issuedAt.Add(5 * time.Minute) }
	second, err := f.service.IssuePin(context.Background(), testStaffID, lecture.ID)
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.IssuedAt, second.IssuedAt)
}

func TestIssuePinRegeneratesAfterExpiry(t *testing.T) {
	f := newLectureFixture(t)

	lecture, err := f.service.CreateLecture(context.Background(), testStaffID, validCreateRequest())
	require.NoError(t, err)

	issuedAt := time.Date(2025, 9, 15, 9, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time { return issuedAt }

	first, err := f.service.IssuePin(context.Background(), testStaffID, lecture.ID)
	require.NoError(t, err)

	// Past validity the stored code is dead; a new call mints a fresh
	// one and the old issue timestamp is gone with it.
	regeneratedAt := issuedAt.Add(testParams().PinValidity + time.Minute)
	f.service.now = func() time.Time { return regeneratedAt }

	second, err := f.service.IssuePin(context.Background(), testStaffID, lecture.ID)
	require.NoError(t, err)
	assert.Equal(t, regeneratedAt, second.IssuedAt)
	assert.NotEqual(t, first.IssuedAt, second.IssuedAt)

	stored, err := f.lectures.GetByID(context.Background(), lecture.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Pin)
	assert.Equal(t, second.Code, *stored.Pin)
	assert.False(t, stored.PinActive(regeneratedAt.Add(testParams().PinValidity+time.Second), testParams().PinValidity))
}

func TestIssuePinUnauthorized(t *testing.T) {
	f := newLectureFixture(t)

	lecture, err := f.service.CreateLecture(context.Background(), testStaffID, validCreateRequest())
	require.NoError(t, err)

	_, err = f.service.IssuePin(context.Background(), int64(999), lecture.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
