package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/pkg/apperrors"
)

type reportFixture struct {
	service     *ReportService
	lectures    *fakeLectureStore
	attendance  *fakeAttendanceStore
	enrollments *fakeEnrollmentStore
	now         time.Time
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	lectures := newFakeLectureStore()
	attendance := newFakeAttendanceStore()
	enrollments := newFakeEnrollmentStore()
	courses := newFakeCourseStore(testCourseID)

	f := &reportFixture{
		lectures:    lectures,
		attendance:  attendance,
		enrollments: enrollments,
		now:         time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	f.service = NewReportService(courses, lectures, enrollments, attendance, testParams())
	f.service.now = func() time.Time { return f.now }

	return f
}

// addLecture schedules a one-hour UTC lecture on the given date. Dates
// before the fixture's "now" produce completed sessions; later dates
// produce pending ones.
func (f *reportFixture) addLecture(t *testing.T, date time.Time) *models.Lecture {
	t.Helper()
	lecture := &models.Lecture{
		CourseID:         testCourseID,
		ScheduledDate:    date,
		StartTime:        time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:          time.Date(0, 1, 1, 10, 0, 0, 0, time.UTC),
		Timezone:         "UTC",
		LocationLat:      30.0444,
		LocationLon:      31.2357,
		AttendanceRadius: 100,
	}
	require.NoError(t, f.lectures.Create(context.Background(), lecture))
	return lecture
}

func (f *reportFixture) enrollStudent(id int64, first, last string) {
	f.enrollments.enroll(&models.User{ID: id, FirstName: first, LastName: last, RoleType: models.RoleStudent}, testCourseID)
}

func (f *reportFixture) record(t *testing.T, studentID, lectureID int64, status models.AttendanceStatus) {
	t.Helper()
	require.NoError(t, f.attendance.Insert(context.Background(), &models.AttendanceRecord{
		StudentID:  studentID,
		CourseID:   testCourseID,
		LectureID:  lectureID,
		Status:     status,
		Method:     models.MethodGeolocation,
		RecordedAt: f.now,
	}))
}

func TestBuildReport(t *testing.T) {
	f := newReportFixture(t)

	// Four completed sessions plus one still in the future.
	var completed []*models.Lecture
	for day := 1; day <= 4; day++ {
		completed = append(completed, f.addLecture(t, time.Date(2025, 9, day, 0, 0, 0, 0, time.UTC)))
	}
	f.addLecture(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC))

	f.enrollStudent(42, "Amina", "Hassan")
	f.enrollStudent(43, "Omar", "Saleh")

	// Student 42 attended three of the four completed sessions, one of
	// them late. Student 43 never marked anything.
	f.record(t, 42, completed[0].ID, models.StatusPresent)
	f.record(t, 42, completed[1].ID, models.StatusPresent)
	f.record(t, 42, completed[2].ID, models.StatusLate)

	report, err := f.service.BuildReport(context.Background(), testCourseID)
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalSessions)
	assert.Equal(t, 4, report.CompletedSessions)
	require.Len(t, report.Students, 2)

	amina := report.Students[0]
	assert.Equal(t, int64(42), amina.StudentID)
	assert.Equal(t, 2, amina.Present)
	assert.Equal(t, 1, amina.Late)
	assert.Equal(t, 1, amina.Absent)
	assert.Equal(t, 75.0, amina.AttendancePercentage)

	omar := report.Students[1]
	assert.Equal(t, int64(43), omar.StudentID)
	assert.Equal(t, 0, omar.Present)
	assert.Equal(t, 4, omar.Absent)
	assert.Equal(t, 0.0, omar.AttendancePercentage)
}

func TestBuildReportExcludesPendingLectures(t *testing.T) {
	f := newReportFixture(t)

	done := f.addLecture(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	pending := f.addLecture(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC))

	f.enrollStudent(42, "Amina", "Hassan")
	f.record(t, 42, done.ID, models.StatusPresent)
	// A record against a pending lecture (staff override ahead of time)
	// must not count until the window closes.
	f.record(t, 42, pending.ID, models.StatusPresent)

	report, err := f.service.BuildReport(context.Background(), testCourseID)
	require.NoError(t, err)

	assert.Equal(t, 1, report.CompletedSessions)
	assert.Equal(t, 1, report.Students[0].Present)
	assert.Equal(t, 0, report.Students[0].Absent)
	assert.Equal(t, 100.0, report.Students[0].AttendancePercentage)
}

func TestBuildReportRounding(t *testing.T) {
	f := newReportFixture(t)

	var lectures []*models.Lecture
	for day := 1; day <= 3; day++ {
		lectures = append(lectures, f.addLecture(t, time.Date(2025, 9, day, 0, 0, 0, 0, time.UTC)))
	}

	f.enrollStudent(42, "Amina", "Hassan")
	f.record(t, 42, lectures[0].ID, models.StatusPresent)

	report, err := f.service.BuildReport(context.Background(), testCourseID)
	require.NoError(t, err)

	assert.Equal(t, 33.3, report.Students[0].AttendancePercentage)
}

func TestBuildReportIsIdempotent(t *testing.T) {
	f := newReportFixture(t)

	lecture := f.addLecture(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	f.enrollStudent(42, "Amina", "Hassan")
	f.record(t, 42, lecture.ID, models.StatusLate)

	first, err := f.service.BuildReport(context.Background(), testCourseID)
	require.NoError(t, err)
	second, err := f.service.BuildReport(context.Background(), testCourseID)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildReportEmptyCourse(t *testing.T) {
	f := newReportFixture(t)

	f.enrollStudent(42, "Amina", "Hassan")

	report, err := f.service.BuildReport(context.Background(), testCourseID)
	require.NoError(t, err)

	assert.Equal(t, 0, report.CompletedSessions)
	assert.Equal(t, 0.0, report.Students[0].AttendancePercentage)
	assert.Equal(t, 0, report.Students[0].Absent)
}

func TestBuildReportUnknownCourse(t *testing.T) {
	f := newReportFixture(t)

	_, err := f.service.BuildReport(context.Background(), int64(404))
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
