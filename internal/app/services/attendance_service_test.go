package services

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/pkg/apperrors"
)

const (
	testCourseID  = int64(10)
	testStudentID = int64(42)
	testStaffID   = int64(7)
)

type markFixture struct {
	service     *AttendanceService
	lectures    *fakeLectureStore
	attendance  *fakeAttendanceStore
	enrollments *fakeEnrollmentStore
	authz       *fakeAuthorizer
	lecture     *models.Lecture
	start       time.Time
	end         time.Time
}

func newMarkFixture(t *testing.T) *markFixture {
	t.Helper()

	lectures := newFakeLectureStore()
	attendance := newFakeAttendanceStore()
	enrollments := newFakeEnrollmentStore()
	authz := newFakeAuthorizer()

	lecture := &models.Lecture{
		CourseID:         testCourseID,
		ScheduledDate:    time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:        time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:          time.Date(0, 1, 1, 10, 30, 0, 0, time.UTC),
		Timezone:         "Africa/Cairo",
		LocationLat:      30.0444,
		LocationLon:      31.2357,
		AttendanceRadius: 100,
	}
	require.NoError(t, lectures.Create(context.Background(), lecture))

	enrollments.enroll(&models.User{ID: testStudentID, FirstName: "Amina", LastName: "Hassan", RoleType: models.RoleStudent}, testCourseID)
	authz.allow(testStaffID, testCourseID)

	start, end, err := lecture.Bounds()
	require.NoError(t, err)

	service := NewAttendanceService(lectures, attendance, enrollments, authz, testParams())
	service.now = func() time.Time { return start }

	return &markFixture{
		service:     service,
		lectures:    lectures,
		attendance:  attendance,
		enrollments: enrollments,
		authz:       authz,
		lecture:     lecture,
		start:       start,
		end:         end,
	}
}

func (f *markFixture) at(instant time.Time) {
	f.service.now = func() time.Time { return instant }
}

func (f *markFixture) venueProof() models.Proof {
	return models.Proof{Location: &models.LocationProof{Lat: f.lecture.LocationLat, Lon: f.lecture.LocationLon}}
}

// offsetLat shifts a latitude north by roughly the given distance in
// meters along a meridian.
func offsetLat(lat, meters float64) float64 {
	return lat + meters*(180/math.Pi)/6371000
}

func (f *markFixture) issuePin(t *testing.T, code string, issuedAt time.Time) {
	t.Helper()
	require.NoError(t, f.lectures.SetPin(context.Background(), f.lecture.ID, code, issuedAt))
}

func TestMarkLocationWithinGeofence(t *testing.T) {
	f := newMarkFixture(t)

	record, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, f.venueProof())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPresent, record.Status)
	assert.Equal(t, models.MethodGeolocation, record.Method)
	require.NotNil(t, record.Latitude)
	assert.Equal(t, f.lecture.LocationLat, *record.Latitude)
	assert.Equal(t, 1, f.attendance.count())
}

func TestMarkGeofenceBoundary(t *testing.T) {
	tests := []struct {
		name    string
		meters  float64
		wantErr error
	}{
		{"just inside the fence", 99.5, nil},
		{"just beyond the fence", 100.6, apperrors.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMarkFixture(t)
			proof := models.Proof{Location: &models.LocationProof{
				Lat: offsetLat(f.lecture.LocationLat, tt.meters),
				Lon: f.lecture.LocationLon,
			}}

			record, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, proof)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, f.attendance.count())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.StatusPresent, record.Status)
		})
	}
}

func TestMarkRejectsInvalidCoordinates(t *testing.T) {
	f := newMarkFixture(t)
	proof := models.Proof{Location: &models.LocationProof{Lat: 91.0, Lon: 0}}

	_, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, proof)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestMarkPinProof(t *testing.T) {
	const code = "493021"

	tests := []struct {
		name    string
		issued  bool
		submit  string
		elapsed time.Duration
		wantErr error
	}{
		{"correct code inside validity", true, code, 5 * time.Minute, nil},
		{"correct code at exact expiry", true, code, 10 * time.Minute, nil},
		{"correct code one second past expiry", true, code, 10*time.Minute + time.Second, apperrors.ErrPinExpired},
		{"wrong code", true, "000000", time.Minute, apperrors.ErrInvalidPin},
		{"no pin issued", false, code, time.Minute, apperrors.ErrPinNotIssued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMarkFixture(t)
			if tt.issued {
				f.issuePin(t, code, f.start)
			}
			f.at(f.start.Add(tt.elapsed))

			proof := models.Proof{Pin: &models.PinProof{Code: tt.submit}}
			record, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, proof)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, f.attendance.count())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.MethodPin, record.Method)
			assert.Nil(t, record.Latitude)
		})
	}
}

func TestMarkVerificationWindow(t *testing.T) {
	grace := testParams().GraceBefore

	tests := []struct {
		name    string
		instant func(f *markFixture) time.Time
		wantErr error
	}{
		{"at exact window open", func(f *markFixture) time.Time { return f.start.Add(-grace) }, nil},
		{"one second before window open", func(f *markFixture) time.Time { return f.start.Add(-grace - time.Second) }, apperrors.ErrOutsideWindow},
		{"at exact window close", func(f *markFixture) time.Time { return f.end.Add(grace) }, nil},
		{"one second after window close", func(f *markFixture) time.Time { return f.end.Add(grace + time.Second) }, apperrors.ErrOutsideWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMarkFixture(t)
			f.at(tt.instant(f))

			_, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, f.venueProof())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMarkLateThreshold(t *testing.T) {
	threshold := testParams().LateThreshold

	tests := []struct {
		name       string
		elapsed    time.Duration
		wantStatus models.AttendanceStatus
	}{
		{"on time", 5 * time.Minute, models.StatusPresent},
		{"at exact threshold", threshold, models.StatusPresent},
		{"past threshold", threshold + time.Minute, models.StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMarkFixture(t)
			f.at(f.start.Add(tt.elapsed))

			record, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, f.venueProof())
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, record.Status)
		})
	}
}

func TestMarkNotEnrolled(t *testing.T) {
	f := newMarkFixture(t)

	_, err := f.service.Mark(context.Background(), int64(999), f.lecture.ID, f.venueProof())
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
	assert.Equal(t, 0, f.attendance.count())
}

func TestMarkIsIdempotent(t *testing.T) {
	f := newMarkFixture(t)

	first, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, f.venueProof())
	require.NoError(t, err)

	// A repeat attempt, even over a different proof channel, must not
	// create or alter anything; the caller gets the original record back.
	f.issuePin(t, "493021", f.start)
	proof := models.Proof{Pin: &models.PinProof{Code: "493021"}}
	second, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, proof)

	assert.ErrorIs(t, err, apperrors.ErrAlreadyMarked)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, models.MethodGeolocation, second.Method)
	assert.Equal(t, 1, f.attendance.count())
}

func TestMarkRejectsAmbiguousProof(t *testing.T) {
	f := newMarkFixture(t)

	tests := []struct {
		name  string
		proof models.Proof
	}{
		{"no proof", models.Proof{}},
		{"both proofs", models.Proof{
			Pin:      &models.PinProof{Code: "493021"},
			Location: &models.LocationProof{Lat: f.lecture.LocationLat, Lon: f.lecture.LocationLon},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, tt.proof)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestMarkConcurrentAttempts(t *testing.T) {
	f := newMarkFixture(t)

	const attempts = 32
	var (
		wg            sync.WaitGroup
		mu            sync.Mutex
		succeeded     int
		alreadyMarked int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, f.venueProof())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, apperrors.ErrAlreadyMarked):
				alreadyMarked++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, alreadyMarked)
	assert.Equal(t, 1, f.attendance.count())
}

func TestOverrideCreatesManualRecord(t *testing.T) {
	f := newMarkFixture(t)

	record, err := f.service.Override(context.Background(), testStaffID, f.lecture.ID, testStudentID, models.StatusPresent)
	require.NoError(t, err)

	assert.Equal(t, models.MethodManual, record.Method)
	assert.Equal(t, models.StatusPresent, record.Status)
	require.NotNil(t, record.RecordedBy)
	assert.Equal(t, testStaffID, *record.RecordedBy)
	assert.Equal(t, 1, f.attendance.count())
}

func TestOverrideReplacesAutomaticRecord(t *testing.T) {
	f := newMarkFixture(t)

	_, err := f.service.Mark(context.Background(), testStudentID, f.lecture.ID, f.venueProof())
	require.NoError(t, err)

	record, err := f.service.Override(context.Background(), testStaffID, f.lecture.ID, testStudentID, models.StatusAbsent)
	require.NoError(t, err)

	assert.Equal(t, models.StatusAbsent, record.Status)
	assert.Equal(t, models.MethodManual, record.Method)
	assert.Equal(t, 1, f.attendance.count())

	stored, err := f.attendance.GetByStudentAndLecture(context.Background(), testStudentID, f.lecture.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAbsent, stored.Status)
}

func TestOverrideUnauthorized(t *testing.T) {
	f := newMarkFixture(t)

	_, err := f.service.Override(context.Background(), int64(999), f.lecture.ID, testStudentID, models.StatusPresent)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, 0, f.attendance.count())
}

func TestOverrideInvalidStatus(t *testing.T) {
	f := newMarkFixture(t)

	_, err := f.service.Override(context.Background(), testStaffID, f.lecture.ID, testStudentID, models.AttendanceStatus("EXCUSED"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestOverrideNotEnrolled(t *testing.T) {
	f := newMarkFixture(t)

	_, err := f.service.Override(context.Background(), testStaffID, f.lecture.ID, int64(999), models.StatusPresent)
	assert.ErrorIs(t, err, apperrors.ErrNotEnrolled)
}
