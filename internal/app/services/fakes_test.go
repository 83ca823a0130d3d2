package services

import (
	"context"
	"sync"
	"time"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/config"
	"github.com/emre/smartportal/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. The attendance fake mirrors
// the database's unique (student, lecture) constraint under a mutex so
// the concurrency tests exercise the same guarantee the real schema
// provides.

func testParams() config.AttendanceParams {
	return config.AttendanceParams{
		GraceBefore:   15 * time.Minute,
		GraceAfter:    15 * time.Minute,
		LateThreshold: 15 * time.Minute,
		PinValidity:   10 * time.Minute,
		PinLength:     6,
	}
}

type fakeLectureStore struct {
	mu       sync.Mutex
	lectures map[int64]*models.Lecture
	nextID   int64
}

func newFakeLectureStore() *fakeLectureStore {
	return &fakeLectureStore{lectures: make(map[int64]*models.Lecture), nextID: 1}
}

func (f *fakeLectureStore) Create(_ context.Context, lecture *models.Lecture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lecture.ID = f.nextID
	f.nextID++
	lecture.CreatedAt = time.Now()
	copy := *lecture
	f.lectures[lecture.ID] = &copy
	return nil
}

func (f *fakeLectureStore) GetByID(_ context.Context, id int64) (*models.Lecture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lecture, ok := f.lectures[id]
	if !ok {
		return nil, apperrors.ErrLectureNotFound
	}
	copy := *lecture
	return &copy, nil
}

func (f *fakeLectureStore) GetByCourseID(_ context.Context, courseID int64) ([]*models.Lecture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Lecture
	for _, lecture := range f.lectures {
		if lecture.CourseID == courseID {
			copy := *lecture
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (f *fakeLectureStore) Update(_ context.Context, lecture *models.Lecture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lectures[lecture.ID]; !ok {
		return apperrors.ErrLectureNotFound
	}
	copy := *lecture
	f.lectures[lecture.ID] = &copy
	return nil
}

func (f *fakeLectureStore) SetPin(_ context.Context, lectureID int64, pin string, issuedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lecture, ok := f.lectures[lectureID]
	if !ok {
		return apperrors.ErrLectureNotFound
	}
	lecture.Pin = &pin
	lecture.PinIssuedAt = &issuedAt
	return nil
}

type pairKey struct {
	studentID int64
	lectureID int64
}

type fakeAttendanceStore struct {
	mu      sync.Mutex
	records map[pairKey]*models.AttendanceRecord
	nextID  int64
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: make(map[pairKey]*models.AttendanceRecord), nextID: 1}
}

func (f *fakeAttendanceStore) Insert(_ context.Context, record *models.AttendanceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{record.StudentID, record.LectureID}
	if _, exists := f.records[key]; exists {
		return apperrors.ErrAlreadyMarked
	}
	record.ID = f.nextID
	f.nextID++
	copy := *record
	f.records[key] = &copy
	return nil
}

func (f *fakeAttendanceStore) Upsert(_ context.Context, record *models.AttendanceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := pairKey{record.StudentID, record.LectureID}
	if existing, exists := f.records[key]; exists {
		record.ID = existing.ID
	} else {
		record.ID = f.nextID
		f.nextID++
	}
	copy := *record
	f.records[key] = &copy
	return nil
}

func (f *fakeAttendanceStore) GetByStudentAndLecture(_ context.Context, studentID, lectureID int64) (*models.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[pairKey{studentID, lectureID}]
	if !ok {
		return nil, nil
	}
	copy := *record
	return &copy, nil
}

func (f *fakeAttendanceStore) ExistsForLecture(_ context.Context, lectureID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key := range f.records {
		if key.lectureID == lectureID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceStore) GetByCourseID(_ context.Context, courseID int64) ([]*models.AttendanceRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.AttendanceRecord
	for _, record := range f.records {
		if record.CourseID == courseID {
			copy := *record
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeEnrollmentStore struct {
	enrolled map[pairKey]bool // studentID, courseID reused as key pair
	students []*models.User
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrolled: make(map[pairKey]bool)}
}

func (f *fakeEnrollmentStore) enroll(student *models.User, courseID int64) {
	f.enrolled[pairKey{student.ID, courseID}] = true
	f.students = append(f.students, student)
}

func (f *fakeEnrollmentStore) IsEnrolled(_ context.Context, studentID, courseID int64) (bool, error) {
	return f.enrolled[pairKey{studentID, courseID}], nil
}

func (f *fakeEnrollmentStore) GetEnrolledStudents(_ context.Context, courseID int64) ([]*models.User, error) {
	var out []*models.User
	for _, student := range f.students {
		if f.enrolled[pairKey{student.ID, courseID}] {
			out = append(out, student)
		}
	}
	return out, nil
}

type fakeCourseStore struct {
	courses map[int64]*models.Course
}

func newFakeCourseStore(ids ...int64) *fakeCourseStore {
	f := &fakeCourseStore{courses: make(map[int64]*models.Course)}
	for _, id := range ids {
		f.courses[id] = &models.Course{ID: id, Code: "CS101", Name: "Intro"}
	}
	return f
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

type fakeAuthorizer struct {
	staff map[pairKey]bool // userID, courseID
}

func newFakeAuthorizer() *fakeAuthorizer {
	return &fakeAuthorizer{staff: make(map[pairKey]bool)}
}

func (f *fakeAuthorizer) allow(userID, courseID int64) {
	f.staff[pairKey{userID, courseID}] = true
}

func (f *fakeAuthorizer) ValidateCourseStaff(_ context.Context, userID, courseID int64) error {
	if !f.staff[pairKey{userID, courseID}] {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
