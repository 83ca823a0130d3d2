// Package services holds the attendance business logic: lecture
// scheduling with PIN issuance, the ordered attendance verifier, the
// staff override path and course report aggregation.
//
// Services depend on the narrow store interfaces below rather than the
// concrete pgx repositories, so tests drive them with in-memory fakes.
// The repositories package satisfies every interface.
package services

import (
	"context"
	"time"

	"github.com/emre/smartportal/internal/app/models"
)

// LectureStore is the persistence surface for lecture sessions.
type LectureStore interface {
	Create(ctx context.Context, lecture *models.Lecture) error
	GetByID(ctx context.Context, id int64) (*models.Lecture, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lecture, error)
	Update(ctx context.Context, lecture *models.Lecture) error
	SetPin(ctx context.Context, lectureID int64, pin string, issuedAt time.Time) error
}

// AttendanceStore is the persistence surface for attendance records.
// Insert must report apperrors.ErrAlreadyMarked when the (student,
// lecture) uniqueness guarantee is violated.
type AttendanceStore interface {
	Insert(ctx context.Context, record *models.AttendanceRecord) error
	Upsert(ctx context.Context, record *models.AttendanceRecord) error
	GetByStudentAndLecture(ctx context.Context, studentID, lectureID int64) (*models.AttendanceRecord, error)
	ExistsForLecture(ctx context.Context, lectureID int64) (bool, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.AttendanceRecord, error)
}

// EnrollmentStore answers roster questions for a course.
type EnrollmentStore interface {
	IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error)
	GetEnrolledStudents(ctx context.Context, courseID int64) ([]*models.User, error)
}

// CourseStore gates operations on course existence.
type CourseStore interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// Authorizer decides whether a user may manage a course's lectures and
// attendance. Implemented by auth.AuthorizationService.
type Authorizer interface {
	ValidateCourseStaff(ctx context.Context, userID, courseID int64) error
}
