package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/pkg/apperrors"
)

// CourseRepository reads course records. Course CRUD is managed by the
// catalog surface; the attendance core needs existence checks and the
// instructor of record.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, department_id, code, name, description, credits, instructor_id,
			start_date, end_date, capacity
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.DepartmentID,
		&course.Code,
		&course.Name,
		&course.Description,
		&course.Credits,
		&course.InstructorID,
		&course.StartDate,
		&course.EndDate,
		&course.Capacity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// IsInstructorOf reports whether the user is the instructor of record
// for the course.
func (r *CourseRepository) IsInstructorOf(ctx context.Context, userID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1 AND instructor_id = $2)`,
		courseID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course instructor: %w", err)
	}

	return exists, nil
}
