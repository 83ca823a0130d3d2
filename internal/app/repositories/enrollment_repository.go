package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/smartportal/internal/app/models"
)

// EnrollmentRepository reads enrollment state. Enrollment lifecycle
// management happens elsewhere; the attendance core only consumes it.
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// IsEnrolled reports whether the student holds an active enrollment in
// the course.
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments
			WHERE student_id = $1 AND course_id = $2 AND status = $3)`,
		studentID, courseID, models.EnrollmentEnrolled).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}

	return exists, nil
}

// GetEnrolledStudents returns the active roster of a course, ordered by
// student ID for deterministic report output.
func (r *EnrollmentRepository) GetEnrolledStudents(ctx context.Context, courseID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.role_type, u.is_active, u.created_at
		FROM enrollments e
		JOIN users u ON u.id = e.student_id
		WHERE e.course_id = $1 AND e.status = $2
		ORDER BY u.id
	`

	rows, err := r.db.Query(ctx, query, courseID, models.EnrollmentEnrolled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.User
	for rows.Next() {
		var student models.User
		if err := rows.Scan(
			&student.ID,
			&student.Email,
			&student.FirstName,
			&student.LastName,
			&student.RoleType,
			&student.IsActive,
			&student.CreatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
