package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/pkg/apperrors"
)

// LectureRepository handles database operations for lecture sessions
type LectureRepository struct {
	db *pgxpool.Pool
}

// NewLectureRepository creates a new lecture repository
func NewLectureRepository(db *pgxpool.Pool) *LectureRepository {
	return &LectureRepository{
		db: db,
	}
}

const lectureColumns = `id, course_id, scheduled_date, start_time, end_time, timezone,
		location_lat, location_lon, attendance_radius, attendance_pin, pin_issued_at, created_at`

func scanLecture(row pgx.Row) (*models.Lecture, error) {
	var lecture models.Lecture
	err := row.Scan(
		&lecture.ID,
		&lecture.CourseID,
		&lecture.ScheduledDate,
		&lecture.StartTime,
		&lecture.EndTime,
		&lecture.Timezone,
		&lecture.LocationLat,
		&lecture.LocationLon,
		&lecture.AttendanceRadius,
		&lecture.Pin,
		&lecture.PinIssuedAt,
		&lecture.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lecture, nil
}

// Create creates a new lecture session
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) error {
	query := `
		INSERT INTO lectures (course_id, scheduled_date, start_time, end_time, timezone,
			location_lat, location_lon, attendance_radius)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		lecture.CourseID,
		lecture.ScheduledDate,
		lecture.StartTime,
		lecture.EndTime,
		lecture.Timezone,
		lecture.LocationLat,
		lecture.LocationLon,
		lecture.AttendanceRadius,
	).Scan(&lecture.ID, &lecture.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating lecture: %w", err)
	}

	return nil
}

// GetByID retrieves a lecture by ID
func (r *LectureRepository) GetByID(ctx context.Context, id int64) (*models.Lecture, error) {
	query := `SELECT ` + lectureColumns + ` FROM lectures WHERE id = $1`

	lecture, err := scanLecture(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLectureNotFound
		}
		return nil, fmt.Errorf("error retrieving lecture: %w", err)
	}

	return lecture, nil
}

// GetByCourseID retrieves all lectures for a course ordered by schedule
func (r *LectureRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lecture, error) {
	query := `SELECT ` + lectureColumns + ` FROM lectures
		WHERE course_id = $1
		ORDER BY scheduled_date, start_time`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lectures []*models.Lecture
	for rows.Next() {
		lecture, err := scanLecture(rows)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, lecture)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lectures, nil
}

// Update replaces the schedule and venue of a lecture. The service layer
// is responsible for rejecting updates on locked lectures before calling
// this.
func (r *LectureRepository) Update(ctx context.Context, lecture *models.Lecture) error {
	query := `
		UPDATE lectures
		SET scheduled_date = $1, start_time = $2, end_time = $3, timezone = $4,
			location_lat = $5, location_lon = $6, attendance_radius = $7
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		lecture.ScheduledDate,
		lecture.StartTime,
		lecture.EndTime,
		lecture.Timezone,
		lecture.LocationLat,
		lecture.LocationLon,
		lecture.AttendanceRadius,
		lecture.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating lecture: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLectureNotFound
	}

	return nil
}

// SetPin stores a newly generated PIN and its issue timestamp. A single
// UPDATE keeps the code and timestamp consistent under concurrent
// issuance: last writer wins, never an interleaved partial write.
func (r *LectureRepository) SetPin(ctx context.Context, lectureID int64, pin string, issuedAt time.Time) error {
	query := `UPDATE lectures SET attendance_pin = $1, pin_issued_at = $2 WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, query, pin, issuedAt, lectureID)
	if err != nil {
		return fmt.Errorf("error storing lecture pin: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLectureNotFound
	}

	return nil
}
