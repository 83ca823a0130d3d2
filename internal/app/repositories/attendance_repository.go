package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/smartportal/internal/app/models"
	"github.com/emre/smartportal/internal/pkg/apperrors"
	"github.com/emre/smartportal/internal/pkg/dberrors"
)

// UniqueStudentLectureConstraint is the storage-level guarantee that at
// most one attendance record exists per (student, lecture) pair.
const UniqueStudentLectureConstraint = "uq_attendance_student_lecture"

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

const attendanceColumns = `id, student_id, course_id, lecture_id, status, method, recorded_at,
		latitude, longitude, recorded_by`

func scanAttendance(row pgx.Row) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := row.Scan(
		&record.ID,
		&record.StudentID,
		&record.CourseID,
		&record.LectureID,
		&record.Status,
		&record.Method,
		&record.RecordedAt,
		&record.Latitude,
		&record.Longitude,
		&record.RecordedBy,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Insert writes a new attendance record. A concurrent insert for the
// same (student, lecture) pair trips the unique constraint; that case is
// reported as apperrors.ErrAlreadyMarked so the verifier can answer the
// loser of the race idempotently.
func (r *AttendanceRepository) Insert(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (student_id, course_id, lecture_id, status, method,
			recorded_at, latitude, longitude, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		record.StudentID,
		record.CourseID,
		record.LectureID,
		record.Status,
		record.Method,
		record.RecordedAt,
		record.Latitude,
		record.Longitude,
		record.RecordedBy,
	).Scan(&record.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err, UniqueStudentLectureConstraint) {
			return apperrors.ErrAlreadyMarked
		}
		return fmt.Errorf("error inserting attendance record: %w", err)
	}

	return nil
}

// Upsert replaces any existing record for the (student, lecture) pair in
// place. Used only by the manual override path; the single ON CONFLICT
// statement guarantees the pair still maps to exactly one row.
func (r *AttendanceRepository) Upsert(ctx context.Context, record *models.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (student_id, course_id, lecture_id, status, method,
			recorded_at, latitude, longitude, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT ` + UniqueStudentLectureConstraint + ` DO UPDATE SET
			status = EXCLUDED.status,
			method = EXCLUDED.method,
			recorded_at = EXCLUDED.recorded_at,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			recorded_by = EXCLUDED.recorded_by
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		record.StudentID,
		record.CourseID,
		record.LectureID,
		record.Status,
		record.Method,
		record.RecordedAt,
		record.Latitude,
		record.Longitude,
		record.RecordedBy,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("error upserting attendance record: %w", err)
	}

	return nil
}

// GetByStudentAndLecture retrieves the record for a pair, or nil if the
// student has no record for the lecture.
func (r *AttendanceRepository) GetByStudentAndLecture(ctx context.Context, studentID, lectureID int64) (*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records
		WHERE student_id = $1 AND lecture_id = $2`

	record, err := scanAttendance(r.db.QueryRow(ctx, query, studentID, lectureID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return record, nil
}

// ExistsForLecture reports whether any attendance record references the
// lecture. Lectures become immutable once this is true.
func (r *AttendanceRepository) ExistsForLecture(ctx context.Context, lectureID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM attendance_records WHERE lecture_id = $1)`,
		lectureID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking attendance existence: %w", err)
	}

	return exists, nil
}

// GetByCourseID retrieves all attendance records across a course's
// lectures, for report aggregation.
func (r *AttendanceRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records
		WHERE course_id = $1
		ORDER BY lecture_id, student_id`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.AttendanceRecord
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
