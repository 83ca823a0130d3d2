package models

import "time"

// Enrollment links a student to a course. Only an ENROLLED enrollment
// gates attendance marking; dropped or pending students cannot be marked
// present.
type Enrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	CourseID       int64            `json:"courseId" db:"course_id"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
}
