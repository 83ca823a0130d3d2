package models

import "time"

// Course represents a course offered by a department.
type Course struct {
	ID           int64     `json:"id" db:"id"`
	DepartmentID int64     `json:"departmentId" db:"department_id"`
	Code         string    `json:"code" db:"code"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"` // Nullable
	Credits      int       `json:"credits" db:"credits"`
	InstructorID *int64    `json:"instructorId,omitempty" db:"instructor_id"` // Nullable, lecturer of record
	StartDate    time.Time `json:"startDate" db:"start_date"`
	EndDate      time.Time `json:"endDate" db:"end_date"`
	Capacity     int       `json:"capacity" db:"capacity"`

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty"`
}
