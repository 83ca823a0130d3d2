package models

import "time"

// AttendanceRecord is the provable "present" outcome for one student at
// one lecture. At most one record may exist per (student, lecture) pair;
// the uq_attendance_student_lecture constraint is the authoritative
// defense, not application code.
type AttendanceRecord struct {
	ID         int64            `json:"id" db:"id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	LectureID  int64            `json:"lectureId" db:"lecture_id"`
	Status     AttendanceStatus `json:"status" db:"status"`
	Method     AttendanceMethod `json:"method" db:"method"`
	RecordedAt time.Time        `json:"recordedAt" db:"recorded_at"`

	// Captured coordinates, present only for geolocation proof.
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`

	// RecordedBy is the acting staff member for MANUAL records. The
	// audit trail for disputed overrides starts here.
	RecordedBy *int64 `json:"recordedBy,omitempty" db:"recorded_by"`
}

// Proof is the tagged variant a student submits when marking attendance:
// exactly one of the two channels.
type Proof struct {
	Pin      *PinProof      `json:"pin,omitempty"`
	Location *LocationProof `json:"location,omitempty"`
}

// PinProof carries the short-lived numeric code read out in class.
type PinProof struct {
	Code string `json:"code"`
}

// LocationProof carries client-resolved coordinates for the geofence check.
type LocationProof struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether exactly one proof channel is populated.
func (p Proof) Valid() bool {
	return (p.Pin != nil) != (p.Location != nil)
}
