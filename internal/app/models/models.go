package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent  RoleType = "STUDENT"
	RoleLecturer RoleType = "LECTURER"
	RoleAdmin    RoleType = "ADMIN"
)

// AttendanceStatus is the recorded outcome for a student at a lecture.
type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "PRESENT"
	StatusLate    AttendanceStatus = "LATE"
	StatusAbsent  AttendanceStatus = "ABSENT"
)

// Valid reports whether the status is one of the known values.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusAbsent:
		return true
	}
	return false
}

// AttendanceMethod records which proof channel produced a record.
type AttendanceMethod string

const (
	MethodGeolocation AttendanceMethod = "GEOLOCATION"
	MethodPin         AttendanceMethod = "PIN"
	MethodManual      AttendanceMethod = "MANUAL"
)

// EnrollmentStatus defines the lifecycle state of an enrollment.
type EnrollmentStatus string

const (
	EnrollmentPending   EnrollmentStatus = "PENDING"
	EnrollmentEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
)
