package dto

// StudentAttendanceSummary is one roster row of a course report. A
// missing record for a completed lecture counts as ABSENT; absence rows
// are never materialized in storage.
type StudentAttendanceSummary struct {
	StudentID            int64   `json:"studentId" example:"42"`
	FirstName            string  `json:"firstName" example:"Amina"`
	LastName             string  `json:"lastName" example:"Hassan"`
	Present              int     `json:"present" example:"10"`
	Late                 int     `json:"late" example:"2"`
	Absent               int     `json:"absent" example:"1"`
	AttendancePercentage float64 `json:"attendancePercentage" example:"92.3"`
}

// CourseAttendanceReport aggregates attendance across a course's
// completed lectures. Lectures whose verification window has not yet
// closed are excluded from the denominator so an early report does not
// misrepresent absence.
type CourseAttendanceReport struct {
	CourseID          int64                      `json:"courseId" example:"12"`
	TotalSessions     int                        `json:"totalSessions" example:"14"`
	CompletedSessions int                        `json:"completedSessions" example:"13"`
	Students          []StudentAttendanceSummary `json:"students"`
}
