package models

import (
	"time"
)

// Lecture represents a single scheduled class session of a course. The
// session carries its own venue geofence and IANA timezone; the current
// attendance PIN is embedded as a nullable value rather than kept in a
// separate store, so exactly one PIN is authoritative per lecture.
type Lecture struct {
	ID            int64     `json:"id" db:"id"`
	CourseID      int64     `json:"courseId" db:"course_id"`
	ScheduledDate time.Time `json:"scheduledDate" db:"scheduled_date"` // date component only
	StartTime     time.Time `json:"startTime" db:"start_time"`         // wall clock, date part unused
	EndTime       time.Time `json:"endTime" db:"end_time"`             // wall clock, date part unused
	Timezone      string    `json:"timezone" db:"timezone" example:"Africa/Cairo"`

	LocationLat      float64 `json:"locationLat" db:"location_lat"`
	LocationLon      float64 `json:"locationLon" db:"location_lon"`
	AttendanceRadius int     `json:"attendanceRadius" db:"attendance_radius"` // meters

	// PIN state, mutated only by the PIN issuer.
	Pin         *string    `json:"-" db:"attendance_pin"`
	PinIssuedAt *time.Time `json:"-" db:"pin_issued_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Location resolves the lecture's IANA timezone.
func (l *Lecture) Location() (*time.Location, error) {
	return time.LoadLocation(l.Timezone)
}

// Bounds returns the lecture's start and end instants in its own
// timezone. The scheduled date plus wall-clock times only become
// comparable instants once localized; comparing them in server-local
// time would shift the window for every remote campus.
func (l *Lecture) Bounds() (start, end time.Time, err error) {
	loc, err := l.Location()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(
		l.ScheduledDate.Year(), l.ScheduledDate.Month(), l.ScheduledDate.Day(),
		l.StartTime.Hour(), l.StartTime.Minute(), l.StartTime.Second(), 0, loc,
	)
	end = time.Date(
		l.ScheduledDate.Year(), l.ScheduledDate.Month(), l.ScheduledDate.Day(),
		l.EndTime.Hour(), l.EndTime.Minute(), l.EndTime.Second(), 0, loc,
	)
	return start, end, nil
}

// PinActive reports whether the stored PIN exists and was issued within
// the validity duration as of the given instant. An expired PIN stays
// stored; regeneration is an explicit staff action.
func (l *Lecture) PinActive(at time.Time, validity time.Duration) bool {
	if l.Pin == nil || l.PinIssuedAt == nil {
		return false
	}
	return at.Sub(*l.PinIssuedAt) <= validity
}

// PinExpiresAt returns the expiry instant of the current PIN, or nil if
// no PIN has been issued.
func (l *Lecture) PinExpiresAt(validity time.Duration) *time.Time {
	if l.PinIssuedAt == nil {
		return nil
	}
	t := l.PinIssuedAt.Add(validity)
	return &t
}
