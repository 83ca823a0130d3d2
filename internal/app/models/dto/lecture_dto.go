package dto

import "time"

// CreateLectureRequest carries the fields needed to schedule a lecture
// session. Date and times are wall-clock values interpreted in Timezone.
type CreateLectureRequest struct {
	CourseID         int64   `json:"courseId" binding:"required" example:"12"`
	ScheduledDate    string  `json:"scheduledDate" binding:"required" example:"2025-09-15"`
	StartTime        string  `json:"startTime" binding:"required" example:"09:00"`
	EndTime          string  `json:"endTime" binding:"required" example:"10:30"`
	Timezone         string  `json:"timezone" binding:"required" example:"Africa/Cairo"`
	LocationLat      float64 `json:"locationLat" binding:"required" example:"30.0444"`
	LocationLon      float64 `json:"locationLon" binding:"required" example:"31.2357"`
	AttendanceRadius int     `json:"attendanceRadius" binding:"required" example:"100"`
}

// UpdateLectureRequest mirrors the create payload; all fields are
// replaced. Rejected with LectureLocked once attendance exists.
type UpdateLectureRequest struct {
	ScheduledDate    string  `json:"scheduledDate" binding:"required" example:"2025-09-15"`
	StartTime        string  `json:"startTime" binding:"required" example:"09:00"`
	EndTime          string  `json:"endTime" binding:"required" example:"10:30"`
	Timezone         string  `json:"timezone" binding:"required" example:"Africa/Cairo"`
	LocationLat      float64 `json:"locationLat" binding:"required" example:"30.0444"`
	LocationLon      float64 `json:"locationLon" binding:"required" example:"31.2357"`
	AttendanceRadius int     `json:"attendanceRadius" binding:"required" example:"100"`
}

// LectureResponse is the public view of a lecture; the PIN never rides
// along here.
type LectureResponse struct {
	ID               int64   `json:"id" example:"3"`
	CourseID         int64   `json:"courseId" example:"12"`
	ScheduledDate    string  `json:"scheduledDate" example:"2025-09-15"`
	StartTime        string  `json:"startTime" example:"09:00"`
	EndTime          string  `json:"endTime" example:"10:30"`
	Timezone         string  `json:"timezone" example:"Africa/Cairo"`
	LocationLat      float64 `json:"locationLat" example:"30.0444"`
	LocationLon      float64 `json:"locationLon" example:"31.2357"`
	AttendanceRadius int     `json:"attendanceRadius" example:"100"`
}

// PinResponse is returned to staff on PIN issuance; the only place the
// code ever appears in a response body.
type PinResponse struct {
	Pin       string    `json:"pin" example:"493021"`
	ExpiresAt time.Time `json:"expiresAt" example:"2025-09-15T09:25:00+02:00"`
}
