package dto

import "time"

// MarkAttendanceRequest is the student's marking attempt. Exactly one of
// Pin or Location must be set; the verifier rejects ambiguous payloads.
type MarkAttendanceRequest struct {
	Pin      *PinProofRequest      `json:"pin,omitempty"`
	Location *LocationProofRequest `json:"location,omitempty"`
}

// PinProofRequest carries the code read out in class.
type PinProofRequest struct {
	Code string `json:"code" binding:"required" example:"493021"`
}

// LocationProofRequest carries client-resolved coordinates.
type LocationProofRequest struct {
	Lat float64 `json:"lat" binding:"required" example:"30.0444"`
	Lon float64 `json:"lon" binding:"required" example:"31.2357"`
}

// MarkAttendanceResponse reports the verified outcome.
type MarkAttendanceResponse struct {
	Status     string    `json:"status" example:"PRESENT" enums:"PRESENT,LATE"`
	Method     string    `json:"method" example:"GEOLOCATION" enums:"GEOLOCATION,PIN"`
	RecordedAt time.Time `json:"recordedAt" example:"2025-09-15T09:05:12+02:00"`
}

// OverrideAttendanceRequest is the staff escape hatch for disputed or
// failed verification.
type OverrideAttendanceRequest struct {
	Status string `json:"status" binding:"required" example:"PRESENT" enums:"PRESENT,LATE,ABSENT"`
}
