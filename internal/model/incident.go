package model

import "time"

type IncidentStatus string

const (
	IncidentStatusScheduled IncidentStatus = "Scheduled"
	IncidentStatusCompleted IncidentStatus = "Completed"
	IncidentStatusPending   IncidentStatus = "Pending"
	IncidentStatusCancelled IncidentStatus = "Cancelled"
)

// Incident is an appointment/treatment record attached to a patient.
type Incident struct {
	ID              string           `json:"id"`
	PatientID       string           `json:"patientId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Comments        string           `json:"comments"`
	AppointmentDate time.Time        `json:"appointmentDate"`
	Cost            *float64         `json:"cost,omitempty"`
	Treatment       string           `json:"treatment,omitempty"`
	Status          IncidentStatus   `json:"status"`
	NextDate        *time.Time       `json:"nextDate,omitempty"`
	Files           []FileAttachment `json:"files"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// FileAttachment is an inline-encoded document embedded in an incident.
// URL is a self-contained data URL, not a reference to external storage.
type FileAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type CreateIncidentRequest struct {
	PatientID       string           `json:"patientId" validate:"required"`
	Title           string           `json:"title" validate:"required"`
	Description     string           `json:"description"`
	Comments        string           `json:"comments"`
	AppointmentDate time.Time        `json:"appointmentDate" validate:"required"`
	Cost            *float64         `json:"cost" validate:"omitempty,gte=0"`
	Treatment       string           `json:"treatment"`
	Status          IncidentStatus   `json:"status" validate:"required,oneof=Scheduled Completed Pending Cancelled"`
	NextDate        *time.Time       `json:"nextDate"`
	Files           []FileAttachment `json:"files"`
}

// UpdateIncidentRequest carries a partial update; nil fields are left unchanged.
type UpdateIncidentRequest struct {
	PatientID       *string           `json:"patientId"`
	Title           *string           `json:"title"`
	Description     *string           `json:"description"`
	Comments        *string           `json:"comments"`
	AppointmentDate *time.Time        `json:"appointmentDate"`
	Cost            *float64          `json:"cost" validate:"omitempty,gte=0"`
	Treatment       *string           `json:"treatment"`
	Status          *IncidentStatus   `json:"status" validate:"omitempty,oneof=Scheduled Completed Pending Cancelled"`
	NextDate        *time.Time        `json:"nextDate"`
	Files           *[]FileAttachment `json:"files"`
}
