package model

import "time"

// Patient is a clinic patient record.
type Patient struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	DOB              string    `json:"dob"`
	Contact          string    `json:"contact"`
	Email            string    `json:"email"`
	Address          string    `json:"address"`
	HealthInfo       string    `json:"healthInfo"`
	EmergencyContact string    `json:"emergencyContact"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CreatePatientRequest carries the caller-supplied fields for a new patient.
type CreatePatientRequest struct {
	Name             string `json:"name" validate:"required"`
	DOB              string `json:"dob" validate:"required,datetime=2006-01-02"`
	Contact          string `json:"contact" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Address          string `json:"address"`
	HealthInfo       string `json:"healthInfo"`
	EmergencyContact string `json:"emergencyContact"`
}

// UpdatePatientRequest carries a partial update; nil fields are left unchanged.
type UpdatePatientRequest struct {
	Name             *string `json:"name"`
	DOB              *string `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	Contact          *string `json:"contact"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Address          *string `json:"address"`
	HealthInfo       *string `json:"healthInfo"`
	EmergencyContact *string `json:"emergencyContact"`
}
