package blob

import (
	"time"

	"github.com/entnt/dental-center/internal/model"
)

// SeedData returns the fixed demo dataset written on first access: three
// users covering both roles, two patients and three incidents.
func SeedData() *model.AppData {
	return &model.AppData{
		Users: []model.User{
			{
				ID:       "1",
				Role:     model.RoleAdmin,
				Email:    "admin@entnt.in",
				Password: "admin123",
				Name:     "Dr. Sarah Johnson",
			},
			{
				ID:        "2",
				Role:      model.RolePatient,
				Email:     "john@entnt.in",
				Password:  "patient123",
				PatientID: "p1",
				Name:      "John Doe",
			},
			{
				ID:        "3",
				Role:      model.RolePatient,
				Email:     "jane@entnt.in",
				Password:  "patient123",
				PatientID: "p2",
				Name:      "Jane Smith",
			},
		},
		Patients: []model.Patient{
			{
				ID:               "p1",
				Name:             "John Doe",
				DOB:              "1990-05-10",
				Contact:          "1234567890",
				Email:            "john@entnt.in",
				Address:          "123 Main St, City, State 12345",
				HealthInfo:       "No known allergies. History of cavities.",
				EmergencyContact: "Mary Doe - 0987654321",
				CreatedAt:        time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			},
			{
				ID:               "p2",
				Name:             "Jane Smith",
				DOB:              "1985-08-22",
				Contact:          "0987654321",
				Email:            "jane@entnt.in",
				Address:          "456 Oak Ave, City, State 12345",
				HealthInfo:       "Allergic to penicillin. Regular dental checkups.",
				EmergencyContact: "Bob Smith - 1234567890",
				CreatedAt:        time.Date(2024, 2, 20, 14, 30, 0, 0, time.UTC),
			},
		},
		Incidents: []model.Incident{
			{
				ID:              "i1",
				PatientID:       "p1",
				Title:           "Routine Cleaning",
				Description:     "Regular dental cleaning and checkup",
				Comments:        "Patient showed good oral hygiene",
				AppointmentDate: time.Date(2024, 12, 28, 10, 0, 0, 0, time.UTC),
				Cost:            costOf(120),
				Treatment:       "Professional cleaning, fluoride treatment",
				Status:          model.IncidentStatusCompleted,
				Files:           []model.FileAttachment{},
				CreatedAt:       time.Date(2024, 12, 15, 9, 0, 0, 0, time.UTC),
			},
			{
				ID:              "i2",
				PatientID:       "p1",
				Title:           "Cavity Filling",
				Description:     "Upper molar cavity treatment",
				Comments:        "Patient experienced mild sensitivity",
				AppointmentDate: time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC),
				Cost:            costOf(280),
				Treatment:       "Composite filling on upper left molar",
				Status:          model.IncidentStatusScheduled,
				Files:           []model.FileAttachment{},
				CreatedAt:       time.Date(2024, 12, 20, 11, 0, 0, 0, time.UTC),
			},
			{
				ID:              "i3",
				PatientID:       "p2",
				Title:           "Root Canal Consultation",
				Description:     "Consultation for potential root canal treatment",
				Comments:        "X-rays show infection in lower premolar",
				AppointmentDate: time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC),
				Status:          model.IncidentStatusScheduled,
				Files:           []model.FileAttachment{},
				CreatedAt:       time.Date(2024, 12, 18, 16, 0, 0, 0, time.UTC),
			},
		},
	}
}

func costOf(v float64) *float64 {
	return &v
}
