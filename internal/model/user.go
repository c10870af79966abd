package model

// Role determines which views a user is allowed into. Authorization is
// checked by callers; services only expose the role.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RolePatient Role = "Patient"
)

// User represents a login identity. Users are seeded at first store
// initialization and are not created or edited through the services.
type User struct {
	ID       string `json:"id"`
	Role     Role   `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
	// PatientID links a Patient-role user to their patient record.
	PatientID string `json:"patientId,omitempty"`
	Name      string `json:"name,omitempty"`
}
