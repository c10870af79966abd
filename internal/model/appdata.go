package model

// AppData is the aggregate persisted as a single blob. Every mutation
// rewrites the whole document; there is no narrower transaction boundary.
type AppData struct {
	Users     []User     `json:"users"`
	Patients  []Patient  `json:"patients"`
	Incidents []Incident `json:"incidents"`
}

// UserByID returns the user with the given id, or nil.
func (d *AppData) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// PatientByID returns the patient with the given id, or nil.
func (d *AppData) PatientByID(id string) *Patient {
	for i := range d.Patients {
		if d.Patients[i].ID == id {
			return &d.Patients[i]
		}
	}
	return nil
}

// IncidentByID returns the incident with the given id, or nil.
func (d *AppData) IncidentByID(id string) *Incident {
	for i := range d.Incidents {
		if d.Incidents[i].ID == id {
			return &d.Incidents[i]
		}
	}
	return nil
}
