// Package records owns the working copy of patients and incidents. Every
// mutation computes the next full AppData snapshot, persists it through the
// store in one write, and only then replaces the in-memory copy.
package records

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/entnt/dental-center/internal/model"
	"github.com/entnt/dental-center/internal/repository"
	apperrors "github.com/entnt/dental-center/pkg/errors"
	"github.com/entnt/dental-center/pkg/logger"
)

type Service struct {
	store    repository.DataStore
	validate *validator.Validate
	logger   *logger.Logger

	mu   sync.Mutex
	data *model.AppData
}

// NewService hydrates the in-memory snapshot from the store.
func NewService(ctx context.Context, store repository.DataStore, log *logger.Logger) (*Service, error) {
	data, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to hydrate records: %w", err)
	}
	return &Service{
		store:    store,
		validate: validator.New(),
		logger:   log,
		data:     data,
	}, nil
}

// newID keeps the original p-/i- prefixes but takes its uniqueness from a
// random UUID, so two records created in the same instant never collide.
func newID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}

func (s *Service) AddPatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid patient data", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	patient := model.Patient{
		ID:               newID("p"),
		Name:             req.Name,
		DOB:              req.DOB,
		Contact:          req.Contact,
		Email:            req.Email,
		Address:          req.Address,
		HealthInfo:       req.HealthInfo,
		EmergencyContact: req.EmergencyContact,
		CreatedAt:        time.Now().UTC(),
	}

	next := s.snapshot()
	next.Patients = append(next.Patients, patient)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("patient added", "patient_id", patient.ID)
	return &patient, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id string, req *model.UpdatePatientRequest) (*model.Patient, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid patient data", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	patient := next.PatientByID(id)
	if patient == nil {
		return nil, apperrors.NotFound("patient", id)
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.DOB != nil {
		patient.DOB = *req.DOB
	}
	if req.Contact != nil {
		patient.Contact = *req.Contact
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.HealthInfo != nil {
		patient.HealthInfo = *req.HealthInfo
	}
	if req.EmergencyContact != nil {
		patient.EmergencyContact = *req.EmergencyContact
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("patient updated", "patient_id", id)
	p := *patient
	return &p, nil
}

// DeletePatient removes the patient and every incident referencing it in
// the same persisted write, so no orphans survive.
func (s *Service) DeletePatient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.PatientByID(id) == nil {
		return apperrors.NotFound("patient", id)
	}

	next := s.snapshot()
	patients := next.Patients[:0]
	for _, p := range next.Patients {
		if p.ID != id {
			patients = append(patients, p)
		}
	}
	next.Patients = patients

	removed := 0
	incidents := next.Incidents[:0]
	for _, inc := range next.Incidents {
		if inc.PatientID == id {
			removed++
			continue
		}
		incidents = append(incidents, inc)
	}
	next.Incidents = incidents

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.logger.Info("patient deleted", "patient_id", id, "cascaded_incidents", removed)
	return nil
}

func (s *Service) AddIncident(ctx context.Context, req *model.CreateIncidentRequest) (*model.Incident, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid incident data", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.PatientByID(req.PatientID) == nil {
		return nil, apperrors.Validation(fmt.Sprintf("incident references unknown patient %s", req.PatientID), nil)
	}

	incident := model.Incident{
		ID:              newID("i"),
		PatientID:       req.PatientID,
		Title:           req.Title,
		Description:     req.Description,
		Comments:        req.Comments,
		AppointmentDate: req.AppointmentDate,
		Treatment:       req.Treatment,
		Status:          req.Status,
		Files:           req.Files,
		CreatedAt:       time.Now().UTC(),
	}
	if req.Cost != nil {
		cost := *req.Cost
		incident.Cost = &cost
	}
	if req.NextDate != nil {
		next := *req.NextDate
		incident.NextDate = &next
	}
	if incident.Files == nil {
		incident.Files = []model.FileAttachment{}
	}

	next := s.snapshot()
	next.Incidents = append(next.Incidents, incident)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("incident added", "incident_id", incident.ID, "patient_id", incident.PatientID)
	return &incident, nil
}

func (s *Service) UpdateIncident(ctx context.Context, id string, req *model.UpdateIncidentRequest) (*model.Incident, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid incident data", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	incident := next.IncidentByID(id)
	if incident == nil {
		return nil, apperrors.NotFound("incident", id)
	}

	if req.PatientID != nil {
		if next.PatientByID(*req.PatientID) == nil {
			return nil, apperrors.Validation(fmt.Sprintf("incident references unknown patient %s", *req.PatientID), nil)
		}
		incident.PatientID = *req.PatientID
	}
	if req.Title != nil {
		incident.Title = *req.Title
	}
	if req.Description != nil {
		incident.Description = *req.Description
	}
	if req.Comments != nil {
		incident.Comments = *req.Comments
	}
	if req.AppointmentDate != nil {
		incident.AppointmentDate = *req.AppointmentDate
	}
	if req.Cost != nil {
		cost := *req.Cost
		incident.Cost = &cost
	}
	if req.Treatment != nil {
		incident.Treatment = *req.Treatment
	}
	if req.Status != nil {
		incident.Status = *req.Status
	}
	if req.NextDate != nil {
		nd := *req.NextDate
		incident.NextDate = &nd
	}
	if req.Files != nil {
		incident.Files = append([]model.FileAttachment{}, (*req.Files)...)
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}

	s.logger.Info("incident updated", "incident_id", id)
	inc := *incident
	return &inc, nil
}

func (s *Service) DeleteIncident(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data.IncidentByID(id) == nil {
		return apperrors.NotFound("incident", id)
	}

	next := s.snapshot()
	incidents := next.Incidents[:0]
	for _, inc := range next.Incidents {
		if inc.ID != id {
			incidents = append(incidents, inc)
		}
	}
	next.Incidents = incidents

	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.logger.Info("incident deleted", "incident_id", id)
	return nil
}

// Refresh replaces the in-memory snapshot with a fresh read of the store.
// There is no conflict resolution: last read wins.
func (s *Service) Refresh(ctx context.Context) error {
	data, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh records: %w", err)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Patients returns a copy of the patient set.
func (s *Service) Patients() []model.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Patient{}, s.data.Patients...)
}

// Incidents returns a copy of the incident set.
func (s *Service) Incidents() []model.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Incident{}, s.data.Incidents...)
}

// Users returns a copy of the user set.
func (s *Service) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User{}, s.data.Users...)
}

func (s *Service) Patient(id string) (*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p := s.data.PatientByID(id); p != nil {
		patient := *p
		return &patient, nil
	}
	return nil, apperrors.NotFound("patient", id)
}

func (s *Service) Incident(id string) (*model.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inc := s.data.IncidentByID(id); inc != nil {
		incident := *inc
		return &incident, nil
	}
	return nil, apperrors.NotFound("incident", id)
}

// IncidentsForPatient returns the incidents referencing the given patient.
func (s *Service) IncidentsForPatient(patientID string) []model.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Incident
	for _, inc := range s.data.Incidents {
		if inc.PatientID == patientID {
			out = append(out, inc)
		}
	}
	return out
}

// snapshot returns a copy of the aggregate with freshly allocated record
// slices, safe to mutate before persisting.
func (s *Service) snapshot() *model.AppData {
	return &model.AppData{
		Users:     append([]model.User{}, s.data.Users...),
		Patients:  append([]model.Patient{}, s.data.Patients...),
		Incidents: append([]model.Incident{}, s.data.Incidents...),
	}
}

// persist writes the candidate snapshot and promotes it to the working copy
// only on success, so a failed write leaves the old state visible.
func (s *Service) persist(ctx context.Context, next *model.AppData) error {
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("failed to persist records: %w", err)
	}
	s.data = next
	return nil
}
