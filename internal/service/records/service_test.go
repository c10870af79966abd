package records_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entnt/dental-center/internal/model"
	"github.com/entnt/dental-center/internal/repository/blob"
	"github.com/entnt/dental-center/internal/repository/fileslot"
	"github.com/entnt/dental-center/internal/service/records"
	apperrors "github.com/entnt/dental-center/pkg/errors"
	"github.com/entnt/dental-center/pkg/logger"
)

func newTestService(t *testing.T) (*records.Service, *blob.Store) {
	t.Helper()
	slot, err := fileslot.New(t.TempDir(), blob.DataSlotName)
	require.NoError(t, err)
	lg := logger.NewLogger(&logger.Config{Level: logger.FatalLevel, Output: io.Discard})
	store := blob.NewStore(slot, lg)
	svc, err := records.NewService(context.Background(), store, lg)
	require.NoError(t, err)
	return svc, store
}

func validPatientRequest() *model.CreatePatientRequest {
	return &model.CreatePatientRequest{
		Name:             "Alice Brown",
		DOB:              "1992-03-14",
		Contact:          "5551234567",
		Email:            "alice@entnt.in",
		Address:          "789 Pine Rd",
		HealthInfo:       "None",
		EmergencyContact: "Carol Brown - 5559876543",
	}
}

func TestAddPatientPersistsExactlyOneRecord(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	req := validPatientRequest()
	created, err := svc.AddPatient(ctx, req)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "p-"))
	assert.False(t, created.CreatedAt.IsZero())

	data, err := store.Load(ctx)
	require.NoError(t, err)

	var matches []model.Patient
	for _, p := range data.Patients {
		if p.ID == created.ID {
			matches = append(matches, p)
		}
	}
	require.Len(t, matches, 1)
	assert.Equal(t, req.Name, matches[0].Name)
	assert.Equal(t, req.DOB, matches[0].DOB)
	assert.Equal(t, req.Contact, matches[0].Contact)
	assert.Equal(t, req.Email, matches[0].Email)
	assert.Equal(t, req.Address, matches[0].Address)
	assert.Equal(t, req.HealthInfo, matches[0].HealthInfo)
	assert.Equal(t, req.EmergencyContact, matches[0].EmergencyContact)
}

func TestAddPatientIDsDistinctUnderSynchronizedClocks(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	// Back-to-back creates land within the same clock instant on any
	// modern machine; both records must survive with distinct ids.
	first, err := svc.AddPatient(ctx, validPatientRequest())
	require.NoError(t, err)
	second, err := svc.AddPatient(ctx, validPatientRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, svc.Patients(), 4)
}

func TestAddPatientValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	req := validPatientRequest()
	req.Email = "not-an-email"
	_, err := svc.AddPatient(ctx, req)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrValidation))

	req = validPatientRequest()
	req.DOB = "14/03/1992"
	_, err = svc.AddPatient(ctx, req)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrValidation))
}

func TestUpdatePatientTouchesOnlyNamedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	before, err := svc.Patient("p1")
	require.NoError(t, err)

	contact := "0009998888"
	updated, err := svc.UpdatePatient(ctx, "p1", &model.UpdatePatientRequest{Contact: &contact})
	require.NoError(t, err)

	assert.Equal(t, contact, updated.Contact)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.DOB, updated.DOB)
	assert.Equal(t, before.Email, updated.Email)
	assert.Equal(t, before.Address, updated.Address)
	assert.Equal(t, before.HealthInfo, updated.HealthInfo)
	assert.Equal(t, before.EmergencyContact, updated.EmergencyContact)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
}

func TestUpdatePatientUnknownID(t *testing.T) {
	name := "Nobody"
	_, err := mustService(t).UpdatePatient(context.Background(), "p-missing", &model.UpdatePatientRequest{Name: &name})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeletePatientCascadesIncidents(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	// Seed: p1 owns i1 and i2, p2 owns i3.
	require.NoError(t, svc.DeletePatient(ctx, "p1"))

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data.PatientByID("p1"))
	for _, inc := range data.Incidents {
		assert.NotEqual(t, "p1", inc.PatientID, "orphaned incident %s survived the cascade", inc.ID)
	}
	require.Len(t, data.Incidents, 1)
	assert.Equal(t, "i3", data.Incidents[0].ID)
}

func TestDeletePatientUnknownID(t *testing.T) {
	err := mustService(t).DeletePatient(context.Background(), "p-missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAddIncidentDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.AddIncident(ctx, &model.CreateIncidentRequest{
		PatientID:       "p1",
		Title:           "Checkup",
		AppointmentDate: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:          model.IncidentStatusScheduled,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.ID, "i-"))
	assert.Nil(t, created.Cost)
	assert.NotNil(t, created.Files)
	assert.Empty(t, created.Files)
	assert.Empty(t, created.Treatment)
}

func TestAddIncidentRejectsDanglingPatient(t *testing.T) {
	_, err := mustService(t).AddIncident(context.Background(), &model.CreateIncidentRequest{
		PatientID:       "p-missing",
		Title:           "Checkup",
		AppointmentDate: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:          model.IncidentStatusScheduled,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrValidation))
}

func TestAddIncidentRejectsNegativeCost(t *testing.T) {
	cost := -10.0
	_, err := mustService(t).AddIncident(context.Background(), &model.CreateIncidentRequest{
		PatientID:       "p1",
		Title:           "Checkup",
		AppointmentDate: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Status:          model.IncidentStatusScheduled,
		Cost:            &cost,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrValidation))
}

func TestUpdateIncidentTouchesOnlyNamedFields(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	before, err := svc.Incident("i2")
	require.NoError(t, err)

	status := model.IncidentStatusCompleted
	cost := 280.0
	updated, err := svc.UpdateIncident(ctx, "i2", &model.UpdateIncidentRequest{
		Status: &status,
		Cost:   &cost,
	})
	require.NoError(t, err)

	assert.Equal(t, model.IncidentStatusCompleted, updated.Status)
	require.NotNil(t, updated.Cost)
	assert.Equal(t, 280.0, *updated.Cost)

	assert.Equal(t, before.PatientID, updated.PatientID)
	assert.Equal(t, before.Title, updated.Title)
	assert.Equal(t, before.Description, updated.Description)
	assert.Equal(t, before.Comments, updated.Comments)
	assert.Equal(t, before.AppointmentDate, updated.AppointmentDate)
	assert.Equal(t, before.Treatment, updated.Treatment)
	assert.Equal(t, before.NextDate, updated.NextDate)
	assert.Equal(t, before.Files, updated.Files)
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
}

func TestUpdateIncidentRejectsDanglingPatient(t *testing.T) {
	patientID := "p-missing"
	_, err := mustService(t).UpdateIncident(context.Background(), "i1", &model.UpdateIncidentRequest{
		PatientID: &patientID,
	})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrValidation))
}

func TestDeleteIncident(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	require.NoError(t, svc.DeleteIncident(ctx, "i1"))

	data, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, data.IncidentByID("i1"))
	assert.Len(t, data.Incidents, 2)

	err = svc.DeleteIncident(ctx, "i1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRefreshPicksUpOutOfBandChanges(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	data, err := store.Load(ctx)
	require.NoError(t, err)
	data.Patients = data.Patients[:1]
	data.Incidents = nil
	require.NoError(t, store.Save(ctx, data))

	// The in-memory snapshot is stale until an explicit refresh.
	assert.Len(t, svc.Patients(), 2)
	require.NoError(t, svc.Refresh(ctx))
	assert.Len(t, svc.Patients(), 1)
	assert.Empty(t, svc.Incidents())
}

func mustService(t *testing.T) *records.Service {
	t.Helper()
	svc, _ := newTestService(t)
	return svc
}
