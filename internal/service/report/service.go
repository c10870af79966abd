// Package report computes the read-only figures shown on dashboards and
// the calendar. Everything is derived from the raw record sets on every
// call; nothing is cached or incrementally maintained.
package report

import (
	"sort"
	"time"

	"github.com/entnt/dental-center/internal/model"
	"github.com/entnt/dental-center/internal/service/records"
)

type Service struct {
	records *records.Service
}

func NewService(records *records.Service) *Service {
	return &Service{records: records}
}

// Summary holds the clinic-wide dashboard figures.
type Summary struct {
	TotalPatients       int     `json:"totalPatients"`
	TodayAppointments   int     `json:"todayAppointments"`
	TotalRevenue        float64 `json:"totalRevenue"`
	ActiveTreatments    int     `json:"activeTreatments"`
	CompletedTreatments int     `json:"completedTreatments"`
	CancelledTreatments int     `json:"cancelledTreatments"`
}

// Summary aggregates over all patients and incidents. Revenue counts only
// completed incidents that carry a cost. Active means scheduled or pending.
func (s *Service) Summary(now time.Time) Summary {
	out := Summary{TotalPatients: len(s.records.Patients())}

	for _, inc := range s.records.Incidents() {
		if sameDay(inc.AppointmentDate, now) {
			out.TodayAppointments++
		}
		switch inc.Status {
		case model.IncidentStatusCompleted:
			out.CompletedTreatments++
			if inc.Cost != nil {
				out.TotalRevenue += *inc.Cost
			}
		case model.IncidentStatusScheduled, model.IncidentStatusPending:
			out.ActiveTreatments++
		case model.IncidentStatusCancelled:
			out.CancelledTreatments++
		}
	}
	return out
}

// Upcoming returns incidents at or after now, ascending by appointment
// date, capped at limit (unlimited when limit <= 0).
func (s *Service) Upcoming(now time.Time, limit int) []model.Incident {
	var out []model.Incident
	for _, inc := range s.records.Incidents() {
		if !inc.AppointmentDate.Before(now) {
			out = append(out, inc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AppointmentDate.Before(out[j].AppointmentDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PatientRanking pairs a patient with their visit volume and completed
// spend.
type PatientRanking struct {
	Patient          model.Patient `json:"patient"`
	AppointmentCount int           `json:"appointmentCount"`
	TotalSpent       float64       `json:"totalSpent"`
}

// TopPatients ranks patients by completed spend, highest first.
func (s *Service) TopPatients(n int) []PatientRanking {
	incidents := s.records.Incidents()

	var out []PatientRanking
	for _, p := range s.records.Patients() {
		ranking := PatientRanking{Patient: p}
		for _, inc := range incidents {
			if inc.PatientID != p.ID {
				continue
			}
			ranking.AppointmentCount++
			if inc.Status == model.IncidentStatusCompleted && inc.Cost != nil {
				ranking.TotalSpent += *inc.Cost
			}
		}
		out = append(out, ranking)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSpent > out[j].TotalSpent
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// PatientSummary holds one patient's dashboard view.
type PatientSummary struct {
	Patient    model.Patient    `json:"patient"`
	Upcoming   []model.Incident `json:"upcoming"`
	History    []model.Incident `json:"history"`
	TotalSpent float64          `json:"totalSpent"`
}

// PatientSummary splits a patient's incidents into upcoming visits and
// completed history (most recent first) and totals their completed spend.
func (s *Service) PatientSummary(patientID string, now time.Time) (*PatientSummary, error) {
	patient, err := s.records.Patient(patientID)
	if err != nil {
		return nil, err
	}

	out := &PatientSummary{Patient: *patient}
	for _, inc := range s.records.IncidentsForPatient(patientID) {
		if inc.Status == model.IncidentStatusCompleted {
			out.History = append(out.History, inc)
			if inc.Cost != nil {
				out.TotalSpent += *inc.Cost
			}
			continue
		}
		if !inc.AppointmentDate.Before(now) {
			out.Upcoming = append(out.Upcoming, inc)
		}
	}

	sort.Slice(out.Upcoming, func(i, j int) bool {
		return out.Upcoming[i].AppointmentDate.Before(out.Upcoming[j].AppointmentDate)
	})
	sort.Slice(out.History, func(i, j int) bool {
		return out.History[i].AppointmentDate.After(out.History[j].AppointmentDate)
	})
	return out, nil
}

// MonthView buckets incidents by day of month for the calendar grid.
func (s *Service) MonthView(year int, month time.Month) map[int][]model.Incident {
	out := make(map[int][]model.Incident)
	for _, inc := range s.records.Incidents() {
		if inc.AppointmentDate.Year() == year && inc.AppointmentDate.Month() == month {
			day := inc.AppointmentDate.Day()
			out[day] = append(out[day], inc)
		}
	}
	for _, incs := range out {
		sort.Slice(incs, func(i, j int) bool {
			return incs[i].AppointmentDate.Before(incs[j].AppointmentDate)
		})
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
