package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/entnt/dental-center/internal/config"
	"github.com/entnt/dental-center/internal/repository"
	"github.com/entnt/dental-center/internal/repository/blob"
	"github.com/entnt/dental-center/internal/repository/fileslot"
	"github.com/entnt/dental-center/internal/repository/sqliteslot"
	"github.com/entnt/dental-center/internal/service/auth"
	"github.com/entnt/dental-center/internal/service/records"
	"github.com/entnt/dental-center/internal/service/report"
	"github.com/entnt/dental-center/pkg/logger"
	"github.com/entnt/dental-center/pkg/security"
)

const usage = `usage: dentalctl <command>

commands:
  summary                clinic-wide dashboard figures
  patients               list patients
  upcoming               next appointments, soonest first
  month <year> <month>   incidents bucketed by day for one month
  login <email> <pass>   establish a session
  whoami                 show the active session
  logout                 clear the active session
  reset                  drop all state and reseed the demo dataset
`

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stderr,
	})

	// Initialize durable slots
	var dataSlot, sessionSlot repository.Slot
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqliteslot.NewDB(cfg.Storage.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open sqlite storage")
		}
		defer db.Close()
		dataSlot = sqliteslot.New(db, blob.DataSlotName)
		sessionSlot = sqliteslot.New(db, blob.SessionSlotName)
	default:
		dataSlot, err = fileslot.New(cfg.Storage.Dir, blob.DataSlotName)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open file storage")
		}
		sessionSlot, err = fileslot.New(cfg.Storage.Dir, blob.SessionSlotName)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open file storage")
		}
	}

	// Initialize stores
	store := blob.NewStore(dataSlot, lg)
	sessions := blob.NewSessionStore(sessionSlot)

	var verifier security.CredentialVerifier
	if cfg.Auth.Verifier == config.VerifierBcrypt {
		verifier = security.NewBcryptVerifier()
	} else {
		verifier = security.NewPlaintextVerifier()
	}

	// Initialize services
	ctx := context.Background()
	recordsSvc, err := records.NewService(ctx, store, lg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize records service")
	}
	authSvc, err := auth.NewService(ctx, store, sessions, verifier, lg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize auth service")
	}
	reportSvc := report.NewService(recordsSvc)

	cmd := "summary"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "summary":
		s := reportSvc.Summary(time.Now())
		fmt.Printf("patients:             %d\n", s.TotalPatients)
		fmt.Printf("appointments today:   %d\n", s.TodayAppointments)
		fmt.Printf("total revenue:        $%.2f\n", s.TotalRevenue)
		fmt.Printf("active treatments:    %d\n", s.ActiveTreatments)
		fmt.Printf("completed treatments: %d\n", s.CompletedTreatments)
		fmt.Printf("cancelled treatments: %d\n", s.CancelledTreatments)

	case "patients":
		for _, p := range recordsSvc.Patients() {
			fmt.Printf("%-40s %-20s dob %s  %s\n", p.ID, p.Name, p.DOB, p.Contact)
		}

	case "upcoming":
		for _, inc := range reportSvc.Upcoming(time.Now(), 10) {
			fmt.Printf("%s  %-30s patient %s  [%s]\n",
				inc.AppointmentDate.Format("2006-01-02 15:04"), inc.Title, inc.PatientID, inc.Status)
		}

	case "month":
		if len(os.Args) < 4 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		var year, month int
		if _, err := fmt.Sscanf(os.Args[2]+" "+os.Args[3], "%d %d", &year, &month); err != nil || month < 1 || month > 12 {
			log.Fatal().Msg("month expects a numeric year and month")
		}
		view := reportSvc.MonthView(year, time.Month(month))
		for day := 1; day <= 31; day++ {
			for _, inc := range view[day] {
				fmt.Printf("%02d  %s  %s\n", day, inc.AppointmentDate.Format("15:04"), inc.Title)
			}
		}

	case "login":
		if len(os.Args) < 4 {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		ok, err := authSvc.Login(ctx, os.Args[2], os.Args[3])
		if err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
		if !ok {
			fmt.Println("invalid credentials")
			os.Exit(1)
		}
		u := authSvc.CurrentUser()
		fmt.Printf("logged in as %s (%s)\n", u.Email, u.Role)

	case "whoami":
		if u := authSvc.CurrentUser(); u != nil {
			fmt.Printf("%s (%s)\n", u.Email, u.Role)
		} else {
			fmt.Println("not authenticated")
		}

	case "logout":
		if err := authSvc.Logout(ctx); err != nil {
			log.Fatal().Err(err).Msg("logout failed")
		}
		fmt.Println("session cleared")

	case "reset":
		if err := dataSlot.Clear(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to clear data slot")
		}
		if err := sessionSlot.Clear(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to clear session slot")
		}
		if _, err := store.Load(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to reseed")
		}
		fmt.Println("state reset to seed dataset")

	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}
