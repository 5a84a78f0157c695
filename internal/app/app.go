// Package app wires repositories, services and handlers over one
// connection.
package app

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/emr-records/internal/config"
	"github.com/jwalitptl/emr-records/internal/handler/doctor"
	"github.com/jwalitptl/emr-records/internal/handler/health"
	"github.com/jwalitptl/emr-records/internal/handler/history"
	"github.com/jwalitptl/emr-records/internal/handler/patient"
	"github.com/jwalitptl/emr-records/internal/handler/procedure"
	promhandler "github.com/jwalitptl/emr-records/internal/handler/prometheus"
	"github.com/jwalitptl/emr-records/internal/repository/sqlrepo"
	"github.com/jwalitptl/emr-records/internal/router"
	doctorService "github.com/jwalitptl/emr-records/internal/service/doctor"
	historyService "github.com/jwalitptl/emr-records/internal/service/history"
	patientService "github.com/jwalitptl/emr-records/internal/service/patient"
	procedureService "github.com/jwalitptl/emr-records/internal/service/procedure"
	"github.com/jwalitptl/emr-records/pkg/datefmt"
	"github.com/jwalitptl/emr-records/pkg/logger"
	"github.com/jwalitptl/emr-records/pkg/metrics"
	"github.com/jwalitptl/emr-records/pkg/validator"
)

type Services struct {
	Patients   *patientService.Service
	Doctors    *doctorService.Service
	Procedures *procedureService.Service
	History    *historyService.Service
}

// NewServices builds every repository and service on conn.
func NewServices(conn *sqlrepo.Conn, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*Services, error) {
	policy, err := cfg.Dates.Policy()
	if err != nil {
		return nil, fmt.Errorf("invalid date policy: %w", err)
	}

	opts := []sqlrepo.Option{sqlrepo.WithMetrics(m), sqlrepo.WithLogger(log)}
	repos := historyService.Repositories{
		History:    sqlrepo.NewPatientHistoryRepository(conn, opts...),
		Patients:   sqlrepo.NewPatientRepository(conn, datefmt.NewDecoder(policy), opts...),
		Procedures: sqlrepo.NewProcedureRepository(conn, opts...),
		Doctors:    sqlrepo.NewDoctorRepository(conn, opts...),
	}

	v := validator.New()
	return &Services{
		Patients:   patientService.NewService(repos.Patients, v, log),
		Doctors:    doctorService.NewService(repos.Doctors, v, log),
		Procedures: procedureService.NewService(repos.Procedures, repos.Doctors, v, log),
		History:    historyService.NewService(repos, v, log),
	}, nil
}

// NewRouter builds the HTTP surface. reg receives both storage and HTTP
// metrics and is served at /metrics.
func NewRouter(conn *sqlrepo.Conn, cfg *config.Config, log *logger.Logger, reg *prometheus.Registry) (*router.Router, error) {
	m := metrics.NewMetrics(reg, "emr", "records")

	svcs, err := NewServices(conn, cfg, log, m)
	if err != nil {
		return nil, err
	}

	r := router.NewRouter(
		health.NewHandler(conn),
		promhandler.New(reg),
		[]router.Handler{
			patient.NewHandler(svcs.Patients),
			doctor.NewHandler(svcs.Doctors),
			procedure.NewHandler(svcs.Procedures),
			history.NewHandler(svcs.History),
		},
		router.RouterConfig{
			RateLimit: rate.Limit(cfg.Server.RateLimit),
			RateBurst: cfg.Server.RateBurst,
			Timeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			Logger:    log,
		},
	)
	r.Setup()

	return r, nil
}
