package history

import (
	"context"

	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository"
	"github.com/jwalitptl/emr-records/internal/service/crud"
	"github.com/jwalitptl/emr-records/internal/service/doctor"
	"github.com/jwalitptl/emr-records/internal/service/patient"
	"github.com/jwalitptl/emr-records/internal/service/procedure"
	"github.com/jwalitptl/emr-records/pkg/logger"
	"github.com/jwalitptl/emr-records/pkg/validator"
)

const Entity = "patient_history"

type Servicer = crud.Servicer[model.PatientHistory, string]

// Repositories groups the tables a history record refers to.
type Repositories struct {
	History    repository.PatientHistoryRepository
	Patients   repository.PatientRepository
	Procedures repository.ProcedureRepository
	Doctors    repository.DoctorRepository
}

// Service requires the patient, procedure and doctor to exist, checked in
// that order, before any write.
type Service struct {
	*crud.Service[model.PatientHistory, string]
}

func NewService(repos Repositories, v validator.Validator, log *logger.Logger) *Service {
	return &Service{
		Service: crud.NewService(crud.Config[model.PatientHistory, string]{
			Entity:    Entity,
			Repo:      repos.History,
			KeyOf:     func(h *model.PatientHistory) string { return h.ID },
			Validator: v,
			References: func(ctx context.Context, h *model.PatientHistory) error {
				if err := crud.Require[model.Patient, int](ctx, repos.Patients, patient.Entity, h.PatientID); err != nil {
					return err
				}
				if err := crud.Require[model.Procedure, string](ctx, repos.Procedures, procedure.Entity, h.ProcedureID); err != nil {
					return err
				}
				return crud.Require[model.Doctor, string](ctx, repos.Doctors, doctor.Entity, h.DoctorID)
			},
			Logger: log,
		}),
	}
}
