package patient

import (
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository"
	"github.com/jwalitptl/emr-records/internal/service/crud"
	"github.com/jwalitptl/emr-records/pkg/logger"
	"github.com/jwalitptl/emr-records/pkg/validator"
)

const Entity = "patient"

type Servicer = crud.Servicer[model.Patient, int]

type Service struct {
	*crud.Service[model.Patient, int]
}

func NewService(repo repository.PatientRepository, v validator.Validator, log *logger.Logger) *Service {
	return &Service{
		Service: crud.NewService(crud.Config[model.Patient, int]{
			Entity:    Entity,
			Repo:      repo,
			KeyOf:     func(p *model.Patient) int { return p.MRN },
			Validator: v,
			Logger:    log,
		}),
	}
}
