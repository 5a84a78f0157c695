package doctor

import (
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository"
	"github.com/jwalitptl/emr-records/internal/service/crud"
	"github.com/jwalitptl/emr-records/pkg/logger"
	"github.com/jwalitptl/emr-records/pkg/validator"
)

const Entity = "doctor"

type Servicer = crud.Servicer[model.Doctor, string]

type Service struct {
	*crud.Service[model.Doctor, string]
}

func NewService(repo repository.DoctorRepository, v validator.Validator, log *logger.Logger) *Service {
	return &Service{
		Service: crud.NewService(crud.Config[model.Doctor, string]{
			Entity:    Entity,
			Repo:      repo,
			KeyOf:     func(d *model.Doctor) string { return d.ID },
			Validator: v,
			Logger:    log,
		}),
	}
}
