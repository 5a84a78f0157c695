package procedure

import (
	"context"

	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository"
	"github.com/jwalitptl/emr-records/internal/service/crud"
	"github.com/jwalitptl/emr-records/internal/service/doctor"
	"github.com/jwalitptl/emr-records/pkg/logger"
	"github.com/jwalitptl/emr-records/pkg/validator"
)

const Entity = "procedure"

type Servicer = crud.Servicer[model.Procedure, string]

// Service requires the owning doctor to exist on every write.
type Service struct {
	*crud.Service[model.Procedure, string]
}

func NewService(
	repo repository.ProcedureRepository,
	doctors repository.DoctorRepository,
	v validator.Validator,
	log *logger.Logger,
) *Service {
	return &Service{
		Service: crud.NewService(crud.Config[model.Procedure, string]{
			Entity:    Entity,
			Repo:      repo,
			KeyOf:     func(p *model.Procedure) string { return p.ID },
			Validator: v,
			References: func(ctx context.Context, p *model.Procedure) error {
				return crud.Require[model.Doctor, string](ctx, doctors, doctor.Entity, p.DoctorID)
			},
			Logger: log,
		}),
	}
}
