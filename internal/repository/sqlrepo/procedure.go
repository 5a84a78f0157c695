package sqlrepo

import (
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository"
)

type procedureRepository struct {
	*table[model.Procedure, string]
}

func NewProcedureRepository(conn *Conn, opts ...Option) repository.ProcedureRepository {
	def := tableDef[model.Procedure, string]{
		name:    "procedures",
		key:     "id",
		columns: []string{"name", "description", "duration", "doctor_id"},
		keyOf:   func(p *model.Procedure) string { return p.ID },
		values: func(p *model.Procedure) []interface{} {
			return []interface{}{p.Name, p.Description, p.Duration, p.DoctorID}
		},
		decode: func(row rowScanner) (*model.Procedure, error) {
			var p model.Procedure
			if err := row.StructScan(&p); err != nil {
				return nil, err
			}
			return &p, nil
		},
	}
	return &procedureRepository{table: newTable(conn, def, buildOptions(opts))}
}
