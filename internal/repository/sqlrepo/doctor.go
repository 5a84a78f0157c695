package sqlrepo

import (
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository"
)

type doctorRepository struct {
	*table[model.Doctor, string]
}

func NewDoctorRepository(conn *Conn, opts ...Option) repository.DoctorRepository {
	def := tableDef[model.Doctor, string]{
		name:    "doctors",
		key:     "id",
		columns: []string{"name"},
		keyOf:   func(d *model.Doctor) string { return d.ID },
		values: func(d *model.Doctor) []interface{} {
			return []interface{}{d.Name}
		},
		decode: func(row rowScanner) (*model.Doctor, error) {
			var d model.Doctor
			if err := row.StructScan(&d); err != nil {
				return nil, err
			}
			return &d, nil
		},
	}
	return &doctorRepository{table: newTable(conn, def, buildOptions(opts))}
}
