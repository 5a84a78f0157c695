package sqlrepo

import (
	"fmt"

	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository"
	"github.com/jwalitptl/emr-records/pkg/datefmt"
)

type patientRow struct {
	MRN       int    `db:"mrn"`
	FirstName string `db:"fname"`
	LastName  string `db:"lname"`
	DOB       string `db:"dob"`
	Address   string `db:"address"`
	State     string `db:"state"`
	City      string `db:"city"`
	Zip       int    `db:"zip"`
	Insurance string `db:"insurance"`
	Email     string `db:"email"`
}

type patientRepository struct {
	*table[model.Patient, int]
}

// NewPatientRepository reads dates of birth through dates. Writes are
// always canonical, so a row read in an older encoding is healed by its
// next update.
func NewPatientRepository(conn *Conn, dates *datefmt.Decoder, opts ...Option) repository.PatientRepository {
	o := buildOptions(opts)

	def := tableDef[model.Patient, int]{
		name:    "patients",
		key:     "mrn",
		columns: []string{"fname", "lname", "dob", "address", "state", "city", "zip", "insurance", "email"},
		keyOf:   func(p *model.Patient) int { return p.MRN },
		values: func(p *model.Patient) []interface{} {
			return []interface{}{
				p.FirstName,
				p.LastName,
				datefmt.Encode(p.DateOfBirth),
				p.Address,
				p.State,
				p.City,
				p.Zip,
				p.Insurance,
				p.Email,
			}
		},
		decode: func(row rowScanner) (*model.Patient, error) {
			var r patientRow
			if err := row.StructScan(&r); err != nil {
				return nil, err
			}

			dob, err := dates.Decode(r.DOB)
			if err != nil {
				o.log.Error(err, "unreadable date of birth", "mrn", r.MRN)
				return nil, fmt.Errorf("patient %d: %w", r.MRN, err)
			}
			if !dob.Canonical() {
				o.metrics.ObserveDate("patients", dob.Layout, dob.Ambiguous, string(dates.Policy()))
				if dob.Ambiguous {
					o.log.Warn("ambiguous date of birth resolved by policy",
						"mrn", r.MRN,
						"stored", r.DOB,
						"resolved", datefmt.Encode(dob.Time),
						"policy", string(dates.Policy()),
					)
				}
			}

			return &model.Patient{
				MRN:         r.MRN,
				FirstName:   r.FirstName,
				LastName:    r.LastName,
				DateOfBirth: dob.Time,
				Address:     r.Address,
				State:       r.State,
				City:        r.City,
				Zip:         r.Zip,
				Insurance:   r.Insurance,
				Email:       r.Email,
			}, nil
		},
	}

	return &patientRepository{table: newTable(conn, def, o)}
}
