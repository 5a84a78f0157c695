package sqlrepo

import (
	"fmt"

	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository"
	"github.com/jwalitptl/emr-records/pkg/datefmt"
)

type patientHistoryRow struct {
	ID          string  `db:"id"`
	PatientID   int     `db:"patient_id"`
	ProcedureID string  `db:"procedure_id"`
	Date        string  `db:"service_date"`
	Billing     float64 `db:"billing"`
	DoctorID    string  `db:"doctor_id"`
}

type patientHistoryRepository struct {
	*table[model.PatientHistory, string]
}

// NewPatientHistoryRepository stores dates of service canonically and
// reads them strictly.
func NewPatientHistoryRepository(conn *Conn, opts ...Option) repository.PatientHistoryRepository {
	def := tableDef[model.PatientHistory, string]{
		name:    "patient_history",
		key:     "id",
		columns: []string{"patient_id", "procedure_id", "service_date", "billing", "doctor_id"},
		keyOf:   func(h *model.PatientHistory) string { return h.ID },
		values: func(h *model.PatientHistory) []interface{} {
			return []interface{}{h.PatientID, h.ProcedureID, datefmt.Encode(h.Date), h.Billing, h.DoctorID}
		},
		decode: func(row rowScanner) (*model.PatientHistory, error) {
			var r patientHistoryRow
			if err := row.StructScan(&r); err != nil {
				return nil, err
			}
			date, err := datefmt.ParseCanonical(r.Date)
			if err != nil {
				return nil, fmt.Errorf("history %s: %w", r.ID, err)
			}
			return &model.PatientHistory{
				ID:          r.ID,
				PatientID:   r.PatientID,
				ProcedureID: r.ProcedureID,
				Date:        date,
				Billing:     r.Billing,
				DoctorID:    r.DoctorID,
			}, nil
		},
	}
	return &patientHistoryRepository{table: newTable(conn, def, buildOptions(opts))}
}
