package model

import (
	"time"

	"github.com/jwalitptl/emr-records/pkg/datefmt"
)

// PatientHistory records a procedure performed on a patient by a doctor on
// a date of service, with the amount billed.
type PatientHistory struct {
	ID          string    `json:"id" validate:"notblank,max=64"`
	PatientID   int       `json:"patient_id" validate:"gt=0"`
	ProcedureID string    `json:"procedure_id" validate:"notblank,max=64"`
	Date        time.Time `json:"date" validate:"required,notfuture"`
	Billing     float64   `json:"billing" validate:"finite,gte=0,cents"`
	DoctorID    string    `json:"doctor_id" validate:"notblank,max=64"`
}

type PatientHistoryPayload struct {
	ID          string  `json:"id"`
	PatientID   int     `json:"patient_id"`
	ProcedureID string  `json:"procedure_id"`
	Date        string  `json:"date"`
	Billing     float64 `json:"billing"`
	DoctorID    string  `json:"doctor_id"`
}

func NewPatientHistoryPayload(h *PatientHistory) PatientHistoryPayload {
	return PatientHistoryPayload{
		ID:          h.ID,
		PatientID:   h.PatientID,
		ProcedureID: h.ProcedureID,
		Date:        datefmt.Encode(h.Date),
		Billing:     h.Billing,
		DoctorID:    h.DoctorID,
	}
}

func (p PatientHistoryPayload) PatientHistory() (*PatientHistory, error) {
	var date time.Time
	if p.Date != "" {
		var err error
		if date, err = datefmt.ParseCanonical(p.Date); err != nil {
			return nil, err
		}
	}
	return &PatientHistory{
		ID:          p.ID,
		PatientID:   p.PatientID,
		ProcedureID: p.ProcedureID,
		Date:        date,
		Billing:     p.Billing,
		DoctorID:    p.DoctorID,
	}, nil
}
