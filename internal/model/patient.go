package model

import (
	"time"

	"github.com/jwalitptl/emr-records/pkg/datefmt"
)

// Patient is keyed by its caller-assigned medical record number.
type Patient struct {
	MRN         int       `json:"mrn" validate:"gt=0"`
	FirstName   string    `json:"first_name" validate:"notblank"`
	LastName    string    `json:"last_name" validate:"notblank"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required,notfuture"`
	Address     string    `json:"address" validate:"notblank"`
	State       string    `json:"state" validate:"notblank"`
	City        string    `json:"city" validate:"notblank"`
	Zip         int       `json:"zip" validate:"gte=0"`
	Insurance   string    `json:"insurance" validate:"notblank"`
	Email       string    `json:"email" validate:"notblank,email"`
}

// PatientPayload is the wire form of a Patient with the date of birth in
// canonical encoding.
type PatientPayload struct {
	MRN         int    `json:"mrn"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	State       string `json:"state"`
	City        string `json:"city"`
	Zip         int    `json:"zip"`
	Insurance   string `json:"insurance"`
	Email       string `json:"email"`
}

func NewPatientPayload(p *Patient) PatientPayload {
	return PatientPayload{
		MRN:         p.MRN,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: datefmt.Encode(p.DateOfBirth),
		Address:     p.Address,
		State:       p.State,
		City:        p.City,
		Zip:         p.Zip,
		Insurance:   p.Insurance,
		Email:       p.Email,
	}
}

// Patient converts the payload. An empty date of birth is left zero for
// validation to reject.
func (p PatientPayload) Patient() (*Patient, error) {
	var dob time.Time
	if p.DateOfBirth != "" {
		var err error
		if dob, err = datefmt.ParseCanonical(p.DateOfBirth); err != nil {
			return nil, err
		}
	}
	return &Patient{
		MRN:         p.MRN,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: dob,
		Address:     p.Address,
		State:       p.State,
		City:        p.City,
		Zip:         p.Zip,
		Insurance:   p.Insurance,
		Email:       p.Email,
	}, nil
}
