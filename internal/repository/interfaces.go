package repository

import (
	"context"

	"github.com/jwalitptl/emr-records/internal/model"
)

// CRUD is the contract every entity table implements. Absence is reported
// through the boolean results, never as an error; errors are storage
// failures.
type CRUD[T any, K comparable] interface {
	// Create inserts entity and reports whether exactly one row was added.
	Create(ctx context.Context, entity *T) (bool, error)
	// ReadByKey returns the entity stored under key, or found == false.
	ReadByKey(ctx context.Context, key K) (entity *T, found bool, err error)
	// ReadAll returns every row in no particular order. An empty table
	// yields an empty, non-nil slice.
	ReadAll(ctx context.Context) ([]T, error)
	// Update overwrites every non-key column of the row matching the key
	// of entity and reports whether a row matched.
	Update(ctx context.Context, entity *T) (bool, error)
	// Delete removes the row stored under key and reports whether one was
	// removed.
	Delete(ctx context.Context, key K) (bool, error)
}

// All repository interfaces in one file
type (
	PatientRepository interface {
		CRUD[model.Patient, int]
	}

	DoctorRepository interface {
		CRUD[model.Doctor, string]
	}

	ProcedureRepository interface {
		CRUD[model.Procedure, string]
	}

	PatientHistoryRepository interface {
		CRUD[model.PatientHistory, string]
	}
)
