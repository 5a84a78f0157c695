package sqlrepo

import (
	"context"
	"fmt"
)

// Dates are stored as text so rows written in older encodings remain
// readable. The DDL is portable across the supported drivers.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		mrn       INTEGER PRIMARY KEY,
		fname     VARCHAR(255) NOT NULL,
		lname     VARCHAR(255) NOT NULL,
		dob       VARCHAR(32) NOT NULL,
		address   VARCHAR(255) NOT NULL,
		state     VARCHAR(64) NOT NULL,
		city      VARCHAR(128) NOT NULL,
		zip       INTEGER NOT NULL,
		insurance VARCHAR(255) NOT NULL,
		email     VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id   VARCHAR(64) PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS procedures (
		id          VARCHAR(64) PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		duration    INTEGER NOT NULL,
		doctor_id   VARCHAR(64) NOT NULL,
		FOREIGN KEY (doctor_id) REFERENCES doctors (id)
	)`,
	`CREATE TABLE IF NOT EXISTS patient_history (
		id           VARCHAR(64) PRIMARY KEY,
		patient_id   INTEGER NOT NULL,
		procedure_id VARCHAR(64) NOT NULL,
		service_date VARCHAR(32) NOT NULL,
		billing      NUMERIC(12, 2) NOT NULL,
		doctor_id    VARCHAR(64) NOT NULL,
		FOREIGN KEY (patient_id) REFERENCES patients (mrn),
		FOREIGN KEY (procedure_id) REFERENCES procedures (id),
		FOREIGN KEY (doctor_id) REFERENCES doctors (id)
	)`,
}

// EnsureSchema creates any missing tables. Existing tables are left as
// they are.
func EnsureSchema(ctx context.Context, conn *Conn) error {
	for _, stmt := range schema {
		if _, err := conn.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}
