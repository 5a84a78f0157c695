package sqlrepo

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/emr-records/internal/config"
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/pkg/datefmt"
	"github.com/jwalitptl/emr-records/pkg/metrics"
)

// setupTestConn opens an in-memory database with the production schema.
func setupTestConn(t *testing.T) *Conn {
	t.Helper()
	ctx := context.Background()

	conn, err := Open(ctx, config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, EnsureSchema(ctx, conn))
	return conn
}

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry(), "emr", "test")
}

func newPatient(mrn int) *model.Patient {
	return &model.Patient{
		MRN:         mrn,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: datefmt.Date(1815, time.December, 10),
		Address:     "12 St James's Square",
		State:       "LDN",
		City:        "London",
		Zip:         10001,
		Insurance:   "Acme Health",
		Email:       "ada@example.com",
	}
}

func seedDoctor(t *testing.T, conn *Conn, id string) *model.Doctor {
	t.Helper()
	d := &model.Doctor{ID: id, Name: "Dr. " + id}
	ok, err := NewDoctorRepository(conn).Create(context.Background(), d)
	require.NoError(t, err)
	require.True(t, ok)
	return d
}

func seedProcedure(t *testing.T, conn *Conn, id, doctorID string) *model.Procedure {
	t.Helper()
	p := &model.Procedure{ID: id, Name: "Checkup", Description: "Annual", Duration: 30, DoctorID: doctorID}
	ok, err := NewProcedureRepository(conn).Create(context.Background(), p)
	require.NoError(t, err)
	require.True(t, ok)
	return p
}

func countRows(t *testing.T, conn *Conn, table string) int {
	t.Helper()
	var n int
	require.NoError(t, conn.DB().Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}
