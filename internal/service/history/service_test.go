package history

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/emr-records/internal/config"
	"github.com/jwalitptl/emr-records/internal/model"
	"github.com/jwalitptl/emr-records/internal/repository/sqlrepo"
	"github.com/jwalitptl/emr-records/internal/service/doctor"
	"github.com/jwalitptl/emr-records/internal/service/patient"
	"github.com/jwalitptl/emr-records/internal/service/procedure"
	"github.com/jwalitptl/emr-records/pkg/datefmt"
	"github.com/jwalitptl/emr-records/pkg/errors"
	"github.com/jwalitptl/emr-records/pkg/validator"
)

type fixture struct {
	conn       *sqlrepo.Conn
	patients   *patient.Service
	doctors    *doctor.Service
	procedures *procedure.Service
	history    *Service
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlrepo.Open(ctx, config.DatabaseConfig{URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, sqlrepo.EnsureSchema(ctx, conn))

	v := validator.New()
	repos := Repositories{
		History:    sqlrepo.NewPatientHistoryRepository(conn),
		Patients:   sqlrepo.NewPatientRepository(conn, datefmt.NewDecoder(datefmt.PolicyLegacy)),
		Procedures: sqlrepo.NewProcedureRepository(conn),
		Doctors:    sqlrepo.NewDoctorRepository(conn),
	}

	return &fixture{
		conn:       conn,
		patients:   patient.NewService(repos.Patients, v, nil),
		doctors:    doctor.NewService(repos.Doctors, v, nil),
		procedures: procedure.NewService(repos.Procedures, repos.Doctors, v, nil),
		history:    NewService(repos, v, nil),
	}
}

func (f *fixture) historyRows(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.conn.DB().Get(&n, "SELECT COUNT(*) FROM patient_history"))
	return n
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.doctors.Create(ctx, &model.Doctor{ID: "DR-1", Name: "Dr. A"}))
	require.NoError(t, f.procedures.Create(ctx, &model.Procedure{ID: "P-1", Name: "Consult", DoctorID: "DR-1", Duration: 30}))
	require.NoError(t, f.patients.Create(ctx, &model.Patient{
		MRN:         1,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DateOfBirth: datefmt.Date(1990, time.January, 2),
		Address:     "1 Main St",
		State:       "TX",
		City:        "Austin",
		Zip:         73301,
		Insurance:   "Acme",
		Email:       "ada@example.com",
	}))
}

func entry(patientID int) *model.PatientHistory {
	return &model.PatientHistory{
		ID:          "H-1",
		PatientID:   patientID,
		ProcedureID: "P-1",
		Date:        datefmt.Date(2024, time.March, 5),
		Billing:     99.5,
		DoctorID:    "DR-1",
	}
}

func TestCreate_MissingPatient(t *testing.T) {
	f := setup(t)
	f.seed(t)

	err := f.history.Create(context.Background(), entry(999))

	var nf *errors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, patient.Entity, nf.Entity)
	assert.Equal(t, "999", nf.Key)
	assert.Zero(t, f.historyRows(t))
}

func TestCreate_ReferencesCheckedInOrder(t *testing.T) {
	f := setup(t)
	f.seed(t)
	ctx := context.Background()

	h := entry(1)
	h.ProcedureID = "P-404"
	h.DoctorID = "DR-404"
	var nf *errors.NotFoundError
	require.ErrorAs(t, f.history.Create(ctx, h), &nf)
	assert.Equal(t, procedure.Entity, nf.Entity)

	h.ProcedureID = "P-1"
	require.ErrorAs(t, f.history.Create(ctx, h), &nf)
	assert.Equal(t, doctor.Entity, nf.Entity)
	assert.Equal(t, "DR-404", nf.Key)

	assert.Zero(t, f.historyRows(t))
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	f.seed(t)
	ctx := context.Background()

	cases := map[string]func(*model.PatientHistory){
		"billing":      func(h *model.PatientHistory) { h.Billing = -1 },
		"date":         func(h *model.PatientHistory) { h.Date = time.Time{} },
		"procedure_id": func(h *model.PatientHistory) { h.ProcedureID = "\t" },
		"patient_id":   func(h *model.PatientHistory) { h.PatientID = 0 },
	}
	for field, mutate := range cases {
		h := entry(1)
		mutate(h)

		var verr *errors.ValidationError
		require.ErrorAs(t, f.history.Create(ctx, h), &verr, field)
		assert.Equal(t, field, verr.Field)
	}

	billings := []struct {
		amount float64
		rule   string
	}{
		{math.NaN(), "finite"},
		{math.Inf(1), "finite"},
		{-0.5, "gte"},
		{12.345, "cents"},
		{1e11, "cents"},
	}
	for _, tt := range billings {
		h := entry(1)
		h.Billing = tt.amount

		var verr *errors.ValidationError
		require.ErrorAs(t, f.history.Create(ctx, h), &verr, tt.rule)
		assert.Equal(t, "billing", verr.Field)
		assert.Equal(t, tt.rule, verr.Rule, "billing %v", tt.amount)
	}
	assert.Zero(t, f.historyRows(t))
}

func TestLifecycle(t *testing.T) {
	f := setup(t)
	f.seed(t)
	ctx := context.Background()

	h := entry(1)
	require.NoError(t, f.history.Create(ctx, h))

	got, err := f.history.Get(ctx, "H-1")
	require.NoError(t, err)
	assert.Equal(t, h, got)

	got.Billing = 120
	require.NoError(t, f.history.Update(ctx, got))
	require.NoError(t, f.history.Update(ctx, got))

	all, err := f.history.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 120.0, all[0].Billing)

	require.NoError(t, f.history.Delete(ctx, "H-1"))
	_, err = f.history.Get(ctx, "H-1")
	assert.True(t, errors.IsNotFound(err))
	assert.True(t, errors.IsNotFound(f.history.Delete(ctx, "H-1")))
}

func TestUpdate_UnknownKey(t *testing.T) {
	f := setup(t)
	f.seed(t)

	err := f.history.Update(context.Background(), entry(1))
	assert.True(t, errors.IsNotFound(err))
	assert.Zero(t, f.historyRows(t))
}

func TestPatientDuplicateIsDatabaseError(t *testing.T) {
	f := setup(t)
	f.seed(t)
	ctx := context.Background()

	before, err := f.patients.Get(ctx, 1)
	require.NoError(t, err)

	dup := *before
	dup.FirstName = "Other"
	assert.True(t, errors.IsDatabase(f.patients.Create(ctx, &dup)))

	after, err := f.patients.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestProcedureRequiresDoctor(t *testing.T) {
	f := setup(t)

	err := f.procedures.Create(context.Background(), &model.Procedure{ID: "P-1", Name: "Consult", DoctorID: "DR-1"})
	var nf *errors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, doctor.Entity, nf.Entity)
	assert.Equal(t, "DR-1", nf.Key)
}
