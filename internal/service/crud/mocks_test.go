package crud

import (
	"context"
	"errors"

	"github.com/jwalitptl/emr-records/internal/repository"
)

type record struct {
	ID    string `json:"id" validate:"notblank"`
	Value int    `json:"value" validate:"gte=0"`
}

var _ repository.CRUD[record, string] = (*mockRepository)(nil)

// mockRepository keeps rows in a map. Err, when set, fails every call.
type mockRepository struct {
	rows         map[string]record
	Err          error
	CreateReturn *bool

	CreateCalls int
	UpdateCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{rows: map[string]record{}}
}

func (m *mockRepository) Create(ctx context.Context, r *record) (bool, error) {
	m.CreateCalls++
	if m.Err != nil {
		return false, m.Err
	}
	if m.CreateReturn != nil {
		return *m.CreateReturn, nil
	}
	if _, ok := m.rows[r.ID]; ok {
		return false, errors.New("duplicate key")
	}
	m.rows[r.ID] = *r
	return true, nil
}

func (m *mockRepository) ReadByKey(ctx context.Context, key string) (*record, bool, error) {
	if m.Err != nil {
		return nil, false, m.Err
	}
	r, ok := m.rows[key]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (m *mockRepository) ReadAll(ctx context.Context) ([]record, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []record
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockRepository) Update(ctx context.Context, r *record) (bool, error) {
	m.UpdateCalls++
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.rows[r.ID]; !ok {
		return false, nil
	}
	m.rows[r.ID] = *r
	return true, nil
}

func (m *mockRepository) Delete(ctx context.Context, key string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if _, ok := m.rows[key]; !ok {
		return false, nil
	}
	delete(m.rows, key)
	return true, nil
}
