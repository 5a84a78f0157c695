package sqlrepo

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/jwalitptl/emr-records/pkg/errors"
	"github.com/jwalitptl/emr-records/pkg/logger"
	"github.com/jwalitptl/emr-records/pkg/metrics"
)

// rowScanner is satisfied by both *sqlx.Row and *sqlx.Rows.
type rowScanner interface {
	StructScan(dest interface{}) error
}

// tableDef describes how one entity maps onto its table. values returns
// the non-key columns in the order of columns.
type tableDef[T any, K comparable] struct {
	name    string
	key     string
	columns []string
	keyOf   func(*T) K
	values  func(*T) []interface{}
	decode  func(rowScanner) (*T, error)
}

// Option configures a repository.
type Option func(*options)

type options struct {
	metrics *metrics.Metrics
	log     *logger.Logger
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// table implements repository.CRUD for any tableDef. Statements are built
// once with ? placeholders and rebound for the connection's driver.
type table[T any, K comparable] struct {
	conn    *Conn
	def     tableDef[T, K]
	metrics *metrics.Metrics

	insertQuery    string
	selectOneQuery string
	selectAllQuery string
	updateQuery    string
	deleteQuery    string
}

func newTable[T any, K comparable](conn *Conn, def tableDef[T, K], o options) *table[T, K] {
	db := conn.DB()
	all := append([]string{def.key}, def.columns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(all)), ", ")

	sets := make([]string, 0, len(def.columns))
	for _, c := range def.columns {
		sets = append(sets, c+" = ?")
	}

	return &table[T, K]{
		conn:    conn,
		def:     def,
		metrics: o.metrics,
		insertQuery: db.Rebind(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			def.name, strings.Join(all, ", "), placeholders)),
		selectOneQuery: db.Rebind(fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
			strings.Join(all, ", "), def.name, def.key)),
		selectAllQuery: fmt.Sprintf("SELECT %s FROM %s", strings.Join(all, ", "), def.name),
		updateQuery: db.Rebind(fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
			def.name, strings.Join(sets, ", "), def.key)),
		deleteQuery: db.Rebind(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", def.name, def.key)),
	}
}

func (t *table[T, K]) observe(op string, start time.Time, err *error) {
	t.metrics.ObserveDatabase(t.def.name, op, start, *err)
}

func (t *table[T, K]) dbError(op string, err error) error {
	return errors.NewDatabase(fmt.Sprintf("%s %s", op, t.def.name), err)
}

func (t *table[T, K]) Create(ctx context.Context, entity *T) (ok bool, err error) {
	defer t.observe("create", time.Now(), &err)

	args := append([]interface{}{t.def.keyOf(entity)}, t.def.values(entity)...)
	res, err := t.conn.DB().ExecContext(ctx, t.insertQuery, args...)
	if err != nil {
		return false, t.dbError("create", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, t.dbError("create", err)
	}
	return n == 1, nil
}

func (t *table[T, K]) ReadByKey(ctx context.Context, key K) (entity *T, found bool, err error) {
	defer t.observe("read", time.Now(), &err)

	row := t.conn.DB().QueryRowxContext(ctx, t.selectOneQuery, key)
	entity, err = t.def.decode(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, t.dbError("read", err)
	}
	return entity, true, nil
}

func (t *table[T, K]) ReadAll(ctx context.Context) (entities []T, err error) {
	defer t.observe("list", time.Now(), &err)

	rows, err := t.conn.DB().QueryxContext(ctx, t.selectAllQuery)
	if err != nil {
		return nil, t.dbError("list", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			entities, err = nil, t.dbError("list", cerr)
		}
	}()

	entities = make([]T, 0)
	for rows.Next() {
		e, err := t.def.decode(rows)
		if err != nil {
			return nil, t.dbError("list", err)
		}
		entities = append(entities, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, t.dbError("list", err)
	}
	return entities, nil
}

func (t *table[T, K]) Update(ctx context.Context, entity *T) (ok bool, err error) {
	defer t.observe("update", time.Now(), &err)

	args := append(t.def.values(entity), t.def.keyOf(entity))
	res, err := t.conn.DB().ExecContext(ctx, t.updateQuery, args...)
	if err != nil {
		return false, t.dbError("update", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, t.dbError("update", err)
	}
	return n == 1, nil
}

func (t *table[T, K]) Delete(ctx context.Context, key K) (ok bool, err error) {
	defer t.observe("delete", time.Now(), &err)

	res, err := t.conn.DB().ExecContext(ctx, t.deleteQuery, key)
	if err != nil {
		return false, t.dbError("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, t.dbError("delete", err)
	}
	return n == 1, nil
}
