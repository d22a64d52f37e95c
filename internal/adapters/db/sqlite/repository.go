package sqlite

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/alexBLR/usdasr/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	modernc "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Options configures Open.
type Options struct {
	Path          string
	BusyTimeout   time.Duration
	SlowThreshold time.Duration
	Logger        *zap.Logger
}

// Open connects to the database file at opts.Path with foreign key
// enforcement and WAL journaling enabled.
func Open(opts Options) (*gorm.DB, error) {
	if opts.Path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = 5 * time.Second
	}

	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        dsn(opts.Path, busy),
	}, &gorm.Config{
		Logger: newZapLogger(opts.Logger, opts.SlowThreshold),
	})
}

func dsn(path string, busy time.Duration) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busy.Milliseconds()))
	q.Set("_txlock", "immediate")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

// Store hands out the repositories of one database handle. A Store bound
// to a transaction is obtained through Transaction.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// Transaction runs fn against a Store whose repositories share one
// transaction. The transaction commits when fn returns nil.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, log: s.log})
	})
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB { return s.db }

// mapDBError converts driver and gorm errors into domain errors.
func mapDBError(entity domain.EntityName, key any, err error) error {
	if err == nil {
		return nil
	}
	subject := string(entity)
	if key != nil {
		subject = fmt.Sprintf("%s %v", entity, key)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound("%s not found", subject)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrConstraintViolation("%s: %v", subject, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return domain.ErrForeignKeyViolation("%s: %v", subject, err)
	}

	var se *modernc.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return domain.ErrConstraintViolation("%s: %v", subject, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return domain.ErrForeignKeyViolation("%s: %v", subject, err)
		case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return &domain.ValidationError{Entity: entity, Message: err.Error()}
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return domain.ErrConstraintViolation("%s: %v", subject, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return domain.ErrForeignKeyViolation("%s: %v", subject, err)
	case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "NOT NULL constraint failed"):
		return &domain.ValidationError{Entity: entity, Message: msg}
	}
	return err
}

type validator interface {
	Validate() error
	fmt.Stringer
}

// table implements the shared repository operations for one entity. D is
// the domain type, M its gorm model and K its lookup key.
type table[D validator, M any, K comparable] struct {
	db       *gorm.DB
	log      *zap.Logger
	entity   domain.Entity
	keyCols  []string
	keyArgs  func(K) []any
	keyOf    func(D) K
	toModel  func(D) M
	toDomain func(M) D
	preload  []string
	// serial tables are written row by row so SQLite assigns each id.
	serial bool
}

func (t table[D, M, K]) name() domain.EntityName { return t.entity.Name }

func (t table[D, M, K]) whereKey(q *gorm.DB, key K) *gorm.DB {
	args := t.keyArgs(key)
	for i, col := range t.keyCols {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: args[i]})
	}
	return q
}

func (t table[D, M, K]) get(ctx context.Context, key K) (D, error) {
	var m M
	q := t.db.WithContext(ctx)
	for _, p := range t.preload {
		q = q.Preload(p)
	}
	if err := t.whereKey(q, key).Take(&m).Error; err != nil {
		var zero D
		return zero, mapDBError(t.name(), key, err)
	}
	return t.toDomain(m), nil
}

// getBy looks a row up by a unique column set other than the primary key.
func (t table[D, M, K]) getBy(ctx context.Context, cols []string, args []any) (D, error) {
	var m M
	q := t.db.WithContext(ctx)
	for i, col := range cols {
		q = q.Where(clause.Eq{Column: clause.Column{Name: col}, Value: args[i]})
	}
	if err := q.Take(&m).Error; err != nil {
		var zero D
		return zero, mapDBError(t.name(), args, err)
	}
	return t.toDomain(m), nil
}

func (t table[D, M, K]) scope(ctx context.Context, query domain.Query, ordered bool) (*gorm.DB, error) {
	conds, order, err := query.Resolve(t.entity)
	if err != nil {
		return nil, err
	}
	q := t.db.WithContext(ctx).Model(new(M))
	for _, c := range conds {
		q = q.Where(condition(c))
	}
	if !ordered {
		return q, nil
	}
	for _, col := range order {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: col.Name}, Desc: col.Desc})
	}
	// Ties and unordered entities fall back to insertion order.
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "rowid", Raw: true}})
	switch {
	case query.Limit > 0:
		q = q.Limit(query.Limit)
	case query.Offset > 0:
		q = q.Limit(math.MaxInt32)
	}
	if query.Offset > 0 {
		q = q.Offset(query.Offset)
	}
	return q, nil
}

func condition(c domain.Condition) clause.Expression {
	col := clause.Column{Name: c.Column}
	switch c.Op {
	case domain.OpNe:
		return clause.Neq{Column: col, Value: c.Value}
	case domain.OpLt:
		return clause.Lt{Column: col, Value: c.Value}
	case domain.OpLte:
		return clause.Lte{Column: col, Value: c.Value}
	case domain.OpGt:
		return clause.Gt{Column: col, Value: c.Value}
	case domain.OpGte:
		return clause.Gte{Column: col, Value: c.Value}
	default:
		return clause.Eq{Column: col, Value: c.Value}
	}
}

// list streams matching rows. Nothing is read until the sequence is
// ranged over; each range re-runs the query.
func (t table[D, M, K]) list(ctx context.Context, query domain.Query) iter.Seq2[D, error] {
	return func(yield func(D, error) bool) {
		var zero D
		q, err := t.scope(ctx, query, true)
		if err != nil {
			yield(zero, err)
			return
		}
		rows, err := q.Rows()
		if err != nil {
			yield(zero, mapDBError(t.name(), nil, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var m M
			if err := t.db.ScanRows(rows, &m); err != nil {
				yield(zero, err)
				return
			}
			if !yield(t.toDomain(m), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}

func (t table[D, M, K]) count(ctx context.Context, query domain.Query) (int64, error) {
	q, err := t.scope(ctx, query, false)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, mapDBError(t.name(), nil, err)
	}
	return n, nil
}

func (t table[D, M, K]) onConflict() clause.OnConflict {
	cols := make([]clause.Column, 0, len(t.keyCols))
	for _, c := range t.keyCols {
		cols = append(cols, clause.Column{Name: c})
	}
	return clause.OnConflict{Columns: cols, UpdateAll: true}
}

// subject names a row in error messages. Rows without an id yet are
// named by their display string.
func (t table[D, M, K]) subject(v D) any {
	var zero K
	if k := t.keyOf(v); k != zero {
		return k
	}
	return v.String()
}

func (t table[D, M, K]) upsert(ctx context.Context, value D) (D, error) {
	var zero D
	if err := value.Validate(); err != nil {
		return zero, err
	}
	m := t.toModel(value)
	err := t.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(t.onConflict()).
		Create(&m).Error
	if err != nil {
		return zero, mapDBError(t.name(), t.subject(value), err)
	}
	key := t.keyOf(t.toDomain(m))
	t.log.Debug("upserted", zap.String("entity", string(t.name())), zap.Any("key", key))
	return t.get(ctx, key)
}

// upsertMany writes values in one transaction; any failure rolls back
// the whole batch.
func (t table[D, M, K]) upsertMany(ctx context.Context, values []D) error {
	if len(values) == 0 {
		return nil
	}
	models := make([]M, 0, len(values))
	for i, v := range values {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%s row %d: %w", t.name(), i, err)
		}
		models = append(models, t.toModel(v))
	}

	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Omit(clause.Associations).Clauses(t.onConflict()).Session(&gorm.Session{})
		if !t.serial {
			if err := q.CreateInBatches(&models, 100).Error; err != nil {
				return mapDBError(t.name(), nil, err)
			}
			return nil
		}
		for i := range models {
			if err := q.Create(&models[i]).Error; err != nil {
				return mapDBError(t.name(), fmt.Sprintf("row %d (%v)", i, t.subject(values[i])), err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	t.log.Debug("upserted batch", zap.String("entity", string(t.name())), zap.Int("rows", len(values)))
	return nil
}

func (t table[D, M, K]) insert(ctx context.Context, value D) (D, error) {
	var zero D
	if err := value.Validate(); err != nil {
		return zero, err
	}
	m := t.toModel(value)
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return zero, mapDBError(t.name(), t.keyOf(value), err)
	}
	t.log.Debug("inserted", zap.String("entity", string(t.name())), zap.Any("key", t.keyOf(value)))
	return t.toDomain(m), nil
}

func (t table[D, M, K]) insertMany(ctx context.Context, values []D) error {
	if len(values) == 0 {
		return nil
	}
	models := make([]M, 0, len(values))
	for i, v := range values {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%s row %d: %w", t.name(), i, err)
		}
		models = append(models, t.toModel(v))
	}
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&models, 100).Error
	})
	if err != nil {
		return mapDBError(t.name(), nil, err)
	}
	t.log.Debug("inserted batch", zap.String("entity", string(t.name())), zap.Int("rows", len(values)))
	return nil
}

// delete removes one row; dependent rows go with it through ON DELETE CASCADE.
func (t table[D, M, K]) delete(ctx context.Context, key K) error {
	res := t.whereKey(t.db.WithContext(ctx), key).Delete(new(M))
	if res.Error != nil {
		return mapDBError(t.name(), key, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound("%s %v not found", t.name(), key)
	}
	t.log.Info("deleted", zap.String("entity", string(t.name())), zap.Any("key", key))
	return nil
}

// columns resolves schema field names to their column names.
func columns(e domain.Entity, fields ...string) []string {
	out := make([]string, 0, len(fields))
	for _, name := range fields {
		f, ok := e.Field(name)
		if !ok {
			panic(fmt.Sprintf("sqlite: %s has no field %s", e.Name, name))
		}
		out = append(out, f.Column)
	}
	return out
}

func describe(name domain.EntityName) domain.Entity {
	e, ok := domain.Describe(name)
	if !ok {
		panic("sqlite: unknown entity " + string(name))
	}
	return e
}
