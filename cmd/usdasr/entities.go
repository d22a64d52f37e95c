package main

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"strconv"
	"strings"

	sqliteadapter "github.com/alexBLR/usdasr/internal/adapters/db/sqlite"
	"github.com/alexBLR/usdasr/internal/domain"
	"github.com/shopspring/decimal"
)

// entityOps is the read surface of one entity, with keys taken as text.
type entityOps struct {
	get   func(ctx context.Context, s *sqliteadapter.Store, key string) (any, error)
	list  func(ctx context.Context, s *sqliteadapter.Store, q domain.Query) iter.Seq2[any, error]
	count func(ctx context.Context, s *sqliteadapter.Store, q domain.Query) (int64, error)
}

type reader[T any, K comparable] interface {
	Get(ctx context.Context, key K) (T, error)
	List(ctx context.Context, q domain.Query) iter.Seq2[T, error]
	Count(ctx context.Context, q domain.Query) (int64, error)
}

func opsFor[T any, K comparable](repo func(*sqliteadapter.Store) reader[T, K], parse func(string) (K, error)) entityOps {
	return entityOps{
		get: func(ctx context.Context, s *sqliteadapter.Store, raw string) (any, error) {
			key, err := parse(raw)
			if err != nil {
				return nil, err
			}
			return repo(s).Get(ctx, key)
		},
		list: func(ctx context.Context, s *sqliteadapter.Store, q domain.Query) iter.Seq2[any, error] {
			return func(yield func(any, error) bool) {
				for v, err := range repo(s).List(ctx, q) {
					if !yield(v, err) || err != nil {
						return
					}
				}
			}
		},
		count: func(ctx context.Context, s *sqliteadapter.Store, q domain.Query) (int64, error) {
			return repo(s).Count(ctx, q)
		},
	}
}

func codeKey[K ~string](raw string) (K, error) { return K(raw), nil }

func serialKey(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrValidation("id %q is not a number", raw)
	}
	return id, nil
}

func keyParts(raw string, n int) ([]string, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != n {
		return nil, domain.ErrValidation("key %q must have %d comma-separated parts", raw, n)
	}
	return parts, nil
}

var registry = map[domain.EntityName]entityOps{
	domain.EntityFoodGroup: opsFor(func(s *sqliteadapter.Store) reader[domain.FoodGroup, domain.FoodGroupID] { return s.FoodGroups() }, codeKey[domain.FoodGroupID]),
	domain.EntityFood:      opsFor(func(s *sqliteadapter.Store) reader[domain.Food, domain.FoodID] { return s.Foods() }, codeKey[domain.FoodID]),
	domain.EntityLanguaLFactor: opsFor(func(s *sqliteadapter.Store) reader[domain.LanguaLFactor, domain.LanguaLFactorID] {
		return s.LanguaLFactors()
	}, codeKey[domain.LanguaLFactorID]),
	domain.EntityFoodLanguaLFactor: opsFor(func(s *sqliteadapter.Store) reader[domain.FoodLanguaLFactor, int64] {
		return s.FoodLanguaLFactors()
	}, serialKey),
	domain.EntityNutrient:     opsFor(func(s *sqliteadapter.Store) reader[domain.Nutrient, domain.NutrientID] { return s.Nutrients() }, codeKey[domain.NutrientID]),
	domain.EntityNutrientData: opsFor(func(s *sqliteadapter.Store) reader[domain.NutrientData, int64] { return s.NutrientData() }, serialKey),
	domain.EntitySource:       opsFor(func(s *sqliteadapter.Store) reader[domain.Source, domain.SourceID] { return s.Sources() }, codeKey[domain.SourceID]),
	domain.EntityDerivation: opsFor(func(s *sqliteadapter.Store) reader[domain.Derivation, domain.DerivationID] {
		return s.Derivations()
	}, codeKey[domain.DerivationID]),
	domain.EntityWeight:   opsFor(func(s *sqliteadapter.Store) reader[domain.Weight, int64] { return s.Weights() }, serialKey),
	domain.EntityFootnote: opsFor(func(s *sqliteadapter.Store) reader[domain.Footnote, int64] { return s.Footnotes() }, serialKey),
	domain.EntityDataLink: opsFor(func(s *sqliteadapter.Store) reader[domain.DataLink, int64] { return s.DataLinks() }, serialKey),
	domain.EntityDataSource: opsFor(func(s *sqliteadapter.Store) reader[domain.DataSource, domain.DataSourceID] {
		return s.DataSources()
	}, codeKey[domain.DataSourceID]),
	domain.EntityDeletedFood: opsFor(func(s *sqliteadapter.Store) reader[domain.DeletedFood, domain.FoodID] {
		return s.DeletedFoods()
	}, codeKey[domain.FoodID]),
	domain.EntityDeletedNutrient: opsFor(func(s *sqliteadapter.Store) reader[domain.DeletedNutrient, domain.DeletedNutrientKey] {
		return s.DeletedNutrients()
	}, func(raw string) (domain.DeletedNutrientKey, error) {
		p, err := keyParts(raw, 2)
		if err != nil {
			return domain.DeletedNutrientKey{}, err
		}
		return domain.DeletedNutrientKey{FoodID: domain.FoodID(p[0]), NutrientID: domain.NutrientID(p[1])}, nil
	}),
	domain.EntityDeletedFootnote: opsFor(func(s *sqliteadapter.Store) reader[domain.DeletedFootnote, domain.DeletedFootnoteKey] {
		return s.DeletedFootnotes()
	}, func(raw string) (domain.DeletedFootnoteKey, error) {
		p, err := keyParts(raw, 3)
		if err != nil {
			return domain.DeletedFootnoteKey{}, err
		}
		return domain.DeletedFootnoteKey{FoodID: domain.FoodID(p[0]), Sequence: p[1], Type: domain.FootnoteType(p[2])}, nil
	}),
}

func lookupEntity(name string) (domain.Entity, error) {
	e, ok := domain.Describe(domain.EntityName(name))
	if !ok {
		return domain.Entity{}, fmt.Errorf("unknown entity %q", name)
	}
	return e, nil
}

func lookupOps(name string) (domain.Entity, entityOps, error) {
	e, err := lookupEntity(name)
	if err != nil {
		return e, entityOps{}, err
	}
	ops, ok := registry[e.Name]
	if !ok {
		return e, entityOps{}, fmt.Errorf("%s rows are read through the tags command", name)
	}
	return e, ops, nil
}

// whereOps is ordered so two-character operators match first.
var whereOps = []string{">=", "<=", "!=", "<>", "==", "=", "<", ">"}

// parseWhere splits "calories>=100" into a predicate.
func parseWhere(raw string) (domain.Predicate, error) {
	best, at := "", -1
	for _, op := range whereOps {
		i := strings.Index(raw, op)
		if i > 0 && (at < 0 || i < at || (i == at && len(op) > len(best))) {
			best, at = op, i
		}
	}
	if at < 0 {
		return domain.Predicate{}, domain.ErrValidation("where %q: expected field<op>value", raw)
	}
	op, err := domain.ParseOp(best)
	if err != nil {
		return domain.Predicate{}, err
	}
	return domain.Predicate{
		Field: strings.TrimSpace(raw[:at]),
		Op:    op,
		Value: strings.TrimSpace(raw[at+len(best):]),
	}, nil
}

type field struct {
	Name  string
	Value string
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// record pairs the schema field names of e with the values of v. Domain
// structs declare their persisted fields in schema order; nested
// association structs are skipped.
func record(e domain.Entity, v any) []field {
	rv := reflect.ValueOf(v)
	out := make([]field, 0, len(e.Fields))
	i := 0
	for j := 0; j < rv.NumField() && i < len(e.Fields); j++ {
		fv := rv.Field(j)
		if fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.Struct && fv.Type().Elem() != decimalType {
			continue
		}
		out = append(out, field{Name: e.Fields[i].Name, Value: formatValue(fv)})
		i++
	}
	return out
}

func formatValue(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return "-"
		}
		v = v.Elem()
	}
	if d, ok := v.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return fmt.Sprint(v.Interface())
}
