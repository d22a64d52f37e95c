package sqlite

import (
	"context"
	"iter"

	"github.com/alexBLR/usdasr/internal/domain"
)

// crud exposes a table as a domain.Repository.
type crud[D validator, M any, K comparable] struct {
	t table[D, M, K]
}

func (r crud[D, M, K]) Get(ctx context.Context, key K) (D, error) { return r.t.get(ctx, key) }

func (r crud[D, M, K]) List(ctx context.Context, q domain.Query) iter.Seq2[D, error] {
	return r.t.list(ctx, q)
}

func (r crud[D, M, K]) Count(ctx context.Context, q domain.Query) (int64, error) {
	return r.t.count(ctx, q)
}

func (r crud[D, M, K]) Upsert(ctx context.Context, value D) (D, error) { return r.t.upsert(ctx, value) }

func (r crud[D, M, K]) UpsertMany(ctx context.Context, values []D) error {
	return r.t.upsertMany(ctx, values)
}

func (r crud[D, M, K]) Delete(ctx context.Context, key K) error { return r.t.delete(ctx, key) }

// tombstones exposes an append-only table as a domain.TombstoneRepository.
type tombstones[D validator, M any, K comparable] struct {
	t table[D, M, K]
}

func (r tombstones[D, M, K]) Get(ctx context.Context, key K) (D, error) { return r.t.get(ctx, key) }

func (r tombstones[D, M, K]) List(ctx context.Context, q domain.Query) iter.Seq2[D, error] {
	return r.t.list(ctx, q)
}

func (r tombstones[D, M, K]) Count(ctx context.Context, q domain.Query) (int64, error) {
	return r.t.count(ctx, q)
}

func (r tombstones[D, M, K]) Insert(ctx context.Context, value D) (D, error) {
	return r.t.insert(ctx, value)
}

func (r tombstones[D, M, K]) InsertMany(ctx context.Context, values []D) error {
	return r.t.insertMany(ctx, values)
}

func codeKey[K ~string](k K) []any { return []any{string(k)} }

func serialKey(id int64) []any { return []any{id} }

// codeTable builds a table keyed by a single code column.
func codeTable[D validator, M any, K ~string](s *Store, name domain.EntityName, keyOf func(D) K, to func(D) M, from func(M) D) table[D, M, K] {
	e := describe(name)
	return table[D, M, K]{
		db:       s.db,
		log:      s.log,
		entity:   e,
		keyCols:  columns(e, e.Key...),
		keyArgs:  codeKey[K],
		keyOf:    keyOf,
		toModel:  to,
		toDomain: from,
	}
}

// serialTable builds a table keyed by an autoincrement id.
func serialTable[D validator, M any](s *Store, name domain.EntityName, keyOf func(D) int64, to func(D) M, from func(M) D) table[D, M, int64] {
	e := describe(name)
	return table[D, M, int64]{
		db:       s.db,
		log:      s.log,
		entity:   e,
		keyCols:  columns(e, e.Key...),
		keyArgs:  serialKey,
		keyOf:    keyOf,
		toModel:  to,
		toDomain: from,
		serial:   true,
	}
}

func (s *Store) FoodGroups() domain.FoodGroupRepository {
	return crud[domain.FoodGroup, FoodGroupModel, domain.FoodGroupID]{
		t: codeTable(s, domain.EntityFoodGroup, func(v domain.FoodGroup) domain.FoodGroupID { return v.ID }, foodGroupToModel, foodGroupFromModel),
	}
}

// Foods returns the food repository. Get and Upsert resolve the food
// group; List leaves FoodGroup nil.
func (s *Store) Foods() domain.FoodRepository {
	t := codeTable(s, domain.EntityFood, func(v domain.Food) domain.FoodID { return v.ID }, foodToModel, foodFromModel)
	t.preload = []string{"FoodGroup"}
	return crud[domain.Food, FoodModel, domain.FoodID]{t: t}
}

func (s *Store) LanguaLFactors() domain.LanguaLFactorRepository {
	return crud[domain.LanguaLFactor, LanguaLFactorModel, domain.LanguaLFactorID]{
		t: codeTable(s, domain.EntityLanguaLFactor, func(v domain.LanguaLFactor) domain.LanguaLFactorID { return v.ID }, languaLFactorToModel, languaLFactorFromModel),
	}
}

func (s *Store) Nutrients() domain.NutrientRepository {
	return crud[domain.Nutrient, NutrientModel, domain.NutrientID]{
		t: codeTable(s, domain.EntityNutrient, func(v domain.Nutrient) domain.NutrientID { return v.ID }, nutrientToModel, nutrientFromModel),
	}
}

func (s *Store) Sources() domain.SourceRepository {
	return crud[domain.Source, SourceModel, domain.SourceID]{
		t: codeTable(s, domain.EntitySource, func(v domain.Source) domain.SourceID { return v.ID }, sourceToModel, sourceFromModel),
	}
}

func (s *Store) Derivations() domain.DerivationRepository {
	return crud[domain.Derivation, DerivationModel, domain.DerivationID]{
		t: codeTable(s, domain.EntityDerivation, func(v domain.Derivation) domain.DerivationID { return v.ID }, derivationToModel, derivationFromModel),
	}
}

func (s *Store) DataSources() domain.DataSourceRepository {
	return crud[domain.DataSource, DataSourceModel, domain.DataSourceID]{
		t: codeTable(s, domain.EntityDataSource, func(v domain.DataSource) domain.DataSourceID { return v.ID }, dataSourceToModel, dataSourceFromModel),
	}
}

func (s *Store) Footnotes() domain.FootnoteRepository {
	return crud[domain.Footnote, FootnoteModel, int64]{
		t: serialTable(s, domain.EntityFootnote, func(v domain.Footnote) int64 { return v.ID }, footnoteToModel, footnoteFromModel),
	}
}

type nutrientDataRepository struct {
	crud[domain.NutrientData, NutrientDataModel, int64]
}

func (r nutrientDataRepository) GetByFoodNutrient(ctx context.Context, food domain.FoodID, nutrient domain.NutrientID) (domain.NutrientData, error) {
	return r.t.getBy(ctx, columns(r.t.entity, "food", "nutrient"), []any{string(food), string(nutrient)})
}

func (s *Store) NutrientData() domain.NutrientDataRepository {
	return nutrientDataRepository{crud[domain.NutrientData, NutrientDataModel, int64]{
		t: serialTable(s, domain.EntityNutrientData, func(v domain.NutrientData) int64 { return v.ID }, nutrientDataToModel, nutrientDataFromModel),
	}}
}

type weightRepository struct {
	crud[domain.Weight, WeightModel, int64]
}

func (r weightRepository) GetByFoodSequence(ctx context.Context, food domain.FoodID, sequence string) (domain.Weight, error) {
	return r.t.getBy(ctx, columns(r.t.entity, "food", "sequence"), []any{string(food), sequence})
}

func (s *Store) Weights() domain.WeightRepository {
	return weightRepository{crud[domain.Weight, WeightModel, int64]{
		t: serialTable(s, domain.EntityWeight, func(v domain.Weight) int64 { return v.ID }, weightToModel, weightFromModel),
	}}
}

type foodLanguaLFactorRepository struct {
	crud[domain.FoodLanguaLFactor, FoodLanguaLFactorModel, int64]
}

func (r foodLanguaLFactorRepository) GetByFoodFactor(ctx context.Context, food domain.FoodID, factor domain.LanguaLFactorID) (domain.FoodLanguaLFactor, error) {
	return r.t.getBy(ctx, columns(r.t.entity, "food", "langual_factor"), []any{string(food), string(factor)})
}

func (s *Store) FoodLanguaLFactors() domain.FoodLanguaLFactorRepository {
	return foodLanguaLFactorRepository{crud[domain.FoodLanguaLFactor, FoodLanguaLFactorModel, int64]{
		t: serialTable(s, domain.EntityFoodLanguaLFactor, func(v domain.FoodLanguaLFactor) int64 { return v.ID }, foodLanguaLFactorToModel, foodLanguaLFactorFromModel),
	}}
}

type dataLinkRepository struct {
	crud[domain.DataLink, DataLinkModel, int64]
}

func (r dataLinkRepository) GetByFoodNutrientSource(ctx context.Context, food domain.FoodID, nutrient domain.NutrientID, source domain.DataSourceID) (domain.DataLink, error) {
	return r.t.getBy(ctx, columns(r.t.entity, "food", "nutrient", "data_source"), []any{string(food), string(nutrient), string(source)})
}

func (s *Store) DataLinks() domain.DataLinkRepository {
	return dataLinkRepository{crud[domain.DataLink, DataLinkModel, int64]{
		t: serialTable(s, domain.EntityDataLink, func(v domain.DataLink) int64 { return v.ID }, dataLinkToModel, dataLinkFromModel),
	}}
}

func (s *Store) DeletedFoods() domain.DeletedFoodRepository {
	return tombstones[domain.DeletedFood, DeletedFoodModel, domain.FoodID]{
		t: codeTable(s, domain.EntityDeletedFood, func(v domain.DeletedFood) domain.FoodID { return v.FoodID }, deletedFoodToModel, deletedFoodFromModel),
	}
}

func (s *Store) DeletedNutrients() domain.DeletedNutrientRepository {
	e := describe(domain.EntityDeletedNutrient)
	return tombstones[domain.DeletedNutrient, DeletedNutrientModel, domain.DeletedNutrientKey]{
		t: table[domain.DeletedNutrient, DeletedNutrientModel, domain.DeletedNutrientKey]{
			db:      s.db,
			log:     s.log,
			entity:  e,
			keyCols: columns(e, e.Key...),
			keyArgs: func(k domain.DeletedNutrientKey) []any {
				return []any{string(k.FoodID), string(k.NutrientID)}
			},
			keyOf:    domain.DeletedNutrient.Key,
			toModel:  deletedNutrientToModel,
			toDomain: deletedNutrientFromModel,
		},
	}
}

func (s *Store) DeletedFootnotes() domain.DeletedFootnoteRepository {
	e := describe(domain.EntityDeletedFootnote)
	return tombstones[domain.DeletedFootnote, DeletedFootnoteModel, domain.DeletedFootnoteKey]{
		t: table[domain.DeletedFootnote, DeletedFootnoteModel, domain.DeletedFootnoteKey]{
			db:      s.db,
			log:     s.log,
			entity:  e,
			keyCols: columns(e, e.Key...),
			keyArgs: func(k domain.DeletedFootnoteKey) []any {
				return []any{string(k.FoodID), k.Sequence, string(k.Type)}
			},
			keyOf:    domain.DeletedFootnote.Key,
			toModel:  deletedFootnoteToModel,
			toDomain: deletedFootnoteFromModel,
		},
	}
}
