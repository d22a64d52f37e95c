package domain

import (
	"context"
	"iter"
)

// Repository is the access contract shared by every live table.
//
// List is lazy: nothing is read until the sequence is ranged over, and
// every range re-runs the query.
type Repository[T any, K comparable] interface {
	Get(ctx context.Context, key K) (T, error)
	List(ctx context.Context, q Query) iter.Seq2[T, error]
	Count(ctx context.Context, q Query) (int64, error)
	Upsert(ctx context.Context, value T) (T, error)
	UpsertMany(ctx context.Context, values []T) error
	Delete(ctx context.Context, key K) error
}

// TombstoneRepository is the append-only contract of the deleted-record tables.
type TombstoneRepository[T any, K comparable] interface {
	Get(ctx context.Context, key K) (T, error)
	List(ctx context.Context, q Query) iter.Seq2[T, error]
	Count(ctx context.Context, q Query) (int64, error)
	Insert(ctx context.Context, value T) (T, error)
	InsertMany(ctx context.Context, values []T) error
}

type FoodGroupRepository = Repository[FoodGroup, FoodGroupID]
type NutrientRepository = Repository[Nutrient, NutrientID]
type SourceRepository = Repository[Source, SourceID]
type DerivationRepository = Repository[Derivation, DerivationID]
type DataSourceRepository = Repository[DataSource, DataSourceID]
type LanguaLFactorRepository = Repository[LanguaLFactor, LanguaLFactorID]
type FoodRepository = Repository[Food, FoodID]
type FootnoteRepository = Repository[Footnote, int64]

type NutrientDataRepository interface {
	Repository[NutrientData, int64]
	GetByFoodNutrient(ctx context.Context, food FoodID, nutrient NutrientID) (NutrientData, error)
}

type WeightRepository interface {
	Repository[Weight, int64]
	GetByFoodSequence(ctx context.Context, food FoodID, sequence string) (Weight, error)
}

type FoodLanguaLFactorRepository interface {
	Repository[FoodLanguaLFactor, int64]
	GetByFoodFactor(ctx context.Context, food FoodID, factor LanguaLFactorID) (FoodLanguaLFactor, error)
}

type DataLinkRepository interface {
	Repository[DataLink, int64]
	GetByFoodNutrientSource(ctx context.Context, food FoodID, nutrient NutrientID, source DataSourceID) (DataLink, error)
}

type DeletedFoodRepository = TombstoneRepository[DeletedFood, FoodID]
type DeletedNutrientRepository = TombstoneRepository[DeletedNutrient, DeletedNutrientKey]
type DeletedFootnoteRepository = TombstoneRepository[DeletedFootnote, DeletedFootnoteKey]

// TagRepository owns the label set attached to each food.
type TagRepository interface {
	Tags(ctx context.Context, food FoodID) ([]string, error)
	SetTags(ctx context.Context, food FoodID, labels []string) error
	AddTags(ctx context.Context, food FoodID, labels ...string) error
	RemoveTags(ctx context.Context, food FoodID, labels ...string) error
	FoodsTagged(ctx context.Context, label string) ([]FoodID, error)
}
