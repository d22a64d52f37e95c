package sqlite

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/alexBLR/usdasr/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm/schema"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	log := zaptest.NewLogger(t)

	db, err := Open(Options{Path: filepath.Join(t.TempDir(), "usdasr_test.db"), Logger: log})
	require.NoError(t, err, "open db")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, RunMigrations(ctx, db, log), "run migrations")

	return NewStore(db, log)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func collect[T any](t *testing.T, seq iter.Seq2[T, error]) []T {
	t.Helper()
	var out []T
	for v, err := range seq {
		require.NoError(t, err)
		out = append(out, v)
	}
	return out
}

var (
	dairy  = domain.FoodGroup{ID: "0100", Name: "Dairy and Egg Products"}
	spices = domain.FoodGroup{ID: "0200", Name: "Spices and Herbs"}
	water  = domain.Nutrient{ID: "255", Units: "g", Tagname: ptr("WATER"), Name: "Water", Decimals: 2, Order: 100}
	energy = domain.Nutrient{ID: "208", Units: "kcal", Tagname: ptr("ENERC_KCAL"), Name: "Energy", Decimals: 0, Order: 300}
	source = domain.Source{ID: "1", Name: "Analytical or derived from analytical"}
)

func butter() domain.Food {
	return domain.Food{
		ID:              "01001",
		FoodGroupID:     dairy.ID,
		LongDescription: "Butter, salted",
		Calories:        dec("717.000"),
		EnergyDensity:   dec("7.17"),
		Slug:            "butter-salted",
	}
}

func cheese() domain.Food {
	return domain.Food{
		ID:              "01009",
		FoodGroupID:     dairy.ID,
		LongDescription: "Cheese, cheddar",
		Calories:        dec("403"),
		Slug:            "cheese-cheddar",
	}
}

// seed writes the dairy group, butter, two nutrients and one source.
func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	_, err := s.FoodGroups().Upsert(ctx, dairy)
	require.NoError(t, err)
	_, err = s.Foods().Upsert(ctx, butter())
	require.NoError(t, err)
	require.NoError(t, s.Nutrients().UpsertMany(ctx, []domain.Nutrient{water, energy}))
	_, err = s.Sources().Upsert(ctx, source)
	require.NoError(t, err)
}

func TestFoodRoundTripResolvesGroup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	got, err := s.Foods().Get(ctx, "01001")
	require.NoError(t, err)

	assert.Equal(t, domain.FoodID("01001"), got.ID, "leading zero must survive")
	assert.Equal(t, "Butter, salted", got.LongDescription)
	assert.True(t, dec("717").Equal(got.Calories), "calories %s", got.Calories)
	assert.True(t, dec("7.17").Equal(got.EnergyDensity), "energy density %s", got.EnergyDensity)
	assert.Nil(t, got.IngredientName)
	assert.Nil(t, got.InsulinogenicOptimiser)
	require.NotNil(t, got.FoodGroup)
	assert.Equal(t, dairy, *got.FoodGroup)
	assert.Equal(t, "/foods/micronutrients-for-butter-salted", got.Path())
	assert.Equal(t, "Butter, salted", got.String())
}

func TestUpsertUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	_, err := s.FoodGroups().Upsert(ctx, spices)
	require.NoError(t, err)

	moved := butter()
	moved.FoodGroupID = spices.ID
	moved.IngredientName = ptr("butter")
	moved.InsulinogenicOptimiser = ptr(0.25)
	got, err := s.Foods().Upsert(ctx, moved)
	require.NoError(t, err)
	require.NotNil(t, got.FoodGroup)
	assert.Equal(t, "Spices and Herbs", got.FoodGroup.Name)
	assert.Equal(t, ptr("butter"), got.IngredientName)
	assert.Equal(t, ptr(0.25), got.InsulinogenicOptimiser)

	n, err := s.Foods().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestNutrientDataCompositeKeyIsUnique(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	row := domain.NutrientData{FoodID: "01001", NutrientID: "255", Ounce: dec("15.87"), DataType: "1"}
	first, err := s.NutrientData().Upsert(ctx, row)
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.True(t, dec("15.87").Equal(first.Ounce))

	_, err = s.NutrientData().Upsert(ctx, row)
	var cv *domain.ConstraintViolationError
	require.ErrorAs(t, err, &cv)
	assert.Contains(t, err.Error(), "01001 - 255", "the message names the pair, not the unset id")

	err = s.NutrientData().UpsertMany(ctx, []domain.NutrientData{
		{FoodID: "01001", NutrientID: "208", DataType: "1"},
		row,
	})
	require.ErrorAs(t, err, &cv)
	assert.Contains(t, err.Error(), "row 1 (01001 - 255)")
	n, err := s.NutrientData().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "the failed batch left no rows")

	byPair, err := s.NutrientData().GetByFoodNutrient(ctx, "01001", "255")
	require.NoError(t, err)
	assert.Equal(t, first.ID, byPair.ID)

	// Updating through the surrogate id is allowed.
	first.Ounce = dec("16.1")
	updated, err := s.NutrientData().Upsert(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.True(t, dec("16.1").Equal(updated.Ounce))
}

func TestForeignKeysAreEnforced(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	orphan := butter()
	orphan.ID = "99999"
	orphan.FoodGroupID = "9900"
	_, err := s.Foods().Upsert(ctx, orphan)
	var fk *domain.ForeignKeyViolationError
	require.ErrorAs(t, err, &fk)

	_, err = s.NutrientData().Upsert(ctx, domain.NutrientData{FoodID: "01001", NutrientID: "999", DataType: "1"})
	require.ErrorAs(t, err, &fk)

	_, err = s.Footnotes().Upsert(ctx, domain.Footnote{FoodID: "01001", Sequence: "01", Type: domain.FootnoteNutrient, NutrientID: ptr(domain.NutrientID("999")), Text: "x"})
	require.ErrorAs(t, err, &fk)
}

func TestDeleteCascadesToDependents(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	_, err := s.NutrientData().Upsert(ctx, domain.NutrientData{FoodID: "01001", NutrientID: "255", Ounce: dec("15.87"), DataType: "1"})
	require.NoError(t, err)
	_, err = s.Weights().Upsert(ctx, domain.Weight{FoodID: "01001", Sequence: "1", Amount: dec("1"), Name: "pat (1\" sq, 1/3\" high)", Grams: dec("5.0")})
	require.NoError(t, err)
	require.NoError(t, s.Tags().AddTags(ctx, "01001", "keto"))

	require.NoError(t, s.FoodGroups().Delete(ctx, dairy.ID))

	_, err = s.Foods().Get(ctx, "01001")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	for name, count := range map[string]func() (int64, error){
		"nutrient_data": func() (int64, error) { return s.NutrientData().Count(ctx, domain.Query{}) },
		"weight":        func() (int64, error) { return s.Weights().Count(ctx, domain.Query{}) },
	} {
		n, err := count()
		require.NoError(t, err, name)
		assert.Zero(t, n, name)
	}
	tags, err := s.Tags().FoodsTagged(ctx, "keto")
	require.NoError(t, err)
	assert.Empty(t, tags)

	// Nutrients are not dependents of foods.
	n, err := s.Nutrients().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestMissingRowsReportNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var nf *domain.NotFoundError
	_, err := s.Foods().Get(ctx, "00000")
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, err.Error(), "00000")

	require.ErrorAs(t, s.Nutrients().Delete(ctx, "000"), &nf)

	_, err = s.Weights().GetByFoodSequence(ctx, "01001", "1")
	require.ErrorAs(t, err, &nf)
}

func TestValidationRunsBeforeWrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	_, err := s.Footnotes().Upsert(ctx, domain.Footnote{FoodID: "01001", Sequence: "01", Type: "X", Text: "bad type"})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "type", ve.Field)

	tooWide := butter()
	tooWide.ID = "010011"
	_, err = s.Foods().Upsert(ctx, tooWide)
	require.ErrorAs(t, err, &ve)

	n, err := s.Footnotes().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpsertManyIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	err := s.Weights().UpsertMany(ctx, []domain.Weight{
		{FoodID: "01001", Sequence: "1", Amount: dec("1"), Name: "pat", Grams: dec("5")},
		{FoodID: "77777", Sequence: "1", Amount: dec("1"), Name: "cup", Grams: dec("227")},
	})
	var fk *domain.ForeignKeyViolationError
	require.ErrorAs(t, err, &fk)

	n, err := s.Weights().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Zero(t, n, "failed batch must not leave rows behind")

	err = s.FoodGroups().UpsertMany(ctx, []domain.FoodGroup{spices, {ID: "0300", Name: "Baby Foods"}})
	require.NoError(t, err)
	n, err = s.FoodGroups().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	err := s.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.Foods().Upsert(ctx, cheese()); err != nil {
			return err
		}
		_, err := tx.NutrientData().Upsert(ctx, domain.NutrientData{FoodID: "01009", NutrientID: "404", DataType: "1"})
		return err
	})
	require.Error(t, err)

	_, err = s.Foods().Get(ctx, "01009")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)

	require.NoError(t, s.Transaction(ctx, func(tx *Store) error {
		_, err := tx.Foods().Upsert(ctx, cheese())
		return err
	}))
	_, err = s.Foods().Get(ctx, "01009")
	require.NoError(t, err)
}

func TestListOrderingAndFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)
	_, err := s.Foods().Upsert(ctx, cheese())
	require.NoError(t, err)

	nutrients := collect(t, s.Nutrients().List(ctx, domain.Query{}))
	require.Len(t, nutrients, 2)
	assert.Equal(t, "Energy", nutrients[0].Name, "nutrients order by name")
	assert.Equal(t, "Water", nutrients[1].Name)

	foods := collect(t, s.Foods().List(ctx, domain.Query{}))
	require.Len(t, foods, 2)
	assert.Equal(t, domain.FoodID("01001"), foods[0].ID, "foods keep insertion order")
	assert.Nil(t, foods[0].FoodGroup, "list does not resolve the group")

	desc := collect(t, s.Foods().List(ctx, domain.Query{OrderBy: []domain.Order{{Field: "calories", Desc: true}}}))
	assert.Equal(t, domain.FoodID("01001"), desc[0].ID)

	rich := collect(t, s.Foods().List(ctx, domain.Filter(domain.Gt("calories", dec("500")))))
	require.Len(t, rich, 1)
	assert.Equal(t, domain.FoodID("01001"), rich[0].ID)

	paged := collect(t, s.Foods().List(ctx, domain.Query{Limit: 1, Offset: 1}))
	require.Len(t, paged, 1)
	assert.Equal(t, domain.FoodID("01009"), paged[0].ID)

	n, err := s.Foods().Count(ctx, domain.Filter(domain.Eq("food_group", "0100")))
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = s.Foods().Count(ctx, domain.Filter(domain.Eq("no_such_field", 1)))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, err := range s.Foods().List(ctx, domain.Query{OrderBy: []domain.Order{{Field: "nope"}}}) {
		require.ErrorAs(t, err, &ve)
	}
}

func TestListIsLazyAndRestartable(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	seq := s.Foods().List(ctx, domain.Query{})
	assert.Len(t, collect(t, seq), 1)

	_, err := s.Foods().Upsert(ctx, cheese())
	require.NoError(t, err)
	assert.Len(t, collect(t, seq), 2, "ranging again re-runs the query")

	seen := 0
	for _, err := range seq {
		require.NoError(t, err)
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestWeightsAndFootnotes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	w, err := s.Weights().Upsert(ctx, domain.Weight{
		FoodID: "01001", Sequence: "2", Amount: dec("1"), Name: "tbsp", Grams: dec("14.2"),
		DataPoints: ptr(3), StandardDerivation: ptr(dec("0.125")),
	})
	require.NoError(t, err)
	require.NotNil(t, w.StandardDerivation)
	assert.True(t, dec("0.125").Equal(*w.StandardDerivation))
	assert.Equal(t, ptr(3), w.DataPoints)

	bare, err := s.Weights().Upsert(ctx, domain.Weight{FoodID: "01001", Sequence: "1", Amount: dec("1"), Name: "cup", Grams: dec("227")})
	require.NoError(t, err)
	assert.Nil(t, bare.StandardDerivation)
	assert.Nil(t, bare.DataPoints)

	bySeq, err := s.Weights().GetByFoodSequence(ctx, "01001", "1")
	require.NoError(t, err)
	assert.Equal(t, bare.ID, bySeq.ID)

	weights := collect(t, s.Weights().List(ctx, domain.Filter(domain.Eq("food", "01001"))))
	require.Len(t, weights, 2)
	assert.Equal(t, "tbsp", weights[0].Name, "weights keep insertion order")

	notes := []domain.Footnote{
		{FoodID: "01001", Sequence: "01", Type: domain.FootnoteNutrient, NutrientID: ptr(domain.NutrientID("255")), Text: "Value from manufacturer"},
		{FoodID: "01001", Sequence: "01", Type: domain.FootnoteNutrient, NutrientID: ptr(domain.NutrientID("208")), Text: "Value from manufacturer"},
		{FoodID: "01001", Sequence: "02", Type: domain.FootnoteDescription, Text: "Salted"},
	}
	require.NoError(t, s.Footnotes().UpsertMany(ctx, notes))
	got := collect(t, s.Footnotes().List(ctx, domain.Query{}))
	require.Len(t, got, 3, "footnote numbers may repeat")
	assert.Nil(t, got[2].NutrientID)
	require.NotNil(t, got[1].NutrientID)
	assert.Equal(t, domain.NutrientID("208"), *got[1].NutrientID)
}

func TestLinksAndDataSources(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	_, err := s.DataSources().Upsert(ctx, domain.DataSource{
		ID: "D1066", Authors: ptr("J. Smith"), Name: ptr("Dairy composition"), Year: ptr(1999),
		StartPage: ptr(10), EndPage: ptr(20),
	})
	require.NoError(t, err)
	_, err = s.LanguaLFactors().Upsert(ctx, domain.LanguaLFactor{ID: "A0143", Name: "Butter"})
	require.NoError(t, err)
	_, err = s.Derivations().Upsert(ctx, domain.Derivation{ID: "A", Name: "Analytical data"})
	require.NoError(t, err)

	link, err := s.DataLinks().Upsert(ctx, domain.DataLink{FoodID: "01001", NutrientID: "255", DataSourceID: "D1066"})
	require.NoError(t, err)
	found, err := s.DataLinks().GetByFoodNutrientSource(ctx, "01001", "255", "D1066")
	require.NoError(t, err)
	assert.Equal(t, link, found)

	factor, err := s.FoodLanguaLFactors().Upsert(ctx, domain.FoodLanguaLFactor{FoodID: "01001", LanguaLFactorID: "A0143"})
	require.NoError(t, err)
	got, err := s.FoodLanguaLFactors().GetByFoodFactor(ctx, "01001", "A0143")
	require.NoError(t, err)
	assert.Equal(t, factor, got)

	_, err = s.FoodLanguaLFactors().Upsert(ctx, domain.FoodLanguaLFactor{FoodID: "01001", LanguaLFactorID: "A0143"})
	var cv *domain.ConstraintViolationError
	require.ErrorAs(t, err, &cv)

	require.NoError(t, s.DataSources().Delete(ctx, "D1066"))
	n, err := s.DataLinks().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTombstonesAreAppendOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Tombstones reference retired records, so no parent rows are needed.
	_, err := s.DeletedFoods().Insert(ctx, domain.DeletedFood{FoodID: "04000", Name: "OIL,SOYBEAN"})
	require.NoError(t, err)
	_, err = s.DeletedFoods().Insert(ctx, domain.DeletedFood{FoodID: "04000", Name: "OIL,SOYBEAN"})
	var cv *domain.ConstraintViolationError
	require.ErrorAs(t, err, &cv)

	require.NoError(t, s.DeletedNutrients().InsertMany(ctx, []domain.DeletedNutrient{
		{FoodID: "01001", NutrientID: "606"},
		{FoodID: "01001", NutrientID: "205"},
		{FoodID: "01002", NutrientID: "205"},
	}))
	got, err := s.DeletedNutrients().Get(ctx, domain.DeletedNutrientKey{FoodID: "01001", NutrientID: "205"})
	require.NoError(t, err)
	assert.Equal(t, domain.NutrientID("205"), got.NutrientID)

	list := collect(t, s.DeletedNutrients().List(ctx, domain.Filter(domain.Eq("food_id", "01001"))))
	require.Len(t, list, 2)
	assert.Equal(t, domain.NutrientID("205"), list[0].NutrientID, "ordered by nutrient id")

	_, err = s.DeletedFootnotes().Insert(ctx, domain.DeletedFootnote{FoodID: "01001", Sequence: "01", Type: domain.FootnoteMeasure})
	require.NoError(t, err)
	_, err = s.DeletedFootnotes().Insert(ctx, domain.DeletedFootnote{FoodID: "01001", Sequence: "01", Type: domain.FootnoteNutrient})
	require.NoError(t, err, "same number with another type is a different tombstone")

	var nf *domain.NotFoundError
	_, err = s.DeletedFootnotes().Get(ctx, domain.DeletedFootnoteKey{FoodID: "01001", Sequence: "01", Type: domain.FootnoteDescription})
	require.ErrorAs(t, err, &nf)
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)
	_, err := s.Foods().Upsert(ctx, cheese())
	require.NoError(t, err)
	tags := s.Tags()

	require.NoError(t, tags.AddTags(ctx, "01001", " keto ", "dairy", "keto"))
	require.NoError(t, tags.AddTags(ctx, "01001", "dairy"))
	got, err := tags.Tags(ctx, "01001")
	require.NoError(t, err)
	assert.Equal(t, []string{"dairy", "keto"}, got)

	require.NoError(t, tags.SetTags(ctx, "01009", []string{"dairy", "aged"}))
	foods, err := tags.FoodsTagged(ctx, "dairy")
	require.NoError(t, err)
	assert.Equal(t, []domain.FoodID{"01001", "01009"}, foods)

	require.NoError(t, tags.RemoveTags(ctx, "01001", "dairy"))
	foods, err = tags.FoodsTagged(ctx, "dairy")
	require.NoError(t, err)
	assert.Equal(t, []domain.FoodID{"01009"}, foods)

	require.NoError(t, tags.SetTags(ctx, "01009", nil))
	got, err = tags.Tags(ctx, "01009")
	require.NoError(t, err)
	assert.Empty(t, got)

	var fk *domain.ForeignKeyViolationError
	require.ErrorAs(t, tags.AddTags(ctx, "55555", "ghost"), &fk)
	require.ErrorAs(t, tags.AddTags(ctx, "55555"), &fk)
	require.ErrorAs(t, tags.SetTags(ctx, "55555", nil), &fk)
	require.ErrorAs(t, tags.SetTags(ctx, "55555", []string{"ghost"}), &fk)
	require.NoError(t, tags.AddTags(ctx, "01001"), "no labels on a known food is a no-op")

	var ve *domain.ValidationError
	require.ErrorAs(t, tags.AddTags(ctx, "01001", "  "), &ve)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, RunMigrations(ctx, s.DB(), nil))
	version, err := SchemaVersion(ctx, s.DB())
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
}

func TestModelsMatchSchemaDescription(t *testing.T) {
	models := map[domain.EntityName]any{
		domain.EntityFood:              &FoodModel{},
		domain.EntityFoodGroup:         &FoodGroupModel{},
		domain.EntityFoodLanguaLFactor: &FoodLanguaLFactorModel{},
		domain.EntityLanguaLFactor:     &LanguaLFactorModel{},
		domain.EntityNutrientData:      &NutrientDataModel{},
		domain.EntityNutrient:          &NutrientModel{},
		domain.EntitySource:            &SourceModel{},
		domain.EntityDerivation:        &DerivationModel{},
		domain.EntityWeight:            &WeightModel{},
		domain.EntityFootnote:          &FootnoteModel{},
		domain.EntityDataLink:          &DataLinkModel{},
		domain.EntityDataSource:        &DataSourceModel{},
		domain.EntityDeletedFood:       &DeletedFoodModel{},
		domain.EntityDeletedNutrient:   &DeletedNutrientModel{},
		domain.EntityDeletedFootnote:   &DeletedFootnoteModel{},
		domain.EntityFoodTag:           &FoodTagModel{},
	}
	require.Len(t, models, len(domain.Entities()))

	cache := &sync.Map{}
	for _, e := range domain.Entities() {
		model, ok := models[e.Name]
		require.True(t, ok, "no model for %s", e.Name)

		parsed, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err, e.Name)
		assert.Equal(t, e.Table, parsed.Table, e.Name)

		want := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			want = append(want, f.Column)
		}
		assert.ElementsMatch(t, want, parsed.DBNames, e.Name)

		var pk []string
		for _, f := range parsed.PrimaryFields {
			pk = append(pk, f.DBName)
		}
		assert.Equal(t, columns(e, e.Key...), pk, e.Name)
	}
}

func TestDeleteFoodRemovesItsRows(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)
	_, err := s.Foods().Upsert(ctx, cheese())
	require.NoError(t, err)

	require.NoError(t, s.NutrientData().UpsertMany(ctx, []domain.NutrientData{
		{FoodID: "01001", NutrientID: "255", Ounce: dec("15.87"), DataType: "1"},
		{FoodID: "01009", NutrientID: "255", Ounce: dec("36.75"), DataType: "1"},
	}))
	_, err = s.Footnotes().Upsert(ctx, domain.Footnote{FoodID: "01001", Sequence: "01", Type: domain.FootnoteDescription, Text: "Salted"})
	require.NoError(t, err)
	_, err = s.LanguaLFactors().Upsert(ctx, domain.LanguaLFactor{ID: "A0143", Name: "Butter"})
	require.NoError(t, err)
	_, err = s.FoodLanguaLFactors().Upsert(ctx, domain.FoodLanguaLFactor{FoodID: "01001", LanguaLFactorID: "A0143"})
	require.NoError(t, err)
	require.NoError(t, s.Weights().UpsertMany(ctx, []domain.Weight{
		{FoodID: "01001", Sequence: "1", Amount: dec("1"), Name: "pat", Grams: dec("5")},
		{FoodID: "01009", Sequence: "1", Amount: dec("1"), Name: "cup, diced", Grams: dec("132")},
	}))

	require.NoError(t, s.Foods().Delete(ctx, "01001"))

	left := collect(t, s.NutrientData().List(ctx, domain.Query{}))
	require.Len(t, left, 1)
	assert.Equal(t, domain.FoodID("01009"), left[0].FoodID)

	n, err := s.Footnotes().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = s.FoodLanguaLFactors().Count(ctx, domain.Query{})
	require.NoError(t, err)
	assert.Zero(t, n, "langual factors of the food")

	weights := collect(t, s.Weights().List(ctx, domain.Query{}))
	require.Len(t, weights, 1)
	assert.Equal(t, domain.FoodID("01009"), weights[0].FoodID)

	_, err = s.LanguaLFactors().Get(ctx, "A0143")
	require.NoError(t, err, "the factor itself stays")

	_, err = s.FoodGroups().Get(ctx, dairy.ID)
	require.NoError(t, err, "the parent group stays")

	var nf *domain.NotFoundError
	require.ErrorAs(t, s.Foods().Delete(ctx, "01001"), &nf)
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// assertSameRow compares two entities field by field. Decimals compare by
// value, so 717 and 717.000 are the same.
func assertSameRow(t *testing.T, want, got any) {
	t.Helper()
	wv, gv := reflect.ValueOf(want), reflect.ValueOf(got)
	require.Equal(t, wv.Type(), gv.Type())
	for i := 0; i < wv.NumField(); i++ {
		name := wv.Type().Field(i).Name
		w, g := wv.Field(i), gv.Field(i)
		if w.Kind() == reflect.Pointer && w.Type().Elem() == decimalType {
			if w.IsNil() || g.IsNil() {
				assert.Equal(t, w.IsNil(), g.IsNil(), name)
				continue
			}
			w, g = w.Elem(), g.Elem()
		}
		if w.Type() == decimalType {
			wd, gd := w.Interface().(decimal.Decimal), g.Interface().(decimal.Decimal)
			assert.True(t, wd.Equal(gd), "%s: want %s, got %s", name, wd, gd)
			continue
		}
		assert.Equal(t, w.Interface(), g.Interface(), name)
	}
}

func TestRoundTripKeepsEveryField(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	food := domain.Food{
		ID:                     "01002",
		FoodGroupID:            dairy.ID,
		LongDescription:        "Butter, whipped, with salt",
		Calories:               dec("9999999999.999"),
		InsulinLoad:            dec("-1234567890.125"),
		Insulinogenic:          dec("0.001"),
		Ratio:                  dec("42.5"),
		EnergyDensity:          dec("9999.99"),
		NDWeight:               dec("-9999.99"),
		NDCalorie:              dec("12.34"),
		ILScore:                dec("0.01"),
		EDScore:                dec("7.17"),
		WildersFormula:         dec("3.5"),
		IngredientName:         ptr("whipped butter"),
		Slug:                   "butter-whipped-with-salt",
		Ketonumber:             dec("999.99"),
		ILOptimiserScore:       dec("1.25"),
		EDOptimiserScore:       dec("-2.75"),
		OptimiserName:          ptr("Butter (whipped)"),
		InsulinLoadOptimiser:   dec("123456789.012"),
		InsulinogenicOptimiser: ptr(0.3333),
		FoodGroup:              &dairy,
	}
	_, err := s.Foods().Upsert(ctx, food)
	require.NoError(t, err)
	gotFood, err := s.Foods().Get(ctx, food.ID)
	require.NoError(t, err)
	assertSameRow(t, food, gotFood)

	nutrient := domain.Nutrient{
		ID: "301", Units: "mg", Tagname: ptr("CA"), Name: "Calcium, Ca", Decimals: 0, Order: 5300,
		RDI: dec("9999999999.999"), RDIMale: dec("9999.999"), RDIFemale: dec("1000.5"),
		ONIMale: dec("0.001"), ONIFemale: dec("-9999.999"), RDIKg: dec("12.345"),
		RDI75: dec("750"), RDI100: dec("1000"), RDIPregnant: dec("1300.125"), RDIBreast: dec("1300.875"),
		Slug: "calcium",
	}
	_, err = s.Nutrients().Upsert(ctx, nutrient)
	require.NoError(t, err)
	gotNutrient, err := s.Nutrients().Get(ctx, nutrient.ID)
	require.NoError(t, err)
	assertSameRow(t, nutrient, gotNutrient)

	weight := domain.Weight{
		FoodID: food.ID, Sequence: "12345", Amount: dec("99999.999"), Name: "cup, whipped",
		Grams: dec("9999999.9"), DataPoints: ptr(17), StandardDerivation: ptr(dec("9999999.999")),
	}
	saved, err := s.Weights().Upsert(ctx, weight)
	require.NoError(t, err)
	weight.ID = saved.ID
	gotWeight, err := s.Weights().Get(ctx, saved.ID)
	require.NoError(t, err)
	assertSameRow(t, weight, gotWeight)

	source := domain.DataSource{
		ID: "S12345", Authors: ptr("Holden, J.M., Lemar, L.E."), Name: ptr("Butter composition survey"),
		Year: ptr(2004), Journal: ptr("J. Food Comp. Anal."), Volume: ptr("Beltsville"),
		IssueState: ptr("MD"), StartPage: ptr(101), EndPage: ptr(199),
	}
	_, err = s.DataSources().Upsert(ctx, source)
	require.NoError(t, err)
	gotSource, err := s.DataSources().Get(ctx, source.ID)
	require.NoError(t, err)
	assertSameRow(t, source, gotSource)
}

func TestDefaultOrderingByName(t *testing.T) {
	ctx := context.Background()

	// Each case writes rows out of order and lists them back.
	cases := map[string]struct {
		write func(*Store) error
		list  func(*testing.T, *Store) []string
		want  []string
	}{
		"food groups": {
			write: func(s *Store) error {
				return s.FoodGroups().UpsertMany(ctx, []domain.FoodGroup{{ID: "0300", Name: "Zeta"}, {ID: "0100", Name: "baby"}, {ID: "0200", Name: "Alpha"}})
			},
			list: func(t *testing.T, s *Store) []string { return names(t, s.FoodGroups().List(ctx, domain.Query{})) },
			want: []string{"Alpha", "Zeta", "baby"},
		},
		"langual factors": {
			write: func(s *Store) error {
				return s.LanguaLFactors().UpsertMany(ctx, []domain.LanguaLFactor{{ID: "A0001", Name: "Milk"}, {ID: "A0002", Name: "Butter"}, {ID: "A0003", Name: "Cheese"}})
			},
			list: func(t *testing.T, s *Store) []string { return names(t, s.LanguaLFactors().List(ctx, domain.Query{})) },
			want: []string{"Butter", "Cheese", "Milk"},
		},
		"sources": {
			write: func(s *Store) error {
				return s.Sources().UpsertMany(ctx, []domain.Source{{ID: "1", Name: "Imputed"}, {ID: "4", Name: "Calculated"}, {ID: "7", Name: "Assumed zero"}})
			},
			list: func(t *testing.T, s *Store) []string { return names(t, s.Sources().List(ctx, domain.Query{})) },
			want: []string{"Assumed zero", "Calculated", "Imputed"},
		},
		"derivations": {
			write: func(s *Store) error {
				return s.Derivations().UpsertMany(ctx, []domain.Derivation{{ID: "NR", Name: "Nutrient retention"}, {ID: "A", Name: "Analytical data"}, {ID: "BFZN", Name: "Based on fortified"}})
			},
			list: func(t *testing.T, s *Store) []string { return names(t, s.Derivations().List(ctx, domain.Query{})) },
			want: []string{"Analytical data", "Based on fortified", "Nutrient retention"},
		},
		"data sources": {
			write: func(s *Store) error {
				return s.DataSources().UpsertMany(ctx, []domain.DataSource{{ID: "D2", Name: ptr("b")}, {ID: "D1", Name: ptr("a")}, {ID: "D3"}})
			},
			list: func(t *testing.T, s *Store) []string { return names(t, s.DataSources().List(ctx, domain.Query{})) },
			want: []string{"D3", "a", "b"},
		},
		"deleted foods": {
			write: func(s *Store) error {
				return s.DeletedFoods().InsertMany(ctx, []domain.DeletedFood{{FoodID: "04002", Name: "OIL,PEANUT"}, {FoodID: "04000", Name: "LARD"}, {FoodID: "04001", Name: "OIL,CORN"}})
			},
			list: func(t *testing.T, s *Store) []string { return names(t, s.DeletedFoods().List(ctx, domain.Query{})) },
			want: []string{"LARD", "OIL,CORN", "OIL,PEANUT"},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, tc.write(s))
			assert.Equal(t, tc.want, tc.list(t, s))
		})
	}
}

func names[T fmt.Stringer](t *testing.T, seq iter.Seq2[T, error]) []string {
	t.Helper()
	var out []string
	for _, v := range collect(t, seq) {
		out = append(out, v.String())
	}
	return out
}

func TestGooseFatalDoesNotExit(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := gooseLogger{log: zap.New(core).Sugar()}

	l.Printf("applied %d migrations\n", 2)
	l.Fatalf("migration %s failed\n", "00003")

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "applied 2 migrations", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "migration 00003 failed", entries[1].Message)
}
