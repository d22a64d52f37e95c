package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fixed-width USDA codes. They are strings so leading zeros survive.
type (
	FoodID          string
	FoodGroupID     string
	NutrientID      string
	SourceID        string
	DerivationID    string
	DataSourceID    string
	LanguaLFactorID string
)

// FootnoteType classifies what a footnote annotates.
type FootnoteType string

const (
	FootnoteDescription FootnoteType = "D"
	FootnoteMeasure     FootnoteType = "M"
	FootnoteNutrient    FootnoteType = "N"
)

// Table 5 - Food Group Description File.
type FoodGroup struct {
	ID   FoodGroupID
	Name string
}

func (g FoodGroup) String() string { return g.Name }

// Table 4 - Food Description File.
//
// The scoring columns are imported as-is; nothing in this module derives them.
type Food struct {
	ID                     FoodID
	FoodGroupID            FoodGroupID
	LongDescription        string
	Calories               decimal.Decimal
	InsulinLoad            decimal.Decimal
	Insulinogenic          decimal.Decimal
	Ratio                  decimal.Decimal
	EnergyDensity          decimal.Decimal
	NDWeight               decimal.Decimal
	NDCalorie              decimal.Decimal
	ILScore                decimal.Decimal
	EDScore                decimal.Decimal
	WildersFormula         decimal.Decimal
	IngredientName         *string
	Slug                   string
	Ketonumber             decimal.Decimal
	ILOptimiserScore       decimal.Decimal
	EDOptimiserScore       decimal.Decimal
	OptimiserName          *string
	InsulinLoadOptimiser   decimal.Decimal
	InsulinogenicOptimiser *float64

	// FoodGroup is resolved by Get; List leaves it nil.
	FoodGroup *FoodGroup
}

func (f Food) String() string { return f.LongDescription }

// Path is the public page of the food.
func (f Food) Path() string { return "/foods/micronutrients-for-" + f.Slug }

// Table 6 - LanguaL Factor File.
type FoodLanguaLFactor struct {
	ID              int64
	FoodID          FoodID
	LanguaLFactorID LanguaLFactorID
}

func (l FoodLanguaLFactor) String() string {
	return fmt.Sprintf("%s - %s", l.FoodID, l.LanguaLFactorID)
}

// Table 7 - LanguaL Factor Description File.
type LanguaLFactor struct {
	ID   LanguaLFactorID
	Name string
}

func (l LanguaLFactor) String() string { return l.Name }

// Table 8 - Nutrient Data File.
type NutrientData struct {
	ID                 int64
	FoodID             FoodID
	NutrientID         NutrientID
	RawNDCalorie       decimal.Decimal
	AdjustedNDCalorie  decimal.Decimal
	OptimiserNDCalorie decimal.Decimal
	RawNDWeight        decimal.Decimal
	AdjustedNDWeight   decimal.Decimal
	Ounce              decimal.Decimal
	DataType           SourceID
}

func (d NutrientData) String() string {
	return fmt.Sprintf("%s - %s", d.FoodID, d.NutrientID)
}

// Table 9 - Nutrient Definition File.
type Nutrient struct {
	ID          NutrientID
	Units       string
	Tagname     *string
	Name        string
	Decimals    int
	Order       int
	RDI         decimal.Decimal
	RDIMale     decimal.Decimal
	RDIFemale   decimal.Decimal
	ONIMale     decimal.Decimal
	ONIFemale   decimal.Decimal
	RDIKg       decimal.Decimal
	RDI75       decimal.Decimal
	RDI100      decimal.Decimal
	RDIPregnant decimal.Decimal
	RDIBreast   decimal.Decimal
	Slug        string
}

func (n Nutrient) String() string { return n.Name }

// Path is the public ranking page of the nutrient.
func (n Nutrient) Path() string { return "/top-100-foods-and-recipes-high-in-" + n.Slug }

// Table 10 - Source Code File.
type Source struct {
	ID   SourceID
	Name string
}

func (s Source) String() string { return s.Name }

// Table 11 - Derivation Code File.
type Derivation struct {
	ID   DerivationID
	Name string
}

func (d Derivation) String() string { return d.Name }

// Table 12 - Weight File.
type Weight struct {
	ID                 int64
	FoodID             FoodID
	Sequence           string
	Amount             decimal.Decimal
	Name               string
	Grams              decimal.Decimal
	DataPoints         *int
	StandardDerivation *decimal.Decimal
}

func (w Weight) String() string { return w.Name }

// Table 13 - Footnote File.
//
// A footnote of type N should name the nutrient it applies to. That is
// documented by the USDA but not enforced here.
type Footnote struct {
	ID         int64
	FoodID     FoodID
	Sequence   string
	Type       FootnoteType
	NutrientID *NutrientID
	Text       string
}

func (f Footnote) String() string { return f.Text }

// Table 14 - Sources of Data Link File.
type DataLink struct {
	ID           int64
	FoodID       FoodID
	NutrientID   NutrientID
	DataSourceID DataSourceID
}

func (l DataLink) String() string {
	return fmt.Sprintf("%s - %s - %s", l.FoodID, l.NutrientID, l.DataSourceID)
}

// Table 15 - Sources of Data File.
type DataSource struct {
	ID         DataSourceID
	Authors    *string
	Name       *string
	Year       *int
	Journal    *string
	Volume     *string
	IssueState *string
	StartPage  *int
	EndPage    *int
}

func (s DataSource) String() string {
	if s.Name == nil {
		return string(s.ID)
	}
	return *s.Name
}

// Table 17 - Foods Deleted.
type DeletedFood struct {
	FoodID FoodID
	Name   string
}

func (d DeletedFood) String() string { return d.Name }

// DeletedNutrientKey identifies a Table 18 tombstone.
type DeletedNutrientKey struct {
	FoodID     FoodID
	NutrientID NutrientID
}

// Table 18 - Nutrients Deleted.
type DeletedNutrient struct {
	FoodID     FoodID
	NutrientID NutrientID
}

func (d DeletedNutrient) Key() DeletedNutrientKey {
	return DeletedNutrientKey{FoodID: d.FoodID, NutrientID: d.NutrientID}
}

func (d DeletedNutrient) String() string { return string(d.NutrientID) }

// DeletedFootnoteKey identifies a Table 19 tombstone.
type DeletedFootnoteKey struct {
	FoodID   FoodID
	Sequence string
	Type     FootnoteType
}

// Table 19 - Footnotes Deleted.
type DeletedFootnote struct {
	FoodID   FoodID
	Sequence string
	Type     FootnoteType
}

func (d DeletedFootnote) Key() DeletedFootnoteKey {
	return DeletedFootnoteKey{FoodID: d.FoodID, Sequence: d.Sequence, Type: d.Type}
}

func (d DeletedFootnote) String() string {
	return fmt.Sprintf("%s - %s", d.FoodID, d.Sequence)
}
