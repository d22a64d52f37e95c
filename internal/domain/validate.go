package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// checker collects field violations against the schema description of one entity.
type checker struct {
	entity Entity
	errs   []error
}

func newChecker(name EntityName) *checker {
	return &checker{entity: mustDescribe(name)}
}

func (c *checker) field(name string) Field {
	f, ok := c.entity.Field(name)
	if !ok {
		panic("domain: " + string(c.entity.Name) + " has no field " + name)
	}
	return f
}

func (c *checker) fail(name, format string, args ...any) {
	c.errs = append(c.errs, ErrFieldValidation(c.entity.Name, name, format, args...))
}

// str checks a required string: codes, references and text columns.
func (c *checker) str(name, value string) {
	f := c.field(name)
	if strings.TrimSpace(value) == "" {
		if !f.Blank {
			c.fail(name, "must not be empty")
		}
		return
	}
	if f.MaxLength > 0 && utf8.RuneCountInString(value) > f.MaxLength {
		c.fail(name, "%q exceeds %d characters", value, f.MaxLength)
	}
}

func (c *checker) optStr(name string, value *string) {
	if value == nil {
		if !c.field(name).Nullable {
			c.fail(name, "must not be null")
		}
		return
	}
	f := c.field(name)
	if f.MaxLength > 0 && utf8.RuneCountInString(*value) > f.MaxLength {
		c.fail(name, "%q exceeds %d characters", *value, f.MaxLength)
	}
}

func (c *checker) choice(name, value string) {
	f := c.field(name)
	for _, ch := range f.Choices {
		if ch.Value == value {
			return
		}
	}
	c.fail(name, "%q is not a valid choice", value)
}

// dec enforces max_digits / decimal_places the way a NUMERIC(p,s) column would.
func (c *checker) dec(name string, value decimal.Decimal) {
	f := c.field(name)
	if !value.Equal(value.Truncate(int32(f.DecimalPlaces))) {
		c.fail(name, "%s has more than %d decimal places", value, f.DecimalPlaces)
		return
	}
	whole := value.Abs().Truncate(0).String()
	digits := len(whole)
	if whole == "0" {
		digits = 0
	}
	if digits > f.MaxDigits-f.DecimalPlaces {
		c.fail(name, "%s has more than %d digits before the decimal point", value, f.MaxDigits-f.DecimalPlaces)
	}
}

func (c *checker) optDec(name string, value *decimal.Decimal) {
	if value == nil {
		if !c.field(name).Nullable {
			c.fail(name, "must not be null")
		}
		return
	}
	c.dec(name, *value)
}

func (c *checker) nonNegative(name string, value int) {
	if value < 0 {
		c.fail(name, "must be >= 0, got %d", value)
	}
}

func (c *checker) optNonNegative(name string, value *int) {
	if value != nil {
		c.nonNegative(name, *value)
	}
}

func (c *checker) err() error {
	return errors.Join(c.errs...)
}

func (g FoodGroup) Validate() error {
	c := newChecker(EntityFoodGroup)
	c.str("id", string(g.ID))
	c.str("name", g.Name)
	return c.err()
}

func (f Food) Validate() error {
	c := newChecker(EntityFood)
	c.str("id", string(f.ID))
	c.str("food_group", string(f.FoodGroupID))
	c.str("long_description", f.LongDescription)
	c.dec("calories", f.Calories)
	c.dec("insulin_load", f.InsulinLoad)
	c.dec("insulinogenic", f.Insulinogenic)
	c.dec("ratio", f.Ratio)
	c.dec("energy_density", f.EnergyDensity)
	c.dec("nd_weight", f.NDWeight)
	c.dec("nd_calorie", f.NDCalorie)
	c.dec("il_score", f.ILScore)
	c.dec("ed_score", f.EDScore)
	c.dec("wilders_formula", f.WildersFormula)
	c.optStr("ingredient_name", f.IngredientName)
	c.str("slug", f.Slug)
	c.dec("ketonumber", f.Ketonumber)
	c.dec("il_optimiser_score", f.ILOptimiserScore)
	c.dec("ed_optimiser_score", f.EDOptimiserScore)
	c.optStr("optimiser_name", f.OptimiserName)
	c.dec("insulin_load_optimiser", f.InsulinLoadOptimiser)
	return c.err()
}

func (l FoodLanguaLFactor) Validate() error {
	c := newChecker(EntityFoodLanguaLFactor)
	c.str("food", string(l.FoodID))
	c.str("langual_factor", string(l.LanguaLFactorID))
	return c.err()
}

func (l LanguaLFactor) Validate() error {
	c := newChecker(EntityLanguaLFactor)
	c.str("id", string(l.ID))
	c.str("name", l.Name)
	return c.err()
}

func (d NutrientData) Validate() error {
	c := newChecker(EntityNutrientData)
	c.str("food", string(d.FoodID))
	c.str("nutrient", string(d.NutrientID))
	c.dec("raw_nd_calorie", d.RawNDCalorie)
	c.dec("adjusted_nd_calorie", d.AdjustedNDCalorie)
	c.dec("optimiser_nd_calorie", d.OptimiserNDCalorie)
	c.dec("raw_nd_weight", d.RawNDWeight)
	c.dec("adjusted_nd_weight", d.AdjustedNDWeight)
	c.dec("ounce", d.Ounce)
	c.str("data_type", string(d.DataType))
	return c.err()
}

func (n Nutrient) Validate() error {
	c := newChecker(EntityNutrient)
	c.str("id", string(n.ID))
	c.str("units", n.Units)
	c.optStr("tagname", n.Tagname)
	c.str("name", n.Name)
	c.nonNegative("decimals", n.Decimals)
	c.dec("rdi", n.RDI)
	c.dec("rdi_male", n.RDIMale)
	c.dec("rdi_female", n.RDIFemale)
	c.dec("oni_male", n.ONIMale)
	c.dec("oni_female", n.ONIFemale)
	c.dec("rdi_kg", n.RDIKg)
	c.dec("rdi_75", n.RDI75)
	c.dec("rdi_100", n.RDI100)
	c.dec("rdi_pregnant", n.RDIPregnant)
	c.dec("rdi_breast", n.RDIBreast)
	c.str("slug", n.Slug)
	return c.err()
}

func (s Source) Validate() error {
	c := newChecker(EntitySource)
	c.str("id", string(s.ID))
	c.str("name", s.Name)
	return c.err()
}

func (d Derivation) Validate() error {
	c := newChecker(EntityDerivation)
	c.str("id", string(d.ID))
	c.str("name", d.Name)
	return c.err()
}

func (w Weight) Validate() error {
	c := newChecker(EntityWeight)
	c.str("food", string(w.FoodID))
	c.str("sequence", w.Sequence)
	c.dec("amount", w.Amount)
	c.str("name", w.Name)
	c.dec("grams", w.Grams)
	c.optNonNegative("data_points", w.DataPoints)
	c.optDec("standard_derivation", w.StandardDerivation)
	return c.err()
}

func (f Footnote) Validate() error {
	c := newChecker(EntityFootnote)
	c.str("food", string(f.FoodID))
	c.str("sequence", f.Sequence)
	c.choice("type", string(f.Type))
	if f.NutrientID != nil {
		c.str("nutrient", string(*f.NutrientID))
	}
	c.str("text", f.Text)
	return c.err()
}

func (l DataLink) Validate() error {
	c := newChecker(EntityDataLink)
	c.str("food", string(l.FoodID))
	c.str("nutrient", string(l.NutrientID))
	c.str("data_source", string(l.DataSourceID))
	return c.err()
}

func (s DataSource) Validate() error {
	c := newChecker(EntityDataSource)
	c.str("id", string(s.ID))
	c.optStr("authors", s.Authors)
	c.optStr("name", s.Name)
	c.optNonNegative("year", s.Year)
	c.optStr("journal", s.Journal)
	c.optStr("volume", s.Volume)
	c.optStr("issue_state", s.IssueState)
	c.optNonNegative("start_page", s.StartPage)
	c.optNonNegative("end_page", s.EndPage)
	if s.StartPage != nil && s.EndPage != nil && *s.StartPage > *s.EndPage {
		c.fail("end_page", "end page %d precedes start page %d", *s.EndPage, *s.StartPage)
	}
	return c.err()
}

func (d DeletedFood) Validate() error {
	c := newChecker(EntityDeletedFood)
	c.str("food_id", string(d.FoodID))
	c.str("name", d.Name)
	return c.err()
}

func (d DeletedNutrient) Validate() error {
	c := newChecker(EntityDeletedNutrient)
	c.str("food_id", string(d.FoodID))
	c.str("nutrient_id", string(d.NutrientID))
	return c.err()
}

func (d DeletedFootnote) Validate() error {
	c := newChecker(EntityDeletedFootnote)
	c.str("food_id", string(d.FoodID))
	c.str("sequence", d.Sequence)
	c.choice("type", string(d.Type))
	return c.err()
}

// NormalizeTags trims labels, drops duplicates and rejects empty or oversized ones.
func NormalizeTags(labels []string) ([]string, error) {
	c := newChecker(EntityFoodTag)
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		c.str("tag", label)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	if err := c.err(); err != nil {
		return nil, err
	}
	return out, nil
}
