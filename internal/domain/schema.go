package domain

// EntityName identifies an entity in the schema description.
type EntityName string

const (
	EntityFood              EntityName = "food"
	EntityFoodGroup         EntityName = "food_group"
	EntityFoodLanguaLFactor EntityName = "food_langual_factor"
	EntityLanguaLFactor     EntityName = "langual_factor"
	EntityNutrientData      EntityName = "nutrient_data"
	EntityNutrient          EntityName = "nutrient"
	EntitySource            EntityName = "source"
	EntityDerivation        EntityName = "derivation"
	EntityWeight            EntityName = "weight"
	EntityFootnote          EntityName = "footnote"
	EntityDataLink          EntityName = "data_link"
	EntityDataSource        EntityName = "data_source"
	EntityDeletedFood       EntityName = "deleted_food"
	EntityDeletedNutrient   EntityName = "deleted_nutrient"
	EntityDeletedFootnote   EntityName = "deleted_footnote"
	EntityFoodTag           EntityName = "food_tag"
)

// FieldKind is the storage shape of a field.
type FieldKind string

const (
	KindCode      FieldKind = "code"
	KindText      FieldKind = "text"
	KindDecimal   FieldKind = "decimal"
	KindInteger   FieldKind = "integer"
	KindFloat     FieldKind = "float"
	KindChoice    FieldKind = "choice"
	KindReference FieldKind = "reference"
	KindSerial    FieldKind = "serial"
)

// Choice is one allowed value of a choice field.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Field describes one persisted attribute: its column, display metadata
// and the constraints enforced by Validate.
type Field struct {
	Name          string     `json:"name" yaml:"name"`
	Column        string     `json:"column" yaml:"column"`
	Label         string     `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText      string     `json:"help_text,omitempty" yaml:"help_text,omitempty"`
	Kind          FieldKind  `json:"kind" yaml:"kind"`
	MaxLength     int        `json:"max_length,omitempty" yaml:"max_length,omitempty"`
	MaxDigits     int        `json:"max_digits,omitempty" yaml:"max_digits,omitempty"`
	DecimalPlaces int        `json:"decimal_places,omitempty" yaml:"decimal_places,omitempty"`
	PrimaryKey    bool       `json:"primary_key,omitempty" yaml:"primary_key,omitempty"`
	Nullable      bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Blank         bool       `json:"blank,omitempty" yaml:"blank,omitempty"`
	References    EntityName `json:"references,omitempty" yaml:"references,omitempty"`
	Choices       []Choice   `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// Entity describes one table.
type Entity struct {
	Name              EntityName `json:"name" yaml:"name"`
	Table             string     `json:"table" yaml:"table"`
	Source            string     `json:"source,omitempty" yaml:"source,omitempty"`
	VerboseName       string     `json:"verbose_name" yaml:"verbose_name"`
	VerboseNamePlural string     `json:"verbose_name_plural" yaml:"verbose_name_plural"`
	Key               []string   `json:"key" yaml:"key"`
	Unique            [][]string `json:"unique,omitempty" yaml:"unique,omitempty"`
	Ordering          []string   `json:"ordering,omitempty" yaml:"ordering,omitempty"`
	Fields            []Field    `json:"fields" yaml:"fields"`
}

// Field returns the field with the given name.
func (e Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FootnoteChoices are the allowed Footnt_Typ values.
var FootnoteChoices = []Choice{
	{Value: string(FootnoteDescription), Label: "Footnote adding information to the food description"},
	{Value: string(FootnoteMeasure), Label: "Footnote adding information to measure description"},
	{Value: string(FootnoteNutrient), Label: "Footnote providing additional information on a nutrient value"},
}

const (
	helpNDBNo    = "5-digit Nutrient Databank number that uniquely identifies a food item. If this field is defined as numeric, the leading zero will be lost."
	helpNDBShort = "5-digit Nutrient Databank number."
	helpNutrNo   = "Unique 3-digit identifier code for a nutrient."
)

func serial() Field {
	return Field{Name: "id", Column: "id", Kind: KindSerial, PrimaryKey: true}
}

func dec(name string, digits, places int) Field {
	return Field{Name: name, Column: name, Kind: KindDecimal, MaxDigits: digits, DecimalPlaces: places}
}

var schema = []Entity{
	{
		Name:              EntityFood,
		Table:             "food",
		Source:            "Table 4 - Food Description File",
		VerboseName:       "Food description",
		VerboseNamePlural: "Food descriptions",
		Key:               []string{"id"},
		Fields: []Field{
			{Name: "id", Column: "NDB_No", Label: "Nutrient Databank number", HelpText: helpNDBNo, Kind: KindCode, MaxLength: 5, PrimaryKey: true},
			{Name: "food_group", Column: "FdGrp_Cd", Label: "Food group", HelpText: "4-digit code indicating food group to which a food item belongs.", Kind: KindReference, MaxLength: 4, References: EntityFoodGroup},
			{Name: "long_description", Column: "Long_Desc", Label: "Long description", HelpText: "200-character description of food item.", Kind: KindText, MaxLength: 200},
			dec("calories", 13, 3),
			dec("insulin_load", 13, 3),
			dec("insulinogenic", 13, 3),
			dec("ratio", 13, 3),
			dec("energy_density", 6, 2),
			dec("nd_weight", 6, 2),
			dec("nd_calorie", 6, 2),
			dec("il_score", 6, 2),
			dec("ed_score", 6, 2),
			dec("wilders_formula", 6, 2),
			{Name: "ingredient_name", Column: "ingredient_name", Kind: KindText, MaxLength: 200, Nullable: true, Blank: true},
			{Name: "slug", Column: "slug", Kind: KindText, MaxLength: 255, Blank: true},
			dec("ketonumber", 5, 2),
			dec("il_optimiser_score", 6, 2),
			dec("ed_optimiser_score", 6, 2),
			{Name: "optimiser_name", Column: "optimiser_name", Kind: KindText, MaxLength: 200, Nullable: true, Blank: true},
			dec("insulin_load_optimiser", 13, 3),
			{Name: "insulinogenic_optimiser", Column: "insulinogenic_optimiser", Kind: KindFloat, Nullable: true, Blank: true},
		},
	},
	{
		Name:              EntityFoodGroup,
		Table:             "food_group",
		Source:            "Table 5 - Food Group Description File",
		VerboseName:       "Food group",
		VerboseNamePlural: "Food groups",
		Key:               []string{"id"},
		Ordering:          []string{"name"},
		Fields: []Field{
			{Name: "id", Column: "FdGrp_Cd", Label: "Food Group ID", HelpText: "4-digit code identifying a food group. Only the first 2 digits are currently assigned. In the future, the last 2 digits may be used. Codes may not be consecutive.", Kind: KindCode, MaxLength: 4, PrimaryKey: true},
			{Name: "name", Column: "FdGrp_Desc", Label: "Name", HelpText: "Name of food group.", Kind: KindText, MaxLength: 60},
		},
	},
	{
		Name:              EntityFoodLanguaLFactor,
		Table:             "food_langual_factor",
		Source:            "Table 6 - LanguaL Factor File",
		VerboseName:       "Food LanguaL factor",
		VerboseNamePlural: "Food LanguaL factors",
		Key:               []string{"id"},
		Unique:            [][]string{{"food", "langual_factor"}},
		Fields: []Field{
			serial(),
			{Name: "food", Column: "NDB_No", Label: "Food", HelpText: helpNDBNo, Kind: KindReference, MaxLength: 5, References: EntityFood},
			{Name: "langual_factor", Column: "Factor_Code", Label: "LanguaL factor", HelpText: "The LanguaL factor from the Thesaurus.", Kind: KindReference, MaxLength: 5, References: EntityLanguaLFactor},
		},
	},
	{
		Name:              EntityLanguaLFactor,
		Table:             "langual_factor",
		Source:            "Table 7 - LanguaL Factor Description File",
		VerboseName:       "LanguaL factor",
		VerboseNamePlural: "LanguaL factors",
		Key:               []string{"id"},
		Ordering:          []string{"name"},
		Fields: []Field{
			{Name: "id", Column: "Factor_Code", Label: "Factor ID", HelpText: "The LanguaL factor from the Thesaurus. Only those codes used to factor the foods contained in the LanguaL Factor file are included in this file.", Kind: KindCode, MaxLength: 5, PrimaryKey: true},
			{Name: "name", Column: "Description", Label: "Description", HelpText: "The description of the LanguaL Factor Code from the thesaurus.", Kind: KindText, MaxLength: 140},
		},
	},
	{
		Name:              EntityNutrientData,
		Table:             "nutrient_data",
		Source:            "Table 8 - Nutrient Data File",
		VerboseName:       "Nutrient data",
		VerboseNamePlural: "Nutrient data",
		Key:               []string{"id"},
		Unique:            [][]string{{"food", "nutrient"}},
		Fields: []Field{
			serial(),
			{Name: "food", Column: "NDB_No", Label: "Food", HelpText: helpNDBShort, Kind: KindReference, MaxLength: 5, References: EntityFood},
			{Name: "nutrient", Column: "Nutr_No", Label: "Nutrient", HelpText: helpNutrNo, Kind: KindReference, MaxLength: 3, References: EntityNutrient},
			dec("raw_nd_calorie", 11, 3),
			dec("adjusted_nd_calorie", 11, 3),
			dec("optimiser_nd_calorie", 11, 3),
			dec("raw_nd_weight", 11, 3),
			dec("adjusted_nd_weight", 11, 3),
			{Name: "ounce", Column: "Nutr_Val", Label: "Ounce", HelpText: "Amount in 100 grams, edible portion.", Kind: KindDecimal, MaxDigits: 13, DecimalPlaces: 3},
			{Name: "data_type", Column: "Src_Cd", Label: "Data type", HelpText: "Code indicating type of data.", Kind: KindReference, MaxLength: 2, References: EntitySource},
		},
	},
	{
		Name:              EntityNutrient,
		Table:             "nutrient",
		Source:            "Table 9 - Nutrient Definition File",
		VerboseName:       "Nutrient",
		VerboseNamePlural: "Nutrients",
		Key:               []string{"id"},
		Ordering:          []string{"name"},
		Fields: []Field{
			{Name: "id", Column: "Nutr_No", Label: "Nutrient ID", HelpText: helpNutrNo, Kind: KindCode, MaxLength: 3, PrimaryKey: true},
			{Name: "units", Column: "Units", Label: "Units", HelpText: "Units of measure (mg, g, and so on).", Kind: KindText, MaxLength: 7},
			{Name: "tagname", Column: "Tagname", Label: "Tagname", HelpText: "International Network of Food Data Systems (INFOODS) Tagnames. A unique abbreviation for a nutrient/food component developed by INFOODS to aid in the interchange of data.", Kind: KindText, MaxLength: 20, Nullable: true, Blank: true},
			{Name: "name", Column: "NutrDesc", Label: "Name", HelpText: "Name of nutrient/food component.", Kind: KindText, MaxLength: 60},
			{Name: "decimals", Column: "Num_Dec", Label: "Decimals", HelpText: "Number of decimal places to which a nutrient value is rounded.", Kind: KindInteger},
			{Name: "order", Column: "SR_Order", Label: "Order", HelpText: "Used to sort nutrient records in the same order as various reports produced from SR.", Kind: KindInteger},
			dec("rdi", 13, 3),
			dec("rdi_male", 7, 3),
			dec("rdi_female", 7, 3),
			dec("oni_male", 7, 3),
			dec("oni_female", 7, 3),
			dec("rdi_kg", 7, 3),
			dec("rdi_75", 7, 3),
			dec("rdi_100", 7, 3),
			dec("rdi_pregnant", 7, 3),
			dec("rdi_breast", 7, 3),
			{Name: "slug", Column: "slug", Kind: KindText, MaxLength: 255, Blank: true},
		},
	},
	{
		Name:              EntitySource,
		Table:             "source",
		Source:            "Table 10 - Source Code File",
		VerboseName:       "Source",
		VerboseNamePlural: "Sources",
		Key:               []string{"id"},
		Ordering:          []string{"name"},
		Fields: []Field{
			{Name: "id", Column: "Src_Cd", Label: "Source ID", HelpText: "2-digit code.", Kind: KindCode, MaxLength: 2, PrimaryKey: true},
			{Name: "name", Column: "SrcCd_Desc", Label: "Name", HelpText: "Description of source code that identifies the type of nutrient data.", Kind: KindText, MaxLength: 60},
		},
	},
	{
		Name:              EntityDerivation,
		Table:             "derivation",
		Source:            "Table 11 - Derivation Code File",
		VerboseName:       "Derivation",
		VerboseNamePlural: "Derivations",
		Key:               []string{"id"},
		Ordering:          []string{"name"},
		Fields: []Field{
			{Name: "id", Column: "Deriv_Cd", Label: "Derivation ID", HelpText: "4-digit code.", Kind: KindCode, MaxLength: 4, PrimaryKey: true},
			{Name: "name", Column: "Deriv_Desc", Label: "Name", HelpText: "Description of derivation code giving specific information on how the value was determined.", Kind: KindText, MaxLength: 120},
		},
	},
	{
		Name:              EntityWeight,
		Table:             "weight",
		Source:            "Table 12 - Weight File",
		VerboseName:       "Weight",
		VerboseNamePlural: "Weights",
		Key:               []string{"id"},
		Unique:            [][]string{{"food", "sequence"}},
		Fields: []Field{
			serial(),
			{Name: "food", Column: "NDB_No", Label: "Food", HelpText: helpNDBShort, Kind: KindReference, MaxLength: 5, References: EntityFood},
			{Name: "sequence", Column: "Seq", Label: "Sequence", HelpText: "Sequence number.", Kind: KindText, MaxLength: 5},
			{Name: "amount", Column: "Amount", Label: "Amount", HelpText: "Unit modifier (for example, 1 in \"1 cup\").", Kind: KindDecimal, MaxDigits: 8, DecimalPlaces: 3},
			{Name: "name", Column: "Msre_Desc", Label: "Name", HelpText: "Description (for example, cup, diced, and 1-inch pieces).", Kind: KindText, MaxLength: 84},
			{Name: "grams", Column: "Gm_Wgt", Label: "Grams", HelpText: "Gram weight.", Kind: KindDecimal, MaxDigits: 8, DecimalPlaces: 1},
			{Name: "data_points", Column: "Num_Data_Pts", Label: "Data points", HelpText: "Number of data points.", Kind: KindInteger, Nullable: true, Blank: true},
			{Name: "standard_derivation", Column: "Std_Dev", Label: "Derivation (Standard)", HelpText: "Standard deviation.", Kind: KindDecimal, MaxDigits: 10, DecimalPlaces: 3, Nullable: true, Blank: true},
		},
	},
	{
		Name:              EntityFootnote,
		Table:             "footnote",
		Source:            "Table 13 - Footnote File",
		VerboseName:       "Footnote",
		VerboseNamePlural: "Footnotes",
		Key:               []string{"id"},
		Fields: []Field{
			serial(),
			{Name: "food", Column: "NDB_No", Label: "Food", HelpText: helpNDBShort, Kind: KindReference, MaxLength: 5, References: EntityFood},
			{Name: "sequence", Column: "Footnt_No", Label: "Sequence", HelpText: "Sequence number. If a given footnote applies to more than one nutrient number, the same footnote number is used. As a result, this file cannot be indexed.", Kind: KindText, MaxLength: 4},
			{Name: "type", Column: "Footnt_Typ", Label: "Type", HelpText: "Type of footnote: D = footnote adding information to the food description; M = footnote adding information to measure description; N = footnote providing additional information on a nutrient value. If the Footnt_Typ = N, the Nutr_No will also be filled in.", Kind: KindChoice, MaxLength: 1, Choices: FootnoteChoices},
			{Name: "nutrient", Column: "Nutr_No", Label: "Nutrient", HelpText: "Unique 3-digit identifier code for a nutrient to which footnote applies.", Kind: KindReference, MaxLength: 3, Nullable: true, Blank: true, References: EntityNutrient},
			{Name: "text", Column: "Footnt_Txt", Label: "Text", HelpText: "Footnote text.", Kind: KindText, MaxLength: 200},
		},
	},
	{
		Name:              EntityDataLink,
		Table:             "data_link",
		Source:            "Table 14 - Sources of Data Link File",
		VerboseName:       "Data link",
		VerboseNamePlural: "Data links",
		Key:               []string{"id"},
		Unique:            [][]string{{"food", "nutrient", "data_source"}},
		Fields: []Field{
			serial(),
			{Name: "food", Column: "NDB_No", Label: "Food", HelpText: helpNDBShort, Kind: KindReference, MaxLength: 5, References: EntityFood},
			{Name: "nutrient", Column: "Nutr_No", Label: "Nutrient", HelpText: helpNutrNo, Kind: KindReference, MaxLength: 3, References: EntityNutrient},
			{Name: "data_source", Column: "DataSrc_ID", Label: "Data source", HelpText: "Unique ID identifying the reference/source.", Kind: KindReference, MaxLength: 6, References: EntityDataSource},
		},
	},
	{
		Name:              EntityDataSource,
		Table:             "data_source",
		Source:            "Table 15 - Sources of Data File",
		VerboseName:       "Data source",
		VerboseNamePlural: "Data sources",
		Key:               []string{"id"},
		Ordering:          []string{"name"},
		Fields: []Field{
			{Name: "id", Column: "DataSrc_ID", Label: "DataSource ID", HelpText: "Unique number identifying the reference/source.", Kind: KindCode, MaxLength: 6, PrimaryKey: true},
			{Name: "authors", Column: "Authors", Label: "Authors", HelpText: "List of authors for a journal article or name of sponsoring organization for other documents.", Kind: KindText, MaxLength: 255, Nullable: true, Blank: true},
			{Name: "name", Column: "Title", Label: "Name", HelpText: "Title of article or name of document, such as a report from a company or trade association.", Kind: KindText, MaxLength: 255, Nullable: true, Blank: true},
			{Name: "year", Column: "Year", Label: "Year", HelpText: "Year article or document was published.", Kind: KindInteger, Nullable: true, Blank: true},
			{Name: "journal", Column: "Journal", Label: "Journal", HelpText: "Name of the journal in which the article was published.", Kind: KindText, MaxLength: 135, Nullable: true, Blank: true},
			{Name: "volume", Column: "Vol_City", Label: "Volume", HelpText: "Volume number for journal articles, books, or reports; city where sponsoring organization is located.", Kind: KindText, MaxLength: 16, Nullable: true, Blank: true},
			{Name: "issue_state", Column: "Issue_State", Label: "Issue (state)", HelpText: "Issue number for journal article; State where the sponsoring organization is located.", Kind: KindText, MaxLength: 5, Nullable: true, Blank: true},
			{Name: "start_page", Column: "Start_Page", Label: "Start page", HelpText: "Starting page number of article/document.", Kind: KindInteger, Nullable: true, Blank: true},
			{Name: "end_page", Column: "End_Page", Label: "End page", HelpText: "Ending page number of article/document.", Kind: KindInteger, Nullable: true, Blank: true},
		},
	},
	{
		Name:              EntityDeletedFood,
		Table:             "deleted_food",
		Source:            "Table 17 - Foods Deleted",
		VerboseName:       "Deleted food",
		VerboseNamePlural: "Deleted foods",
		Key:               []string{"food_id"},
		Ordering:          []string{"name"},
		Fields: []Field{
			{Name: "food_id", Column: "NDB_No", Label: "Nutrient Databank number", HelpText: "Unique 5-digit number identifying deleted item.", Kind: KindCode, MaxLength: 5, PrimaryKey: true},
			{Name: "name", Column: "Shrt_Desc", Label: "Name", HelpText: "60-character abbreviated description of food item.", Kind: KindText, MaxLength: 60},
		},
	},
	{
		Name:              EntityDeletedNutrient,
		Table:             "deleted_nutrient",
		Source:            "Table 18 - Nutrients Deleted",
		VerboseName:       "Deleted nutrient",
		VerboseNamePlural: "Deleted nutrients",
		Key:               []string{"food_id", "nutrient_id"},
		Ordering:          []string{"nutrient_id"},
		Fields: []Field{
			{Name: "food_id", Column: "NDB_No", Label: "Nutrient Databank number", HelpText: "Unique 5-digit number identifying the item that contains the deleted nutrient record.", Kind: KindCode, MaxLength: 5, PrimaryKey: true},
			{Name: "nutrient_id", Column: "Nutr_No", Label: "Nutrient ID", HelpText: "Nutrient number of deleted record.", Kind: KindCode, MaxLength: 3, PrimaryKey: true},
		},
	},
	{
		Name:              EntityDeletedFootnote,
		Table:             "deleted_footnote",
		Source:            "Table 19 - Footnotes Deleted",
		VerboseName:       "Deleted footnote",
		VerboseNamePlural: "Deleted footnotes",
		Key:               []string{"food_id", "sequence", "type"},
		Fields: []Field{
			{Name: "food_id", Column: "NDB_No", Label: "Nutrient Databank number", HelpText: "Unique 5-digit number identifying the item that contains the deleted footnote record.", Kind: KindCode, MaxLength: 5, PrimaryKey: true},
			{Name: "sequence", Column: "Footnt_No", Label: "Sequence", Kind: KindText, MaxLength: 4, PrimaryKey: true},
			{Name: "type", Column: "Footnt_Typ", Label: "Footnote type", HelpText: "Type of footnote of deleted record.", Kind: KindChoice, MaxLength: 1, PrimaryKey: true, Choices: FootnoteChoices},
		},
	},
	{
		Name:              EntityFoodTag,
		Table:             "food_tag",
		VerboseName:       "Food tag",
		VerboseNamePlural: "Food tags",
		Key:               []string{"id"},
		Unique:            [][]string{{"food", "tag"}},
		Ordering:          []string{"tag"},
		Fields: []Field{
			serial(),
			{Name: "food", Column: "NDB_No", Label: "Food", HelpText: helpNDBShort, Kind: KindReference, MaxLength: 5, References: EntityFood},
			{Name: "tag", Column: "tag", Label: "Tag", HelpText: "Free-form label attached to a food.", Kind: KindText, MaxLength: 100},
		},
	},
}

var schemaIndex = func() map[EntityName]int {
	idx := make(map[EntityName]int, len(schema))
	for i, e := range schema {
		idx[e.Name] = i
	}
	return idx
}()

// Describe returns the schema description of an entity.
func Describe(name EntityName) (Entity, bool) {
	i, ok := schemaIndex[name]
	if !ok {
		return Entity{}, false
	}
	return schema[i], true
}

// Entities returns every entity description in declaration order.
func Entities() []Entity {
	out := make([]Entity, len(schema))
	copy(out, schema)
	return out
}

func mustDescribe(name EntityName) Entity {
	e, ok := Describe(name)
	if !ok {
		panic("domain: unknown entity " + string(name))
	}
	return e
}
