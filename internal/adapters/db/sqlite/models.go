package sqlite

import (
	"github.com/alexBLR/usdasr/internal/domain"
	"github.com/shopspring/decimal"
)

type FoodGroupModel struct {
	ID   string `gorm:"column:FdGrp_Cd;primaryKey;size:4"`
	Name string `gorm:"column:FdGrp_Desc;not null;size:60"`
}

func (FoodGroupModel) TableName() string { return "food_group" }

type FoodModel struct {
	ID                     string          `gorm:"column:NDB_No;primaryKey;size:5"`
	FoodGroupID            string          `gorm:"column:FdGrp_Cd;not null;size:4"`
	LongDescription        string          `gorm:"column:Long_Desc;not null;size:200"`
	Calories               decimal.Decimal `gorm:"column:calories;type:decimal(13,3);not null"`
	InsulinLoad            decimal.Decimal `gorm:"column:insulin_load;type:decimal(13,3);not null"`
	Insulinogenic          decimal.Decimal `gorm:"column:insulinogenic;type:decimal(13,3);not null"`
	Ratio                  decimal.Decimal `gorm:"column:ratio;type:decimal(13,3);not null"`
	EnergyDensity          decimal.Decimal `gorm:"column:energy_density;type:decimal(6,2);not null"`
	NDWeight               decimal.Decimal `gorm:"column:nd_weight;type:decimal(6,2);not null"`
	NDCalorie              decimal.Decimal `gorm:"column:nd_calorie;type:decimal(6,2);not null"`
	ILScore                decimal.Decimal `gorm:"column:il_score;type:decimal(6,2);not null"`
	EDScore                decimal.Decimal `gorm:"column:ed_score;type:decimal(6,2);not null"`
	WildersFormula         decimal.Decimal `gorm:"column:wilders_formula;type:decimal(6,2);not null"`
	IngredientName         *string         `gorm:"column:ingredient_name;size:200"`
	Slug                   string          `gorm:"column:slug;not null;size:255"`
	Ketonumber             decimal.Decimal `gorm:"column:ketonumber;type:decimal(5,2);not null"`
	ILOptimiserScore       decimal.Decimal `gorm:"column:il_optimiser_score;type:decimal(6,2);not null"`
	EDOptimiserScore       decimal.Decimal `gorm:"column:ed_optimiser_score;type:decimal(6,2);not null"`
	OptimiserName          *string         `gorm:"column:optimiser_name;size:200"`
	InsulinLoadOptimiser   decimal.Decimal `gorm:"column:insulin_load_optimiser;type:decimal(13,3);not null"`
	InsulinogenicOptimiser *float64        `gorm:"column:insulinogenic_optimiser"`

	FoodGroup *FoodGroupModel `gorm:"foreignKey:FoodGroupID;references:ID"`
}

func (FoodModel) TableName() string { return "food" }

type FoodLanguaLFactorModel struct {
	ID              int64  `gorm:"column:id;primaryKey"`
	FoodID          string `gorm:"column:NDB_No;not null;size:5;index:idx_food_langual_factor,unique"`
	LanguaLFactorID string `gorm:"column:Factor_Code;not null;size:5;index:idx_food_langual_factor,unique"`
}

func (FoodLanguaLFactorModel) TableName() string { return "food_langual_factor" }

type LanguaLFactorModel struct {
	ID   string `gorm:"column:Factor_Code;primaryKey;size:5"`
	Name string `gorm:"column:Description;not null;size:140"`
}

func (LanguaLFactorModel) TableName() string { return "langual_factor" }

type NutrientDataModel struct {
	ID                 int64           `gorm:"column:id;primaryKey"`
	FoodID             string          `gorm:"column:NDB_No;not null;size:5;index:idx_nutrient_data_food_nutrient,unique"`
	NutrientID         string          `gorm:"column:Nutr_No;not null;size:3;index:idx_nutrient_data_food_nutrient,unique"`
	RawNDCalorie       decimal.Decimal `gorm:"column:raw_nd_calorie;type:decimal(11,3);not null"`
	AdjustedNDCalorie  decimal.Decimal `gorm:"column:adjusted_nd_calorie;type:decimal(11,3);not null"`
	OptimiserNDCalorie decimal.Decimal `gorm:"column:optimiser_nd_calorie;type:decimal(11,3);not null"`
	RawNDWeight        decimal.Decimal `gorm:"column:raw_nd_weight;type:decimal(11,3);not null"`
	AdjustedNDWeight   decimal.Decimal `gorm:"column:adjusted_nd_weight;type:decimal(11,3);not null"`
	Ounce              decimal.Decimal `gorm:"column:Nutr_Val;type:decimal(13,3);not null"`
	DataType           string          `gorm:"column:Src_Cd;not null;size:2"`
}

func (NutrientDataModel) TableName() string { return "nutrient_data" }

type NutrientModel struct {
	ID          string          `gorm:"column:Nutr_No;primaryKey;size:3"`
	Units       string          `gorm:"column:Units;not null;size:7"`
	Tagname     *string         `gorm:"column:Tagname;size:20"`
	Name        string          `gorm:"column:NutrDesc;not null;size:60"`
	Decimals    int             `gorm:"column:Num_Dec;not null"`
	Order       int             `gorm:"column:SR_Order;not null"`
	RDI         decimal.Decimal `gorm:"column:rdi;type:decimal(13,3);not null"`
	RDIMale     decimal.Decimal `gorm:"column:rdi_male;type:decimal(7,3);not null"`
	RDIFemale   decimal.Decimal `gorm:"column:rdi_female;type:decimal(7,3);not null"`
	ONIMale     decimal.Decimal `gorm:"column:oni_male;type:decimal(7,3);not null"`
	ONIFemale   decimal.Decimal `gorm:"column:oni_female;type:decimal(7,3);not null"`
	RDIKg       decimal.Decimal `gorm:"column:rdi_kg;type:decimal(7,3);not null"`
	RDI75       decimal.Decimal `gorm:"column:rdi_75;type:decimal(7,3);not null"`
	RDI100      decimal.Decimal `gorm:"column:rdi_100;type:decimal(7,3);not null"`
	RDIPregnant decimal.Decimal `gorm:"column:rdi_pregnant;type:decimal(7,3);not null"`
	RDIBreast   decimal.Decimal `gorm:"column:rdi_breast;type:decimal(7,3);not null"`
	Slug        string          `gorm:"column:slug;not null;size:255"`
}

func (NutrientModel) TableName() string { return "nutrient" }

type SourceModel struct {
	ID   string `gorm:"column:Src_Cd;primaryKey;size:2"`
	Name string `gorm:"column:SrcCd_Desc;not null;size:60"`
}

func (SourceModel) TableName() string { return "source" }

type DerivationModel struct {
	ID   string `gorm:"column:Deriv_Cd;primaryKey;size:4"`
	Name string `gorm:"column:Deriv_Desc;not null;size:120"`
}

func (DerivationModel) TableName() string { return "derivation" }

type WeightModel struct {
	ID                 int64               `gorm:"column:id;primaryKey"`
	FoodID             string              `gorm:"column:NDB_No;not null;size:5;index:idx_weight_food_seq,unique"`
	Sequence           string              `gorm:"column:Seq;not null;size:5;index:idx_weight_food_seq,unique"`
	Amount             decimal.Decimal     `gorm:"column:Amount;type:decimal(8,3);not null"`
	Name               string              `gorm:"column:Msre_Desc;not null;size:84"`
	Grams              decimal.Decimal     `gorm:"column:Gm_Wgt;type:decimal(8,1);not null"`
	DataPoints         *int                `gorm:"column:Num_Data_Pts"`
	StandardDerivation decimal.NullDecimal `gorm:"column:Std_Dev;type:decimal(10,3)"`
}

func (WeightModel) TableName() string { return "weight" }

type FootnoteModel struct {
	ID         int64   `gorm:"column:id;primaryKey"`
	FoodID     string  `gorm:"column:NDB_No;not null;size:5;index"`
	Sequence   string  `gorm:"column:Footnt_No;not null;size:4"`
	Type       string  `gorm:"column:Footnt_Typ;not null;size:1"`
	NutrientID *string `gorm:"column:Nutr_No;size:3"`
	Text       string  `gorm:"column:Footnt_Txt;not null;size:200"`
}

func (FootnoteModel) TableName() string { return "footnote" }

type DataLinkModel struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	FoodID       string `gorm:"column:NDB_No;not null;size:5;index:idx_data_link,unique"`
	NutrientID   string `gorm:"column:Nutr_No;not null;size:3;index:idx_data_link,unique"`
	DataSourceID string `gorm:"column:DataSrc_ID;not null;size:6;index:idx_data_link,unique"`
}

func (DataLinkModel) TableName() string { return "data_link" }

type DataSourceModel struct {
	ID         string  `gorm:"column:DataSrc_ID;primaryKey;size:6"`
	Authors    *string `gorm:"column:Authors;size:255"`
	Name       *string `gorm:"column:Title;size:255"`
	Year       *int    `gorm:"column:Year"`
	Journal    *string `gorm:"column:Journal;size:135"`
	Volume     *string `gorm:"column:Vol_City;size:16"`
	IssueState *string `gorm:"column:Issue_State;size:5"`
	StartPage  *int    `gorm:"column:Start_Page"`
	EndPage    *int    `gorm:"column:End_Page"`
}

func (DataSourceModel) TableName() string { return "data_source" }

type DeletedFoodModel struct {
	FoodID string `gorm:"column:NDB_No;primaryKey;size:5"`
	Name   string `gorm:"column:Shrt_Desc;not null;size:60"`
}

func (DeletedFoodModel) TableName() string { return "deleted_food" }

type DeletedNutrientModel struct {
	FoodID     string `gorm:"column:NDB_No;primaryKey;size:5"`
	NutrientID string `gorm:"column:Nutr_No;primaryKey;size:3"`
}

func (DeletedNutrientModel) TableName() string { return "deleted_nutrient" }

type DeletedFootnoteModel struct {
	FoodID   string `gorm:"column:NDB_No;primaryKey;size:5"`
	Sequence string `gorm:"column:Footnt_No;primaryKey;size:4"`
	Type     string `gorm:"column:Footnt_Typ;primaryKey;size:1"`
}

func (DeletedFootnoteModel) TableName() string { return "deleted_footnote" }

type FoodTagModel struct {
	ID     int64  `gorm:"column:id;primaryKey"`
	FoodID string `gorm:"column:NDB_No;not null;size:5;index:idx_food_tag,unique"`
	Tag    string `gorm:"column:tag;not null;size:100;index:idx_food_tag,unique"`
}

func (FoodTagModel) TableName() string { return "food_tag" }

func foodGroupToModel(v domain.FoodGroup) FoodGroupModel {
	return FoodGroupModel{ID: string(v.ID), Name: v.Name}
}

func foodGroupFromModel(m FoodGroupModel) domain.FoodGroup {
	return domain.FoodGroup{ID: domain.FoodGroupID(m.ID), Name: m.Name}
}

func foodToModel(v domain.Food) FoodModel {
	return FoodModel{
		ID:                     string(v.ID),
		FoodGroupID:            string(v.FoodGroupID),
		LongDescription:        v.LongDescription,
		Calories:               v.Calories,
		InsulinLoad:            v.InsulinLoad,
		Insulinogenic:          v.Insulinogenic,
		Ratio:                  v.Ratio,
		EnergyDensity:          v.EnergyDensity,
		NDWeight:               v.NDWeight,
		NDCalorie:              v.NDCalorie,
		ILScore:                v.ILScore,
		EDScore:                v.EDScore,
		WildersFormula:         v.WildersFormula,
		IngredientName:         v.IngredientName,
		Slug:                   v.Slug,
		Ketonumber:             v.Ketonumber,
		ILOptimiserScore:       v.ILOptimiserScore,
		EDOptimiserScore:       v.EDOptimiserScore,
		OptimiserName:          v.OptimiserName,
		InsulinLoadOptimiser:   v.InsulinLoadOptimiser,
		InsulinogenicOptimiser: v.InsulinogenicOptimiser,
	}
}

func foodFromModel(m FoodModel) domain.Food {
	f := domain.Food{
		ID:                     domain.FoodID(m.ID),
		FoodGroupID:            domain.FoodGroupID(m.FoodGroupID),
		LongDescription:        m.LongDescription,
		Calories:               m.Calories,
		InsulinLoad:            m.InsulinLoad,
		Insulinogenic:          m.Insulinogenic,
		Ratio:                  m.Ratio,
		EnergyDensity:          m.EnergyDensity,
		NDWeight:               m.NDWeight,
		NDCalorie:              m.NDCalorie,
		ILScore:                m.ILScore,
		EDScore:                m.EDScore,
		WildersFormula:         m.WildersFormula,
		IngredientName:         m.IngredientName,
		Slug:                   m.Slug,
		Ketonumber:             m.Ketonumber,
		ILOptimiserScore:       m.ILOptimiserScore,
		EDOptimiserScore:       m.EDOptimiserScore,
		OptimiserName:          m.OptimiserName,
		InsulinLoadOptimiser:   m.InsulinLoadOptimiser,
		InsulinogenicOptimiser: m.InsulinogenicOptimiser,
	}
	if m.FoodGroup != nil {
		g := foodGroupFromModel(*m.FoodGroup)
		f.FoodGroup = &g
	}
	return f
}

func foodLanguaLFactorToModel(v domain.FoodLanguaLFactor) FoodLanguaLFactorModel {
	return FoodLanguaLFactorModel{ID: v.ID, FoodID: string(v.FoodID), LanguaLFactorID: string(v.LanguaLFactorID)}
}

func foodLanguaLFactorFromModel(m FoodLanguaLFactorModel) domain.FoodLanguaLFactor {
	return domain.FoodLanguaLFactor{ID: m.ID, FoodID: domain.FoodID(m.FoodID), LanguaLFactorID: domain.LanguaLFactorID(m.LanguaLFactorID)}
}

func languaLFactorToModel(v domain.LanguaLFactor) LanguaLFactorModel {
	return LanguaLFactorModel{ID: string(v.ID), Name: v.Name}
}

func languaLFactorFromModel(m LanguaLFactorModel) domain.LanguaLFactor {
	return domain.LanguaLFactor{ID: domain.LanguaLFactorID(m.ID), Name: m.Name}
}

func nutrientDataToModel(v domain.NutrientData) NutrientDataModel {
	return NutrientDataModel{
		ID:                 v.ID,
		FoodID:             string(v.FoodID),
		NutrientID:         string(v.NutrientID),
		RawNDCalorie:       v.RawNDCalorie,
		AdjustedNDCalorie:  v.AdjustedNDCalorie,
		OptimiserNDCalorie: v.OptimiserNDCalorie,
		RawNDWeight:        v.RawNDWeight,
		AdjustedNDWeight:   v.AdjustedNDWeight,
		Ounce:              v.Ounce,
		DataType:           string(v.DataType),
	}
}

func nutrientDataFromModel(m NutrientDataModel) domain.NutrientData {
	return domain.NutrientData{
		ID:                 m.ID,
		FoodID:             domain.FoodID(m.FoodID),
		NutrientID:         domain.NutrientID(m.NutrientID),
		RawNDCalorie:       m.RawNDCalorie,
		AdjustedNDCalorie:  m.AdjustedNDCalorie,
		OptimiserNDCalorie: m.OptimiserNDCalorie,
		RawNDWeight:        m.RawNDWeight,
		AdjustedNDWeight:   m.AdjustedNDWeight,
		Ounce:              m.Ounce,
		DataType:           domain.SourceID(m.DataType),
	}
}

func nutrientToModel(v domain.Nutrient) NutrientModel {
	return NutrientModel{
		ID:          string(v.ID),
		Units:       v.Units,
		Tagname:     v.Tagname,
		Name:        v.Name,
		Decimals:    v.Decimals,
		Order:       v.Order,
		RDI:         v.RDI,
		RDIMale:     v.RDIMale,
		RDIFemale:   v.RDIFemale,
		ONIMale:     v.ONIMale,
		ONIFemale:   v.ONIFemale,
		RDIKg:       v.RDIKg,
		RDI75:       v.RDI75,
		RDI100:      v.RDI100,
		RDIPregnant: v.RDIPregnant,
		RDIBreast:   v.RDIBreast,
		Slug:        v.Slug,
	}
}

func nutrientFromModel(m NutrientModel) domain.Nutrient {
	return domain.Nutrient{
		ID:          domain.NutrientID(m.ID),
		Units:       m.Units,
		Tagname:     m.Tagname,
		Name:        m.Name,
		Decimals:    m.Decimals,
		Order:       m.Order,
		RDI:         m.RDI,
		RDIMale:     m.RDIMale,
		RDIFemale:   m.RDIFemale,
		ONIMale:     m.ONIMale,
		ONIFemale:   m.ONIFemale,
		RDIKg:       m.RDIKg,
		RDI75:       m.RDI75,
		RDI100:      m.RDI100,
		RDIPregnant: m.RDIPregnant,
		RDIBreast:   m.RDIBreast,
		Slug:        m.Slug,
	}
}

func sourceToModel(v domain.Source) SourceModel {
	return SourceModel{ID: string(v.ID), Name: v.Name}
}

func sourceFromModel(m SourceModel) domain.Source {
	return domain.Source{ID: domain.SourceID(m.ID), Name: m.Name}
}

func derivationToModel(v domain.Derivation) DerivationModel {
	return DerivationModel{ID: string(v.ID), Name: v.Name}
}

func derivationFromModel(m DerivationModel) domain.Derivation {
	return domain.Derivation{ID: domain.DerivationID(m.ID), Name: m.Name}
}

func weightToModel(v domain.Weight) WeightModel {
	m := WeightModel{
		ID:         v.ID,
		FoodID:     string(v.FoodID),
		Sequence:   v.Sequence,
		Amount:     v.Amount,
		Name:       v.Name,
		Grams:      v.Grams,
		DataPoints: v.DataPoints,
	}
	if v.StandardDerivation != nil {
		m.StandardDerivation = decimal.NewNullDecimal(*v.StandardDerivation)
	}
	return m
}

func weightFromModel(m WeightModel) domain.Weight {
	w := domain.Weight{
		ID:         m.ID,
		FoodID:     domain.FoodID(m.FoodID),
		Sequence:   m.Sequence,
		Amount:     m.Amount,
		Name:       m.Name,
		Grams:      m.Grams,
		DataPoints: m.DataPoints,
	}
	if m.StandardDerivation.Valid {
		d := m.StandardDerivation.Decimal
		w.StandardDerivation = &d
	}
	return w
}

func footnoteToModel(v domain.Footnote) FootnoteModel {
	m := FootnoteModel{
		ID:       v.ID,
		FoodID:   string(v.FoodID),
		Sequence: v.Sequence,
		Type:     string(v.Type),
		Text:     v.Text,
	}
	if v.NutrientID != nil {
		id := string(*v.NutrientID)
		m.NutrientID = &id
	}
	return m
}

func footnoteFromModel(m FootnoteModel) domain.Footnote {
	f := domain.Footnote{
		ID:       m.ID,
		FoodID:   domain.FoodID(m.FoodID),
		Sequence: m.Sequence,
		Type:     domain.FootnoteType(m.Type),
		Text:     m.Text,
	}
	if m.NutrientID != nil {
		id := domain.NutrientID(*m.NutrientID)
		f.NutrientID = &id
	}
	return f
}

func dataLinkToModel(v domain.DataLink) DataLinkModel {
	return DataLinkModel{ID: v.ID, FoodID: string(v.FoodID), NutrientID: string(v.NutrientID), DataSourceID: string(v.DataSourceID)}
}

func dataLinkFromModel(m DataLinkModel) domain.DataLink {
	return domain.DataLink{
		ID:           m.ID,
		FoodID:       domain.FoodID(m.FoodID),
		NutrientID:   domain.NutrientID(m.NutrientID),
		DataSourceID: domain.DataSourceID(m.DataSourceID),
	}
}

func dataSourceToModel(v domain.DataSource) DataSourceModel {
	return DataSourceModel{
		ID:         string(v.ID),
		Authors:    v.Authors,
		Name:       v.Name,
		Year:       v.Year,
		Journal:    v.Journal,
		Volume:     v.Volume,
		IssueState: v.IssueState,
		StartPage:  v.StartPage,
		EndPage:    v.EndPage,
	}
}

func dataSourceFromModel(m DataSourceModel) domain.DataSource {
	return domain.DataSource{
		ID:         domain.DataSourceID(m.ID),
		Authors:    m.Authors,
		Name:       m.Name,
		Year:       m.Year,
		Journal:    m.Journal,
		Volume:     m.Volume,
		IssueState: m.IssueState,
		StartPage:  m.StartPage,
		EndPage:    m.EndPage,
	}
}

func deletedFoodToModel(v domain.DeletedFood) DeletedFoodModel {
	return DeletedFoodModel{FoodID: string(v.FoodID), Name: v.Name}
}

func deletedFoodFromModel(m DeletedFoodModel) domain.DeletedFood {
	return domain.DeletedFood{FoodID: domain.FoodID(m.FoodID), Name: m.Name}
}

func deletedNutrientToModel(v domain.DeletedNutrient) DeletedNutrientModel {
	return DeletedNutrientModel{FoodID: string(v.FoodID), NutrientID: string(v.NutrientID)}
}

func deletedNutrientFromModel(m DeletedNutrientModel) domain.DeletedNutrient {
	return domain.DeletedNutrient{FoodID: domain.FoodID(m.FoodID), NutrientID: domain.NutrientID(m.NutrientID)}
}

func deletedFootnoteToModel(v domain.DeletedFootnote) DeletedFootnoteModel {
	return DeletedFootnoteModel{FoodID: string(v.FoodID), Sequence: v.Sequence, Type: string(v.Type)}
}

func deletedFootnoteFromModel(m DeletedFootnoteModel) domain.DeletedFootnote {
	return domain.DeletedFootnote{FoodID: domain.FoodID(m.FoodID), Sequence: m.Sequence, Type: domain.FootnoteType(m.Type)}
}
