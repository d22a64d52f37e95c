package sqlite

import (
	"context"

	"github.com/alexBLR/usdasr/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tagRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func (s *Store) Tags() domain.TagRepository {
	return tagRepository{db: s.db, log: s.log}
}

func (r tagRepository) Tags(ctx context.Context, food domain.FoodID) ([]string, error) {
	tags := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&FoodTagModel{}).
		Where("NDB_No = ?", string(food)).
		Order("tag").
		Pluck("tag", &tags).Error
	if err != nil {
		return nil, mapDBError(domain.EntityFoodTag, food, err)
	}
	return tags, nil
}

// SetTags replaces the food's label set.
func (r tagRepository) SetTags(ctx context.Context, food domain.FoodID, labels []string) error {
	labels, err := domain.NormalizeTags(labels)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireFood(tx, food); err != nil {
			return err
		}
		if err := tx.Where("NDB_No = ?", string(food)).Delete(&FoodTagModel{}).Error; err != nil {
			return err
		}
		return insertTags(tx, food, labels)
	})
	if err != nil {
		return mapDBError(domain.EntityFoodTag, food, err)
	}
	r.log.Debug("tags set", zap.String("food", string(food)), zap.Strings("tags", labels))
	return nil
}

// AddTags attaches labels, ignoring the ones already present.
func (r tagRepository) AddTags(ctx context.Context, food domain.FoodID, labels ...string) error {
	labels, err := domain.NormalizeTags(labels)
	if err != nil {
		return err
	}
	if len(labels) == 0 {
		return mapDBError(domain.EntityFoodTag, food, requireFood(r.db.WithContext(ctx), food))
	}
	if err := insertTags(r.db.WithContext(ctx), food, labels); err != nil {
		return mapDBError(domain.EntityFoodTag, food, err)
	}
	r.log.Debug("tags added", zap.String("food", string(food)), zap.Strings("tags", labels))
	return nil
}

func (r tagRepository) RemoveTags(ctx context.Context, food domain.FoodID, labels ...string) error {
	labels, err := domain.NormalizeTags(labels)
	if err != nil {
		return err
	}
	if len(labels) == 0 {
		return nil
	}
	err = r.db.WithContext(ctx).
		Where("NDB_No = ? AND tag IN ?", string(food), labels).
		Delete(&FoodTagModel{}).Error
	if err != nil {
		return mapDBError(domain.EntityFoodTag, food, err)
	}
	r.log.Debug("tags removed", zap.String("food", string(food)), zap.Strings("tags", labels))
	return nil
}

// FoodsTagged lists the foods carrying label, ordered by food id.
func (r tagRepository) FoodsTagged(ctx context.Context, label string) ([]domain.FoodID, error) {
	ids := make([]string, 0)
	err := r.db.WithContext(ctx).
		Model(&FoodTagModel{}).
		Where("tag = ?", label).
		Order("NDB_No").
		Pluck("NDB_No", &ids).Error
	if err != nil {
		return nil, mapDBError(domain.EntityFoodTag, label, err)
	}
	out := make([]domain.FoodID, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.FoodID(id))
	}
	return out, nil
}

// requireFood reports a ForeignKeyViolationError when food does not exist.
func requireFood(tx *gorm.DB, food domain.FoodID) error {
	var n int64
	if err := tx.Model(&FoodModel{}).Where("NDB_No = ?", string(food)).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrForeignKeyViolation("%s %s: food does not exist", domain.EntityFoodTag, food)
	}
	return nil
}

func insertTags(tx *gorm.DB, food domain.FoodID, labels []string) error {
	if len(labels) == 0 {
		return nil
	}
	rows := make([]FoodTagModel, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, FoodTagModel{FoodID: string(food), Tag: label})
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "NDB_No"}, {Name: "tag"}},
		DoNothing: true,
	}).Create(&rows).Error
}
