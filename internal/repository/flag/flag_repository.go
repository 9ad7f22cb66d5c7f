// File: internal/repository/flag/flag_repository.go
package flag

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/launchkit/launchkit/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrFlagNotFound = errors.New("feature flag not found")

type gormFlagRepository struct {
	db *gorm.DB
}

func NewFlagRepository(db *gorm.DB) FlagRepository {
	return &gormFlagRepository{db: db}
}

func (r *gormFlagRepository) Upsert(ctx context.Context, flag *domain.FeatureFlag) error {
	if flag == nil {
		return errors.New("flag cannot be nil")
	}
	if err := flag.IsValid(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"enabled", "description"}),
		}).
		Create(flag).Error
	if err != nil {
		log.Printf("[FlagRepository] Database error saving flag %s: %v", flag.Key, err)
		return errors.New("database error saving feature flag")
	}
	return nil
}

func (r *gormFlagRepository) FindByKey(ctx context.Context, key string) (*domain.FeatureFlag, error) {
	if key == "" {
		return nil, errors.New("invalid flag key")
	}

	var flag domain.FeatureFlag
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&flag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlagNotFound
		}
		log.Printf("[FlagRepository] FindByKey database error: %v", err)
		return nil, errors.New("database query failed")
	}
	return &flag, nil
}

func (r *gormFlagRepository) FindAll(ctx context.Context) ([]domain.FeatureFlag, error) {
	var flags []domain.FeatureFlag
	err := r.db.WithContext(ctx).Order("key asc").Find(&flags).Error
	if err != nil {
		log.Printf("[FlagRepository] Database error listing flags: %v", err)
		return nil, errors.New("database error fetching feature flags")
	}
	return flags, nil
}
