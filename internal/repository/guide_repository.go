package repository

import (
	"context"
	"errors"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"gorm.io/gorm"
)

// GuideRepository build guide store. Steps are owned by their guide and are
// always replaced as a set, never patched individually.
type GuideRepository struct {
	db *gorm.DB
}

func NewGuideRepository(db *gorm.DB) *GuideRepository {
	return &GuideRepository{db: db}
}

// FindByPID loads a guide with its steps in order
func (r *GuideRepository) FindByPID(ctx context.Context, pid string) (*entity.BuildGuide, error) {
	var guide entity.BuildGuide
	err := r.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Preload("DroneModel").
		Where("pid = ?", pid).
		First(&guide).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &guide, nil
}

// List returns all guides without steps (list views are lightweight)
func (r *GuideRepository) List(ctx context.Context) ([]entity.BuildGuide, error) {
	var guides []entity.BuildGuide
	err := r.db.WithContext(ctx).Order("pid ASC").Find(&guides).Error
	return guides, err
}

// Create inserts a guide together with any attached steps
func (r *GuideRepository) Create(ctx context.Context, guide *entity.BuildGuide) error {
	return r.db.WithContext(ctx).Create(guide).Error
}

// Update saves guide fields and swaps the step set in one transaction. All
// previously attached steps are removed before the new ones are inserted, so
// no orphaned steps remain.
func (r *GuideRepository) Update(ctx context.Context, guide *entity.BuildGuide, steps []entity.BuildGuideStep) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Steps").Save(guide).Error; err != nil {
			return err
		}
		if steps == nil {
			return nil
		}
		if err := tx.Where("guide_id = ?", guide.ID).Delete(&entity.BuildGuideStep{}).Error; err != nil {
			return err
		}
		if len(steps) == 0 {
			return nil
		}
		return tx.Create(&steps).Error
	})
}

// Delete removes a guide and its steps
func (r *GuideRepository) Delete(ctx context.Context, pid string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var guide entity.BuildGuide
		if err := tx.Where("pid = ?", pid).First(&guide).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("guide_id = ?", guide.ID).Delete(&entity.BuildGuideStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&guide).Error
	})
}

// FindStep loads a single step by row ID
func (r *GuideRepository) FindStep(ctx context.Context, stepID string) (*entity.BuildGuideStep, error) {
	var step entity.BuildGuideStep
	err := r.db.WithContext(ctx).Where("id = ?", stepID).First(&step).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &step, nil
}
