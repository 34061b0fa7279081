package repository

import (
	"context"
	"errors"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"gorm.io/gorm"
)

// ComponentRepository component store keyed externally by PID
type ComponentRepository struct {
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

// FindByPID finds a component by its product identifier
func (r *ComponentRepository) FindByPID(ctx context.Context, pid string) (*entity.Component, error) {
	var comp entity.Component
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("pid = ?", pid).
		First(&comp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comp, nil
}

// List returns components, optionally restricted to a category slug
func (r *ComponentRepository) List(ctx context.Context, categorySlug string, page, pageSize int) ([]entity.Component, int64, error) {
	var comps []entity.Component
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Component{})
	if categorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = components.category_id").
			Where("categories.slug = ?", categorySlug)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Category").
		Order("components.pid ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&comps).Error

	return comps, total, err
}

// ListAll returns every component, optionally restricted to a category slug.
// Used by the exporter, which needs the full set.
func (r *ComponentRepository) ListAll(ctx context.Context, categorySlug string) ([]entity.Component, error) {
	var comps []entity.Component
	query := r.db.WithContext(ctx).Preload("Category")
	if categorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = components.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	err := query.Order("components.pid ASC").Find(&comps).Error
	return comps, err
}

// Create inserts a component
func (r *ComponentRepository) Create(ctx context.Context, comp *entity.Component) error {
	return r.db.WithContext(ctx).Create(comp).Error
}

// Update overwrites all stored fields of a component
func (r *ComponentRepository) Update(ctx context.Context, comp *entity.Component) error {
	return r.db.WithContext(ctx).Save(comp).Error
}

// Delete removes a component by PID
func (r *ComponentRepository) Delete(ctx context.Context, pid string) error {
	res := r.db.WithContext(ctx).Where("pid = ?", pid).Delete(&entity.Component{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes every component
func (r *ComponentRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Component{}).Error
}
