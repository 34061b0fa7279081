package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"gorm.io/gorm"
)

// CategoryRepository component category store
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// CategoryCount category projection with its component count
type CategoryCount struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// ListWithCounts returns all categories with per-category component counts,
// ordered by name
func (r *CategoryRepository) ListWithCounts(ctx context.Context) ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.WithContext(ctx).
		Model(&entity.Category{}).
		Select("categories.slug, categories.name, count(components.id) as count").
		Joins("LEFT JOIN components ON components.category_id = categories.id").
		Group("categories.id, categories.slug, categories.name").
		Order("categories.name ASC").
		Scan(&rows).Error
	return rows, err
}

// FindBySlug resolves a category by its slug
func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var cat entity.Category
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// GetOrCreate resolves a category by slug, creating it with a title-cased
// display name derived from the slug when absent
func (r *CategoryRepository) GetOrCreate(ctx context.Context, slug string) (*entity.Category, error) {
	cat, err := r.FindBySlug(ctx, slug)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	cat = &entity.Category{
		ID:   generateID(),
		Slug: slug,
		Name: DisplayName(slug),
	}
	if err := r.db.WithContext(ctx).Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

// Create inserts a category
func (r *CategoryRepository) Create(ctx context.Context, cat *entity.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

// DeleteAll wipes every category. Components cascade at the service layer;
// the wipe order is components, drone models, then categories.
func (r *CategoryRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.Category{}).Error
}

// DisplayName turns a slug like "flight_controllers" into "Flight Controllers"
func DisplayName(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
