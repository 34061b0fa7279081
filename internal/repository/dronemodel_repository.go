package repository

import (
	"context"
	"errors"

	"github.com/tedstrazimiri/droneclear/internal/model/entity"
	"gorm.io/gorm"
)

// DroneModelRepository drone model store keyed externally by PID
type DroneModelRepository struct {
	db *gorm.DB
}

func NewDroneModelRepository(db *gorm.DB) *DroneModelRepository {
	return &DroneModelRepository{db: db}
}

func (r *DroneModelRepository) FindByPID(ctx context.Context, pid string) (*entity.DroneModel, error) {
	var model entity.DroneModel
	err := r.db.WithContext(ctx).Where("pid = ?", pid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model, nil
}

func (r *DroneModelRepository) List(ctx context.Context) ([]entity.DroneModel, error) {
	var models []entity.DroneModel
	err := r.db.WithContext(ctx).Order("pid ASC").Find(&models).Error
	return models, err
}

func (r *DroneModelRepository) Create(ctx context.Context, model *entity.DroneModel) error {
	return r.db.WithContext(ctx).Create(model).Error
}

func (r *DroneModelRepository) Update(ctx context.Context, model *entity.DroneModel) error {
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *DroneModelRepository) Delete(ctx context.Context, pid string) error {
	res := r.db.WithContext(ctx).Where("pid = ?", pid).Delete(&entity.DroneModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes every drone model
func (r *DroneModelRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&entity.DroneModel{}).Error
}
