package repository

import (
	"context"
	"errors"

	"attendly/internal/models"

	"gorm.io/gorm"
)

type OfficeLocationRepository struct {
	db *gorm.DB
}

func NewOfficeLocationRepository(db *gorm.DB) *OfficeLocationRepository {
	return &OfficeLocationRepository{db: db}
}

func (r *OfficeLocationRepository) Create(loc *models.OfficeLocation) error {
	return r.db.Create(loc).Error
}

func (r *OfficeLocationRepository) Update(loc *models.OfficeLocation) error {
	return r.db.Save(loc).Error
}

func (r *OfficeLocationRepository) Delete(id uint) error {
	return r.db.Delete(&models.OfficeLocation{}, id).Error
}

func (r *OfficeLocationRepository) List() ([]models.OfficeLocation, error) {
	var list []models.OfficeLocation
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

// FindByID returns (nil, nil) when no location matches, per the resolver's
// directory contract.
func (r *OfficeLocationRepository) FindByID(ctx context.Context, id uint) (*models.OfficeLocation, error) {
	var loc models.OfficeLocation
	err := r.db.WithContext(ctx).First(&loc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *OfficeLocationRepository) FindByName(ctx context.Context, name string) (*models.OfficeLocation, error) {
	var loc models.OfficeLocation
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *OfficeLocationRepository) Headquarters(ctx context.Context) (*models.OfficeLocation, error) {
	var loc models.OfficeLocation
	err := r.db.WithContext(ctx).Where("is_headquarters = ?", true).First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
