package repository

import (
	"attendly/internal/models"

	"gorm.io/gorm"
)

type BranchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) *BranchRepository {
	return &BranchRepository{db: db}
}

func (r *BranchRepository) Create(b *models.Branch) error { return r.db.Create(b).Error }
func (r *BranchRepository) Update(b *models.Branch) error { return r.db.Save(b).Error }
func (r *BranchRepository) Delete(id uint) error          { return r.db.Delete(&models.Branch{}, id).Error }

func (r *BranchRepository) GetByID(id uint) (*models.Branch, error) {
	var b models.Branch
	if err := r.db.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BranchRepository) List() ([]models.Branch, error) {
	var list []models.Branch
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}
