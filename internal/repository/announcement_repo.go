package repository

import (
	"attendly/internal/models"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	db *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

func (r *AnnouncementRepository) Create(a *models.Announcement) error { return r.db.Create(a).Error }
func (r *AnnouncementRepository) Update(a *models.Announcement) error { return r.db.Save(a).Error }
func (r *AnnouncementRepository) Delete(id uint) error {
	return r.db.Delete(&models.Announcement{}, id).Error
}

func (r *AnnouncementRepository) GetByID(id uint) (*models.Announcement, error) {
	var a models.Announcement
	if err := r.db.Preload("Author").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepository) List(limit, offset int) ([]models.Announcement, int64, error) {
	var total int64
	if err := r.db.Model(&models.Announcement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Announcement
	err := r.db.Preload("Author").
		Order("pinned DESC, created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, total, err
}
