package repository

import (
	"attendly/internal/domain"
	"attendly/internal/models"

	"gorm.io/gorm"
)

type LeaveRepository struct {
	db *gorm.DB
}

func NewLeaveRepository(db *gorm.DB) *LeaveRepository {
	return &LeaveRepository{db: db}
}

func (r *LeaveRepository) Create(l *models.LeaveRequest) error { return r.db.Create(l).Error }
func (r *LeaveRepository) Update(l *models.LeaveRequest) error { return r.db.Save(l).Error }

func (r *LeaveRepository) GetByID(id uint) (*models.LeaveRequest, error) {
	var l models.LeaveRequest
	if err := r.db.Preload("User").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LeaveRepository) ListByUser(userID uint) ([]models.LeaveRequest, error) {
	var list []models.LeaveRequest
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error
	return list, err
}

// ListPending returns requests awaiting review, oldest first.
func (r *LeaveRepository) ListPending() ([]models.LeaveRequest, error) {
	var list []models.LeaveRequest
	err := r.db.Preload("User").Where("status = ?", domain.LeaveStatusPending).Order("created_at ASC").Find(&list).Error
	return list, err
}
