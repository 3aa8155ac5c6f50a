package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"attendly/internal/checkin"
	"attendly/internal/domain"
	"attendly/internal/models"

	"gorm.io/gorm"
)

// RecordRepository is the gorm-backed check-in record store. It satisfies
// checkin.RecordStore, translating unique-index rejections into
// checkin.ErrDuplicate so the recorder can tell a double submit apart from a
// storage outage.
type RecordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) Append(ctx context.Context, rec *models.CheckInRecord) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if err != nil && isDuplicateKey(err) {
		return checkin.ErrDuplicate
	}
	return err
}

func (r *RecordRepository) SuccessInRange(ctx context.Context, userID uint, from, to time.Time) ([]models.CheckInRecord, error) {
	var records []models.CheckInRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND timestamp >= ? AND timestamp < ?",
			userID, domain.RecordStatusSuccess, from, to).
		Order("timestamp ASC").
		Find(&records).Error
	return records, err
}

// ListByUser returns a page of records for the history screen, newest first.
func (r *RecordRepository) ListByUser(userID uint, from, to *time.Time, limit, offset int) ([]models.CheckInRecord, int64, error) {
	q := r.db.Model(&models.CheckInRecord{}).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("timestamp >= ?", *from)
	}
	if to != nil {
		q = q.Where("timestamp < ?", *to)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var records []models.CheckInRecord
	err := q.Order("timestamp DESC").Limit(limit).Offset(offset).Find(&records).Error
	return records, total, err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL 1062 and sqlite UNIQUE violations surface as plain errors
	// depending on driver version.
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}
