package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type ReasonsRepository struct {
	db *gorm.DB
}

func NewReasonsRepository(db *gorm.DB) *ReasonsRepository {
	return &ReasonsRepository{db: db}
}

// GetAllReasons returns the reference reasons ordered by display name.
func (r *ReasonsRepository) GetAllReasons(ctx context.Context) ([]ReturnReason, error) {
	var reasons []ReturnReason
	if err := r.db.WithContext(ctx).Order("name").Find(&reasons).Error; err != nil {
		return nil, err
	}
	return reasons, nil
}

func (r *ReasonsRepository) GetByCode(ctx context.Context, code string) (*ReturnReason, error) {
	var reason ReturnReason
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&reason).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReasonNotFound
		}
		return nil, err
	}
	return &reason, nil
}

func (r *ReasonsRepository) GetByID(ctx context.Context, id uint) (*ReturnReason, error) {
	var reason ReturnReason
	if err := r.db.WithContext(ctx).First(&reason, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReasonNotFound
		}
		return nil, err
	}
	return &reason, nil
}

// CreateReason inserts a new reference reason. A taken code is ErrDuplicate.
func (r *ReasonsRepository) CreateReason(ctx context.Context, reason *ReturnReason) error {
	if reason.Severity == 0 {
		reason.Severity = 1
	}
	if err := r.db.WithContext(ctx).Create(reason).Error; err != nil {
		return classify(err)
	}
	return nil
}
