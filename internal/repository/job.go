// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"gastronet/internal/models"

	"gorm.io/gorm"
)

// JobRepository defines the interface for job-offer data operations.
type JobRepository interface {
	Create(ctx context.Context, offer *models.JobOffer) error
	GetByID(ctx context.Context, id uint) (*models.JobOffer, error)
	ListActive(ctx context.Context, limit, offset int) ([]*models.JobOffer, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*models.JobOffer, error)
	UpdateStatus(ctx context.Context, id uint, status models.JobOfferStatus) error
}

// jobRepository implements JobRepository
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, offer *models.JobOffer) error {
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.JobOffer, error) {
	var offer models.JobOffer
	if err := r.db.WithContext(ctx).Preload("Owner").First(&offer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Job offer", id)
		}
		return nil, storeError(err)
	}
	return &offer, nil
}

func (r *jobRepository) ListActive(ctx context.Context, limit, offset int) ([]*models.JobOffer, error) {
	var offers []*models.JobOffer
	if err := r.db.WithContext(ctx).
		Where("status = ?", models.JobOfferStatusActive).
		Preload("Owner").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&offers).Error; err != nil {
		return nil, storeError(err)
	}
	return offers, nil
}

func (r *jobRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*models.JobOffer, error) {
	var offers []*models.JobOffer
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&offers).Error; err != nil {
		return nil, storeError(err)
	}
	return offers, nil
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id uint, status models.JobOfferStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.JobOffer{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Job offer", id)
	}
	return nil
}
