// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"gastronet/internal/cache"
	"gastronet/internal/models"

	"gorm.io/gorm"
)

// SupplierRepository defines the interface for supplier directory operations.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uint) (*models.Supplier, error)
	List(ctx context.Context) ([]models.Supplier, error)
	Search(ctx context.Context, query string) ([]models.Supplier, error)
	Claim(ctx context.Context, supplierID, userID uint) error
}

// supplierRepository implements SupplierRepository
type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *models.Supplier) error {
	if err := r.db.WithContext(ctx).Create(supplier).Error; err != nil {
		return storeError(err)
	}
	cache.InvalidateSuppliers(ctx)
	return nil
}

func (r *supplierRepository) GetByID(ctx context.Context, id uint) (*models.Supplier, error) {
	var supplier models.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Supplier", id)
		}
		return nil, storeError(err)
	}
	return &supplier, nil
}

// List returns the full directory. The catalog is small and read-heavy, so
// it is cached as one entry.
func (r *supplierRepository) List(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	err := cache.Aside(ctx, cache.SupplierListKey(), &suppliers, cache.SupplierTTL, func() error {
		if err := r.db.WithContext(ctx).Order("name ASC").Find(&suppliers).Error; err != nil {
			return storeError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *supplierRepository) Search(ctx context.Context, query string) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern).
		Order("name ASC").
		Find(&suppliers).Error; err != nil {
		return nil, storeError(err)
	}
	return suppliers, nil
}

// Claim links a directory entry to a user account. Fails if the entry is
// already claimed by someone else.
func (r *supplierRepository) Claim(ctx context.Context, supplierID, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&models.Supplier{}).
		Where("id = ? AND (claimed_by_id IS NULL OR claimed_by_id = ?)", supplierID, userID).
		Update("claimed_by_id", userID)
	if res.Error != nil {
		return storeError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewValidationError("Supplier profile already claimed")
	}
	cache.InvalidateSuppliers(ctx)
	return nil
}
