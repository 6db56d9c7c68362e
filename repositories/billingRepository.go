package repositories

import (
	"CarePoint/cache"
	"CarePoint/database"
	"CarePoint/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BillingRepository interface {
	Create(ctx context.Context, billing *models.Billing) error
	GetByID(ctx context.Context, billingID string) (*models.Billing, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Billing, error)
	ListAll(ctx context.Context) ([]models.Billing, error)
	Update(ctx context.Context, billingID string, patch map[string]interface{}) error
	Delete(ctx context.Context, billingID string) error
	CountPendingByPatient(ctx context.Context, patientID string) (int64, error)
}

type billingRepository struct {
	cache *cache.Cache
}

func NewBillingRepository(cache *cache.Cache) BillingRepository {
	return &billingRepository{cache: cache}
}

func (r *billingRepository) Create(ctx context.Context, billing *models.Billing) error {
	if billing.ID == "" {
		billing.ID = uuid.New().String()
	}
	if billing.PaymentStatus == "" {
		billing.PaymentStatus = models.BillingPending
	}
	if err := database.DB.Create(billing).Error; err != nil {
		return fmt.Errorf("failed to create billing: %w", err)
	}
	return r.cache.DeleteAll(ctx, "billings_cache*")
}

func (r *billingRepository) GetByID(ctx context.Context, billingID string) (*models.Billing, error) {
	var billing models.Billing
	err := database.DB.
		Preload("Patient").
		Preload("Patient.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		First(&billing, "id = ?", billingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing: %w", err)
	}
	return &billing, nil
}

func (r *billingRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Billing, error) {
	var billings []models.Billing
	err := database.DB.
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&billings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list billings: %w", err)
	}
	return billings, nil
}

func (r *billingRepository) ListAll(ctx context.Context) ([]models.Billing, error) {
	var billings []models.Billing
	err := database.DB.
		Preload("Patient").
		Preload("Patient.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Order("created_at DESC").
		Find(&billings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list billings: %w", err)
	}
	return billings, nil
}

func (r *billingRepository) Update(ctx context.Context, billingID string, patch map[string]interface{}) error {
	result := database.DB.Model(&models.Billing{}).Where("id = ?", billingID).Updates(patch)
	if result.Error != nil {
		return fmt.Errorf("failed to update billing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("billing not found")
	}
	return r.cache.DeleteAll(ctx, "billings_cache*")
}

func (r *billingRepository) Delete(ctx context.Context, billingID string) error {
	result := database.DB.Delete(&models.Billing{}, "id = ?", billingID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete billing: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("billing not found")
	}
	return r.cache.DeleteAll(ctx, "billings_cache*")
}

func (r *billingRepository) CountPendingByPatient(ctx context.Context, patientID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Billing{}).
		Where("patient_id = ? AND payment_status = ?", patientID, models.BillingPending).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pending billings: %w", err)
	}
	return count, nil
}
