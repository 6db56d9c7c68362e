package repositories

import (
	"CarePoint/cache"
	"CarePoint/database"
	"CarePoint/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BedCacheExpiry = 24 * time.Hour
)

// BedRepository is the bed registry: physical bed inventory and its
// occupancy state. Status changes driven by the admission lifecycle go
// through AdmissionRepository; this interface covers administrative CRUD
// and lookups.
type BedRepository interface {
	Create(ctx context.Context, bed *models.Bed) error
	GetByNumber(ctx context.Context, bedNumber string) (*models.Bed, error)
	GetByNumberAndType(ctx context.Context, bedNumber, bedType string) (*models.Bed, error)
	Find(ctx context.Context, status, bedType string) ([]models.Bed, error)
	UpdateByNumber(ctx context.Context, bedNumber string, patch map[string]interface{}) (*models.Bed, error)
	DeleteByNumber(ctx context.Context, bedNumber string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type bedRepository struct {
	cache *cache.Cache
}

func NewBedRepository(cache *cache.Cache) BedRepository {
	return &bedRepository{cache: cache}
}

func (r *bedRepository) Create(ctx context.Context, bed *models.Bed) error {
	// New beds have no id yet, so creation serializes on the bed number in
	// its own key space.
	lockKey := fmt.Sprintf("bed_create_lock:%s", bed.BedNumber)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return ErrLockNotAcquired
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var count int64
	if err := database.DB.Model(&models.Bed{}).Where("bed_number = ?", bed.BedNumber).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check bed number: %w", err)
	}
	if count > 0 {
		return ErrDuplicateBed
	}

	if bed.ID == "" {
		bed.ID = uuid.New().String()
	}
	if bed.Status == "" {
		bed.Status = models.BedAvailable
	}
	if err := database.DB.Create(bed).Error; err != nil {
		return fmt.Errorf("failed to create bed: %w", err)
	}
	return r.invalidateCache(ctx)
}

func (r *bedRepository) GetByNumber(ctx context.Context, bedNumber string) (*models.Bed, error) {
	var bed models.Bed
	err := database.DB.Where("bed_number = ?", bedNumber).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bed: %w", err)
	}
	return &bed, nil
}

func (r *bedRepository) GetByNumberAndType(ctx context.Context, bedNumber, bedType string) (*models.Bed, error) {
	var bed models.Bed
	err := database.DB.Where("bed_number = ? AND type = ?", bedNumber, bedType).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bed: %w", err)
	}
	return &bed, nil
}

func (r *bedRepository) Find(ctx context.Context, status, bedType string) ([]models.Bed, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getListCacheKey(status, bedType)
	cachedBeds, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBeds != "" {
		var beds []models.Bed
		if err := json.Unmarshal([]byte(cachedBeds), &beds); err == nil {
			return beds, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get beds from cache: %v", err)
	}

	query := database.DB.Model(&models.Bed{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if bedType != "" {
		query = query.Where("type = ?", bedType)
	}

	var beds []models.Bed
	if err := query.Order("bed_number ASC").Find(&beds).Error; err != nil {
		return nil, fmt.Errorf("failed to list beds: %w", err)
	}

	bedsJSON, err := json.Marshal(beds)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal beds: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, bedsJSON, BedCacheExpiry); err != nil {
		log.Printf("Failed to set beds in cache: %v", err)
	}

	return beds, nil
}

func (r *bedRepository) UpdateByNumber(ctx context.Context, bedNumber string, patch map[string]interface{}) (*models.Bed, error) {
	bed, err := r.GetByNumber(ctx, bedNumber)
	if err != nil {
		return nil, err
	}
	if bed == nil {
		return nil, ErrBedNotFound
	}

	// Same lock key as the admission lifecycle, so admin writes serialize
	// against Admit and Discharge on this bed.
	lockKey := fmt.Sprintf("bed_lock:%s", bed.ID)
	lockValue := uuid.New().String()
	if err := acquireLockWithRetry(ctx, lockKey, lockValue); err != nil {
		return nil, err
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	result := database.DB.Model(&models.Bed{}).Where("id = ?", bed.ID).Updates(patch)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update bed: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrBedNotFound
	}
	if err := r.invalidateCache(ctx); err != nil {
		return nil, err
	}

	// bed_number itself may be part of the patch
	lookup := bedNumber
	if v, ok := patch["bed_number"].(string); ok && v != "" {
		lookup = v
	}
	return r.GetByNumber(ctx, lookup)
}

func (r *bedRepository) DeleteByNumber(ctx context.Context, bedNumber string) error {
	bed, err := r.GetByNumber(ctx, bedNumber)
	if err != nil {
		return err
	}
	if bed == nil {
		return ErrBedNotFound
	}

	// Same lock key as the admission lifecycle, so the referential check
	// cannot interleave with a concurrent Admit on this bed. The check and
	// the delete also share a transaction for the same reason.
	lockKey := fmt.Sprintf("bed_lock:%s", bed.ID)
	lockValue := uuid.New().String()
	if err := acquireLockWithRetry(ctx, lockKey, lockValue); err != nil {
		return err
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// Refuse to delete a bed that still holds an open admission.
		var open int64
		err := tx.Model(&models.Admission{}).
			Where("bed_id = ? AND discharge_date IS NULL", bed.ID).
			Count(&open).Error
		if err != nil {
			return fmt.Errorf("failed to check open admissions: %w", err)
		}
		if open > 0 {
			return ErrBedHasOpenAdmission
		}

		if err := tx.Delete(&models.Bed{}, "id = ?", bed.ID).Error; err != nil {
			return fmt.Errorf("failed to delete bed: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return r.invalidateCache(ctx)
}

func (r *bedRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	query := database.DB.Model(&models.Bed{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count beds: %w", err)
	}
	return count, nil
}

func (r *bedRepository) invalidateCache(ctx context.Context) error {
	return r.cache.DeleteAll(ctx, "beds_cache*")
}

func (r *bedRepository) getListCacheKey(status, bedType string) string {
	return fmt.Sprintf("beds_cache:%s:%s", status, bedType)
}

// acquireLockWithRetry acquires a Redis lock, retrying a few times before
// giving up. Shared by the repositories that serialize writes per record.
// Exhausting the retries without a Redis failure reports ErrLockNotAcquired.
func acquireLockWithRetry(ctx context.Context, lockKey, lockValue string) error {
	maxRetries := 3
	retryDelay := 2 * time.Second
	var err error
	for i := 0; i < maxRetries; i++ {
		var locked bool
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			return nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	return ErrLockNotAcquired
}
