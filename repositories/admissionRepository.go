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
	AdmissionCacheExpiry = 24 * time.Hour
)

// AdmissionRepository coordinates bed allocation with admission record
// creation and closure. Admit and Discharge are the two atomic commands of
// the lifecycle: each runs inside a per-bed Redis lock and a database
// transaction so the bed status and the admission record never diverge.
type AdmissionRepository interface {
	Admit(ctx context.Context, admission *models.Admission) error
	Discharge(ctx context.Context, admissionID string) (*models.Admission, error)
	GetByID(ctx context.Context, admissionID string) (*models.Admission, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Admission, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Admission, error)
	ListAll(ctx context.Context) ([]models.Admission, error)
	HasOpenForPatient(ctx context.Context, patientID string) (bool, error)
	CountOpenByDoctor(ctx context.Context, doctorID string) (int64, error)
}

type admissionRepository struct {
	cache *cache.Cache
}

func NewAdmissionRepository(cache *cache.Cache) AdmissionRepository {
	return &admissionRepository{cache: cache}
}

// Admit reserves the referenced bed and creates the admission record in one
// transaction. The bed update is conditional on the bed still being
// Available at write time; a concurrent winner leaves zero rows affected
// and the whole command fails with ErrBedNotAvailable, creating nothing.
func (r *admissionRepository) Admit(ctx context.Context, admission *models.Admission) error {
	lockKey := fmt.Sprintf("bed_lock:%s", admission.BedID)
	lockValue := uuid.New().String()
	if err := acquireLockWithRetry(ctx, lockKey, lockValue); err != nil {
		return err
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if admission.ID == "" {
		admission.ID = uuid.New().String()
	}
	if admission.AdmissionDate.IsZero() {
		admission.AdmissionDate = time.Now()
	}
	if admission.Status == "" {
		admission.Status = models.AdmissionAdmitted
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Bed{}).
			Where("id = ? AND status = ?", admission.BedID, models.BedAvailable).
			Update("status", models.BedReserved)
		if result.Error != nil {
			return fmt.Errorf("failed to reserve bed: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrBedNotAvailable
		}
		if err := tx.Create(admission).Error; err != nil {
			return fmt.Errorf("failed to create admission: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.invalidateCache(ctx)
}

// Discharge closes the admission and releases its bed in one transaction.
// The admission update is conditional on the discharge date still being
// unset; losing that race surfaces as ErrAlreadyDischarged. A missing bed
// does not block the discharge: the release step is skipped with a logged
// warning.
func (r *admissionRepository) Discharge(ctx context.Context, admissionID string) (*models.Admission, error) {
	admission, err := r.GetByID(ctx, admissionID)
	if err != nil {
		return nil, err
	}
	if admission == nil {
		return nil, ErrAdmissionNotFound
	}
	if admission.DischargeDate != nil {
		return nil, ErrAlreadyDischarged
	}

	lockKey := fmt.Sprintf("bed_lock:%s", admission.BedID)
	lockValue := uuid.New().String()
	if err := acquireLockWithRetry(ctx, lockKey, lockValue); err != nil {
		return nil, err
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Admission{}).
			Where("id = ? AND discharge_date IS NULL", admissionID).
			Updates(map[string]interface{}{
				"discharge_date": now,
				"status":         models.AdmissionDischarged,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to discharge admission: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyDischarged
		}

		release := tx.Model(&models.Bed{}).
			Where("id = ?", admission.BedID).
			Update("status", models.BedAvailable)
		if release.Error != nil {
			return fmt.Errorf("failed to release bed: %w", release.Error)
		}
		if release.RowsAffected == 0 {
			log.Printf("Warning: bed %s referenced by admission %s no longer exists; release skipped", admission.BedID, admissionID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.invalidateCache(ctx); err != nil {
		return nil, err
	}

	admission.DischargeDate = &now
	admission.Status = models.AdmissionDischarged
	return admission, nil
}

func (r *admissionRepository) GetByID(ctx context.Context, admissionID string) (*models.Admission, error) {
	var admission models.Admission
	err := preloadAdmission(database.DB).First(&admission, "id = ?", admissionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}
	return &admission, nil
}

func (r *admissionRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Admission, error) {
	return r.list(ctx, r.getScopedCacheKey("patient", patientID), "patient_id = ?", patientID)
}

func (r *admissionRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Admission, error) {
	return r.list(ctx, r.getScopedCacheKey("doctor", doctorID), "admitted_by = ?", doctorID)
}

func (r *admissionRepository) ListAll(ctx context.Context) ([]models.Admission, error) {
	return r.list(ctx, "admissions_cache", "")
}

func (r *admissionRepository) list(ctx context.Context, cacheKey, cond string, args ...interface{}) ([]models.Admission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cachedAdmissions, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAdmissions != "" {
		var admissions []models.Admission
		if err := json.Unmarshal([]byte(cachedAdmissions), &admissions); err == nil {
			return admissions, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get admissions from cache: %v", err)
	}

	query := preloadAdmission(database.DB)
	if cond != "" {
		query = query.Where(cond, args...)
	}

	var admissions []models.Admission
	if err := query.Order("admission_date DESC").Find(&admissions).Error; err != nil {
		return nil, fmt.Errorf("failed to list admissions: %w", err)
	}

	admissionsJSON, err := json.Marshal(admissions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal admissions: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, admissionsJSON, AdmissionCacheExpiry); err != nil {
		log.Printf("Failed to set admissions in cache: %v", err)
	}

	return admissions, nil
}

func (r *admissionRepository) HasOpenForPatient(ctx context.Context, patientID string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.Admission{}).
		Where("patient_id = ? AND discharge_date IS NULL", patientID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count open admissions: %w", err)
	}
	return count > 0, nil
}

func (r *admissionRepository) CountOpenByDoctor(ctx context.Context, doctorID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Admission{}).
		Where("admitted_by = ? AND discharge_date IS NULL", doctorID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count open admissions: %w", err)
	}
	return count, nil
}

func (r *admissionRepository) invalidateCache(ctx context.Context) error {
	if err := r.cache.DeleteAll(ctx, "admissions_cache*"); err != nil {
		return fmt.Errorf("failed to delete admissions cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "beds_cache*")
}

func (r *admissionRepository) getScopedCacheKey(scope, id string) string {
	return fmt.Sprintf("admissions_cache:%s:%s", scope, id)
}

func preloadAdmission(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient").
		Preload("Patient.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Preload("Doctor").
		Preload("Doctor.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Preload("Bed")
}
