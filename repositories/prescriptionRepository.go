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

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *models.Prescription) error
	GetByID(ctx context.Context, prescriptionID string) (*models.Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Prescription, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error)
	CountByPatient(ctx context.Context, patientID string) (int64, error)
	Delete(ctx context.Context, prescriptionID string) error
}

type prescriptionRepository struct {
	cache *cache.Cache
}

func NewPrescriptionRepository(cache *cache.Cache) PrescriptionRepository {
	return &prescriptionRepository{cache: cache}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	if prescription.ID == "" {
		prescription.ID = uuid.New().String()
	}
	if err := database.DB.Create(prescription).Error; err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return r.cache.DeleteAll(ctx, "prescriptions_cache*")
}

func (r *prescriptionRepository) GetByID(ctx context.Context, prescriptionID string) (*models.Prescription, error) {
	var prescription models.Prescription
	err := preloadClinical(database.DB).First(&prescription, "id = ?", prescriptionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := preloadClinical(database.DB).
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	err := preloadClinical(database.DB).
		Where("doctor_id = ?", doctorID).
		Order("date DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) CountByPatient(ctx context.Context, patientID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Prescription{}).Where("patient_id = ?", patientID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}
	return count, nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, prescriptionID string) error {
	result := database.DB.Delete(&models.Prescription{}, "id = ?", prescriptionID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete prescription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("prescription not found")
	}
	return r.cache.DeleteAll(ctx, "prescriptions_cache*")
}

func preloadClinical(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient").
		Preload("Patient.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Preload("Doctor").
		Preload("Doctor.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		})
}
