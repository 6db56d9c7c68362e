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

type MedicalRecordRepository struct {
	cache *cache.Cache
}

func NewMedicalRecordRepository(cache *cache.Cache) *MedicalRecordRepository {
	return &MedicalRecordRepository{cache: cache}
}

func (r *MedicalRecordRepository) Create(ctx context.Context, record *models.MedicalRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if err := database.DB.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return r.cache.DeleteAll(ctx, "medical_records_cache*")
}

func (r *MedicalRecordRepository) GetByID(ctx context.Context, recordID string) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := preloadClinical(database.DB).First(&record, "id = ?", recordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &record, nil
}

func (r *MedicalRecordRepository) ListByPatient(ctx context.Context, patientID string) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := preloadClinical(database.DB).
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}

func (r *MedicalRecordRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.MedicalRecord, error) {
	var records []models.MedicalRecord
	err := preloadClinical(database.DB).
		Where("doctor_id = ?", doctorID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
