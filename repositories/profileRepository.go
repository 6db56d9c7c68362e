package repositories

import (
	"CarePoint/database"
	"CarePoint/models"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileRepository resolves role profiles (Patient/Doctor/Admin) from user
// accounts and serves the aggregate counts the dashboards display.
type ProfileRepository interface {
	CreatePatient(ctx context.Context, patient *models.Patient) error
	CreateDoctor(ctx context.Context, doctor *models.Doctor) error
	CreateAdmin(ctx context.Context, admin *models.Admin) error
	GetPatientByUserID(ctx context.Context, userID int64) (*models.Patient, error)
	GetDoctorByUserID(ctx context.Context, userID int64) (*models.Doctor, error)
	GetAdminByUserID(ctx context.Context, userID int64) (*models.Admin, error)
	GetPatientByID(ctx context.Context, patientID string) (*models.Patient, error)
	GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	ListPatients(ctx context.Context, limit int) ([]models.Patient, error)
	ListDoctors(ctx context.Context, limit int) ([]models.Doctor, error)
	UpdatePatient(ctx context.Context, patientID string, patch map[string]interface{}) error
	CountPatients(ctx context.Context) (int64, error)
	CountDoctors(ctx context.Context) (int64, error)
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) CreatePatient(ctx context.Context, patient *models.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	return database.DB.Create(patient).Error
}

func (r *profileRepository) CreateDoctor(ctx context.Context, doctor *models.Doctor) error {
	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	return database.DB.Create(doctor).Error
}

func (r *profileRepository) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	return database.DB.Create(admin).Error
}

func (r *profileRepository) GetPatientByUserID(ctx context.Context, userID int64) (*models.Patient, error) {
	var patient models.Patient
	err := database.DB.Preload("User").Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}
	return &patient, nil
}

func (r *profileRepository) GetDoctorByUserID(ctx context.Context, userID int64) (*models.Doctor, error) {
	var doctor models.Doctor
	err := database.DB.Preload("User").Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return &doctor, nil
}

func (r *profileRepository) GetAdminByUserID(ctx context.Context, userID int64) (*models.Admin, error) {
	var admin models.Admin
	err := database.DB.Preload("User").Where("user_id = ?", userID).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin profile: %w", err)
	}
	return &admin, nil
}

func (r *profileRepository) GetPatientByID(ctx context.Context, patientID string) (*models.Patient, error) {
	var patient models.Patient
	err := database.DB.Preload("User").First(&patient, "id = ?", patientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *profileRepository) GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	var doctor models.Doctor
	err := database.DB.Preload("User").First(&doctor, "id = ?", doctorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *profileRepository) ListPatients(ctx context.Context, limit int) ([]models.Patient, error) {
	query := database.DB.Preload("User").Order("registration_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var patients []models.Patient
	if err := query.Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *profileRepository) ListDoctors(ctx context.Context, limit int) ([]models.Doctor, error) {
	query := database.DB.Preload("User").Order("join_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *profileRepository) UpdatePatient(ctx context.Context, patientID string, patch map[string]interface{}) error {
	result := database.DB.Model(&models.Patient{}).Where("id = ?", patientID).Updates(patch)
	if result.Error != nil {
		return fmt.Errorf("failed to update patient profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("patient not found")
	}
	return nil
}

func (r *profileRepository) CountPatients(ctx context.Context) (int64, error) {
	var count int64
	if err := database.DB.Model(&models.Patient{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *profileRepository) CountDoctors(ctx context.Context) (int64, error) {
	var count int64
	if err := database.DB.Model(&models.Doctor{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}
