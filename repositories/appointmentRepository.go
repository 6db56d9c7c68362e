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
	AppointmentCacheExpiry = 24 * time.Hour
)

// AppointmentRepository stores consultations booked by patients with
// doctors. Status changes use an optimistic conditional update so
// concurrent edits never silently clobber each other.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID, fromStatus, toStatus string) error
	CountByDoctor(ctx context.Context, doctorID string) (int64, error)
}

type appointmentRepository struct {
	cache *cache.Cache
}

func NewAppointmentRepository(cache *cache.Cache) AppointmentRepository {
	return &appointmentRepository{cache: cache}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	if appointment.Status == "" {
		appointment.Status = models.AppointmentScheduled
	}
	if err := database.DB.Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return r.invalidateCache(ctx)
}

func (r *appointmentRepository) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := preloadAppointment(database.DB).First(&appointment, "id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.list(ctx, fmt.Sprintf("appointments_cache:patient:%s", patientID), "patient_id = ?", patientID)
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.list(ctx, fmt.Sprintf("appointments_cache:doctor:%s", doctorID), "doctor_id = ?", doctorID)
}

func (r *appointmentRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return r.list(ctx, "appointments_cache", "")
}

func (r *appointmentRepository) list(ctx context.Context, cacheKey, cond string, args ...interface{}) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cachedAppointments, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAppointments != "" {
		var appointments []models.Appointment
		if err := json.Unmarshal([]byte(cachedAppointments), &appointments); err == nil {
			return appointments, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get appointments from cache: %v", err)
	}

	query := preloadAppointment(database.DB)
	if cond != "" {
		query = query.Where(cond, args...)
	}

	var appointments []models.Appointment
	if err := query.Order("date DESC").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	appointmentsJSON, err := json.Marshal(appointments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal appointments: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, appointmentsJSON, AppointmentCacheExpiry); err != nil {
		log.Printf("Failed to set appointments in cache: %v", err)
	}

	return appointments, nil
}

// UpdateStatus moves an appointment from one status to another. The update
// only succeeds if the appointment still holds fromStatus at write time.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, appointmentID, fromStatus, toStatus string) error {
	appointment, err := r.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	result := database.DB.Model(&models.Appointment{}).
		Where("id = ? AND status = ?", appointmentID, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return fmt.Errorf("failed to update appointment status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return r.invalidateCache(ctx)
}

func (r *appointmentRepository) CountByDoctor(ctx context.Context, doctorID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Appointment{}).Where("doctor_id = ?", doctorID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

func (r *appointmentRepository) invalidateCache(ctx context.Context) error {
	return r.cache.DeleteAll(ctx, "appointments_cache*")
}

func preloadAppointment(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Patient").
		Preload("Patient.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		}).
		Preload("Doctor").
		Preload("Doctor.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name, email")
		})
}
