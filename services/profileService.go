package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
	"encoding/json"
)

// DoctorListing is the public projection of a doctor used by the booking
// flow; it omits account internals.
type DoctorListing struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Specialization   string   `json:"specialization"`
	Department       string   `json:"department"`
	Qualifications   []string `json:"qualifications"`
	Experience       int      `json:"experience"`
	ConsultationFee  float64  `json:"consultation_fee"`
	AvailabilityDays []string `json:"availability_days"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
}

// ProfileService serves patient/doctor directory queries.
type ProfileService struct {
	profiles repositories.ProfileRepository
}

func NewProfileService(profiles repositories.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// ListPatients returns all registered patients; admin-only.
func (s *ProfileService) ListPatients(ctx context.Context) ([]models.Patient, error) {
	return s.profiles.ListPatients(ctx, 0)
}

// ListDoctors returns all doctors; admin-only.
func (s *ProfileService) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	return s.profiles.ListDoctors(ctx, 0)
}

// PublicDoctors returns the doctor directory shown to patients when
// booking.
func (s *ProfileService) PublicDoctors(ctx context.Context) ([]DoctorListing, error) {
	doctors, err := s.profiles.ListDoctors(ctx, 0)
	if err != nil {
		return nil, err
	}
	listings := make([]DoctorListing, 0, len(doctors))
	for _, d := range doctors {
		listings = append(listings, DoctorListing{
			ID:               d.ID,
			Name:             d.User.Name,
			Specialization:   d.Specialization,
			Department:       d.Department,
			Qualifications:   d.Qualifications,
			Experience:       d.Experience,
			ConsultationFee:  d.ConsultationFee,
			AvailabilityDays: d.AvailabilityDays,
			StartTime:        d.StartTime,
			EndTime:          d.EndTime,
		})
	}
	return listings, nil
}

// UpdatePatientProfile applies a partial update to the calling patient's
// own profile fields.
func (s *ProfileService) UpdatePatientProfile(ctx context.Context, userID int64, patch map[string]interface{}) (*models.Patient, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyUpdate
	}
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	// Map-based updates bypass the GORM field serializer, so slice values
	// are stored as their JSON encoding explicitly.
	for key, value := range patch {
		if slice, ok := value.([]string); ok {
			encoded, err := json.Marshal(slice)
			if err != nil {
				return nil, err
			}
			patch[key] = string(encoded)
		}
	}
	if err := s.profiles.UpdatePatient(ctx, patient.ID, patch); err != nil {
		return nil, err
	}
	return s.profiles.GetPatientByUserID(ctx, userID)
}
