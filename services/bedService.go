package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"CarePoint/utils"
	"context"
)

// BedService manages the bed registry.
type BedService struct {
	beds repositories.BedRepository
}

func NewBedService(beds repositories.BedRepository) *BedService {
	return &BedService{beds: beds}
}

// CreateBed registers a new bed. The bed number must be unique across the
// registry; a duplicate fails with ErrDuplicateBed.
func (s *BedService) CreateBed(ctx context.Context, bed *models.Bed) (*models.Bed, error) {
	if err := utils.ValidateBedData(*bed); err != nil {
		return nil, err
	}
	if bed.Status == "" {
		bed.Status = models.BedAvailable
	}
	if err := s.beds.Create(ctx, bed); err != nil {
		return nil, err
	}
	return bed, nil
}

// GetBed fetches a single bed by its bed number.
func (s *BedService) GetBed(ctx context.Context, bedNumber string) (*models.Bed, error) {
	bed, err := s.beds.GetByNumber(ctx, bedNumber)
	if err != nil {
		return nil, err
	}
	if bed == nil {
		return nil, repositories.ErrBedNotFound
	}
	return bed, nil
}

// ListBeds returns beds filtered by status and/or type; empty filters match
// everything.
func (s *BedService) ListBeds(ctx context.Context, status, bedType string) ([]models.Bed, error) {
	return s.beds.Find(ctx, status, bedType)
}

// ListAvailableBeds returns the beds a patient can request, optionally
// narrowed by type.
func (s *BedService) ListAvailableBeds(ctx context.Context, bedType string) ([]models.Bed, error) {
	return s.beds.Find(ctx, models.BedAvailable, bedType)
}

// UpdateBed applies a partial update to the bed identified by bedNumber.
// Status changes here are administrative (e.g. Maintenance); the admission
// lifecycle owns the Available/Reserved transitions.
func (s *BedService) UpdateBed(ctx context.Context, bedNumber string, patch map[string]interface{}) (*models.Bed, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyUpdate
	}
	return s.beds.UpdateByNumber(ctx, bedNumber, patch)
}

// DeleteBed removes a bed from the registry. Beds referenced by an open
// admission cannot be deleted.
func (s *BedService) DeleteBed(ctx context.Context, bedNumber string) error {
	return s.beds.DeleteByNumber(ctx, bedNumber)
}

// BedOccupancy reports headline counts for dashboards.
type BedOccupancy struct {
	Total       int64 `json:"total"`
	Available   int64 `json:"available"`
	Occupied    int64 `json:"occupied"`
	Maintenance int64 `json:"maintenance"`
}

// Occupancy computes the current bed counts grouped by status. Reserved
// beds count as occupied.
func (s *BedService) Occupancy(ctx context.Context) (*BedOccupancy, error) {
	available, err := s.beds.CountByStatus(ctx, models.BedAvailable)
	if err != nil {
		return nil, err
	}
	reserved, err := s.beds.CountByStatus(ctx, models.BedReserved)
	if err != nil {
		return nil, err
	}
	occupied, err := s.beds.CountByStatus(ctx, models.BedOccupied)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.beds.CountByStatus(ctx, models.BedMaintenance)
	if err != nil {
		return nil, err
	}
	return &BedOccupancy{
		Total:       available + reserved + occupied + maintenance,
		Available:   available,
		Occupied:    reserved + occupied,
		Maintenance: maintenance,
	}, nil
}
