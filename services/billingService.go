package services

import (
	"CarePoint/models"
	"CarePoint/repositories"
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateInvoiceRequest is the admin-facing payload for billing a patient.
type CreateInvoiceRequest struct {
	PatientID string               `json:"patient_id"`
	Services  []models.BillingItem `json:"services"`
	DueDate   time.Time            `json:"due_date"`
	Notes     string               `json:"notes"`
}

// BillingService issues and settles patient invoices.
type BillingService struct {
	profiles repositories.ProfileRepository
	billing  repositories.BillingRepository
}

func NewBillingService(profiles repositories.ProfileRepository, billing repositories.BillingRepository) *BillingService {
	return &BillingService{profiles: profiles, billing: billing}
}

// CreateInvoice totals the billed services and creates a Pending invoice.
// The invoice number is derived from the creation timestamp.
func (s *BillingService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*models.Billing, error) {
	err := validation.Errors{
		"patient_id": validation.Validate(req.PatientID, validation.Required),
		"services":   validation.Validate(req.Services, validation.Required, validation.Length(1, 0)),
		"due_date":   validation.Validate(req.DueDate, validation.Required),
	}.Filter()
	if err != nil {
		return nil, err
	}

	patient, err := s.profiles.GetPatientByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	var total float64
	for _, item := range req.Services {
		total += item.Amount
	}

	invoice := &models.Billing{
		PatientID:     patient.ID,
		Services:      req.Services,
		TotalAmount:   total,
		PaymentStatus: models.BillingPending,
		DueDate:       req.DueDate,
		InvoiceNumber: fmt.Sprintf("INV-%d", time.Now().UnixNano()),
		Notes:         req.Notes,
	}
	if err := s.billing.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// RecordPayment marks an invoice as Paid with the given method.
func (s *BillingService) RecordPayment(ctx context.Context, billingID, method string) (*models.Billing, error) {
	invoice, err := s.billing.GetByID(ctx, billingID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	if invoice.PaymentStatus == models.BillingPaid {
		return nil, ErrInvoicePaid
	}

	now := time.Now()
	patch := map[string]interface{}{
		"payment_status": models.BillingPaid,
		"payment_method": method,
		"payment_date":   now,
	}
	if err := s.billing.Update(ctx, billingID, patch); err != nil {
		return nil, err
	}
	return s.billing.GetByID(ctx, billingID)
}

// UpdateInvoice applies a partial update; admin-only.
func (s *BillingService) UpdateInvoice(ctx context.Context, billingID string, patch map[string]interface{}) (*models.Billing, error) {
	if len(patch) == 0 {
		return nil, ErrEmptyUpdate
	}
	invoice, err := s.billing.GetByID(ctx, billingID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}
	if err := s.billing.Update(ctx, billingID, patch); err != nil {
		return nil, err
	}
	return s.billing.GetByID(ctx, billingID)
}

// DeleteInvoice removes an invoice; admin-only.
func (s *BillingService) DeleteInvoice(ctx context.Context, billingID string) error {
	invoice, err := s.billing.GetByID(ctx, billingID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return ErrInvoiceNotFound
	}
	return s.billing.Delete(ctx, billingID)
}

// ListForPatient returns the calling patient's invoices.
func (s *BillingService) ListForPatient(ctx context.Context, userID int64) ([]models.Billing, error) {
	patient, err := s.profiles.GetPatientByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return s.billing.ListByPatient(ctx, patient.ID)
}

// ListAll returns every invoice; admin-only.
func (s *BillingService) ListAll(ctx context.Context) ([]models.Billing, error) {
	return s.billing.ListAll(ctx)
}
