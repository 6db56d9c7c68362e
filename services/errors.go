package services

import "errors"

// Service-level failure conditions surfaced to the HTTP layer.
var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrDoctorNotFound  = errors.New("doctor not found")
	ErrProfileNotFound = errors.New("no profile found for this account")
	ErrAdmissionOpen   = errors.New("patient already has an open admission")
	ErrNotOwner        = errors.New("resource does not belong to the caller")
	ErrEmptyUpdate     = errors.New("no fields to update")

	ErrEmailTaken            = errors.New("email is already registered")
	ErrDoctorProfileRequired = errors.New("doctor profile data is required")
	ErrUnknownRole           = errors.New("unknown role")
	ErrRoleNotAllowed        = errors.New("role cannot be self-assigned")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidResetCode      = errors.New("invalid or expired reset code")

	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrInvoicePaid     = errors.New("invoice is already paid")
	ErrItemNotFound    = errors.New("inventory item not found")
)
