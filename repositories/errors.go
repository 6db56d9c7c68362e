package repositories

import "errors"

// Storage-level failure conditions. Services and handlers match on these to
// tell "bed already taken" apart from "bed does not exist" and friends.
var (
	ErrDuplicateBed        = errors.New("bed number already exists")
	ErrBedNotFound         = errors.New("bed not found")
	ErrBedNotAvailable     = errors.New("bed is not available")
	ErrBedHasOpenAdmission = errors.New("bed is referenced by an open admission")
	ErrAdmissionNotFound   = errors.New("admission not found")
	ErrAlreadyDischarged   = errors.New("patient already discharged")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrStatusConflict      = errors.New("status changed concurrently")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrLockNotAcquired     = errors.New("record is locked by another operation")
)
