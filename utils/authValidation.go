package utils

import (
	"CarePoint/models"
	"errors"
	"log"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrInvalidResetCode   = errors.New("invalid reset code")
)

// ValidateUserData validates user data using ozzo-validation.
func ValidateUserData(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
		validation.Field(&user.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateBedData validates a bed payload before it hits the registry.
func ValidateBedData(bed models.Bed) error {
	err := validation.ValidateStruct(&bed,
		validation.Field(&bed.BedNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&bed.Type, validation.Required, validation.In(
			models.BedTypeGeneral,
			models.BedTypeSemiPrivate,
			models.BedTypePrivate,
			models.BedTypeICU,
			models.BedTypeEmergency,
		)),
		validation.Field(&bed.Ward, validation.Required),
		validation.Field(&bed.Status, validation.In(
			models.BedAvailable,
			models.BedReserved,
			models.BedOccupied,
			models.BedMaintenance,
		)),
		validation.Field(&bed.Price, validation.Min(0.0)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// AdmissionRequestData is the patient-side admission request payload.
type AdmissionRequestData struct {
	DoctorID  string `json:"doctor_id"`
	Diagnosis string `json:"diagnosis"`
	BedNumber string `json:"bed_number"`
	BedType   string `json:"bed_type"`
	Notes     string `json:"notes"`
}

// ValidateAdmissionRequest validates an admission request payload.
func ValidateAdmissionRequest(req AdmissionRequestData) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.DoctorID, validation.Required),
		validation.Field(&req.Diagnosis, validation.Required, validation.Length(2, 0)),
		validation.Field(&req.BedNumber, validation.Required),
		validation.Field(&req.BedType, validation.Required, validation.In(
			models.BedTypeGeneral,
			models.BedTypeSemiPrivate,
			models.BedTypePrivate,
			models.BedTypeICU,
			models.BedTypeEmergency,
		)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidatePasswordReset validates the reset code and new password.
func ValidatePasswordReset(resetCode, newPassword string) error {
	err := validation.Errors{
		"resetCode": validation.Validate(resetCode, validation.Required.Error("invalid reset code")),
		"password":  validation.Validate(newPassword, validation.Required, validation.By(validatePassword)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// ValidateNewPassword validates a password on its own, outside the reset
// flow.
func ValidateNewPassword(password string) error {
	err := validation.Validate(password, validation.Required, validation.By(validatePassword))
	if err != nil {
		log.Printf("Validation error: %v\n", err)
	}
	return err
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
