package utils

import (
	"CarePoint/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUser() models.User {
	return models.User{
		Name:     "Jordan Blake",
		Email:    "jordan@example.com",
		Password: "Sup3r$ecret",
	}
}

func TestValidateUserData(t *testing.T) {
	require.NoError(t, ValidateUserData(validUser()))

	badEmail := validUser()
	badEmail.Email = "not-an-email"
	assert.Error(t, ValidateUserData(badEmail))

	shortName := validUser()
	shortName.Name = "J"
	assert.Error(t, ValidateUserData(shortName))

	noPassword := validUser()
	noPassword.Password = ""
	assert.Error(t, ValidateUserData(noPassword))
}

func TestPasswordComplexity(t *testing.T) {
	cases := map[string]bool{
		"Sup3r$ecret":    true,
		"short$1A":       true,
		"alllowercase1$": false,
		"NOLOWERCASE1$":  false,
		"NoDigits$$":     false,
		"NoSpecial12":    false,
		"2Shrt$a":        false,
	}
	for password, ok := range cases {
		err := ValidateNewPassword(password)
		if ok {
			assert.NoError(t, err, password)
		} else {
			assert.Error(t, err, password)
		}
	}
}

func TestValidateBedData(t *testing.T) {
	valid := models.Bed{
		BedNumber: "B-101",
		Type:      models.BedTypeICU,
		Ward:      "East Wing",
		Status:    models.BedAvailable,
		Price:     650,
	}
	require.NoError(t, ValidateBedData(valid))

	badType := valid
	badType.Type = "Penthouse"
	assert.Error(t, ValidateBedData(badType))

	badStatus := valid
	badStatus.Status = "Broken"
	assert.Error(t, ValidateBedData(badStatus))

	noWard := valid
	noWard.Ward = ""
	assert.Error(t, ValidateBedData(noWard))
}

func TestValidateAdmissionRequest(t *testing.T) {
	valid := AdmissionRequestData{
		DoctorID:  "doc-1",
		Diagnosis: "Acute appendicitis",
		BedNumber: "B-101",
		BedType:   models.BedTypeICU,
	}
	require.NoError(t, ValidateAdmissionRequest(valid))

	noDoctor := valid
	noDoctor.DoctorID = ""
	assert.Error(t, ValidateAdmissionRequest(noDoctor))

	badBedType := valid
	badBedType.BedType = "Penthouse"
	assert.Error(t, ValidateAdmissionRequest(badBedType))

	noBed := valid
	noBed.BedNumber = ""
	assert.Error(t, ValidateAdmissionRequest(noBed))
}

func TestValidatePasswordReset(t *testing.T) {
	require.NoError(t, ValidatePasswordReset("123456", "Sup3r$ecret"))
	assert.Error(t, ValidatePasswordReset("", "Sup3r$ecret"))
	assert.Error(t, ValidatePasswordReset("123456", "weak"))
}
