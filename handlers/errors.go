package handlers

import (
	"CarePoint/middlewares"
	"CarePoint/repositories"
	"CarePoint/services"
	"CarePoint/utils"
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

// respondServiceError translates service and repository failures into the
// HTTP envelope. Anything unmatched is treated as an upstream failure and
// logged with its cause; the client only sees a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPatientNotFound),
		errors.Is(err, services.ErrDoctorNotFound),
		errors.Is(err, services.ErrProfileNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrInvoiceNotFound),
		errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, repositories.ErrBedNotFound),
		errors.Is(err, repositories.ErrAdmissionNotFound),
		errors.Is(err, repositories.ErrAppointmentNotFound):
		middlewares.RespondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, repositories.ErrDuplicateBed),
		errors.Is(err, repositories.ErrBedNotAvailable),
		errors.Is(err, repositories.ErrBedHasOpenAdmission),
		errors.Is(err, repositories.ErrAlreadyDischarged),
		errors.Is(err, repositories.ErrStatusConflict),
		errors.Is(err, repositories.ErrLockNotAcquired),
		errors.Is(err, services.ErrAdmissionOpen),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvoicePaid):
		middlewares.RespondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, repositories.ErrInvalidCredentials):
		middlewares.RespondError(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrRoleNotAllowed):
		middlewares.RespondError(c, http.StatusForbidden, err.Error())

	case errors.Is(err, services.ErrEmptyUpdate),
		errors.Is(err, services.ErrUnknownRole),
		errors.Is(err, services.ErrInvalidResetCode),
		errors.Is(err, services.ErrDoctorProfileRequired),
		errors.Is(err, utils.ErrPasswordTooShort),
		errors.Is(err, utils.ErrPasswordNotComplex),
		isValidationError(err):
		middlewares.RespondError(c, http.StatusBadRequest, err.Error())

	default:
		middlewares.HttpError(c, "Internal server error", http.StatusInternalServerError, err)
	}
}

func isValidationError(err error) bool {
	var ve validation.Errors
	if errors.As(err, &ve) {
		return true
	}
	var eo validation.ErrorObject
	return errors.As(err, &eo)
}

// callerUserID resolves the authenticated numeric user id from the request
// context populated by the token middleware.
func callerUserID(c *gin.Context) (int64, bool) {
	raw, err := middlewares.ExtractUserIDFromContext(c.Request.Context())
	if err != nil {
		middlewares.RespondError(c, http.StatusUnauthorized, "User not found in context")
		return 0, false
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		middlewares.RespondError(c, http.StatusUnauthorized, "Malformed user id in token")
		return 0, false
	}
	return userID, true
}
