package services

import (
	goerrors "errors"
	"strings"

	"gorm.io/gorm"

	"github.com/boothworks/crm-manager/pkg/errors"
)

// HandleGetError translates a gorm lookup failure into a ServiceError,
// mapping missing rows to a 404.
func HandleGetError(resourceType, field string, value interface{}, err error) *errors.ServiceError {
	if goerrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound("%s with %s='%v' not found", resourceType, field, value)
	}
	return errors.NewWithCause(errors.ErrorGeneral, err, "Unable to find %s with %s='%v'", resourceType, field, value)
}

// HandleCreateError translates an insert failure into a ServiceError.
func HandleCreateError(resourceType string, err error) *errors.ServiceError {
	if strings.Contains(err.Error(), "violates unique constraint") {
		return errors.Conflict("This %s already exists", resourceType)
	}
	return errors.GeneralError("Unable to create %s: %s", resourceType, err.Error())
}

// HandleUpdateError translates an update failure into a ServiceError.
func HandleUpdateError(resourceType string, err error) *errors.ServiceError {
	if strings.Contains(err.Error(), "violates unique constraint") {
		return errors.Conflict("Changes to %s conflict with existing records", resourceType)
	}
	return errors.GeneralError("Unable to update %s: %s", resourceType, err.Error())
}

// HandleDeleteError translates a delete failure into a ServiceError.
func HandleDeleteError(resourceType string, err error) *errors.ServiceError {
	return errors.GeneralError("Unable to delete %s: %s", resourceType, err.Error())
}
