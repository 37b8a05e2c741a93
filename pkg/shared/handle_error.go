// Package shared holds helpers used across handlers and services.
package shared

import (
	"net/http"

	"github.com/boothworks/crm-manager/pkg/errors"
	"github.com/boothworks/crm-manager/pkg/logger"
)

// HandleError is the default ErrorHandlerFunc. Client errors are logged at
// info level, everything else as an error with the cause attached.
func HandleError(r *http.Request, w http.ResponseWriter, err *errors.ServiceError) {
	ulog := logger.New(r.Context())
	if err.IsServerErrorClass() {
		ulog.Error(err)
	} else {
		ulog.Infof("%s", err.Error())
	}

	WriteJSONResponse(w, err.HTTPCode, err.AsAPIError())
}
