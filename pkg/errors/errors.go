// Package errors contains the typed service errors returned by the API.
package errors

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang/glog"
	pkgErr "github.com/pkg/errors"

	"github.com/boothworks/crm-manager/pkg/api"
)

const (
	// ErrorCodePrefix is prepended to the numeric error code in API responses.
	ErrorCodePrefix = "CRM-MGMT"

	// ErrorHREF is the route to the error catalogue endpoint.
	ErrorHREF = "/api/crm/v1/errors/%d"
)

// ServiceErrorCode identifies a service error in the error catalogue.
type ServiceErrorCode int

// Codes of all service errors. The numeric values are part of the API
// contract, never renumber existing entries.
const (
	// ErrorGeneral - unspecified error
	ErrorGeneral ServiceErrorCode = 1
	// ErrorNotFound - resource not found
	ErrorNotFound ServiceErrorCode = 2
	// ErrorValidation - request payload failed validation
	ErrorValidation ServiceErrorCode = 3
	// ErrorMalformedRequest - request body could not be decoded
	ErrorMalformedRequest ServiceErrorCode = 4
	// ErrorBadRequest - request is semantically invalid
	ErrorBadRequest ServiceErrorCode = 5
	// ErrorForbidden - authenticated but not allowed
	ErrorForbidden ServiceErrorCode = 6
	// ErrorUnauthenticated - no usable credentials on the request
	ErrorUnauthenticated ServiceErrorCode = 7
	// ErrorUnauthorized - account is not permitted to perform the action
	ErrorUnauthorized ServiceErrorCode = 8
	// ErrorConflict - resource already exists or version conflict
	ErrorConflict ServiceErrorCode = 9
	// ErrorMinimumFieldLength - field below minimum length
	ErrorMinimumFieldLength ServiceErrorCode = 10
	// ErrorMaximumFieldLength - field above maximum length
	ErrorMaximumFieldLength ServiceErrorCode = 11
	// ErrorInvalidStatusTransition - entity lifecycle does not allow the transition
	ErrorInvalidStatusTransition ServiceErrorCode = 12
	// ErrorTenantNotRegistered - tenant has no data database registered
	ErrorTenantNotRegistered ServiceErrorCode = 13
	// ErrorLeadAlreadyConverted - lead conversion attempted twice
	ErrorLeadAlreadyConverted ServiceErrorCode = 14
	// ErrorStaffDoubleBooked - staff member already assigned in the time window
	ErrorStaffDoubleBooked ServiceErrorCode = 15
	// ErrorWorkflowExecutionFailed - a workflow action failed while firing
	ErrorWorkflowExecutionFailed ServiceErrorCode = 16
	// ErrorFailedToParseSearch - list search string could not be parsed
	ErrorFailedToParseSearch ServiceErrorCode = 17
)

// ServiceError is the only error type service and handler funcs exchange.
type ServiceError struct {
	// Code is the numeric and immutable error code
	Code ServiceErrorCode
	// Reason is the message shown to the caller
	Reason string
	// HTTPCode is the status code used when this error is presented
	HTTPCode int
	// cause is the original error, logged but never presented
	cause error
}

// ServiceErrors is the full error catalogue, served by the /errors endpoint.
type ServiceErrors []ServiceError

// Errors returns one entry per known service error, with the generic reason.
func Errors() ServiceErrors {
	return ServiceErrors{
		ServiceError{ErrorGeneral, "Unspecified error", http.StatusInternalServerError, nil},
		ServiceError{ErrorNotFound, "Resource not found", http.StatusNotFound, nil},
		ServiceError{ErrorValidation, "General validation failure", http.StatusBadRequest, nil},
		ServiceError{ErrorMalformedRequest, "Unable to read request body", http.StatusBadRequest, nil},
		ServiceError{ErrorBadRequest, "Bad request", http.StatusBadRequest, nil},
		ServiceError{ErrorForbidden, "Forbidden to perform this action", http.StatusForbidden, nil},
		ServiceError{ErrorUnauthenticated, "Account authentication could not be verified", http.StatusUnauthorized, nil},
		ServiceError{ErrorUnauthorized, "Account is unauthorized to perform this action", http.StatusForbidden, nil},
		ServiceError{ErrorConflict, "An entity with the specified unique values already exists", http.StatusConflict, nil},
		ServiceError{ErrorMinimumFieldLength, "Minimum field length not reached", http.StatusBadRequest, nil},
		ServiceError{ErrorMaximumFieldLength, "Maximum field length has been exceeded", http.StatusBadRequest, nil},
		ServiceError{ErrorInvalidStatusTransition, "Requested status transition is not allowed", http.StatusBadRequest, nil},
		ServiceError{ErrorTenantNotRegistered, "Tenant has no data database registered", http.StatusNotFound, nil},
		ServiceError{ErrorLeadAlreadyConverted, "Lead has already been converted", http.StatusConflict, nil},
		ServiceError{ErrorStaffDoubleBooked, "Staff member is already assigned during this time window", http.StatusConflict, nil},
		ServiceError{ErrorWorkflowExecutionFailed, "Workflow execution failed", http.StatusInternalServerError, nil},
		ServiceError{ErrorFailedToParseSearch, "Failed to parse search query", http.StatusBadRequest, nil},
	}
}

// Find returns the catalogue entry for the given code.
func Find(code ServiceErrorCode) (bool, *ServiceError) {
	for _, err := range Errors() {
		if err.Code == code {
			return true, &err
		}
	}
	return false, nil
}

// New creates a ServiceError with the given code. The reason is shown to the
// caller, keep internals out of it.
func New(code ServiceErrorCode, reason string, values ...interface{}) *ServiceError {
	return NewWithCause(code, nil, reason, values...)
}

// NewWithCause attaches the causing error for logging purposes.
func NewWithCause(code ServiceErrorCode, cause error, reason string, values ...interface{}) *ServiceError {
	// If the code isn't defined, use the general error code
	var err *ServiceError
	exists, err := Find(code)
	if !exists {
		glog.Errorf("Undefined error code used: %d", code)
		err = &ServiceError{ErrorGeneral, "Unspecified error", http.StatusInternalServerError, nil}
	}

	// TODO - if cause is nil, should we use the reason as the cause?
	if cause != nil {
		_, ok := cause.(stackTracer)
		if !ok {
			cause = pkgErr.WithStack(cause) // add stacktrace if missing
		}
	}

	err.cause = cause
	if reason != "" {
		err.Reason = fmt.Sprintf(reason, values...)
	}

	return err
}

type stackTracer interface {
	StackTrace() pkgErr.StackTrace
}

// Unwrap returns the original error that caused this service error, if any.
func (e *ServiceError) Unwrap() error {
	return e.cause
}

func (e *ServiceError) Error() string {
	message := fmt.Sprintf("%s: %s", CodeStr(e.Code), e.Reason)
	if e.cause != nil {
		message = fmt.Sprintf("%s caused by: %s", message, e.cause.Error())
	}
	return message
}

// StackTrace returns the stack trace of the cause, if one was attached.
func (e *ServiceError) StackTrace() pkgErr.StackTrace {
	if e.cause == nil {
		return nil
	}

	err, ok := e.cause.(stackTracer)
	if !ok {
		return nil
	}

	return err.StackTrace()
}

// AsError presents the service error as a plain error.
func (e *ServiceError) AsError() error {
	return fmt.Errorf("%s", e.Error())
}

// Is404 ...
func (e *ServiceError) Is404() bool {
	return e.Code == NotFound("").Code
}

// IsConflict ...
func (e *ServiceError) IsConflict() bool {
	return e.Code == Conflict("").Code
}

// IsForbidden ...
func (e *ServiceError) IsForbidden() bool {
	return e.Code == Forbidden("").Code
}

// IsClientErrorClass returns true if the error maps to a 4xx status.
func (e *ServiceError) IsClientErrorClass() bool {
	return e.HTTPCode >= http.StatusBadRequest && e.HTTPCode < http.StatusInternalServerError
}

// IsServerErrorClass returns true if the error maps to a 5xx status.
func (e *ServiceError) IsServerErrorClass() bool {
	return e.HTTPCode >= http.StatusInternalServerError
}

// AsAPIError presents the error in the wire format served to clients.
func (e *ServiceError) AsAPIError() api.Error {
	return api.Error{
		Type:   "Error",
		ID:     strconv.Itoa(int(e.Code)),
		HREF:   Href(e.Code),
		Code:   CodeStr(e.Code),
		Reason: e.Reason,
	}
}

// CodeStr renders the full public error code, e.g. CRM-MGMT-2.
func CodeStr(code ServiceErrorCode) string {
	return fmt.Sprintf("%s-%d", ErrorCodePrefix, code)
}

// Href renders the error catalogue link for the given code.
func Href(code ServiceErrorCode) string {
	return fmt.Sprintf(ErrorHREF, code)
}

// CodeFromStr parses a public error code back into its numeric form.
func CodeFromStr(code string) (ServiceErrorCode, bool) {
	trimmed := strings.TrimPrefix(code, ErrorCodePrefix+"-")
	var n int
	if _, err := fmt.Sscanf(trimmed, "%d", &n); err != nil {
		return ErrorGeneral, false
	}
	exists, _ := Find(ServiceErrorCode(n))
	return ServiceErrorCode(n), exists
}

// GeneralError ...
func GeneralError(reason string, values ...interface{}) *ServiceError {
	return New(ErrorGeneral, reason, values...)
}

// NotFound ...
func NotFound(reason string, values ...interface{}) *ServiceError {
	return New(ErrorNotFound, reason, values...)
}

// Validation ...
func Validation(reason string, values ...interface{}) *ServiceError {
	return New(ErrorValidation, reason, values...)
}

// MalformedRequest ...
func MalformedRequest(reason string, values ...interface{}) *ServiceError {
	return New(ErrorMalformedRequest, reason, values...)
}

// BadRequest ...
func BadRequest(reason string, values ...interface{}) *ServiceError {
	return New(ErrorBadRequest, reason, values...)
}

// Forbidden ...
func Forbidden(reason string, values ...interface{}) *ServiceError {
	return New(ErrorForbidden, reason, values...)
}

// Unauthenticated ...
func Unauthenticated(reason string, values ...interface{}) *ServiceError {
	return New(ErrorUnauthenticated, reason, values...)
}

// Unauthorized ...
func Unauthorized(reason string, values ...interface{}) *ServiceError {
	return New(ErrorUnauthorized, reason, values...)
}

// Conflict ...
func Conflict(reason string, values ...interface{}) *ServiceError {
	return New(ErrorConflict, reason, values...)
}

// MinimumFieldLengthNotReached ...
func MinimumFieldLengthNotReached(reason string, values ...interface{}) *ServiceError {
	return New(ErrorMinimumFieldLength, reason, values...)
}

// MaximumFieldLengthExceeded ...
func MaximumFieldLengthExceeded(reason string, values ...interface{}) *ServiceError {
	return New(ErrorMaximumFieldLength, reason, values...)
}

// InvalidStatusTransition ...
func InvalidStatusTransition(reason string, values ...interface{}) *ServiceError {
	return New(ErrorInvalidStatusTransition, reason, values...)
}

// TenantNotRegistered ...
func TenantNotRegistered(reason string, values ...interface{}) *ServiceError {
	return New(ErrorTenantNotRegistered, reason, values...)
}

// LeadAlreadyConverted ...
func LeadAlreadyConverted(reason string, values ...interface{}) *ServiceError {
	return New(ErrorLeadAlreadyConverted, reason, values...)
}

// StaffDoubleBooked ...
func StaffDoubleBooked(reason string, values ...interface{}) *ServiceError {
	return New(ErrorStaffDoubleBooked, reason, values...)
}

// WorkflowExecutionFailed ...
func WorkflowExecutionFailed(reason string, values ...interface{}) *ServiceError {
	return New(ErrorWorkflowExecutionFailed, reason, values...)
}

// FailedToParseSearch ...
func FailedToParseSearch(reason string, values ...interface{}) *ServiceError {
	return New(ErrorFailedToParseSearch, reason, values...)
}
