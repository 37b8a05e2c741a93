package errors

import (
	"net/http"
	"testing"

	pkgErr "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_catalogueIsComplete(t *testing.T) {
	catalogue := Errors()
	require.NotEmpty(t, catalogue)

	seen := map[ServiceErrorCode]bool{}
	for _, err := range catalogue {
		assert.False(t, seen[err.Code], "duplicate code %d", err.Code)
		seen[err.Code] = true
		assert.NotEmpty(t, err.Reason)
		assert.NotZero(t, err.HTTPCode)
	}
}

func TestFind(t *testing.T) {
	exists, err := Find(ErrorNotFound)
	require.True(t, exists)
	assert.Equal(t, http.StatusNotFound, err.HTTPCode)

	exists, err = Find(ServiceErrorCode(9999))
	assert.False(t, exists)
	assert.Nil(t, err)
}

func TestNew_undefinedCodeFallsBackToGeneral(t *testing.T) {
	err := New(ServiceErrorCode(9999), "whatever")
	assert.Equal(t, ErrorGeneral, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode)
}

func TestServiceError_Error(t *testing.T) {
	err := NotFound("Contact with id='%s' not found", "abc")
	assert.Equal(t, "CRM-MGMT-2: Contact with id='abc' not found", err.Error())

	withCause := NewWithCause(ErrorGeneral, pkgErr.New("connection refused"), "Unable to list contacts")
	assert.Contains(t, withCause.Error(), "caused by: connection refused")
}

func TestServiceError_classPredicates(t *testing.T) {
	assert.True(t, NotFound("").Is404())
	assert.True(t, Conflict("").IsConflict())
	assert.True(t, Forbidden("").IsForbidden())
	assert.True(t, BadRequest("").IsClientErrorClass())
	assert.False(t, BadRequest("").IsServerErrorClass())
	assert.True(t, GeneralError("").IsServerErrorClass())
	assert.False(t, GeneralError("").IsClientErrorClass())
}

func TestServiceError_AsAPIError(t *testing.T) {
	apiErr := StaffDoubleBooked("sam is already booked").AsAPIError()
	assert.Equal(t, "Error", apiErr.Type)
	assert.Equal(t, "15", apiErr.ID)
	assert.Equal(t, "CRM-MGMT-15", apiErr.Code)
	assert.Equal(t, "/api/crm/v1/errors/15", apiErr.HREF)
	assert.Equal(t, "sam is already booked", apiErr.Reason)
}

func TestCodeFromStr(t *testing.T) {
	code, ok := CodeFromStr("CRM-MGMT-2")
	assert.True(t, ok)
	assert.Equal(t, ErrorNotFound, code)

	code, ok = CodeFromStr("7")
	assert.True(t, ok)
	assert.Equal(t, ErrorUnauthenticated, code)

	_, ok = CodeFromStr("CRM-MGMT-9999")
	assert.False(t, ok)

	_, ok = CodeFromStr("garbage")
	assert.False(t, ok)
}

func TestServiceError_UnwrapAndStackTrace(t *testing.T) {
	cause := pkgErr.New("underlying")
	err := NewWithCause(ErrorGeneral, cause, "wrapped")
	assert.Equal(t, cause, err.Unwrap())
	assert.NotNil(t, err.StackTrace())

	assert.Nil(t, GeneralError("no cause").StackTrace())
}
