package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
	coreAPI "github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/errors"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

// contactServiceMock implements services.ContactService with overridable
// functions, in the style of the generated service mocks.
type contactServiceMock struct {
	CreateFunc func(ctx context.Context, contact *dbapi.Contact) (*dbapi.Contact, *errors.ServiceError)
	GetFunc    func(ctx context.Context, id string) (*dbapi.Contact, *errors.ServiceError)
	UpdateFunc func(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Contact, *errors.ServiceError)
	DeleteFunc func(ctx context.Context, id string) *errors.ServiceError
	ListFunc   func(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.ContactList, *coreAPI.PagingMeta, *errors.ServiceError)
}

func (m *contactServiceMock) Create(ctx context.Context, contact *dbapi.Contact) (*dbapi.Contact, *errors.ServiceError) {
	return m.CreateFunc(ctx, contact)
}

func (m *contactServiceMock) Get(ctx context.Context, id string) (*dbapi.Contact, *errors.ServiceError) {
	return m.GetFunc(ctx, id)
}

func (m *contactServiceMock) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Contact, *errors.ServiceError) {
	return m.UpdateFunc(ctx, id, fields)
}

func (m *contactServiceMock) Delete(ctx context.Context, id string) *errors.ServiceError {
	return m.DeleteFunc(ctx, id)
}

func (m *contactServiceMock) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.ContactList, *coreAPI.PagingMeta, *errors.ServiceError) {
	return m.ListFunc(ctx, listArgs)
}

const testContactUUID = "0c7e8a1f-4b6d-4c8e-9f2a-1d3b5c7e9a0b"

func TestContactHandler_Create(t *testing.T) {
	created := 0
	handler := NewContactHandler(&contactServiceMock{
		CreateFunc: func(ctx context.Context, contact *dbapi.Contact) (*dbapi.Contact, *errors.ServiceError) {
			created++
			contact.ID = testContactUUID
			return contact, nil
		},
	})

	body := `{"first_name": "Ada", "last_name": "Nguyen", "email": "ada@example.com"}`
	r := httptest.NewRequest(http.MethodPost, "/api/crm/v1/contacts", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, r)

	assert.Equal(t, http.StatusCreated, w.Result().StatusCode)
	assert.Equal(t, 1, created)

	var data public.Contact
	require.NoError(t, json.NewDecoder(w.Body).Decode(&data))
	assert.Equal(t, testContactUUID, data.Id)
	assert.Equal(t, "Contact", data.Kind)
	assert.Equal(t, "/api/crm/v1/contacts/"+testContactUUID, data.Href)
	assert.Equal(t, "Ada", data.FirstName)
}

func TestContactHandler_Create_missingName(t *testing.T) {
	serviceCalled := 0
	handler := NewContactHandler(&contactServiceMock{
		CreateFunc: func(ctx context.Context, contact *dbapi.Contact) (*dbapi.Contact, *errors.ServiceError) {
			serviceCalled++
			return contact, nil
		},
	})

	body := `{"first_name": "Ada"}`
	r := httptest.NewRequest(http.MethodPost, "/api/crm/v1/contacts", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Create(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	assert.Equal(t, 0, serviceCalled)

	var data map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&data))
	assert.Equal(t, "Error", data["kind"])
}

func TestContactHandler_Get_invalidID(t *testing.T) {
	handler := NewContactHandler(&contactServiceMock{
		GetFunc: func(ctx context.Context, id string) (*dbapi.Contact, *errors.ServiceError) {
			t.Fatal("service must not be called for an invalid id")
			return nil, nil
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/crm/v1/contacts/not-a-uuid", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "not-a-uuid"})
	w := httptest.NewRecorder()

	handler.Get(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestContactHandler_Get_notFound(t *testing.T) {
	handler := NewContactHandler(&contactServiceMock{
		GetFunc: func(ctx context.Context, id string) (*dbapi.Contact, *errors.ServiceError) {
			return nil, errors.NotFound("Contact with id='%s' not found", id)
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/crm/v1/contacts/"+testContactUUID, nil)
	r = mux.SetURLVars(r, map[string]string{"id": testContactUUID})
	w := httptest.NewRecorder()

	handler.Get(w, r)

	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestContactHandler_Update_partialFields(t *testing.T) {
	var gotFields map[string]interface{}
	handler := NewContactHandler(&contactServiceMock{
		UpdateFunc: func(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Contact, *errors.ServiceError) {
			gotFields = fields
			return &dbapi.Contact{Meta: coreAPI.Meta{ID: id}, FirstName: "Ada", Phone: "555-0100"}, nil
		},
	})

	body := `{"phone": "555-0100"}`
	r := httptest.NewRequest(http.MethodPatch, "/api/crm/v1/contacts/"+testContactUUID, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": testContactUUID})
	w := httptest.NewRecorder()

	handler.Update(w, r)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	// Only the fields present in the payload reach the service.
	assert.Equal(t, map[string]interface{}{"phone": "555-0100"}, gotFields)
}

func TestContactHandler_Delete(t *testing.T) {
	handler := NewContactHandler(&contactServiceMock{
		DeleteFunc: func(ctx context.Context, id string) *errors.ServiceError {
			return nil
		},
	})

	r := httptest.NewRequest(http.MethodDelete, "/api/crm/v1/contacts/"+testContactUUID, nil)
	r = mux.SetURLVars(r, map[string]string{"id": testContactUUID})
	w := httptest.NewRecorder()

	handler.Delete(w, r)

	assert.Equal(t, http.StatusNoContent, w.Result().StatusCode)
}

func TestContactHandler_List(t *testing.T) {
	handler := NewContactHandler(&contactServiceMock{
		ListFunc: func(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.ContactList, *coreAPI.PagingMeta, *errors.ServiceError) {
			contacts := dbapi.ContactList{
				{Meta: coreAPI.Meta{ID: testContactUUID}, FirstName: "Ada", LastName: "Nguyen"},
			}
			return contacts, &coreAPI.PagingMeta{Page: 1, Size: 1, Total: 1}, nil
		},
	})

	r := httptest.NewRequest(http.MethodGet, "/api/crm/v1/contacts?page=1&size=10", nil)
	w := httptest.NewRecorder()

	handler.List(w, r)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)

	var data public.ContactList
	require.NoError(t, json.NewDecoder(w.Body).Decode(&data))
	assert.Equal(t, "ContactList", data.Kind)
	assert.Equal(t, int32(1), data.Total)
	require.Len(t, data.Items, 1)
	assert.Equal(t, testContactUUID, data.Items[0].Id)
}
