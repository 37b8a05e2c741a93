package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/errors"
)

type errorHandlerAPI struct{}

// NewErrorsHandler returns the handler serving the static error catalogue.
func NewErrorsHandler() *errorHandlerAPI {
	return &errorHandlerAPI{}
}

// Get returns one catalogue entry by its numeric ID.
func (h errorHandlerAPI) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			id := mux.Vars(r)["id"]
			code, ok := errors.CodeFromStr(errors.ErrorCodePrefix + "-" + id)
			if !ok {
				return nil, errors.NotFound("No error with id %s exists", id)
			}
			_, svcErr := errors.Find(code)
			return svcErr.AsAPIError(), nil
		},
	}
	HandleGet(w, r, cfg)
}

// List returns the whole catalogue.
func (h errorHandlerAPI) List(w http.ResponseWriter, r *http.Request) {
	cfg := &HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			catalogue := errors.Errors()
			items := make([]api.Error, 0, len(catalogue))
			for _, e := range catalogue {
				items = append(items, e.AsAPIError())
			}
			return api.ErrorList{
				Kind:  "ErrorList",
				Page:  1,
				Size:  int32(len(items)),
				Total: int32(len(items)),
				Items: items,
			}, nil
		},
	}
	HandleList(w, r, cfg)
}
