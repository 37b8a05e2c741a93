// Package handlers provides the small framework every REST controller is
// built on.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/boothworks/crm-manager/pkg/errors"
	"github.com/boothworks/crm-manager/pkg/logger"
	"github.com/boothworks/crm-manager/pkg/shared"
)

// HandlerConfig defines the common things each REST controller must do.
// The corresponding Handle() func runs the basic HandlerConfig.
// This is not meant to be an HTTP framework or anything larger than simple CRUD in handlers.
//
//	MarshalInto is a pointer to the object to hold the unmarshaled JSON.
//	Validate is a list of Validate functions that run in order, returning fast on the first error.
//	Action is the specific logic a handler must take (e.g, find an object, save an object)
//	ErrorHandler is the way errors are returned to the client
type HandlerConfig struct {
	MarshalInto  interface{}
	Validate     []Validate
	Action       HTTPAction
	ErrorHandler ErrorHandlerFunc
}

// Validate ...
type Validate func() *errors.ServiceError

// ErrorHandlerFunc ...
type ErrorHandlerFunc func(r *http.Request, w http.ResponseWriter, err *errors.ServiceError)

// HTTPAction ...
type HTTPAction func() (interface{}, *errors.ServiceError)

func success(r *http.Request) {
	ctx := context.WithValue(r.Context(), logger.ActionResultKey, logger.ActionSuccess)
	ulog := logger.New(ctx)
	ulog.V(1).Infof("operation ended successfully")
}

func errorHandler(r *http.Request, w http.ResponseWriter, cfg *HandlerConfig, err *errors.ServiceError) {
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = shared.HandleError
	}
	ctx := context.WithValue(r.Context(), logger.ActionResultKey, logger.ActionFailed)
	r = r.WithContext(ctx)
	cfg.ErrorHandler(r, w, err)
}

// Handle decodes the body into MarshalInto, runs the validations and the
// action, and writes the result with the given status code.
func Handle(w http.ResponseWriter, r *http.Request, cfg *HandlerConfig, httpStatus int) {
	if cfg.MarshalInto != nil {
		if err := json.NewDecoder(r.Body).Decode(&cfg.MarshalInto); err != nil {
			errorHandler(r, w, cfg, errors.MalformedRequest("Invalid request format: %s", err))
			return
		}
	}

	for _, v := range cfg.Validate {
		if err := v(); err != nil {
			errorHandler(r, w, cfg, err)
			return
		}
	}

	result, serviceErr := cfg.Action()
	switch {
	case serviceErr != nil:
		errorHandler(r, w, cfg, serviceErr)
	default:
		shared.WriteJSONResponse(w, httpStatus, result)
		success(r)
	}
}

// HandleDelete is Handle without body decoding.
func HandleDelete(w http.ResponseWriter, r *http.Request, cfg *HandlerConfig, httpStatus int) {
	for _, v := range cfg.Validate {
		if err := v(); err != nil {
			errorHandler(r, w, cfg, err)
			return
		}
	}

	result, serviceErr := cfg.Action()
	switch {
	case serviceErr != nil:
		errorHandler(r, w, cfg, serviceErr)
	default:
		shared.WriteJSONResponse(w, httpStatus, result)
		success(r)
	}
}

// HandleGet ...
func HandleGet(w http.ResponseWriter, r *http.Request, cfg *HandlerConfig) {
	for _, v := range cfg.Validate {
		if err := v(); err != nil {
			errorHandler(r, w, cfg, err)
			return
		}
	}

	result, serviceErr := cfg.Action()
	switch {
	case serviceErr == nil:
		shared.WriteJSONResponse(w, http.StatusOK, result)
		success(r)
	default:
		errorHandler(r, w, cfg, serviceErr)
	}
}

// HandleList ...
func HandleList(w http.ResponseWriter, r *http.Request, cfg *HandlerConfig) {
	for _, v := range cfg.Validate {
		if err := v(); err != nil {
			errorHandler(r, w, cfg, err)
			return
		}
	}

	results, serviceError := cfg.Action()
	if serviceError != nil {
		errorHandler(r, w, cfg, serviceError)
		return
	}
	shared.WriteJSONResponse(w, http.StatusOK, results)
	success(r)
}
