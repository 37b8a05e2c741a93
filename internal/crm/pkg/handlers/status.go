package handlers

import (
	"net/http"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
	"github.com/boothworks/crm-manager/pkg/handlers"
)

type serviceStatusHandler struct {
	connectionFactory *db.ConnectionFactory
}

// NewServiceStatusHandler ...
func NewServiceStatusHandler(connectionFactory *db.ConnectionFactory) *serviceStatusHandler {
	return &serviceStatusHandler{connectionFactory: connectionFactory}
}

// Get reports whether the service can reach its application database.
func (h serviceStatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg := &handlers.HandlerConfig{
		Action: func() (interface{}, *errors.ServiceError) {
			status := public.ServiceStatus{Kind: "ServiceStatus", Status: "ok"}
			if err := h.connectionFactory.CheckConnection(); err != nil {
				status.Status = "degraded"
			}
			return status, nil
		},
	}
	handlers.HandleGet(w, r, cfg)
}
