package services

import (
	"context"

	"github.com/golang/glog"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/workflows"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

// TicketService manages customer support tickets.
type TicketService interface {
	Create(ctx context.Context, ticket *dbapi.Ticket) (*dbapi.Ticket, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Ticket, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Ticket, *errors.ServiceError)
	UpdateStatus(ctx context.Context, id string, status constants.TicketStatus) (*dbapi.Ticket, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.TicketList, *api.PagingMeta, *errors.ServiceError)
}

type ticketService struct {
	router *db.Router
	engine *workflows.Engine
}

// NewTicketService ...
func NewTicketService(router *db.Router, engine *workflows.Engine) TicketService {
	return &ticketService{router: router, engine: engine}
}

func (s *ticketService) Create(ctx context.Context, ticket *dbapi.Ticket) (*dbapi.Ticket, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	ticket.ID = api.NewID()
	ticket.TenantID = tenantID
	if ticket.Status == "" {
		ticket.Status = constants.TicketStatusOpen.String()
	}
	if ticket.Priority == "" {
		ticket.Priority = constants.TicketPriorityMedium.String()
	}
	if err := dbConn.Create(ticket).Error; err != nil {
		return nil, coreServices.HandleCreateError("Ticket", err)
	}
	s.fire(ctx, constants.TriggerEventCreated, ticket)
	return ticket, nil
}

func (s *ticketService) Get(ctx context.Context, id string) (*dbapi.Ticket, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var ticket dbapi.Ticket
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&ticket).Error; err != nil {
		return nil, coreServices.HandleGetError("Ticket", "id", id, err)
	}
	return &ticket, nil
}

func (s *ticketService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Ticket, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var ticket dbapi.Ticket
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&ticket).Error; err != nil {
		return nil, coreServices.HandleGetError("Ticket", "id", id, err)
	}
	delete(fields, "status")
	if len(fields) == 0 {
		return &ticket, nil
	}
	if err := dbConn.Model(&ticket).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Ticket", err)
	}
	s.fire(ctx, constants.TriggerEventUpdated, &ticket)
	return &ticket, nil
}

func (s *ticketService) UpdateStatus(ctx context.Context, id string, status constants.TicketStatus) (*dbapi.Ticket, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var ticket dbapi.Ticket
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&ticket).Error; err != nil {
		return nil, coreServices.HandleGetError("Ticket", "id", id, err)
	}
	if ticket.Status == status.String() {
		return &ticket, nil
	}
	if !constants.TicketStatusCanTransition(constants.TicketStatus(ticket.Status), status) {
		return nil, errors.InvalidStatusTransition("ticket status cannot change from %s to %s", ticket.Status, status)
	}
	if err := dbConn.Model(&ticket).Update("status", status.String()).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Ticket", err)
	}
	s.fire(ctx, constants.TriggerEventStatusChanged, &ticket)
	return &ticket, nil
}

func (s *ticketService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.Ticket{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("Ticket", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Ticket with id='%s' not found", id)
	}
	return nil
}

func (s *ticketService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.TicketList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var tickets dbapi.TicketList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Ticket{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "subject", "requester_email", "status")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count tickets: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("created_at DESC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&tickets).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list tickets: %s", err.Error())
	}
	pagingMeta.Size = len(tickets)
	return tickets, pagingMeta, nil
}

func (s *ticketService) fire(ctx context.Context, event constants.TriggerEvent, ticket *dbapi.Ticket) {
	if s.engine == nil {
		return
	}
	trigger := workflows.Trigger{
		EntityType: "ticket",
		EntityID:   ticket.ID,
		Table:      "tickets",
		Event:      event,
		Fields:     workflows.FieldsOf(ticket),
	}
	if err := s.engine.Fire(ctx, trigger); err != nil {
		glog.Errorf("workflow trigger %s on ticket %s failed: %v", event, ticket.ID, err)
	}
}
