package services

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/boothworks/crm-manager/internal/crm/constants"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/workflows"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/db"
	"github.com/boothworks/crm-manager/pkg/errors"
	coreServices "github.com/boothworks/crm-manager/pkg/services"
)

// EventService manages booked booth engagements and the staff placed on
// them.
type EventService interface {
	Create(ctx context.Context, event *dbapi.Event) (*dbapi.Event, *errors.ServiceError)
	Get(ctx context.Context, id string) (*dbapi.Event, *errors.ServiceError)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Event, *errors.ServiceError)
	UpdateStatus(ctx context.Context, id string, status constants.EventStatus) (*dbapi.Event, *errors.ServiceError)
	Delete(ctx context.Context, id string) *errors.ServiceError
	List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.EventList, *api.PagingMeta, *errors.ServiceError)

	// Assign places a staff member on the event, rejecting assignments that
	// overlap another engagement of the same person.
	Assign(ctx context.Context, assignment *dbapi.StaffAssignment) (*dbapi.StaffAssignment, *errors.ServiceError)
	Assignments(ctx context.Context, eventID string) (dbapi.StaffAssignmentList, *errors.ServiceError)
	Unassign(ctx context.Context, eventID, assignmentID string) *errors.ServiceError
}

type eventService struct {
	router *db.Router
	engine *workflows.Engine
}

// NewEventService ...
func NewEventService(router *db.Router, engine *workflows.Engine) EventService {
	return &eventService{router: router, engine: engine}
}

func (s *eventService) Create(ctx context.Context, event *dbapi.Event) (*dbapi.Event, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, errors.Validation("event end time must be after its start time")
	}
	event.ID = api.NewID()
	event.TenantID = tenantID
	if event.Status == "" {
		event.Status = constants.EventStatusInquiry.String()
	}
	if err := dbConn.Create(event).Error; err != nil {
		return nil, coreServices.HandleCreateError("Event", err)
	}
	s.fire(ctx, constants.TriggerEventCreated, event)
	return event, nil
}

func (s *eventService) Get(ctx context.Context, id string) (*dbapi.Event, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var event dbapi.Event
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&event).Error; err != nil {
		return nil, coreServices.HandleGetError("Event", "id", id, err)
	}
	return &event, nil
}

func (s *eventService) Update(ctx context.Context, id string, fields map[string]interface{}) (*dbapi.Event, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var event dbapi.Event
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&event).Error; err != nil {
		return nil, coreServices.HandleGetError("Event", "id", id, err)
	}
	delete(fields, "status")
	if len(fields) == 0 {
		return &event, nil
	}
	start, end := event.StartTime, event.EndTime
	if v, ok := fields["start_time"].(time.Time); ok {
		start = v
	}
	if v, ok := fields["end_time"].(time.Time); ok {
		end = v
	}
	if !end.After(start) {
		return nil, errors.Validation("event end time must be after its start time")
	}
	if err := dbConn.Model(&event).Updates(fields).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Event", err)
	}
	s.fire(ctx, constants.TriggerEventUpdated, &event)
	return &event, nil
}

func (s *eventService) UpdateStatus(ctx context.Context, id string, status constants.EventStatus) (*dbapi.Event, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var event dbapi.Event
	if err := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).First(&event).Error; err != nil {
		return nil, coreServices.HandleGetError("Event", "id", id, err)
	}
	if event.Status == status.String() {
		return &event, nil
	}
	if !constants.EventStatusCanTransition(constants.EventStatus(event.Status), status) {
		return nil, errors.InvalidStatusTransition("event status cannot change from %s to %s", event.Status, status)
	}
	if err := dbConn.Model(&event).Update("status", status.String()).Error; err != nil {
		return nil, coreServices.HandleUpdateError("Event", err)
	}
	s.fire(ctx, constants.TriggerEventStatusChanged, &event)
	return &event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&dbapi.Event{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("Event", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("Event with id='%s' not found", id)
	}
	return nil
}

func (s *eventService) List(ctx context.Context, listArgs *coreServices.ListArguments) (dbapi.EventList, *api.PagingMeta, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, nil, svcErr
	}
	var events dbapi.EventList
	pagingMeta := &api.PagingMeta{Page: listArgs.Page, Size: listArgs.Size}

	query := dbConn.Model(&dbapi.Event{}).Where("tenant_id = ?", tenantID)
	query = applySearch(query, listArgs.Search, "name", "venue_name", "event_type")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to count events: %s", err.Error())
	}
	pagingMeta.Total = int(total)

	if err := query.
		Order("start_time ASC").
		Offset(listArgs.Offset()).
		Limit(listArgs.Size).
		Find(&events).Error; err != nil {
		return nil, nil, errors.GeneralError("Unable to list events: %s", err.Error())
	}
	pagingMeta.Size = len(events)
	return events, pagingMeta, nil
}

func (s *eventService) Assign(ctx context.Context, assignment *dbapi.StaffAssignment) (*dbapi.StaffAssignment, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var event dbapi.Event
	if err := dbConn.Where("id = ? AND tenant_id = ?", assignment.EventID, tenantID).First(&event).Error; err != nil {
		return nil, coreServices.HandleGetError("Event", "id", assignment.EventID, err)
	}
	if assignment.StartTime.IsZero() {
		assignment.StartTime = event.StartTime
	}
	if assignment.EndTime.IsZero() {
		assignment.EndTime = event.EndTime
	}
	if !assignment.EndTime.After(assignment.StartTime) {
		return nil, errors.Validation("assignment end time must be after its start time")
	}

	// Two half-open windows [start, end) overlap when each starts before the
	// other ends.
	var conflicts int64
	err := dbConn.Model(&dbapi.StaffAssignment{}).
		Where("tenant_id = ? AND staff_email = ?", tenantID, assignment.StaffEmail).
		Where("start_time < ? AND ? < end_time", assignment.EndTime, assignment.StartTime).
		Count(&conflicts).Error
	if err != nil {
		return nil, errors.GeneralError("Unable to check staff availability: %s", err.Error())
	}
	if conflicts > 0 {
		return nil, errors.StaffDoubleBooked("%s is already booked between %s and %s",
			assignment.StaffEmail, assignment.StartTime.Format("2006-01-02 15:04"), assignment.EndTime.Format("2006-01-02 15:04"))
	}

	assignment.ID = api.NewID()
	assignment.TenantID = tenantID
	if err := dbConn.Create(assignment).Error; err != nil {
		return nil, coreServices.HandleCreateError("StaffAssignment", err)
	}
	return assignment, nil
}

func (s *eventService) Assignments(ctx context.Context, eventID string) (dbapi.StaffAssignmentList, *errors.ServiceError) {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return nil, svcErr
	}
	var event dbapi.Event
	if err := dbConn.Where("id = ? AND tenant_id = ?", eventID, tenantID).First(&event).Error; err != nil {
		return nil, coreServices.HandleGetError("Event", "id", eventID, err)
	}
	var assignments dbapi.StaffAssignmentList
	if err := dbConn.Where("event_id = ? AND tenant_id = ?", eventID, tenantID).Order("start_time ASC").Find(&assignments).Error; err != nil {
		return nil, errors.GeneralError("Unable to list assignments of event %s: %s", eventID, err.Error())
	}
	return assignments, nil
}

func (s *eventService) Unassign(ctx context.Context, eventID, assignmentID string) *errors.ServiceError {
	dbConn, tenantID, svcErr := tenantConnection(ctx, s.router)
	if svcErr != nil {
		return svcErr
	}
	result := dbConn.Where("id = ? AND event_id = ? AND tenant_id = ?", assignmentID, eventID, tenantID).Delete(&dbapi.StaffAssignment{})
	if result.Error != nil {
		return coreServices.HandleDeleteError("StaffAssignment", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("StaffAssignment with id='%s' not found", assignmentID)
	}
	return nil
}

func (s *eventService) fire(ctx context.Context, event constants.TriggerEvent, entity *dbapi.Event) {
	if s.engine == nil {
		return
	}
	trigger := workflows.Trigger{
		EntityType: "event",
		EntityID:   entity.ID,
		Table:      "events",
		Event:      event,
		Fields:     workflows.FieldsOf(entity),
	}
	if err := s.engine.Fire(ctx, trigger); err != nil {
		glog.Errorf("workflow trigger %s on event %s failed: %v", event, entity.ID, err)
	}
}
