package presenters

import (
	"fmt"

	"github.com/boothworks/crm-manager/internal/crm/pkg/api/dbapi"
	"github.com/boothworks/crm-manager/internal/crm/pkg/api/public"
)

// PresentTicket ...
func PresentTicket(ticket *dbapi.Ticket) public.Ticket {
	return public.Ticket{
		ObjectReference: reference(ticket.ID, KindTicket, fmt.Sprintf("/tickets/%s", ticket.ID)),
		Subject:         ticket.Subject,
		Description:     ticket.Description,
		Status:          ticket.Status,
		Priority:        ticket.Priority,
		RequesterEmail:  ticket.RequesterEmail,
		AccountId:       ticket.AccountID,
		EventId:         ticket.EventID,
		AssignedTo:      ticket.AssignedTo,
		CreatedAt:       ticket.CreatedAt,
		UpdatedAt:       ticket.UpdatedAt,
	}
}

// PresentTask ...
func PresentTask(task *dbapi.Task) public.Task {
	return public.Task{
		ObjectReference: reference(task.ID, KindTask, fmt.Sprintf("/tasks/%s", task.ID)),
		Title:           task.Title,
		Description:     task.Description,
		Status:          task.Status,
		DueAt:           nullableTime(task.DueAt),
		AssignedTo:      task.AssignedTo,
		EntityType:      task.EntityType,
		EntityId:        task.EntityID,
		TemplateId:      task.TemplateID,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

// PresentTaskTemplate ...
func PresentTaskTemplate(template *dbapi.TaskTemplate) public.TaskTemplate {
	return public.TaskTemplate{
		ObjectReference: reference(template.ID, KindTaskTemplate, fmt.Sprintf("/task_templates/%s", template.ID)),
		Name:            template.Name,
		Title:           template.Title,
		Description:     template.Description,
		DueInDays:       template.DueInDays,
		AssignedTo:      template.AssignedTo,
		CreatedAt:       template.CreatedAt,
		UpdatedAt:       template.UpdatedAt,
	}
}
