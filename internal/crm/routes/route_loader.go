package routes

import (
	"fmt"
	"net/http"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/boothworks/crm-manager/internal/crm/pkg/handlers"
	"github.com/boothworks/crm-manager/internal/crm/pkg/services"
	"github.com/boothworks/crm-manager/pkg/api"
	"github.com/boothworks/crm-manager/pkg/auth"
	"github.com/boothworks/crm-manager/pkg/db"
	coreHandlers "github.com/boothworks/crm-manager/pkg/handlers"
	"github.com/boothworks/crm-manager/pkg/logging"
	"github.com/boothworks/crm-manager/pkg/server"
)

type options struct {
	ConnectionFactory *db.ConnectionFactory
	Auth              *auth.AuthenticationMiddleware

	Contacts      services.ContactService
	Accounts      services.AccountService
	Leads         services.LeadService
	Opportunities services.OpportunityService
	Events        services.EventService
	Inventory     services.InventoryService
	Billing       services.BillingService
	Tickets       services.TicketService
	Tasks         services.TaskService
	Workflows     services.WorkflowService
	Tenants       services.TenantService
}

// NewRouteLoader wires every API handler onto the main router.
func NewRouteLoader(
	connectionFactory *db.ConnectionFactory,
	authMiddleware *auth.AuthenticationMiddleware,
	contacts services.ContactService,
	accounts services.AccountService,
	leads services.LeadService,
	opportunities services.OpportunityService,
	events services.EventService,
	inventory services.InventoryService,
	billing services.BillingService,
	tickets services.TicketService,
	tasks services.TaskService,
	workflows services.WorkflowService,
	tenants services.TenantService,
) server.RouteLoader {
	return &options{
		ConnectionFactory: connectionFactory,
		Auth:              authMiddleware,
		Contacts:          contacts,
		Accounts:          accounts,
		Leads:             leads,
		Opportunities:     opportunities,
		Events:            events,
		Inventory:         inventory,
		Billing:           billing,
		Tickets:           tickets,
		Tasks:             tasks,
		Workflows:         workflows,
		Tenants:           tenants,
	}
}

// AddRoutes ...
func (s *options) AddRoutes(mainRouter *mux.Router) error {
	basePath := fmt.Sprintf("%s/%s", APIEndpoint, CRMAPIPrefix)
	return s.buildAPIBaseRouter(mainRouter, basePath)
}

func (s *options) buildAPIBaseRouter(mainRouter *mux.Router, basePath string) error {
	contactHandler := handlers.NewContactHandler(s.Contacts)
	accountHandler := handlers.NewAccountHandler(s.Accounts)
	leadHandler := handlers.NewLeadHandler(s.Leads)
	opportunityHandler := handlers.NewOpportunityHandler(s.Opportunities)
	eventHandler := handlers.NewEventHandler(s.Events)
	inventoryHandler := handlers.NewInventoryHandler(s.Inventory)
	billingHandler := handlers.NewBillingHandler(s.Billing)
	ticketHandler := handlers.NewTicketHandler(s.Tickets)
	taskHandler := handlers.NewTaskHandler(s.Tasks)
	workflowHandler := handlers.NewWorkflowHandler(s.Workflows)
	tenantHandler := handlers.NewTenantHandler(s.Tenants)
	serviceStatusHandler := handlers.NewServiceStatusHandler(s.ConnectionFactory)
	errorsHandler := coreHandlers.NewErrorsHandler()

	// The errors catalogue, status and metadata endpoints stay public,
	// everything else authenticates per subtree.
	authenticate := s.Auth.Authenticate
	requireTenant := auth.NewRequireTenantMiddleware().RequireTenant
	requireAdmin := auth.NewRequireAdminMiddleware().RequireAdmin

	// base path.
	apiRouter := mainRouter.PathPrefix(basePath).Subrouter()

	// /v1
	apiV1Router := apiRouter.PathPrefix("/" + Version).Subrouter()

	//  /errors
	apiV1ErrorsRouter := apiV1Router.PathPrefix("/errors").Subrouter()
	apiV1ErrorsRouter.HandleFunc("", errorsHandler.List).Methods(http.MethodGet)
	apiV1ErrorsRouter.HandleFunc("/{id}", errorsHandler.Get).Methods(http.MethodGet)

	// /status
	apiV1Status := apiV1Router.PathPrefix("/status").Subrouter()
	apiV1Status.HandleFunc("", serviceStatusHandler.Get).Methods(http.MethodGet)

	v1Collections := []api.CollectionMetadata{}

	//  /contacts
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "contacts",
		Kind: "ContactList",
	})
	apiV1ContactsRouter := apiV1Router.PathPrefix("/contacts").Subrouter()
	apiV1ContactsRouter.HandleFunc("", contactHandler.List).
		Name(logging.NewLogEvent("list-contacts", "list all contacts").ToString()).
		Methods(http.MethodGet)
	apiV1ContactsRouter.HandleFunc("", contactHandler.Create).
		Name(logging.NewLogEvent("create-contact", "create a contact").ToString()).
		Methods(http.MethodPost)
	apiV1ContactsRouter.HandleFunc("/{id}", contactHandler.Get).
		Name(logging.NewLogEvent("get-contact", "get a contact by id").ToString()).
		Methods(http.MethodGet)
	apiV1ContactsRouter.HandleFunc("/{id}", contactHandler.Update).
		Name(logging.NewLogEvent("update-contact", "update a contact by id").ToString()).
		Methods(http.MethodPatch)
	apiV1ContactsRouter.HandleFunc("/{id}", contactHandler.Delete).
		Name(logging.NewLogEvent("delete-contact", "delete a contact by id").ToString()).
		Methods(http.MethodDelete)
	apiV1ContactsRouter.Use(authenticate, requireTenant)

	//  /accounts
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "accounts",
		Kind: "AccountList",
	})
	apiV1AccountsRouter := apiV1Router.PathPrefix("/accounts").Subrouter()
	apiV1AccountsRouter.HandleFunc("", accountHandler.List).
		Name(logging.NewLogEvent("list-accounts", "list all accounts").ToString()).
		Methods(http.MethodGet)
	apiV1AccountsRouter.HandleFunc("", accountHandler.Create).
		Name(logging.NewLogEvent("create-account", "create an account").ToString()).
		Methods(http.MethodPost)
	apiV1AccountsRouter.HandleFunc("/{id}", accountHandler.Get).
		Name(logging.NewLogEvent("get-account", "get an account by id").ToString()).
		Methods(http.MethodGet)
	apiV1AccountsRouter.HandleFunc("/{id}", accountHandler.Update).
		Name(logging.NewLogEvent("update-account", "update an account by id").ToString()).
		Methods(http.MethodPatch)
	apiV1AccountsRouter.HandleFunc("/{id}", accountHandler.Delete).
		Name(logging.NewLogEvent("delete-account", "delete an account by id").ToString()).
		Methods(http.MethodDelete)
	apiV1AccountsRouter.HandleFunc("/{id}/contacts", accountHandler.ListContacts).
		Name(logging.NewLogEvent("list-account-contacts", "list contacts of an account").ToString()).
		Methods(http.MethodGet)
	apiV1AccountsRouter.Use(authenticate, requireTenant)

	//  /leads
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "leads",
		Kind: "LeadList",
	})
	apiV1LeadsRouter := apiV1Router.PathPrefix("/leads").Subrouter()
	apiV1LeadsRouter.HandleFunc("", leadHandler.List).
		Name(logging.NewLogEvent("list-leads", "list all leads").ToString()).
		Methods(http.MethodGet)
	apiV1LeadsRouter.HandleFunc("", leadHandler.Create).
		Name(logging.NewLogEvent("create-lead", "create a lead").ToString()).
		Methods(http.MethodPost)
	apiV1LeadsRouter.HandleFunc("/{id}", leadHandler.Get).
		Name(logging.NewLogEvent("get-lead", "get a lead by id").ToString()).
		Methods(http.MethodGet)
	apiV1LeadsRouter.HandleFunc("/{id}", leadHandler.Update).
		Name(logging.NewLogEvent("update-lead", "update a lead by id").ToString()).
		Methods(http.MethodPatch)
	apiV1LeadsRouter.HandleFunc("/{id}", leadHandler.Delete).
		Name(logging.NewLogEvent("delete-lead", "delete a lead by id").ToString()).
		Methods(http.MethodDelete)
	apiV1LeadsRouter.HandleFunc("/{id}/convert", leadHandler.Convert).
		Name(logging.NewLogEvent("convert-lead", "convert a lead into an account, contact and opportunity").ToString()).
		Methods(http.MethodPost)
	apiV1LeadsRouter.Use(authenticate, requireTenant)

	//  /opportunities
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "opportunities",
		Kind: "OpportunityList",
	})
	apiV1OpportunitiesRouter := apiV1Router.PathPrefix("/opportunities").Subrouter()
	apiV1OpportunitiesRouter.HandleFunc("", opportunityHandler.List).
		Name(logging.NewLogEvent("list-opportunities", "list all opportunities").ToString()).
		Methods(http.MethodGet)
	apiV1OpportunitiesRouter.HandleFunc("", opportunityHandler.Create).
		Name(logging.NewLogEvent("create-opportunity", "create an opportunity").ToString()).
		Methods(http.MethodPost)
	apiV1OpportunitiesRouter.HandleFunc("/{id}", opportunityHandler.Get).
		Name(logging.NewLogEvent("get-opportunity", "get an opportunity by id").ToString()).
		Methods(http.MethodGet)
	apiV1OpportunitiesRouter.HandleFunc("/{id}", opportunityHandler.Update).
		Name(logging.NewLogEvent("update-opportunity", "update an opportunity by id").ToString()).
		Methods(http.MethodPatch)
	apiV1OpportunitiesRouter.HandleFunc("/{id}", opportunityHandler.Delete).
		Name(logging.NewLogEvent("delete-opportunity", "delete an opportunity by id").ToString()).
		Methods(http.MethodDelete)
	apiV1OpportunitiesRouter.Use(authenticate, requireTenant)

	//  /events
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "events",
		Kind: "EventList",
	})
	apiV1EventsRouter := apiV1Router.PathPrefix("/events").Subrouter()
	apiV1EventsRouter.HandleFunc("", eventHandler.List).
		Name(logging.NewLogEvent("list-events", "list all events").ToString()).
		Methods(http.MethodGet)
	apiV1EventsRouter.HandleFunc("", eventHandler.Create).
		Name(logging.NewLogEvent("create-event", "create an event").ToString()).
		Methods(http.MethodPost)
	apiV1EventsRouter.HandleFunc("/{id}", eventHandler.Get).
		Name(logging.NewLogEvent("get-event", "get an event by id").ToString()).
		Methods(http.MethodGet)
	apiV1EventsRouter.HandleFunc("/{id}", eventHandler.Update).
		Name(logging.NewLogEvent("update-event", "update an event by id").ToString()).
		Methods(http.MethodPatch)
	apiV1EventsRouter.HandleFunc("/{id}", eventHandler.Delete).
		Name(logging.NewLogEvent("delete-event", "delete an event by id").ToString()).
		Methods(http.MethodDelete)
	apiV1EventsRouter.HandleFunc("/{id}/assignments", eventHandler.ListAssignments).
		Name(logging.NewLogEvent("list-event-assignments", "list staff assignments of an event").ToString()).
		Methods(http.MethodGet)
	apiV1EventsRouter.HandleFunc("/{id}/assignments", eventHandler.Assign).
		Name(logging.NewLogEvent("assign-event-staff", "assign a staff member to an event").ToString()).
		Methods(http.MethodPost)
	apiV1EventsRouter.HandleFunc("/{id}/assignments/{assignment_id}", eventHandler.Unassign).
		Name(logging.NewLogEvent("unassign-event-staff", "remove a staff assignment from an event").ToString()).
		Methods(http.MethodDelete)
	apiV1EventsRouter.Use(authenticate, requireTenant)

	//  /inventory_items
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "inventory_items",
		Kind: "InventoryItemList",
	})
	apiV1InventoryRouter := apiV1Router.PathPrefix("/inventory_items").Subrouter()
	apiV1InventoryRouter.HandleFunc("", inventoryHandler.List).
		Name(logging.NewLogEvent("list-inventory-items", "list all inventory items").ToString()).
		Methods(http.MethodGet)
	apiV1InventoryRouter.HandleFunc("", inventoryHandler.Create).
		Name(logging.NewLogEvent("create-inventory-item", "create an inventory item").ToString()).
		Methods(http.MethodPost)
	apiV1InventoryRouter.HandleFunc("/{id}", inventoryHandler.Get).
		Name(logging.NewLogEvent("get-inventory-item", "get an inventory item by id").ToString()).
		Methods(http.MethodGet)
	apiV1InventoryRouter.HandleFunc("/{id}", inventoryHandler.Update).
		Name(logging.NewLogEvent("update-inventory-item", "update an inventory item by id").ToString()).
		Methods(http.MethodPatch)
	apiV1InventoryRouter.HandleFunc("/{id}", inventoryHandler.Delete).
		Name(logging.NewLogEvent("delete-inventory-item", "delete an inventory item by id").ToString()).
		Methods(http.MethodDelete)
	apiV1InventoryRouter.Use(authenticate, requireTenant)

	//  /billing_documents
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "billing_documents",
		Kind: "BillingDocumentList",
	})
	apiV1BillingRouter := apiV1Router.PathPrefix("/billing_documents").Subrouter()
	apiV1BillingRouter.HandleFunc("", billingHandler.List).
		Name(logging.NewLogEvent("list-billing-documents", "list all billing documents").ToString()).
		Methods(http.MethodGet)
	apiV1BillingRouter.HandleFunc("", billingHandler.Create).
		Name(logging.NewLogEvent("create-billing-document", "create a billing document").ToString()).
		Methods(http.MethodPost)
	apiV1BillingRouter.HandleFunc("/{id}", billingHandler.Get).
		Name(logging.NewLogEvent("get-billing-document", "get a billing document by id").ToString()).
		Methods(http.MethodGet)
	apiV1BillingRouter.HandleFunc("/{id}", billingHandler.Update).
		Name(logging.NewLogEvent("update-billing-document", "update a billing document by id").ToString()).
		Methods(http.MethodPatch)
	apiV1BillingRouter.HandleFunc("/{id}", billingHandler.Delete).
		Name(logging.NewLogEvent("delete-billing-document", "delete a billing document by id").ToString()).
		Methods(http.MethodDelete)
	apiV1BillingRouter.HandleFunc("/{id}/line_items", billingHandler.ListLineItems).
		Name(logging.NewLogEvent("list-line-items", "list line items of a billing document").ToString()).
		Methods(http.MethodGet)
	apiV1BillingRouter.HandleFunc("/{id}/line_items", billingHandler.AddLineItem).
		Name(logging.NewLogEvent("add-line-item", "add a line item to a billing document").ToString()).
		Methods(http.MethodPost)
	apiV1BillingRouter.HandleFunc("/{id}/line_items/{item_id}", billingHandler.UpdateLineItem).
		Name(logging.NewLogEvent("update-line-item", "update a line item of a billing document").ToString()).
		Methods(http.MethodPatch)
	apiV1BillingRouter.HandleFunc("/{id}/line_items/{item_id}", billingHandler.RemoveLineItem).
		Name(logging.NewLogEvent("remove-line-item", "remove a line item from a billing document").ToString()).
		Methods(http.MethodDelete)
	apiV1BillingRouter.Use(authenticate, requireTenant)

	//  /tickets
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "tickets",
		Kind: "TicketList",
	})
	apiV1TicketsRouter := apiV1Router.PathPrefix("/tickets").Subrouter()
	apiV1TicketsRouter.HandleFunc("", ticketHandler.List).
		Name(logging.NewLogEvent("list-tickets", "list all tickets").ToString()).
		Methods(http.MethodGet)
	apiV1TicketsRouter.HandleFunc("", ticketHandler.Create).
		Name(logging.NewLogEvent("create-ticket", "create a ticket").ToString()).
		Methods(http.MethodPost)
	apiV1TicketsRouter.HandleFunc("/{id}", ticketHandler.Get).
		Name(logging.NewLogEvent("get-ticket", "get a ticket by id").ToString()).
		Methods(http.MethodGet)
	apiV1TicketsRouter.HandleFunc("/{id}", ticketHandler.Update).
		Name(logging.NewLogEvent("update-ticket", "update a ticket by id").ToString()).
		Methods(http.MethodPatch)
	apiV1TicketsRouter.HandleFunc("/{id}", ticketHandler.Delete).
		Name(logging.NewLogEvent("delete-ticket", "delete a ticket by id").ToString()).
		Methods(http.MethodDelete)
	apiV1TicketsRouter.Use(authenticate, requireTenant)

	//  /tasks
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "tasks",
		Kind: "TaskList",
	})
	apiV1TasksRouter := apiV1Router.PathPrefix("/tasks").Subrouter()
	apiV1TasksRouter.HandleFunc("", taskHandler.List).
		Name(logging.NewLogEvent("list-tasks", "list all tasks").ToString()).
		Methods(http.MethodGet)
	apiV1TasksRouter.HandleFunc("", taskHandler.Create).
		Name(logging.NewLogEvent("create-task", "create a task").ToString()).
		Methods(http.MethodPost)
	apiV1TasksRouter.HandleFunc("/{id}", taskHandler.Get).
		Name(logging.NewLogEvent("get-task", "get a task by id").ToString()).
		Methods(http.MethodGet)
	apiV1TasksRouter.HandleFunc("/{id}", taskHandler.Update).
		Name(logging.NewLogEvent("update-task", "update a task by id").ToString()).
		Methods(http.MethodPatch)
	apiV1TasksRouter.HandleFunc("/{id}", taskHandler.Delete).
		Name(logging.NewLogEvent("delete-task", "delete a task by id").ToString()).
		Methods(http.MethodDelete)
	apiV1TasksRouter.Use(authenticate, requireTenant)

	//  /task_templates
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "task_templates",
		Kind: "TaskTemplateList",
	})
	apiV1TaskTemplatesRouter := apiV1Router.PathPrefix("/task_templates").Subrouter()
	apiV1TaskTemplatesRouter.HandleFunc("", taskHandler.ListTemplates).
		Name(logging.NewLogEvent("list-task-templates", "list all task templates").ToString()).
		Methods(http.MethodGet)
	apiV1TaskTemplatesRouter.HandleFunc("", taskHandler.CreateTemplate).
		Name(logging.NewLogEvent("create-task-template", "create a task template").ToString()).
		Methods(http.MethodPost)
	apiV1TaskTemplatesRouter.HandleFunc("/{id}", taskHandler.GetTemplate).
		Name(logging.NewLogEvent("get-task-template", "get a task template by id").ToString()).
		Methods(http.MethodGet)
	apiV1TaskTemplatesRouter.HandleFunc("/{id}", taskHandler.UpdateTemplate).
		Name(logging.NewLogEvent("update-task-template", "update a task template by id").ToString()).
		Methods(http.MethodPatch)
	apiV1TaskTemplatesRouter.HandleFunc("/{id}", taskHandler.DeleteTemplate).
		Name(logging.NewLogEvent("delete-task-template", "delete a task template by id").ToString()).
		Methods(http.MethodDelete)
	apiV1TaskTemplatesRouter.Use(authenticate, requireTenant)

	//  /workflows
	v1Collections = append(v1Collections, api.CollectionMetadata{
		ID:   "workflows",
		Kind: "WorkflowList",
	})
	apiV1WorkflowsRouter := apiV1Router.PathPrefix("/workflows").Subrouter()
	apiV1WorkflowsRouter.HandleFunc("", workflowHandler.List).
		Name(logging.NewLogEvent("list-workflows", "list all workflows").ToString()).
		Methods(http.MethodGet)
	apiV1WorkflowsRouter.HandleFunc("", workflowHandler.Create).
		Name(logging.NewLogEvent("create-workflow", "create a workflow").ToString()).
		Methods(http.MethodPost)
	apiV1WorkflowsRouter.HandleFunc("/{id}", workflowHandler.Get).
		Name(logging.NewLogEvent("get-workflow", "get a workflow by id").ToString()).
		Methods(http.MethodGet)
	apiV1WorkflowsRouter.HandleFunc("/{id}", workflowHandler.Update).
		Name(logging.NewLogEvent("update-workflow", "update a workflow by id").ToString()).
		Methods(http.MethodPatch)
	apiV1WorkflowsRouter.HandleFunc("/{id}", workflowHandler.Delete).
		Name(logging.NewLogEvent("delete-workflow", "delete a workflow by id").ToString()).
		Methods(http.MethodDelete)
	apiV1WorkflowsRouter.HandleFunc("/{id}/executions", workflowHandler.ListExecutions).
		Name(logging.NewLogEvent("list-workflow-executions", "list executions of a workflow").ToString()).
		Methods(http.MethodGet)
	apiV1WorkflowsRouter.Use(authenticate, requireTenant)

	// /admin/tenants
	adminRouter := apiV1Router.PathPrefix(AdminAPIPrefix).Subrouter()
	adminRouter.Use(authenticate, requireAdmin)
	adminTenantsRouter := adminRouter.PathPrefix("/tenants").Subrouter()
	adminTenantsRouter.HandleFunc("", tenantHandler.List).
		Name(logging.NewLogEvent("admin-list-tenants", "[admin] list all tenants").ToString()).
		Methods(http.MethodGet)
	adminTenantsRouter.HandleFunc("", tenantHandler.Create).
		Name(logging.NewLogEvent("admin-create-tenant", "[admin] register a tenant").ToString()).
		Methods(http.MethodPost)
	adminTenantsRouter.HandleFunc("/{id}", tenantHandler.Get).
		Name(logging.NewLogEvent("admin-get-tenant", "[admin] get tenant by id").ToString()).
		Methods(http.MethodGet)
	adminTenantsRouter.HandleFunc("/{id}", tenantHandler.Update).
		Name(logging.NewLogEvent("admin-update-tenant", "[admin] update tenant by id").ToString()).
		Methods(http.MethodPatch)
	adminTenantsRouter.HandleFunc("/{id}", tenantHandler.Delete).
		Name(logging.NewLogEvent("admin-delete-tenant", "[admin] delete tenant by id").ToString()).
		Methods(http.MethodDelete)

	v1Metadata := api.VersionMetadata{
		ID:          Version,
		Collections: v1Collections,
	}
	apiMetadata := api.Metadata{
		ID: CRMAPIPrefix,
		Versions: []api.VersionMetadata{
			v1Metadata,
		},
	}
	apiRouter.HandleFunc("", apiMetadata.ServeHTTP).Methods(http.MethodGet)
	apiRouter.Use(gorillaHandlers.CompressHandler)

	apiV1Router.HandleFunc("", v1Metadata.ServeHTTP).Methods(http.MethodGet)

	return nil
}
