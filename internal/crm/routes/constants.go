// Package routes ...
package routes

// Version ...
const (
	Version        = "v1"
	APIEndpoint    = "/api"
	CRMAPIPrefix   = "crm"
	AdminAPIPrefix = "/admin"
)
