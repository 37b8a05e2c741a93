// Package handlers holds the REST controllers of the CRM API.
package handlers

import (
	"database/sql"
	"time"
)

// The set* helpers collect the non-nil fields of a partial update request
// into the column map handed to the services.

func setString(fields map[string]interface{}, column string, value *string) {
	if value != nil {
		fields[column] = *value
	}
}

func setInt(fields map[string]interface{}, column string, value *int) {
	if value != nil {
		fields[column] = *value
	}
}

func setInt64(fields map[string]interface{}, column string, value *int64) {
	if value != nil {
		fields[column] = *value
	}
}

func setTime(fields map[string]interface{}, column string, value *time.Time) {
	if value != nil {
		fields[column] = *value
	}
}

func setNullTime(fields map[string]interface{}, column string, value *time.Time) {
	if value != nil {
		fields[column] = sql.NullTime{Time: *value, Valid: true}
	}
}

func setBool(fields map[string]interface{}, column string, value *bool) {
	if value != nil {
		fields[column] = *value
	}
}

func nullTimeFrom(value *time.Time) sql.NullTime {
	if value == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *value, Valid: true}
}
