package workflows

import (
	"database/sql"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// FieldsOf flattens an entity struct into a column-name keyed map used for
// workflow filter matching. Embedded structs are walked, gorm bookkeeping
// fields are skipped and sql.NullTime values collapse to nil when unset.
func FieldsOf(entity interface{}) map[string]interface{} {
	fields := map[string]interface{}{}
	value := reflect.ValueOf(entity)
	for value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return fields
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return fields
	}
	collect(value, fields)
	return fields
}

func collect(value reflect.Value, fields map[string]interface{}) {
	valueType := value.Type()
	for i := 0; i < value.NumField(); i++ {
		field := valueType.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldValue := value.Field(i)
		if field.Anonymous && fieldValue.Kind() == reflect.Struct {
			collect(fieldValue, fields)
			continue
		}
		switch field.Name {
		case "CreatedAt", "UpdatedAt", "DeletedAt":
			continue
		}
		fields[toSnakeCase(field.Name)] = normalize(fieldValue.Interface())
	}
}

func normalize(v interface{}) interface{} {
	switch typed := v.(type) {
	case sql.NullTime:
		if !typed.Valid {
			return nil
		}
		return typed.Time.Format(time.RFC3339)
	case time.Time:
		return typed.Format(time.RFC3339)
	default:
		return v
	}
}

// matchesFilter reports whether every filter entry equals the corresponding
// entity field. Values are compared through their string form so JSON numbers
// match integer columns.
func matchesFilter(filter map[string]interface{}, fields map[string]interface{}) bool {
	for key, want := range filter {
		got, ok := fields[key]
		if !ok {
			return false
		}
		if stringify(want) != stringify(got) {
			return false
		}
	}
	return true
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	switch typed := v.(type) {
	case float64:
		if typed == float64(int64(typed)) {
			return fmt.Sprintf("%d", int64(typed))
		}
		return fmt.Sprintf("%v", typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func toSnakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && (name[i-1] < 'A' || name[i-1] > 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
