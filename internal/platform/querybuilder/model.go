package querybuilder

import (
	"fmt"
	"reflect"
)

// InsertModel builds a single-row INSERT from a struct's `db` tags. Fields
// without a tag (or tagged "-") are skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return "", nil, fmt.Errorf("insert model for %s is nil", table)
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("insert model for %s must be a struct, got %s", table, value.Kind())
	}

	structType := value.Type()
	columns := make([]string, 0, structType.NumField())
	values := make([]any, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, tag)
		values = append(values, value.Field(i).Interface())
	}
	if len(columns) == 0 {
		return "", nil, fmt.Errorf("insert model for %s has no db-tagged fields", table)
	}

	builder := InsertInto(table).Columns(columns...).Values(values...)
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}
	return builder.ToSQL()
}
