// Package postgres implements the published-snapshot and staging
// repositories on top of sqlx.
package postgres

import "database/sql"

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// nullableString maps "" to NULL so partial unique indexes and joins never
// see empty-string sentinels.
func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func fromNullable(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
