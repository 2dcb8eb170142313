// internals/helpers/sqlstate.go
package helper

import "strings"

// pgSQLStater dipenuhi error driver Postgres (pgconn.PgError) tanpa perlu
// import driver-nya langsung.
type pgSQLStater interface {
	SQLState() string
}

// IsForeignKeyViolation: SQLSTATE 23503 (baris masih direferensikan).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := err.(pgSQLStater); ok && pgErr.SQLState() == "23503" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 23503") || strings.Contains(msg, "foreign key")
}

// IsUniqueViolation: SQLSTATE 23505 (duplicate key).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pgErr, ok := err.(pgSQLStater); ok && pgErr.SQLState() == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
