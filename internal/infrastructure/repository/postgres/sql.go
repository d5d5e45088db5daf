package postgres

import (
	"database/sql"
	"strings"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// Transaction poolers in statement mode can reject multi-parameter binds
// or drop unnamed prepared statements between requests. Repositories fall
// back to a single-parameter form when these show up.
func isBindParameterMismatch(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "bind message supplies") &&
		strings.Contains(text, "parameters")
}

func isUnnamedPreparedStatementMissing(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	if strings.Contains(text, "unnamed prepared statement") {
		return true
	}
	return strings.Contains(text, "prepared statement") && strings.Contains(text, "26000")
}
