package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Dialect identifiers supported by the database layer.
const (
	// DialectPostgres is the PostgreSQL dialect name.
	DialectPostgres = "postgres"
	// DialectSQLite is the SQLite dialect name.
	DialectSQLite = "sqlite"
)

// DialectName returns the active database dialect name.
func DialectName(conn *gorm.DB) string {
	if conn == nil || conn.Dialector == nil {
		return ""
	}
	return conn.Dialector.Name()
}

// IsSQLite reports whether the connection uses SQLite.
func IsSQLite(conn *gorm.DB) bool {
	return DialectName(conn) == DialectSQLite
}

// JSONTextExpr returns a SQL expression casting a JSON column to text.
func JSONTextExpr(conn *gorm.DB, column string) string {
	if IsSQLite(conn) {
		return fmt.Sprintf("CAST(%s AS TEXT)", column)
	}
	return fmt.Sprintf("%s::text", column)
}

// JSONContainsExpr returns a SQL condition matching rows whose JSON column,
// rendered as text, contains a substring bound as the single parameter.
func JSONContainsExpr(conn *gorm.DB, column string) string {
	return JSONTextExpr(conn, column) + " LIKE ?"
}

// JSONPathExpr returns a SQL expression extracting a nested element from a
// JSON column. Path segments are object keys; array indexes are numeric
// strings such as "0".
func JSONPathExpr(conn *gorm.DB, column string, path ...string) string {
	if len(path) == 0 {
		return column
	}
	if IsSQLite(conn) {
		var b strings.Builder
		b.WriteString("$")
		for _, segment := range path {
			if isNumericSegment(segment) {
				b.WriteString("[" + segment + "]")
				continue
			}
			b.WriteString("." + segment)
		}
		return fmt.Sprintf("json_extract(%s, '%s')", column, b.String())
	}

	expr := column
	for _, segment := range path {
		if isNumericSegment(segment) {
			expr += "->" + segment
			continue
		}
		expr += "->'" + segment + "'"
	}
	return expr
}

// isNumericSegment reports whether a path segment is an array index.
func isNumericSegment(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
