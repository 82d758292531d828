package database

import (
	"strconv"
	"strings"
)

// Dialect identifies the SQL backend behind a DB. Its value is the
// database/sql driver name.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "pgx"
)

func ParseDialect(driver string) (Dialect, bool) {
	switch Dialect(driver) {
	case DialectSQLite, DialectPostgres:
		return Dialect(driver), true
	}
	return "", false
}

// Rebind rewrites ? placeholders into the dialect's bind syntax.
// Queries never contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
