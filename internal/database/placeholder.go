package database

import (
	"strconv"
	"strings"
)

// rebind rewrites '?' placeholders into Postgres positional parameters
// ($1, $2, ...). Question marks inside single-quoted literals, double-quoted
// identifiers and comments are left untouched.
func rebind(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch ch {
		case '\'', '"':
			j := skipQuoted(query, i, ch)
			b.WriteString(query[i:j])
			i = j - 1
		case '-':
			if i+1 < len(query) && query[i+1] == '-' {
				j := strings.IndexByte(query[i:], '\n')
				if j < 0 {
					b.WriteString(query[i:])
					return b.String()
				}
				b.WriteString(query[i : i+j])
				i += j - 1
				continue
			}
			b.WriteByte(ch)
		case '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// skipQuoted returns the index just past the quoted section opened at
// query[start]. Doubled quotes inside the section are escapes.
func skipQuoted(query string, start int, quote byte) int {
	for i := start + 1; i < len(query); i++ {
		if query[i] != quote {
			continue
		}
		if i+1 < len(query) && query[i+1] == quote {
			i++
			continue
		}
		return i + 1
	}
	return len(query)
}

// isInsert reports whether the statement's first keyword is INSERT.
func isInsert(query string) bool {
	q := strings.TrimSpace(query)
	return len(q) >= 6 && strings.EqualFold(q[:6], "INSERT")
}

// withReturningID appends "RETURNING id" to INSERT statements that do not
// already carry a RETURNING clause, since Postgres has no last-insert-id.
func withReturningID(query string) string {
	if !isInsert(query) || strings.Contains(strings.ToUpper(query), "RETURNING") {
		return query
	}
	q := strings.TrimRight(strings.TrimSpace(query), ";")
	return strings.TrimSpace(q) + " RETURNING id"
}
