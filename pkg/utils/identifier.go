package utils

import "strings"

// QuoteIdentifier wraps a single identifier in the given quote character,
// doubling any embedded quote characters.
//
// Examples:
//   - ("users", '"') -> "\"users\""
//   - ("my\"table", '"') -> "\"my\"\"table\""
//   - ("events", '`') -> "`events`"
//   - ("", '"') -> ""
//
// Unlike BacktickIdentifier, dots are not treated as separators: the whole
// string is one identifier. Dialects use this for object names they always
// quote.
func QuoteIdentifier(name string, quote rune) string {
	if name == "" {
		return ""
	}

	q := string(quote)
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// BacktickIdentifier adds backticks around an identifier, handling nested identifiers.
// It properly handles database.table.column style identifiers by backticking each part.
//
// Examples:
//   - "table" -> "`table`"
//   - "database.table" -> "`database`.`table`"
//   - "`table`" -> "`table`" (already backticked, not double-backticked)
//   - "" -> ""
//
// This is used for ClickHouse targets supplied as a single dotted string, such
// as the TO table of a materialized view.
func BacktickIdentifier(name string) string {
	if name == "" {
		return ""
	}

	if IsBackticked(name) {
		return name
	}

	parts := strings.Split(name, ".")
	for i, part := range parts {
		if IsBackticked(part) {
			continue
		}
		parts[i] = "`" + part + "`"
	}
	return strings.Join(parts, ".")
}

// IsBackticked checks if a string is already wrapped in backticks.
//
// Examples:
//   - "`table`" -> true
//   - "table" -> false
//   - "`db`.`table`" -> false (qualified name, not a single backticked identifier)
//   - "" -> false
func IsBackticked(s string) bool {
	return len(s) >= 2 && s[0] == '`' && s[len(s)-1] == '`' && !strings.Contains(s[1:len(s)-1], "`")
}

// Unquote removes one level of double quotes or backticks from an identifier,
// collapsing doubled quote characters.
//
// Examples:
//   - "\"users\"" -> "users"
//   - "`users`" -> "users"
//   - "\"a\"\"b\"" -> "a\"b"
//   - "users" -> "users"
func Unquote(s string) string {
	if len(s) < 2 {
		return s
	}

	first, last := s[0], s[len(s)-1]
	if first != last || (first != '"' && first != '`') {
		return s
	}

	q := string(first)
	return strings.ReplaceAll(s[1:len(s)-1], q+q, q)
}
