package repository

import "regexp"

// A handful of raw query fragments in this codebase are written in Postgres
// form and reused on MySQL. AdaptQuery is the narrow, best-effort shim that
// makes that possible. It performs exactly three rewrites:
//
//	NOW()::date          -> DATE(NOW())
//	expr::type           -> CAST(expr AS type)
//	$N placeholders      -> ?
//
// Nothing else is translated. Fragments that need any other dialect-specific
// syntax must not go through here; this is deliberately not a SQL parser.
var (
	nowDateRe     = regexp.MustCompile(`(?i)NOW\(\)::date`)
	castRe        = regexp.MustCompile(`([\w'.]+(?:\(\))?)::(\w+)`)
	placeholderRe = regexp.MustCompile(`\$\d+`)
)

// AdaptQuery rewrites a Postgres-form query fragment for MySQL.
func AdaptQuery(query string) string {
	query = nowDateRe.ReplaceAllString(query, "DATE(NOW())")
	query = castRe.ReplaceAllString(query, "CAST($1 AS $2)")
	query = placeholderRe.ReplaceAllString(query, "?")
	return query
}
