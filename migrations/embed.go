// Package migrations holds the SQL schema for the credit ledger, embedded
// so the migration runner works regardless of working directory.
package migrations

import "embed"

// FS contains every .sql file in this directory. The runner applies them
// in lexical order, so new files take the next numeric prefix.
//
//go:embed *.sql
var FS embed.FS
