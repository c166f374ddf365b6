// Package sqlite embeds the SQLite flavour of the schema migrations.
// The tables mirror the Postgres ones with SQLite column types: UUIDs and
// dates are stored as text, the card document as JSON text.
package sqlite

import "embed"

// FS holds the SQLite *.sql migration files.
//
//go:embed *.sql
var FS embed.FS
