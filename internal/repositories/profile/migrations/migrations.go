// Package migrations embeds the SQL schema migrations for the local
// profile store.
package migrations

import "embed"

// FS holds the goose migration files.
//
//go:embed *.sql
var FS embed.FS
