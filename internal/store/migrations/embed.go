// Package migrations embeds the SQL schema for the resume store.
package migrations

import "embed"

// FS holds the sqlite migrations
//
//go:embed *.sql
var FS embed.FS
