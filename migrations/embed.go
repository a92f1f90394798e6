// Package migrations embeds the SQL schema migrations so the binaries can
// apply them without the source tree.
package migrations

import "embed"

// FS holds the NNNNNN_name.up.sql and .down.sql files
//
//go:embed *.sql
var FS embed.FS
