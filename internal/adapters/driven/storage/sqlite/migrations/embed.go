// Package migrations holds the versioned schema of the run history database.
package migrations

import "embed"

// FS holds NNN_name.up.sql files, applied in version order.
//
//go:embed *.sql
var FS embed.FS
