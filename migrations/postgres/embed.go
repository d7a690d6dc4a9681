// Package migrations embebe las migraciones SQL de PostgreSQL.
//
// Formato: {version}_{name}_up.sql / {version}_{name}_down.sql
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
