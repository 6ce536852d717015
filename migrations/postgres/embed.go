// Package postgres embebe las migraciones SQL del dashboard.
package postgres

import "embed"

// FS contiene los archivos *_up.sql y *_down.sql, aplicados en orden
// lexicográfico por el comando migrate.
//
//go:embed *.sql
var FS embed.FS
