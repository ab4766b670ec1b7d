// Package migrations embeds the schema for every supported driver. Files in
// each directory follow golang-migrate naming: NNNNNN_name.{up,down}.sql.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
