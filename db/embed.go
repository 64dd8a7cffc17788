// Package db embeds the SQL migrations so production builds ship a
// single binary.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
