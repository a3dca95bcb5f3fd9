package persistence

import "embed"

//go:embed schema/*.sql
var SchemaFS embed.FS

// SchemaDir is the directory inside SchemaFS holding goose migrations.
const SchemaDir = "schema"
