package migrations

import "embed"

// FS embeds the SQL migrations of the programs and businesses tables. The
// golang-migrate iofs source reads them from here.
//
//go:embed *.sql
var FS embed.FS

// Version is the schema version the service expects.
const Version = 1
