package migrations

import "embed"

// FS встроенные SQL миграции для golang-migrate (источник iofs)
//
//go:embed *.sql
var FS embed.FS
