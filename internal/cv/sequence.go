package cv

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaName = "usuarios"

// The five CV child tables, in synchronization order. Table identifiers are
// interpolated into reconciliation SQL, so they must never come from caller
// input; this list is the only accepted source.
const (
	tableExperiencia = "experiencia_laboral"
	tableEducacion   = "educacion"
	tableCursos      = "cursos"
	tableHabilidades = "usuarios_habilidades"
	tableIdiomas     = "usuarios_idiomas"
)

var childTables = map[string]struct{}{
	tableExperiencia: {},
	tableEducacion:   {},
	tableCursos:      {},
	tableHabilidades: {},
	tableIdiomas:     {},
}

func allowedTable(table string) bool {
	_, ok := childTables[table]
	return ok
}

// reconcileSequence repositions the table's serial sequence so the next
// generated id is exactly MAX(id)+1, treating an empty table as zero.
// Idempotent; runs inside the caller's transaction. The full-replace write
// strategy leaves the sequence behind the table contents without this.
func reconcileSequence(ctx context.Context, tx *sql.Tx, table string) error {
	if !allowedTable(table) {
		return fmt.Errorf("sequence reconcile: table %q not in allow-list", table)
	}
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s.%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s.%s`,
		schemaName, table, schemaName, table,
	)
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("sequence reconcile %s: %w", table, err)
	}
	return nil
}
