package cv

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "cv not found" }

// ConstraintError reports a row rejected by the store because of the payload's
// content, most commonly a skill or language id missing from the catalog. It is
// a client-input error and always follows a full rollback.
type ConstraintError struct {
	Table      string
	Constraint string
	Detail     string
}

func (e *ConstraintError) Error() string {
	if e.Constraint != "" {
		return fmt.Sprintf("constraint %s violated on %s: %s", e.Constraint, e.Table, e.Detail)
	}
	return fmt.Sprintf("invalid row for %s: %s", e.Table, e.Detail)
}

// classifyError turns Postgres data and integrity violations (classes 22 and 23,
// e.g. a dangling id_habilidad or a malformed date) into ConstraintError. Anything
// else stays a store fault.
func classifyError(table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) >= 2 {
		switch pgErr.Code[:2] {
		case "22", "23":
			return &ConstraintError{
				Table:      table,
				Constraint: pgErr.ConstraintName,
				Detail:     pgErr.Message,
			}
		}
	}
	return fmt.Errorf("insert into %s: %w", table, err)
}
