package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) ListByAuthID(ctx context.Context, authID int64) (json.RawMessage, error) {
	const query = `SELECT usuarios.get_postulaciones_perfil($1) AS postulaciones_data`
	var raw sql.NullString
	err := r.DB.QueryRowContext(ctx, query, authID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}
	return json.RawMessage(raw.String), nil
}
