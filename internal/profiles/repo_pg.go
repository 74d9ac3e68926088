package profiles

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const profileColumns = `id, id_userauth, salario, id_area, codigo_postal, estado, municipio, colonia`

func (r *PGRepo) Create(ctx context.Context, profile Profile) (Profile, error) {
	const query = `
INSERT INTO usuarios.usuarios (id_userauth, salario, id_area, codigo_postal, estado, municipio, colonia)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + profileColumns
	return scanProfile(r.DB.QueryRowContext(ctx, query,
		profile.AuthID,
		profile.Salario,
		profile.AreaID,
		profile.CodigoPostal,
		profile.Estado,
		profile.Municipio,
		profile.Colonia,
	))
}

func (r *PGRepo) List(ctx context.Context) ([]Profile, error) {
	const query = `
SELECT ` + profileColumns + `
FROM usuarios.usuarios
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Profile{}
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, profile)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (Profile, error) {
	const query = `
SELECT ` + profileColumns + `
FROM usuarios.usuarios
WHERE id = $1
LIMIT 1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, id))
}

// GetByAuthID resolves the auth identity to its profile. id_userauth is unique,
// so at most one row matches; zero rows means no profile has been provisioned yet.
func (r *PGRepo) GetByAuthID(ctx context.Context, authID int64) (Profile, error) {
	const query = `
SELECT ` + profileColumns + `
FROM usuarios.usuarios
WHERE id_userauth = $1
LIMIT 1`
	return scanProfile(r.DB.QueryRowContext(ctx, query, authID))
}

func (r *PGRepo) Update(ctx context.Context, profile Profile) (Profile, error) {
	const query = `
UPDATE usuarios.usuarios
SET id_userauth = $1, salario = $2, id_area = $3,
    codigo_postal = $4, estado = $5, municipio = $6, colonia = $7
WHERE id = $8
RETURNING ` + profileColumns
	return scanProfile(r.DB.QueryRowContext(ctx, query,
		profile.AuthID,
		profile.Salario,
		profile.AreaID,
		profile.CodigoPostal,
		profile.Estado,
		profile.Municipio,
		profile.Colonia,
		profile.ID,
	))
}

func (r *PGRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM usuarios.usuarios WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID,
		&p.AuthID,
		&p.Salario,
		&p.AreaID,
		&p.CodigoPostal,
		&p.Estado,
		&p.Municipio,
		&p.Colonia,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	return p, nil
}
