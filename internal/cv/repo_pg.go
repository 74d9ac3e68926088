package cv

import (
	"context"
	"database/sql"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const (
	insertExperiencia = `INSERT INTO usuarios.experiencia_laboral (id_usuario, empresa, cargo, descripcion) VALUES ($1, $2, $3, $4)`
	insertEducacion   = `INSERT INTO usuarios.educacion (id_usuario, universidad, carrera, fecha_inicio, fecha_fin) VALUES ($1, $2, $3, $4, $5)`
	insertCurso       = `INSERT INTO usuarios.cursos (id_usuario, nombre_curso, descripcion, curso) VALUES ($1, $2, $3, $4)`
	insertHabilidad   = `INSERT INTO usuarios.usuarios_habilidades (id_usuario, id_habilidad) VALUES ($1, $2)`
	insertIdioma      = `INSERT INTO usuarios.usuarios_idiomas (id_usuario, id_idioma) VALUES ($1, $2)`
)

// Replace swaps the five child-table extents for profileID inside one
// transaction. Each section runs delete, sequence reconcile, then its inserts;
// sections proceed in fixed order. Inserts are sequential: *sql.Tx does not
// serialize concurrent statements on one transaction handle.
func (r *PGRepo) Replace(ctx context.Context, profileID int64, payload Payload) error {
	payload = payload.normalized()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cv sync: %w", err)
	}
	defer tx.Rollback()

	sections := []struct {
		table  string
		insert string
		rows   [][]any
	}{
		{tableExperiencia, insertExperiencia, experienceRows(payload.ExperienciaLaboral)},
		{tableEducacion, insertEducacion, educationRows(payload.Educacion)},
		{tableCursos, insertCurso, courseRows(payload.Cursos)},
		{tableHabilidades, insertHabilidad, skillRows(payload.Habilidades)},
		{tableIdiomas, insertIdioma, languageRows(payload.Idiomas)},
	}
	for _, section := range sections {
		if err := replaceSection(ctx, tx, profileID, section.table, section.insert, section.rows); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cv sync: %w", err)
	}
	return nil
}

func replaceSection(ctx context.Context, tx *sql.Tx, profileID int64, table, insertQuery string, rows [][]any) error {
	if !allowedTable(table) {
		return fmt.Errorf("cv sync: table %q not in allow-list", table)
	}
	deleteQuery := fmt.Sprintf(`DELETE FROM %s.%s WHERE id_usuario = $1`, schemaName, table)
	if _, err := tx.ExecContext(ctx, deleteQuery, profileID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if err := reconcileSequence(ctx, tx, table); err != nil {
		return err
	}
	for _, args := range rows {
		if _, err := tx.ExecContext(ctx, insertQuery, append([]any{profileID}, args...)...); err != nil {
			return classifyError(table, err)
		}
	}
	return nil
}

func experienceRows(items []WorkExperience) [][]any {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{item.Empresa, item.Cargo, nullableString(item.Descripcion)})
	}
	return rows
}

func educationRows(items []Education) [][]any {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{item.Universidad, item.Carrera, nullableString(item.FechaInicio), nullableString(item.FechaFin)})
	}
	return rows
}

func courseRows(items []Course) [][]any {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{item.NombreCurso, nullableString(item.Descripcion), nullableString(item.Curso)})
	}
	return rows
}

func skillRows(items []SkillRef) [][]any {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{item.SkillID})
	}
	return rows
}

func languageRows(items []LanguageRef) [][]any {
	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{item.LanguageID})
	}
	return rows
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

// GetDocument assembles the aggregate with five per-table reads. Orderings
// match the write-side expectations of the frontend: newest experience and
// courses first, education by end date, catalog joins by catalog id.
func (r *PGRepo) GetDocument(ctx context.Context, profileID int64) (Document, error) {
	doc := Document{
		ProfileID:          profileID,
		ExperienciaLaboral: []WorkExperience{},
		Educacion:          []Education{},
		Cursos:             []Course{},
		Habilidades:        []SkillRef{},
		Idiomas:            []LanguageRef{},
	}

	if err := r.readExperience(ctx, &doc); err != nil {
		return Document{}, err
	}
	if err := r.readEducation(ctx, &doc); err != nil {
		return Document{}, err
	}
	if err := r.readCourses(ctx, &doc); err != nil {
		return Document{}, err
	}
	if err := r.readSkills(ctx, &doc); err != nil {
		return Document{}, err
	}
	if err := r.readLanguages(ctx, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (r *PGRepo) readExperience(ctx context.Context, doc *Document) error {
	const query = `
SELECT empresa, cargo, descripcion
FROM usuarios.experiencia_laboral
WHERE id_usuario = $1
ORDER BY id DESC`
	rows, err := r.DB.QueryContext(ctx, query, doc.ProfileID)
	if err != nil {
		return fmt.Errorf("read %s: %w", tableExperiencia, err)
	}
	defer rows.Close()
	for rows.Next() {
		var item WorkExperience
		var descripcion sql.NullString
		if err := rows.Scan(&item.Empresa, &item.Cargo, &descripcion); err != nil {
			return err
		}
		item.Descripcion = descripcion.String
		doc.ExperienciaLaboral = append(doc.ExperienciaLaboral, item)
	}
	return rows.Err()
}

func (r *PGRepo) readEducation(ctx context.Context, doc *Document) error {
	const query = `
SELECT universidad, carrera, fecha_inicio, fecha_fin
FROM usuarios.educacion
WHERE id_usuario = $1
ORDER BY fecha_fin DESC`
	rows, err := r.DB.QueryContext(ctx, query, doc.ProfileID)
	if err != nil {
		return fmt.Errorf("read %s: %w", tableEducacion, err)
	}
	defer rows.Close()
	for rows.Next() {
		var item Education
		var inicio, fin sql.NullTime
		if err := rows.Scan(&item.Universidad, &item.Carrera, &inicio, &fin); err != nil {
			return err
		}
		item.FechaInicio = formatDate(inicio)
		item.FechaFin = formatDate(fin)
		doc.Educacion = append(doc.Educacion, item)
	}
	return rows.Err()
}

func (r *PGRepo) readCourses(ctx context.Context, doc *Document) error {
	const query = `
SELECT nombre_curso, descripcion, curso
FROM usuarios.cursos
WHERE id_usuario = $1
ORDER BY id DESC`
	rows, err := r.DB.QueryContext(ctx, query, doc.ProfileID)
	if err != nil {
		return fmt.Errorf("read %s: %w", tableCursos, err)
	}
	defer rows.Close()
	for rows.Next() {
		var item Course
		var descripcion, curso sql.NullString
		if err := rows.Scan(&item.NombreCurso, &descripcion, &curso); err != nil {
			return err
		}
		item.Descripcion = descripcion.String
		item.Curso = curso.String
		doc.Cursos = append(doc.Cursos, item)
	}
	return rows.Err()
}

func (r *PGRepo) readSkills(ctx context.Context, doc *Document) error {
	const query = `
SELECT id_habilidad
FROM usuarios.usuarios_habilidades
WHERE id_usuario = $1
ORDER BY id_habilidad`
	rows, err := r.DB.QueryContext(ctx, query, doc.ProfileID)
	if err != nil {
		return fmt.Errorf("read %s: %w", tableHabilidades, err)
	}
	defer rows.Close()
	for rows.Next() {
		var item SkillRef
		if err := rows.Scan(&item.SkillID); err != nil {
			return err
		}
		doc.Habilidades = append(doc.Habilidades, item)
	}
	return rows.Err()
}

func (r *PGRepo) readLanguages(ctx context.Context, doc *Document) error {
	const query = `
SELECT id_idioma
FROM usuarios.usuarios_idiomas
WHERE id_usuario = $1
ORDER BY id_idioma`
	rows, err := r.DB.QueryContext(ctx, query, doc.ProfileID)
	if err != nil {
		return fmt.Errorf("read %s: %w", tableIdiomas, err)
	}
	defer rows.Close()
	for rows.Next() {
		var item LanguageRef
		if err := rows.Scan(&item.LanguageID); err != nil {
			return err
		}
		doc.Idiomas = append(doc.Idiomas, item)
	}
	return rows.Err()
}

func formatDate(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format("2006-01-02")
}
