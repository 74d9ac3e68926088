package cv

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return parsed
}

func deletePattern(table string) string {
	return regexp.QuoteMeta(fmt.Sprintf(`DELETE FROM usuarios.%s WHERE id_usuario = $1`, table))
}

func expectSectionClear(mock sqlmock.Sqlmock, table string, profileID int64) {
	mock.ExpectExec(deletePattern(table)).
		WithArgs(profileID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(setvalPattern(table)).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestReplaceFullPayloadCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	const profileID = int64(12)
	payload := Payload{
		ExperienciaLaboral: []WorkExperience{{Empresa: "Acme", Cargo: "Dev", Descripcion: "backend"}},
		Educacion:          []Education{{Universidad: "UNAM", Carrera: "ISC", FechaInicio: "2019-08-01", FechaFin: "2023-06-30"}},
		Cursos:             []Course{{NombreCurso: "Go", Descripcion: "intro", Curso: "https://example.com/go"}},
		Habilidades:        []SkillRef{{SkillID: 3}},
		Idiomas:            []LanguageRef{{LanguageID: 2}},
	}

	mock.ExpectBegin()

	expectSectionClear(mock, tableExperiencia, profileID)
	mock.ExpectExec(regexp.QuoteMeta(insertExperiencia)).
		WithArgs(profileID, "Acme", "Dev", "backend").
		WillReturnResult(sqlmock.NewResult(1, 1))

	expectSectionClear(mock, tableEducacion, profileID)
	mock.ExpectExec(regexp.QuoteMeta(insertEducacion)).
		WithArgs(profileID, "UNAM", "ISC", "2019-08-01", "2023-06-30").
		WillReturnResult(sqlmock.NewResult(1, 1))

	expectSectionClear(mock, tableCursos, profileID)
	mock.ExpectExec(regexp.QuoteMeta(insertCurso)).
		WithArgs(profileID, "Go", "intro", "https://example.com/go").
		WillReturnResult(sqlmock.NewResult(1, 1))

	expectSectionClear(mock, tableHabilidades, profileID)
	mock.ExpectExec(regexp.QuoteMeta(insertHabilidad)).
		WithArgs(profileID, int64(3)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	expectSectionClear(mock, tableIdiomas, profileID)
	mock.ExpectExec(regexp.QuoteMeta(insertIdioma)).
		WithArgs(profileID, int64(2)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	if err := repo.Replace(context.Background(), profileID, payload); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestReplaceEmptyPayloadClearsEverySection(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	const profileID = int64(5)

	mock.ExpectBegin()
	for _, table := range []string{tableExperiencia, tableEducacion, tableCursos, tableHabilidades, tableIdiomas} {
		expectSectionClear(mock, table, profileID)
	}
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	if err := repo.Replace(context.Background(), profileID, Payload{}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestReplaceDanglingSkillRollsBackWholeTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	const profileID = int64(9)
	payload := Payload{
		ExperienciaLaboral: []WorkExperience{{Empresa: "Acme", Cargo: "Dev", Descripcion: "x"}},
		Habilidades:        []SkillRef{{SkillID: 999999}},
	}

	mock.ExpectBegin()

	expectSectionClear(mock, tableExperiencia, profileID)
	mock.ExpectExec(regexp.QuoteMeta(insertExperiencia)).
		WithArgs(profileID, "Acme", "Dev", "x").
		WillReturnResult(sqlmock.NewResult(1, 1))

	expectSectionClear(mock, tableEducacion, profileID)
	expectSectionClear(mock, tableCursos, profileID)
	expectSectionClear(mock, tableHabilidades, profileID)

	mock.ExpectExec(regexp.QuoteMeta(insertHabilidad)).
		WithArgs(profileID, int64(999999)).
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			ConstraintName: "usuarios_habilidades_id_habilidad_fkey",
			Message:        `insert or update on table "usuarios_habilidades" violates foreign key constraint`,
		})

	// The idiomas section is never reached; the whole transaction unwinds.
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	err = repo.Replace(context.Background(), profileID, payload)
	if err == nil {
		t.Fatalf("expected constraint error")
	}

	var constraintErr *ConstraintError
	if !errors.As(err, &constraintErr) {
		t.Fatalf("expected ConstraintError, got %T: %v", err, err)
	}
	if constraintErr.Table != tableHabilidades {
		t.Fatalf("expected table %s, got %s", tableHabilidades, constraintErr.Table)
	}
	if constraintErr.Constraint != "usuarios_habilidades_id_habilidad_fkey" {
		t.Fatalf("unexpected constraint: %s", constraintErr.Constraint)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestReplaceStoreFaultIsNotConstraintError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	const profileID = int64(4)

	mock.ExpectBegin()
	mock.ExpectExec(deletePattern(tableExperiencia)).
		WithArgs(profileID).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	err = repo.Replace(context.Background(), profileID, Payload{})
	if err == nil {
		t.Fatalf("expected store fault")
	}
	var constraintErr *ConstraintError
	if errors.As(err, &constraintErr) {
		t.Fatalf("store fault must not surface as ConstraintError: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestGetDocumentAssemblesAllSections(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	const profileID = int64(12)

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios.experiencia_laboral")).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"empresa", "cargo", "descripcion"}).
			AddRow("Acme", "Dev", "backend").
			AddRow("Initech", "QA", nil))

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios.educacion")).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"universidad", "carrera", "fecha_inicio", "fecha_fin"}).
			AddRow("UNAM", "ISC", mustDate(t, "2019-08-01"), mustDate(t, "2023-06-30")))

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios.cursos")).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"nombre_curso", "descripcion", "curso"}))

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios.usuarios_habilidades")).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"id_habilidad"}).AddRow(int64(3)).AddRow(int64(7)))

	mock.ExpectQuery(regexp.QuoteMeta("FROM usuarios.usuarios_idiomas")).
		WithArgs(profileID).
		WillReturnRows(sqlmock.NewRows([]string{"id_idioma"}).AddRow(int64(1)))

	repo := &PGRepo{DB: db}
	doc, err := repo.GetDocument(context.Background(), profileID)
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}

	if doc.ProfileID != profileID {
		t.Fatalf("expected profile id %d, got %d", profileID, doc.ProfileID)
	}
	if len(doc.ExperienciaLaboral) != 2 || doc.ExperienciaLaboral[0].Empresa != "Acme" {
		t.Fatalf("unexpected experience: %+v", doc.ExperienciaLaboral)
	}
	if doc.ExperienciaLaboral[1].Descripcion != "" {
		t.Fatalf("null descripcion should map to empty string")
	}
	if len(doc.Educacion) != 1 || doc.Educacion[0].FechaFin != "2023-06-30" {
		t.Fatalf("unexpected education: %+v", doc.Educacion)
	}
	if len(doc.Cursos) != 0 {
		t.Fatalf("expected no courses, got %+v", doc.Cursos)
	}
	if len(doc.Habilidades) != 2 || doc.Habilidades[0].SkillID != 3 {
		t.Fatalf("unexpected skills: %+v", doc.Habilidades)
	}
	if len(doc.Idiomas) != 1 || doc.Idiomas[0].LanguageID != 1 {
		t.Fatalf("unexpected languages: %+v", doc.Idiomas)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
