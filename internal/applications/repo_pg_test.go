package applications

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

const functionCall = `SELECT usuarios.get_postulaciones_perfil($1) AS postulaciones_data`

func TestListByAuthIDDelegatesToSQLFunction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery(regexp.QuoteMeta(functionCall)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"postulaciones_data"}).
			AddRow(`{"postulaciones":[{"id":1}]}`))

	repo := &PGRepo{DB: db}
	aggregate, err := repo.ListByAuthID(context.Background(), 3)
	if err != nil {
		t.Fatalf("ListByAuthID: %v", err)
	}
	if string(aggregate) != `{"postulaciones":[{"id":1}]}` {
		t.Fatalf("unexpected aggregate: %s", aggregate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestListByAuthIDNullAggregate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery(regexp.QuoteMeta(functionCall)).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"postulaciones_data"}).AddRow(nil))

	repo := &PGRepo{DB: db}
	aggregate, err := repo.ListByAuthID(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListByAuthID: %v", err)
	}
	if aggregate != nil {
		t.Fatalf("expected nil aggregate, got %s", aggregate)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
