package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestAdapter_SeedObjectTypesInsertsOrdinals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for ordinal, name := range []string{"env", "farm", "farm_role", "server"} {
		mock.ExpectExec(regexp.QuoteMeta(querySeedObjectType)).
			WithArgs(name, ordinal+1).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, NewAdapterFromDB(db).SeedObjectTypes(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_SeedObjectTypesIsRepeatable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Second call inserts nothing: ON CONFLICT DO NOTHING reports zero rows.
	for run := 0; run < 2; run++ {
		mock.ExpectBegin()
		for i := 0; i < 4; i++ {
			mock.ExpectExec(regexp.QuoteMeta(querySeedObjectType)).
				WillReturnResult(sqlmock.NewResult(0, int64(1-run)))
		}
		mock.ExpectCommit()
	}

	adapter := NewAdapterFromDB(db)
	require.NoError(t, adapter.SeedObjectTypes(context.Background()))
	require.NoError(t, adapter.SeedObjectTypes(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_ValidateSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs("object_types").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(queryTableExists)).
		WithArgs("results").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err = NewAdapterFromDB(db).ValidateSchema(context.Background())
	require.ErrorContains(t, err, "results table does not exist")
	require.NoError(t, mock.ExpectationsWereMet())
}
