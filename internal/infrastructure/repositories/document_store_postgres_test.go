package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/domain/repositories"
)

func newMockPostgresStore(t *testing.T) (*GormDocumentStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewGormDocumentStore(db), mock
}

func documentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"collection", "id", "body", "created_at", "updated_at"})
}

func TestGormDocumentStore_Postgres_Get(t *testing.T) {
	store, mock := newMockPostgresStore(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "documents" WHERE collection = \$1 AND id = \$2`).
		WillReturnRows(documentRows().AddRow(repositories.CollectionUniversities, "u1", []byte(`{"name":"Alpha"}`), now, now))

	doc, err := store.Get(context.Background(), repositories.CollectionUniversities, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", doc.ID)
	assert.Equal(t, "Alpha", doc.Fields["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDocumentStore_Postgres_GetErrors(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`FROM "documents"`).WillReturnRows(documentRows())
	_, err := store.Get(context.Background(), repositories.CollectionUniversities, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	mock.ExpectQuery(`FROM "documents"`).WillReturnError(errors.New("connection refused"))
	_, err = store.Get(context.Background(), repositories.CollectionUniversities, "u1")
	assert.EqualError(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDocumentStore_Postgres_FindUsesJSONPaths(t *testing.T) {
	store, mock := newMockPostgresStore(t)
	now := time.Now()

	mock.ExpectQuery(`json_extract_path_text\("body"::json,.*\(body #> '\{ranking\}'\) IS NOT NULL ORDER BY \(body #> '\{ranking\}'\) DESC,id`).
		WillReturnRows(documentRows().
			AddRow(repositories.CollectionUniversities, "u2", []byte(`{"name":"Beta","ranking":9}`), now, now))

	q := repositories.Query{}.Where("location.province", "Punjab")
	q.OrderBy = &repositories.OrderBy{Field: "ranking", Descending: true}
	q.Limit = 5

	docs, err := store.Find(context.Background(), repositories.CollectionUniversities, q)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "u2", docs[0].ID)
	assert.Equal(t, float64(9), docs[0].Fields["ranking"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDocumentStore_Postgres_UpdateMissingRollsBack(t *testing.T) {
	store, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "documents"`).WillReturnRows(documentRows())
	mock.ExpectRollback()

	err := store.Update(context.Background(), repositories.CollectionUniversities, "missing", map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormDocumentStore_Postgres_UpdateCommits(t *testing.T) {
	store, mock := newMockPostgresStore(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM "documents"`).
		WillReturnRows(documentRows().AddRow(repositories.CollectionUniversities, "u1", []byte(`{"name":"Alpha"}`), now, now))
	mock.ExpectExec(`UPDATE "documents" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Update(context.Background(), repositories.CollectionUniversities, "u1", map[string]interface{}{"location.city": "Lahore"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
