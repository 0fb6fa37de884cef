package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvdapps/panorama/internal/cache"
)

func newDBStoreTest(t *testing.T) (*cache.DBStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return cache.NewDBStore(sqlx.NewDb(db, "mysql")), mock
}

func TestDBStore_Read(t *testing.T) {
	fetchedAt := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

	t.Run("hit", func(t *testing.T) {
		store, mock := newDBStoreTest(t)
		mock.ExpectQuery("SELECT domain_key, payload, fetched_at FROM cache_entries").
			WithArgs("weather").
			WillReturnRows(sqlmock.NewRows([]string{"domain_key", "payload", "fetched_at"}).
				AddRow("weather", []byte(`{"temp":21.5}`), fetchedAt))

		entry, err := store.Read(context.Background(), "weather")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "weather", entry.Key)
		assert.Equal(t, []byte(`{"temp":21.5}`), []byte(entry.Payload))
		assert.True(t, entry.FetchedAt.Equal(fetchedAt))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss returns nil without an error", func(t *testing.T) {
		store, mock := newDBStoreTest(t)
		mock.ExpectQuery("SELECT domain_key, payload, fetched_at FROM cache_entries").
			WithArgs("currency").
			WillReturnRows(sqlmock.NewRows([]string{"domain_key", "payload", "fetched_at"}))

		entry, err := store.Read(context.Background(), "currency")
		require.NoError(t, err)
		assert.Nil(t, entry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBStore_Write(t *testing.T) {
	store, mock := newDBStoreTest(t)
	fetchedAt := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO cache_entries").
		WithArgs("weather", []byte(`{"temp":21.5}`), fetchedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Write(context.Background(), "weather", []byte(`{"temp":21.5}`), fetchedAt)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
