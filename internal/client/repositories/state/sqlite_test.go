package state

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:statetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE state (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	v, err := repo.Get(context.Background(), "userToken")
	require.NoError(t, err)
	require.Equal(t, "", v)
}

func TestSQLiteRepository_SetAndGet(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "userToken", "tok"))

	v, err := repo.Get(ctx, "userToken")
	require.NoError(t, err)
	require.Equal(t, "tok", v)
}

func TestSQLiteRepository_SetOverwrites(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "userId", "1"))
	require.NoError(t, repo.Set(ctx, "userId", "2"))

	v, err := repo.Get(ctx, "userId")
	require.NoError(t, err)
	require.Equal(t, "2", v)
}

func TestSQLiteRepository_Delete(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "userEmail", "a@b.com"))
	require.NoError(t, repo.Delete(ctx, "userEmail"))

	v, err := repo.Get(ctx, "userEmail")
	require.NoError(t, err)
	require.Equal(t, "", v)

	// deleting again is a no-op
	require.NoError(t, repo.Delete(ctx, "userEmail"))
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "userToken", "tok"))
	require.NoError(t, repo.Set(ctx, "login_time", "123"))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{"userToken", "login_time"} {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, "", v)
	}
}
