package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_FileDatabase(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "sqlite-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	dbPath := filepath.Join(tmpDir, "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	var fk int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk)
}

func TestWithTx(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE entries (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		err := WithTx(ctx, db, func(ctx context.Context) error {
			tx := GetTransaction(ctx)
			require.NotNil(t, tx)
			_, err := tx.ExecContext(ctx, `INSERT INTO entries (id) VALUES (?)`, "kept")
			return err
		})
		require.NoError(t, err)

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries WHERE id = 'kept'`).Scan(&count))
		assert.Equal(t, 1, count)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		wantErr := errors.New("boom")
		err := WithTx(ctx, db, func(ctx context.Context) error {
			tx := GetTransaction(ctx)
			_, err := tx.ExecContext(ctx, `INSERT INTO entries (id) VALUES (?)`, "dropped")
			require.NoError(t, err)
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)

		var count int
		require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries WHERE id = 'dropped'`).Scan(&count))
		assert.Equal(t, 0, count)
	})
}

func TestDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", FormatDate(parsed))

	_, err = ParseDate("07/01/2025")
	assert.Error(t, err)
}
