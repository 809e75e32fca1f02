package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openDirectory returns an in-memory database shaped like the user
// directory: a user row and its credential row.
func openDirectory(t *testing.T) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, stmt := range []string{
		`CREATE TABLE users (id TEXT PRIMARY KEY, email TEXT NOT NULL UNIQUE)`,
		`CREATE TABLE credentials (user_id TEXT PRIMARY KEY, hash TEXT NOT NULL)`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func tableSize(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func createAccount(ctx context.Context, tx DBTX, id, email string) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, email) VALUES (?, ?)`, id, email); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO credentials (user_id, hash) VALUES (?, 'h')`, id)
	return err
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	errHook := errors.New("hook failed")

	cases := []struct {
		name      string
		seed      bool
		fn        func(ctx context.Context, tx DBTX) error
		wantErr   error
		wantUsers int
	}{
		{
			name:      "both rows committed",
			fn:        func(ctx context.Context, tx DBTX) error { return createAccount(ctx, tx, "u1", "a@x.io") },
			wantUsers: 1,
		},
		{
			name: "callback error undoes writes",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := createAccount(ctx, tx, "u1", "a@x.io"); err != nil {
					return err
				}
				return errHook
			},
			wantErr: errHook,
		},
		{
			name: "constraint failure on second account keeps first out",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := createAccount(ctx, tx, "u1", "dup@x.io"); err != nil {
					return err
				}
				return createAccount(ctx, tx, "u2", "dup@x.io")
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := openDirectory(t)

			err := WithTx(ctx, db, nil, tc.fn)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.wantUsers == 0:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantUsers, tableSize(t, db, "users"))
			assert.Equal(t, tc.wantUsers, tableSize(t, db, "credentials"))
		})
	}
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := openDirectory(t)

	assert.PanicsWithValue(t, "half written", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO users (id, email) VALUES ('u1', 'a@x.io')`)
			require.NoError(t, err)
			panic("half written")
		})
	})
	assert.Zero(t, tableSize(t, db, "users"))
}

func TestWithTx_ClosedDatabase(t *testing.T) {
	db := openDirectory(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})

	assert.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}
