package db_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdnotes/internal/api/config"
	"hdnotes/internal/api/db"
	"hdnotes/internal/notes/domain/entities"
	"hdnotes/pkg/db/postgres"
)

var errUnreachable = errors.New("connection refused")

func testConfig() *config.PostgresConfig {
	return &config.PostgresConfig{URL: "postgres://localhost/hd", MinConn: 1, MaxConn: 4}
}

func newGateway(t *testing.T, pool postgres.Pool, migrations, opens *atomic.Int32) *db.Gateway {
	t.Helper()
	return db.NewGateway(testConfig(), "/srv/migrations",
		db.WithMigrator(func(_ context.Context, dsn, path string) error {
			migrations.Add(1)
			assert.Equal(t, "postgres://localhost/hd", dsn)
			assert.Equal(t, "file:///srv/migrations", path)
			return nil
		}),
		db.WithOpener(func(_ context.Context, opts postgres.Options) (postgres.Pool, error) {
			opens.Add(1)
			assert.Equal(t, 4, opts.MaxConn)
			return pool, nil
		}),
	)
}

func TestGatewayConnectIsMemoized(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	var migrations, opens atomic.Int32
	g := newGateway(t, mock, &migrations, &opens)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Connect(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), migrations.Load())
	assert.Equal(t, int32(1), opens.Load())
}

func TestGatewayFailedConnectIsRetried(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	attempts := 0
	g := db.NewGateway(testConfig(), "/srv/migrations",
		db.WithMigrator(func(context.Context, string, string) error { return nil }),
		db.WithOpener(func(context.Context, postgres.Options) (postgres.Pool, error) {
			attempts++
			if attempts == 1 {
				return nil, errUnreachable
			}
			return mock, nil
		}),
	)

	err = g.Connect(context.Background())
	require.ErrorIs(t, err, errUnreachable)
	assert.Contains(t, err.Error(), db.ErrDBConnection)

	require.NoError(t, g.Connect(context.Background()))
	assert.Equal(t, 2, attempts)
}

func TestGatewayMigrationFailure(t *testing.T) {
	opened := false
	g := db.NewGateway(testConfig(), "/srv/migrations",
		db.WithMigrator(func(context.Context, string, string) error { return errUnreachable }),
		db.WithOpener(func(context.Context, postgres.Options) (postgres.Pool, error) {
			opened = true
			return nil, nil
		}),
	)

	err := g.Connect(context.Background())
	require.ErrorIs(t, err, errUnreachable)
	assert.Contains(t, err.Error(), db.ErrDBMigrations)
	assert.False(t, opened)
}

func TestGatewayRepositoriesBeforeConnect(t *testing.T) {
	g := db.NewGateway(testConfig(), "/srv/migrations")
	ctx := context.Background()

	_, err := g.Users().FindByEmail(ctx, "a@x.com")
	require.ErrorIs(t, err, db.ErrNotConnected)

	_, err = g.Notes().ListByOwner(ctx, "owner")
	require.ErrorIs(t, err, db.ErrNotConnected)

	err = g.Notes().DeleteByIDAndOwner(ctx, "id", "owner")
	require.ErrorIs(t, err, db.ErrNotConnected)

	assert.Equal(t, db.StatusDisconnected, g.Status(ctx))
}

func TestGatewayRepositoriesUsePool(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	var migrations, opens atomic.Int32
	g := newGateway(t, mock, &migrations, &opens)
	require.NoError(t, g.Connect(context.Background()))

	mock.ExpectExec(`DELETE FROM notes`).
		WithArgs("id", "owner").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = g.Notes().DeleteByIDAndOwner(context.Background(), "id", "owner")
	require.ErrorIs(t, err, entities.ErrNoteNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGatewayStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	var migrations, opens atomic.Int32
	g := newGateway(t, mock, &migrations, &opens)
	require.NoError(t, g.Connect(context.Background()))

	mock.ExpectPing()
	assert.Equal(t, db.StatusConnected, g.Status(context.Background()))

	mock.ExpectPing().WillReturnError(errUnreachable)
	assert.Equal(t, db.StatusDisconnected, g.Status(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGatewayClose(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	var migrations, opens atomic.Int32
	g := newGateway(t, mock, &migrations, &opens)
	require.NoError(t, g.Connect(context.Background()))

	mock.ExpectClose()
	g.Close(context.Background())
	assert.Equal(t, db.StatusDisconnected, g.Status(context.Background()))

	g.Close(context.Background())
	require.NoError(t, mock.ExpectationsWereMet())
}
