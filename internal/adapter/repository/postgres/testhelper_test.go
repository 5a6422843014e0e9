package postgres_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/config"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/infrastructure/database"
)

const (
	postgisImage = "postgis/postgis:18-3.6-alpine"
	dbName       = "imagery"
	dbUser       = "test"
	dbPassword   = "test"
)

// startPostGIS runs a disposable PostGIS container, connects through the
// production pool constructor and applies every migration. The container is
// terminated when t finishes.
func startPostGIS(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, postgisImage,
		tcpostgres.WithDatabase(dbName),
		tcpostgres.WithUsername(dbUser),
		tcpostgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(90*time.Second),
		),
	)
	require.NoError(t, err, "starting postgis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminating postgis container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	pool, err := database.NewPostgresPool(ctx, config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            dbUser,
		Password:        dbPassword,
		Name:            dbName,
		SSLMode:         "disable",
		MaxOpenConns:    4,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	})
	require.NoError(t, err, "connecting to postgis")
	t.Cleanup(pool.Close)

	applied, err := database.RunMigrations(ctx, pool, migrationsDir())
	require.NoError(t, err, "running migrations")
	require.NotEmpty(t, applied)

	return pool
}

// resetAcquisitions empties the acquisition tables between subtests.
func resetAcquisitions(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE acquisitions CASCADE")
	require.NoError(t, err)
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}
