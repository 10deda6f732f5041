package testhelpers

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/DanielPopoola/claimpay/internal/config"
	"github.com/DanielPopoola/claimpay/internal/domain"
	"github.com/DanielPopoola/claimpay/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type TestDatabase struct {
	Container testcontainers.Container
	DB        *postgres.DB
	Config    *config.DatabaseConfig
}

// SetupTestDatabase starts postgres in a container and migrates it. Tests using
// it are skipped under -short.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	if testing.Short() {
		t.Skip("skipping postgres container tests in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbConfig := &config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Name:            "testdb",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
		MigrationsPath:  MigrationsPath(),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := postgres.Connect(ctx, dbConfig, logger)
	require.NoError(t, err)

	err = postgres.NewMigrator(db, dbConfig.MigrationsPath, dbConfig.Name, logger).Up()
	require.NoError(t, err)

	return &TestDatabase{
		Container: container,
		DB:        db,
		Config:    dbConfig,
	}
}

func (td *TestDatabase) Cleanup(t *testing.T) {
	ctx := context.Background()
	td.DB.Close()
	require.NoError(t, td.Container.Terminate(ctx))
}

func (td *TestDatabase) CleanTables(t *testing.T) {
	ctx := context.Background()

	_, err := td.DB.Pool.Exec(ctx, "TRUNCATE TABLE payments, claims RESTART IDENTITY CASCADE;")
	require.NoError(t, err)
}

// InsertClaim seeds a claim row and returns its ID.
func (td *TestDatabase) InsertClaim(t *testing.T, status domain.ClaimStatus, claimedAmount string) int64 {
	t.Helper()
	var id int64
	err := td.DB.Pool.QueryRow(context.Background(),
		`INSERT INTO claims (claim_status, claimed_amount) VALUES ($1, $2::numeric) RETURNING claim_id`,
		string(status), claimedAmount,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// MigrationsPath locates db/migrations relative to this file.
func MigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	root := filepath.Join(filepath.Dir(filename), "..", "..", "..", "..", "..")
	return filepath.Join(root, "db", "migrations")
}
