package integration

import (
	"context"
	"testing"
	"time"

	"cantina-api/internal/config"
	"cantina-api/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database server instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Config    config.DatabaseConfig
}

// SetupTestDB starts a PostgreSQL test container. The application database
// itself is created by repository.Init against the admin database, the same
// path production takes.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("postgres"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Config: config.DatabaseConfig{
			Host:          host,
			Port:          port.Int(),
			User:          "postgres",
			Password:      "testpass",
			Database:      "cantina_escolar",
			AdminDatabase: "postgres",
		},
	}
}

// NewTestRepository creates an initialized repository against the container.
func NewTestRepository(t *testing.T, testDB *TestDB) repository.ProductRepository {
	t.Helper()

	repo := repository.NewProductRepository(testDB.Config, zerolog.Nop())
	if err := repo.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize repository: %v", err)
	}
	return repo
}

// CleanupDB removes every product row.
func CleanupDB(t *testing.T, testDB *TestDB) {
	t.Helper()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, testDB.Config.ConnectionString())
	if err != nil {
		t.Fatalf("failed to connect for cleanup: %v", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, `DELETE FROM "produtos"`); err != nil {
		t.Fatalf("failed to clean products table: %v", err)
	}
}
