package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Shivanand-hulikatti/group-training-booking/internal/database"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	url := os.Getenv("POSTGRES_URL")
	var container testcontainers.Container
	if url == "" {
		var err error
		container, url, err = startPostgresContainer(ctx)
		if err != nil {
			fmt.Printf("> postgres unavailable, integration tests will be skipped: %v\n", err)
		}
	}

	if url != "" {
		pool, err := pgxpool.New(ctx, url)
		if err == nil {
			err = database.Migrate(ctx, pool)
		}
		if err != nil {
			fmt.Printf("> could not prepare database: %v\n", err)
		} else {
			testPool = pool
		}
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if container != nil {
		_ = container.Terminate(ctx)
	}
	os.Exit(code)
}

func startPostgresContainer(ctx context.Context) (c testcontainers.Container, url string, err error) {
	// testcontainers panics when no docker daemon can be reached.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start container: %v", r)
		}
	}()

	pg, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		postgres.WithDatabase("booking"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, "", err
	}

	url, err = pg.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, "", err
	}
	return pg, url, nil
}

func getPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("postgres is not available")
	}
	return testPool
}
