//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/gshubitidze/rallysim/pkg/db/migrate"
	database "github.com/gshubitidze/rallysim/pkg/db/postgres"
)

// SetupTestDb creates a pg connection pool for the rallysim test database
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("rallysim-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbURL := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	return initPool(dbURL)
}

// SetupExternalTestDb connects to the database given via TESTDB_URL
// instead of starting a container (useful in CI).
func SetupExternalTestDb() *pgxpool.Pool {
	return initPool(os.Getenv("TESTDB_URL"))
}

func initPool(dbURL string) *pgxpool.Pool {
	if err := migrate.MigrateDb(dbURL); err != nil {
		log.Fatal(err)
	}
	return database.InitWithURL(dbURL)
}

func ClearRaceTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from race_result")
	pool.Exec(context.Background(), "delete from race_entry")
	pool.Exec(context.Background(), "delete from race_event")
}

func ClearCarTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from car")
}

func ClearTeamTable(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from team")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearRaceTables(pool)
	ClearCarTable(pool)
	ClearTeamTable(pool)
}
