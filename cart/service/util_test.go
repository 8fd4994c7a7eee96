package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/RedArtelerist/OnlineBookStore/internal/repository"
)

type testEnv struct {
	pool           *pgxpool.Pool
	redisClient    *redis.Client
	pgContainer    *postgres.PostgresContainer
	redisContainer *testRedis.RedisContainer
	queries        *repository.Queries
	service        *CartService
}

func setup(t *testing.T, c context.Context) *testEnv {
	t.Helper()

	migrations := filepath.Join("..", "..", "..", "migrations")
	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			filepath.Join(migrations, "20240211101533_create_table_users.up.sql"),
			filepath.Join(migrations, "20240211102108_create_table_books.up.sql"),
			filepath.Join(migrations, "20240211102841_create_table_categories.up.sql"),
			filepath.Join(migrations, "20240211103355_create_table_carts.up.sql"),
			filepath.Join(migrations, "20240211104017_create_table_orders.up.sql"),
			filepath.Join("seed", "users.seed.sql"),
			filepath.Join("seed", "books.seed.sql"),
		),
	)
	if err != nil {
		t.Fatalf("failed running postgres container with error: %s", err)
	}

	pgConnStr, err := pgContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting postgres connection string with error: %s", err)
	}

	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	if err != nil {
		t.Fatalf("failed parsing pgx config with error: %s", err)
	}

	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	if err != nil {
		t.Fatalf("failed creating postgres pool with error: %s", err)
	}
	if err = pool.Ping(c); err != nil {
		t.Fatalf("failed ping postgres pool with error: %s", err)
	}

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	if err != nil {
		t.Fatalf("failed running redis container with error: %s", err)
	}

	redisConnStr, err := redisContainer.ConnectionString(c)
	if err != nil {
		t.Fatalf("failed getting redis connection string with error: %s", err)
	}

	redisOpt, err := redis.ParseURL(redisConnStr)
	if err != nil {
		t.Fatalf("failed parsing redis connection string with error: %s", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err = redisClient.Ping(c).Err(); err != nil {
		t.Fatalf("failed ping redis client with error: %s", err)
	}

	queries := repository.New(pool)
	return &testEnv{
		pool:           pool,
		redisClient:    redisClient,
		pgContainer:    pgContainer,
		redisContainer: redisContainer,
		queries:        queries,
		service:        NewCartService(pool, queries, redisClient),
	}
}

func (e *testEnv) teardown(t *testing.T) {
	t.Helper()

	e.redisClient.Close()
	e.pool.Close()
	if err := testcontainers.TerminateContainer(e.pgContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
	if err := testcontainers.TerminateContainer(e.redisContainer); err != nil {
		t.Fatalf("failed to terminate container: %s", err)
	}
}
