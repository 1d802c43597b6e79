package repository_test

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	postgresImage = "postgres:17.6-alpine3.22"
	migration     = "../migrations/01_shopping_list.up.sql"
)

// startPostgres runs a disposable database with the schema applied and
// returns its connection string.
func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	container, err := postgres.Run(ctx, postgresImage,
		postgres.BasicWaitStrategies(),
		postgres.WithDatabase("shoppinglist"),
		postgres.WithInitScripts(migration),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	return container, connStr, nil
}
