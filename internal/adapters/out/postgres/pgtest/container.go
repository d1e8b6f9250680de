// Package pgtest starts a disposable PostgreSQL container with the schema applied.
// It is imported by integration tests only.
package pgtest

import (
	"context"
	"fmt"
	"time"

	"fifo/internal/adapters/out/postgres"
	"fifo/internal/adapters/out/postgres/migrations"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Tables lists every table Truncate empties between tests.
var Tables = []string{"parcels", "audit_logs"}

type Container struct {
	container *tcpostgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

func Start(ctx context.Context) (*Container, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	c := &Container{container: container}

	c.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return c, err
	}

	c.DB, err = postgres.Open(c.DSN)
	if err != nil {
		return c, err
	}

	sqlDB, err := c.DB.DB()
	if err != nil {
		return c, err
	}

	if err = migrations.Up(ctx, sqlDB); err != nil {
		return c, err
	}

	return c, nil
}

func (c *Container) Truncate() error {
	for _, table := range Tables {
		if err := c.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

func (c *Container) Terminate(ctx context.Context) error {
	if c == nil || c.container == nil {
		return nil
	}
	return c.container.Terminate(ctx)
}
