// Package pgtest starts a throwaway Postgres for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image          = "postgres:15-alpine"
	startupTimeout = 30 * time.Second
	readyLog       = "database system is ready to accept connections"
)

// Instance is a running container. The zero value means Docker was unavailable.
type Instance struct {
	ConnString string
	container  *postgres.PostgresContainer
}

// Available reports whether the container started
func (i *Instance) Available() bool {
	return i != nil && i.ConnString != ""
}

// Start runs a container with database name. Failure is logged, not fatal, so
// packages still run their unit tests without Docker.
func Start(ctx context.Context, name string) *Instance {
	inst, err := start(ctx, name)
	if err != nil {
		log.Printf("pgtest: postgres unavailable, integration tests will skip: %v", err)
		return &Instance{}
	}
	return inst
}

func start(ctx context.Context, name string) (inst *Instance, err error) {
	// testcontainers panics when no Docker host can be found
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, fmt.Errorf("docker: %v", r)
		}
	}()

	c, err := postgres.Run(ctx, image,
		postgres.WithDatabase(name),
		postgres.WithUsername(name),
		postgres.WithPassword(name),
		testcontainers.WithWaitStrategy(
			wait.ForLog(readyLog).WithOccurrence(2).WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		return nil, err
	}
	conn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, err
	}
	return &Instance{ConnString: conn, container: c}, nil
}

// Stop terminates the container, if any
func (i *Instance) Stop(ctx context.Context) {
	if i == nil || i.container == nil {
		return
	}
	if err := i.container.Terminate(ctx); err != nil {
		log.Printf("pgtest: terminate container: %v", err)
	}
}

// Require skips t in short mode or when the container did not start
func (i *Instance) Require(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	if !i.Available() {
		t.Skip("integration test skipped: postgres unavailable")
	}
}
