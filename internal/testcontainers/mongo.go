// Package testcontainers starts disposable MongoDB instances for
// integration tests. Docker must be available to the test process.
package testcontainers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// defaultMongoPort is the port exposed by the MongoDB container
	defaultMongoPort = "27017"

	defaultMongoImage = "mongo:7"
)

// MongoContainer wraps a running MongoDB container.
//
// Example:
//
//	container, err := NewMongoContainer(ctx)
//	if err != nil {
//	    t.Skip(err)
//	}
//	defer container.Terminate(ctx)
//
//	client, err := mongo.Connect(options.Client().ApplyURI(container.URI()))
type MongoContainer struct {
	testcontainers.Container
	// Host is the container's hostname or IP address
	Host string

	// Port is the exposed MongoDB port
	Port int
}

// NewMongoContainer starts a single-node MongoDB without authentication and
// waits until it accepts connections.
func NewMongoContainer(ctx context.Context) (*MongoContainer, error) {
	req := testcontainers.ContainerRequest{
		Image:        defaultMongoImage,
		ExposedPorts: []string{defaultMongoPort + "/tcp"},
		WaitingFor:   wait.ForListeningPort(defaultMongoPort + "/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, defaultMongoPort)
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	port, err := strconv.Atoi(mappedPort.Port())
	if err != nil {
		return nil, fmt.Errorf("failed to parse port: %w", err)
	}

	return &MongoContainer{
		Container: container,
		Host:      host,
		Port:      port,
	}, nil
}

// URI returns a connection string suitable for the mongo driver
func (c *MongoContainer) URI() string {
	return fmt.Sprintf("mongodb://%s:%d", c.Host, c.Port)
}
