package testinfra

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const MongoImage = "mongo:7"

type MongoContainer struct {
	*mongodb.MongoDBContainer
	URI string
}

// StartMongo runs a standalone mongod and waits until it accepts connections.
func StartMongo(ctx context.Context) (*MongoContainer, error) {
	ctr, err := mongodb.Run(ctx, MongoImage)
	if err != nil {
		return nil, fmt.Errorf("start mongo: %w", err)
	}

	uri, err := ctr.ConnectionString(ctx)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &MongoContainer{MongoDBContainer: ctr, URI: uri}, nil
}
