package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vvka-141/csvmongo/internal/retry"
	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// appName is reported to the server in the connection handshake.
const appName = "csvmongo"

// MongoConnector implements csvmongo.Connector with automatic retry on
// transient failures.
type MongoConnector struct {
	uri            string
	hosts          []string
	database       string
	collection     string
	connectTimeout time.Duration
	retryExecutor  *retry.Executor
}

// NewConnector validates the connection settings of cfg and returns a
// connector for the target collection. cfg.Retries bounds how many times a
// transient failure is retried; zero fails on the first error.
// Retry attempts are reported through logger.
func NewConnector(cfg csvmongo.ImportConfig, logger csvmongo.Logger) (*MongoConnector, error) {
	if logger == nil {
		panic("logger cannot be nil")
	}

	hosts, err := parseHosts(cfg.StoreAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid connection URI %s: %w: %w", redactURI(cfg.StoreAddress), csvmongo.ErrInvalidConfig, err)
	}
	if cfg.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required: %w", csvmongo.ErrInvalidConfig)
	}
	if cfg.CollectionName == "" {
		return nil, fmt.Errorf("collection name is required: %w", csvmongo.ErrInvalidConfig)
	}
	if strings.ContainsAny(cfg.CollectionName, "$\x00") {
		return nil, fmt.Errorf("collection name %q contains an illegal character: %w", cfg.CollectionName, csvmongo.ErrInvalidConfig)
	}

	strategy := retry.NewExponentialBackoff(cfg.Retries,
		retry.WithInitialDelay(csvmongo.DefaultRetryInitialDelay),
		retry.WithMaxDelay(csvmongo.DefaultRetryMaxDelay),
	)
	executor := retry.NewExecutor(retry.NewMongoErrorClassifier(), strategy).
		WithOnRetry(func(attempt int, err error, delay time.Duration) {
			logger.Verbose("Connection attempt %d failed (%v), retrying in %s", attempt+1, err, delay)
		})

	return &MongoConnector{
		uri:            cfg.StoreAddress,
		hosts:          hosts,
		database:       cfg.DatabaseName,
		collection:     cfg.CollectionName,
		connectTimeout: csvmongo.DefaultConnectTimeout,
		retryExecutor:  executor,
	}, nil
}

// parseHosts extracts the host list of a mongodb:// or mongodb+srv:// URI.
// Full option validation is left to the driver; an SRV URI is not resolved.
func parseHosts(uri string) ([]string, error) {
	rest, ok := strings.CutPrefix(uri, "mongodb://")
	if !ok {
		rest, ok = strings.CutPrefix(uri, "mongodb+srv://")
	}
	if !ok {
		return nil, errors.New(`scheme must be "mongodb" or "mongodb+srv"`)
	}

	if i := strings.IndexAny(rest, "/?"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	if rest == "" {
		return nil, errors.New("no host in connection URI")
	}

	hosts := strings.Split(rest, ",")
	for _, h := range hosts {
		if h == "" {
			return nil, errors.New("empty host in connection URI")
		}
	}
	return hosts, nil
}

// NewConnectorFactory adapts NewConnector to the factory signature used by
// the importer.
func NewConnectorFactory(logger csvmongo.Logger) func(csvmongo.ImportConfig) (csvmongo.Connector, error) {
	return func(cfg csvmongo.ImportConfig) (csvmongo.Connector, error) {
		c, err := NewConnector(cfg, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// Connect opens a client and pings the primary. The returned Store owns the
// client and must be closed.
func (c *MongoConnector) Connect(ctx context.Context) (csvmongo.Store, error) {
	var client *mongo.Client

	err := c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		// Timeouts given in the URI take precedence over the defaults.
		opts := options.Client().
			SetAppName(appName).
			SetServerSelectionTimeout(c.connectTimeout).
			SetConnectTimeout(c.connectTimeout).
			ApplyURI(c.uri)

		cl, err := mongo.Connect(ctx, opts)
		if err != nil {
			return err
		}

		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			_ = cl.Disconnect(context.Background())
			return err
		}

		client = cl
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("connection to %s cancelled: %w: %w", strings.Join(c.hosts, ","), csvmongo.ErrConnection, ctxErr)
		}
		return nil, wrapConnectionError(err, c.uri, c.hosts)
	}

	return newMongoStore(client, c.database, c.collection), nil
}
