package store

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vvka-141/csvmongo/pkg/csvmongo"
)

// redactURI hides the password of a connection URI for use in messages.
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "<unparseable uri>"
	}
	return u.Redacted()
}

// wrapConnectionError wraps raw driver errors with actionable guidance.
// The result always matches csvmongo.ErrConnection.
func wrapConnectionError(err error, uri string, hosts []string) error {
	errStr := strings.ToLower(err.Error())
	addr := strings.Join(hosts, ",")
	safeURI := redactURI(uri)

	switch {
	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "server misbehaving"):
		return fmt.Errorf(`cannot resolve MongoDB host %s: %w

Possible causes:
  - Hostname is misspelled in %s
  - The "mongo" service is not on the same docker network as the loader
  - DNS is not configured or reachable

Original error: %w`, addr, csvmongo.ErrConnection, safeURI, err)

	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused by MongoDB at %s: %w

Possible causes:
  - mongod is not running or still starting (check: docker compose ps mongo)
  - Wrong host or port
  - Firewall blocking the connection

Original error: %w`, addr, csvmongo.ErrConnection, err)

	case strings.Contains(errStr, "authentication failed") || strings.Contains(errStr, "auth error"):
		return fmt.Errorf(`authentication failed for %s: %w

Possible causes:
  - Wrong username or password in the connection URI
  - Missing authSource (try ?authSource=admin)

Original error: %w`, safeURI, csvmongo.ErrConnection, err)

	case strings.Contains(errStr, "server selection") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded"):
		return fmt.Errorf(`timed out selecting a MongoDB server at %s: %w

Possible causes:
  - Server is overloaded or unresponsive
  - Replica set has no primary (check rs.status())
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w`, addr, csvmongo.ErrConnection, err)

	default:
		return fmt.Errorf("failed to connect to %s: %w: %w", safeURI, csvmongo.ErrConnection, err)
	}
}
