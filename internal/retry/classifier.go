package retry

import (
	"context"
	"errors"
	"net"
	"strings"
	"syscall"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB server error codes for transient conditions.
// See: https://www.mongodb.com/docs/manual/reference/error-codes/
const (
	mongoCodeHostUnreachable                 = 6
	mongoCodeHostNotFound                    = 7
	mongoCodeNetworkTimeout                  = 89
	mongoCodeShutdownInProgress              = 91
	mongoCodePrimarySteppedDown              = 189
	mongoCodeExceededTimeLimit               = 262
	mongoCodeSocketException                 = 9001
	mongoCodeNotWritablePrimary              = 10107
	mongoCodeInterruptedAtShutdown           = 11600
	mongoCodeInterruptedDueToReplStateChange = 11602
	mongoCodeNotPrimaryNoSecondaryOk         = 13435
	mongoCodeNotPrimaryOrSecondary           = 13436
)

var transientMongoCodes = []int{
	mongoCodeHostUnreachable,
	mongoCodeHostNotFound,
	mongoCodeNetworkTimeout,
	mongoCodeShutdownInProgress,
	mongoCodePrimarySteppedDown,
	mongoCodeExceededTimeLimit,
	mongoCodeSocketException,
	mongoCodeNotWritablePrimary,
	mongoCodeInterruptedAtShutdown,
	mongoCodeInterruptedDueToReplStateChange,
	mongoCodeNotPrimaryNoSecondaryOk,
	mongoCodeNotPrimaryOrSecondary,
}

// transientPatterns match driver messages that carry no typed error,
// notably topology.ServerSelectionError.
var transientPatterns = []string{
	"server selection error",
	"connection refused",
	"connection reset",
	"no reachable servers",
	"i/o timeout",
	"broken pipe",
	"unexpected eof",
}

// MongoErrorClassifier implements csvmongo.ErrorClassifier for the MongoDB driver.
type MongoErrorClassifier struct{}

// NewMongoErrorClassifier creates a new MongoDB error classifier.
func NewMongoErrorClassifier() *MongoErrorClassifier {
	return &MongoErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
// Cancellation is never transient; the caller asked to stop.
func (c *MongoErrorClassifier) IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	if mongo.IsNetworkError(err) {
		return true
	}

	var srvErr mongo.ServerError
	if errors.As(err, &srvErr) {
		if srvErr.HasErrorLabel("RetryableWriteError") || srvErr.HasErrorLabel("TransientTransactionError") {
			return true
		}
		for _, code := range transientMongoCodes {
			if srvErr.HasErrorCode(code) {
				return true
			}
		}
		return false
	}

	if isNetworkError(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	// Server selection errors also wrap handshake failures that retrying cannot fix.
	if strings.Contains(msg, "auth error") || strings.Contains(msg, "authentication failed") {
		return false
	}
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}

// isNetworkError checks for dial and socket failures below the driver.
func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		return errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
			errors.Is(opErr.Err, syscall.ECONNRESET) ||
			errors.Is(opErr.Err, syscall.ENETUNREACH) ||
			errors.Is(opErr.Err, syscall.EHOSTUNREACH)
	}

	return false
}
