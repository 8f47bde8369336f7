package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestMongoErrorClassifier_IsTransient(t *testing.T) {
	classifier := NewMongoErrorClassifier()

	tests := []struct {
		name        string
		err         error
		isTransient bool
	}{
		{name: "nil", err: nil, isTransient: false},
		{
			name:        "shutdown in progress",
			err:         mongo.CommandError{Code: 91, Message: "The server is in quiesce mode and will shut down"},
			isTransient: true,
		},
		{
			name:        "not writable primary",
			err:         mongo.CommandError{Code: 10107, Message: "not primary"},
			isTransient: true,
		},
		{
			name:        "retryable write label",
			err:         mongo.CommandError{Code: 1, Labels: []string{"RetryableWriteError"}},
			isTransient: true,
		},
		{
			name:        "network error label",
			err:         mongo.CommandError{Labels: []string{"NetworkError"}, Message: "connection closed"},
			isTransient: true,
		},
		{
			name:        "authentication failed",
			err:         mongo.CommandError{Code: 18, Message: "Authentication failed."},
			isTransient: false,
		},
		{
			name:        "duplicate key on write",
			err:         mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}},
			isTransient: false,
		},
		{
			name:        "connection refused",
			err:         &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			isTransient: true,
		},
		{
			name:        "temporary dns failure",
			err:         &net.DNSError{Err: "server misbehaving", Name: "mongo", IsTemporary: true},
			isTransient: true,
		},
		{
			name:        "permanent dns failure",
			err:         &net.DNSError{Err: "no such host", Name: "mongo", IsNotFound: true},
			isTransient: false,
		},
		{
			name:        "server selection error",
			err:         errors.New("server selection error: context deadline exceeded, current topology: { Type: Unknown }"),
			isTransient: true,
		},
		{
			name:        "server selection hiding an auth failure",
			err:         errors.New("server selection error: server selection timeout, current topology: { Servers: [{ Last error: connection() error occurred during connection handshake: auth error: sasl conversation error }] }"),
			isTransient: false,
		},
		{
			name:        "cancelled",
			err:         fmt.Errorf("ping: %w", context.Canceled),
			isTransient: false,
		},
		{
			name:        "invalid uri",
			err:         errors.New(`error parsing uri: scheme must be "mongodb" or "mongodb+srv"`),
			isTransient: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.IsTransient(tt.err); got != tt.isTransient {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.isTransient)
			}
		})
	}
}
