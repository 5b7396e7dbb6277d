// Package store provides connection handling for the Redis server under
// benchmark. Each worker owns exactly one Conn for the duration of its chunk;
// handles are never shared or pooled across workers.
package store

import (
	"context"
	"fmt"
	"time"
)

// Conn is a handle to the key-value store, capable of issuing the two
// round-trip shapes the benchmark measures. Close is idempotent and must be
// called even when the owning worker's operations failed.
type Conn interface {
	// Set writes key=value and waits for the acknowledgment.
	Set(ctx context.Context, key, value string) error
	// Get fetches the value stored under key.
	Get(ctx context.Context, key string) (string, error)
	// PipeSetGet queues a set of key=value and a get of key, flushes both in
	// one write, and returns the get reply. The set's acknowledgment is not
	// awaited before the get is queued.
	PipeSetGet(ctx context.Context, key, value string) (string, error)
	Close() error
}

// Provider acquires connections to a single endpoint. Acquisition failures
// are reported as *ConnectionError; callers decide whether to retry.
type Provider interface {
	Acquire(ctx context.Context) (Conn, error)
}

// Config identifies the endpoint and how to dial it.
type Config struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// ConnectionError indicates that a handle could not be acquired: the endpoint
// was unreachable or refused within the dial timeout.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
