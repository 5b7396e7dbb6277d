package bench

import (
	"context"
	"fmt"

	"github.com/fpierfederici/redbench/internal/store"
)

// RunSequential performs one set-then-get round trip: write key=value, wait
// for the acknowledgment, read the key back, and verify the reply. A value
// mismatch is reported as *MismatchError; transport failures pass through
// wrapped.
func RunSequential(ctx context.Context, conn store.Conn, key, value string) error {
	if err := conn.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	got, err := conn.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if got != value {
		return &MismatchError{Key: key, Want: value, Got: got}
	}
	return nil
}

// RunPipelined performs the same round trip with both requests queued before
// anything is sent: one flush carries the set and the get, and both replies
// are read in order. This collapses two network round trips into one, which
// pays off when a single handle is waiting on the wire, but buys nothing once
// enough concurrent workers already keep the server saturated.
func RunPipelined(ctx context.Context, conn store.Conn, key, value string) error {
	got, err := conn.PipeSetGet(ctx, key, value)
	if err != nil {
		return fmt.Errorf("pipelined set/get %s: %w", key, err)
	}
	if got != value {
		return &MismatchError{Key: key, Want: value, Got: got}
	}
	return nil
}
