// Package bench implements the set-then-get round-trip benchmark: workload
// partitioning, the two round-trip modes, the concurrent runner, and the
// repetition harness.
package bench

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Mode selects how each round trip is issued.
type Mode string

const (
	// ModeSequential issues the set, waits for its acknowledgment, then
	// issues the get.
	ModeSequential Mode = "sequential"
	// ModePipelined queues set and get together and flushes them in one
	// write, reading both replies in order.
	ModePipelined Mode = "pipelined"
)

// ParseMode validates a mode string from the CLI.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSequential, ModePipelined:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (must be %q or %q)", s, ModeSequential, ModePipelined)
	}
}

// Workload describes one benchmark run: how many round trips to perform, how
// to spread them across workers, and how to issue them. Namespace prefixes
// every key so that runs sharing one database never collide.
type Workload struct {
	TotalOps   int
	WorkerHint int
	Mode       Mode
	Namespace  string
	ValueSize  int
}

// NewWorkload builds a workload with a fresh random namespace.
func NewWorkload(totalOps, workerHint int, mode Mode) Workload {
	return Workload{
		TotalOps:   totalOps,
		WorkerHint: workerHint,
		Mode:       mode,
		Namespace:  uuid.NewString(),
	}
}

// Chunk is one worker's share of the workload. Owner is unique within a run
// and namespaces the worker's keys.
type Chunk struct {
	Owner int
	Ops   int
}

// Split divides total operations into equally sized chunks. The worker count
// is the smallest divisor of total that is >= hint, found by linear scan, so
// no chunk is under- or over-sized and per-worker completion times stay
// comparable. A hint larger than total clamps to one operation per worker.
func Split(total, hint int) ([]Chunk, error) {
	if total <= 0 {
		return nil, fmt.Errorf("total operations must be positive, got %d", total)
	}
	if hint <= 0 {
		return nil, fmt.Errorf("worker count hint must be positive, got %d", hint)
	}
	if hint > total {
		hint = total
	}

	workers := hint
	for total%workers != 0 {
		workers++
	}

	perWorker := total / workers
	chunks := make([]Chunk, workers)
	for i := range chunks {
		chunks[i] = Chunk{Owner: i, Ops: perWorker}
	}
	return chunks, nil
}

// Key derives the key for one operation. Uniqueness within a run follows from
// the (owner, sequence) pair; uniqueness across runs from the namespace.
func Key(namespace string, owner, seq int) string {
	return fmt.Sprintf("%s:%d:%010d", namespace, owner, seq)
}

// Value derives the payload written under the matching key, optionally padded
// to valueSize bytes. The content encodes owner and sequence so a collision
// shows up as a verification mismatch rather than a silent false positive.
func Value(owner, seq, valueSize int) string {
	v := fmt.Sprintf("val-%d-%010d", owner, seq)
	if pad := valueSize - len(v); pad > 0 {
		v += strings.Repeat("x", pad)
	}
	return v
}
