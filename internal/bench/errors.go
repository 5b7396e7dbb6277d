package bench

import "fmt"

// MismatchError reports a round trip whose fetched value differed from the
// written value. It signals either a key collision between workers or a store
// inconsistency, and is counted rather than escalated.
type MismatchError struct {
	Key  string
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("value mismatch for %s: wrote %q, read %q", e.Key, e.Want, e.Got)
}

// SchedulingError reports that the concurrency substrate failed to spawn or
// await workers. It is fatal to the whole run.
type SchedulingError struct {
	Err error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("schedule workers: %v", e.Err)
}

func (e *SchedulingError) Unwrap() error { return e.Err }
