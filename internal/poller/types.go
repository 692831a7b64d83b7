// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/ccd-multitrack/internal/multitrack"
)

// ReadBlock describes one user array in source memory.
// Geometry only: no semantics.
type ReadBlock struct {
	Address  uint16
	Capacity uint16
}

// PollResult is a snapshot produced by one poll cycle.
type PollResult struct {
	At time.Time

	// Arrays holds every configured user array, decoded.
	// Empty when Err is set.
	Arrays map[multitrack.Param][]int32

	Err error // non-nil means the poll cycle failed
}
