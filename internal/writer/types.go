// internal/writer/types.go
package writer

import (
	"go.uber.org/zap"

	"github.com/tamzrod/ccd-multitrack/internal/multitrack"
)

// Option configures the array and status writers.
type Option func(*options)

type options struct {
	log *zap.Logger
}

// WithLogger sets the logger used for delivery events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ArrayDest is where one validated array lives in target memory.
type ArrayDest struct {
	Address  uint16
	Capacity uint16
}

// StatusPlan places the validation status block in target memory.
type StatusPlan struct {
	Address uint16
}

// Plan is the fully-built publish plan for one sensor.
type Plan struct {
	Endpoint string
	UnitID   uint8
	Arrays   map[multitrack.Param]ArrayDest
	Status   *StatusPlan // nil = status block disabled
}
