// internal/poller/builder.go
package poller

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/ccd-multitrack/internal/config"
	"github.com/tamzrod/ccd-multitrack/internal/multitrack"
	pmodbus "github.com/tamzrod/ccd-multitrack/internal/poller/modbus"
)

// Build constructs a Poller and wires Modbus client lifecycle.
// Connection is reused while healthy.
// On transport death, Poller discards the client and uses factory on a future tick.
func Build(s *cfg.SourceConfig, opts ...Option) (*Poller, func() error, error) {
	if s == nil {
		return nil, nil, errors.New("poller: source config required")
	}

	factory := func() (Client, error) {
		return pmodbus.New(pmodbus.Config{
			Endpoint: s.Endpoint,
			UnitID:   s.UnitID,
			Timeout:  time.Duration(s.TimeoutMs) * time.Millisecond,
		})
	}

	// initial client (fail fast at startup)
	client, err := factory()
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			Interval: time.Duration(s.IntervalMs) * time.Millisecond,
			Blocks: map[multitrack.Param]ReadBlock{
				multitrack.ParamStart: {Address: s.Start.Address, Capacity: s.Start.Capacity},
				multitrack.ParamEnd:   {Address: s.End.Address, Capacity: s.End.Capacity},
				multitrack.ParamBin:   {Address: s.Bin.Address, Capacity: s.Bin.Capacity},
			},
		},
		client,
		factory,
		opts...,
	)
	if err != nil {
		return nil, nil, err
	}

	return p, p.Close, nil
}
