// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/ccd-multitrack/internal/config"
	"github.com/tamzrod/ccd-multitrack/internal/multitrack"
	wmodbus "github.com/tamzrod/ccd-multitrack/internal/writer/modbus"
)

// BuildPlan converts the publish config into a writer Plan.
// Assumes config has already passed geometry validation.
func BuildPlan(p *cfg.PublishConfig) (Plan, error) {
	if p == nil {
		return Plan{}, errors.New("writer: publish config required")
	}

	plan := Plan{
		Endpoint: p.Endpoint,
		UnitID:   p.UnitID,
		Arrays: map[multitrack.Param]ArrayDest{
			multitrack.ParamStart: {Address: p.Start.Address, Capacity: p.Start.Capacity},
			multitrack.ParamEnd:   {Address: p.End.Address, Capacity: p.End.Capacity},
			multitrack.ParamBin:   {Address: p.Bin.Address, Capacity: p.Bin.Capacity},
		},
	}

	if p.StatusAddress != nil {
		plan.Status = &StatusPlan{Address: *p.StatusAddress}
	}

	return plan, nil
}

// BuildEndpointClient connects the TCP client for the publish target.
func BuildEndpointClient(p *cfg.PublishConfig) (*wmodbus.EndpointClient, func() error, error) {
	if p == nil {
		return nil, nil, errors.New("writer: publish config required")
	}

	c, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint: p.Endpoint,
		Timeout:  time.Duration(p.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, nil, err
	}

	return c, c.Close, nil
}
