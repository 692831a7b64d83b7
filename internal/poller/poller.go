// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/ccd-multitrack/internal/layout"
	"github.com/tamzrod/ccd-multitrack/internal/multitrack"
)

// Client abstracts the Modbus operation needed by the poller.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
}

// Factory makes a new client. ONE attempt per call.
type Factory func() (Client, error)

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval time.Duration
	Blocks   map[multitrack.Param]ReadBlock
}

// Poller is a dumb, clock-driven reader of the user arrays.
type Poller struct {
	cfg     Config
	client  Client
	factory Factory
	log     *zap.Logger
}

// Option configures a Poller.
type Option func(*Poller)

// WithLogger sets the logger for client lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.log = l
		}
	}
}

// New creates a poller with immutable config.
// factory may be nil, in which case a failed client is never replaced.
func New(cfg Config, client Client, factory Factory, opts ...Option) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if len(cfg.Blocks) == 0 {
		return nil, errors.New("poller: at least one read block required")
	}
	for p, b := range cfg.Blocks {
		if b.Capacity == 0 {
			return nil, fmt.Errorf("poller: zero capacity block for %s", p)
		}
	}
	p := &Poller{cfg: cfg, client: client, factory: factory, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// PollOnce performs exactly one poll cycle.
// All-or-nothing: any failure aborts the cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{At: time.Now()}

	if p.client == nil {
		if p.factory == nil {
			res.Err = errors.New("poller: no client")
			return res
		}
		c, err := p.factory()
		if err != nil {
			res.Err = fmt.Errorf("poller: connect: %w", err)
			return res
		}
		p.log.Info("source client reconnected")
		p.client = c
	}

	arrays := make(map[multitrack.Param][]int32, len(p.cfg.Blocks))

	for _, param := range multitrack.Params {
		rb, ok := p.cfg.Blocks[param]
		if !ok {
			continue
		}

		regs, err := p.client.ReadHoldingRegisters(rb.Address, layout.Registers(rb.Capacity))
		if err != nil {
			p.log.Warn("source read failed",
				zap.Stringer("param", param),
				zap.Uint16("addr", rb.Address),
				zap.Bool("reconnect", p.factory != nil),
				zap.Error(err),
			)
			p.discardClient()
			res.Err = fmt.Errorf("poller: read %s addr=%d: %w", param, rb.Address, err)
			return res
		}
		arrays[param] = layout.DecodeArray(regs)
	}

	// Commit only if all reads succeeded
	res.Arrays = arrays
	return res
}

// discardClient drops a failed transport so the factory is used next cycle.
func (p *Poller) discardClient() {
	if p.factory == nil {
		return
	}
	if c, ok := p.client.(io.Closer); ok {
		_ = c.Close()
	}
	p.client = nil
}

// Close releases the current client, if any.
func (p *Poller) Close() error {
	if c, ok := p.client.(io.Closer); ok {
		p.client = nil
		return c.Close()
	}
	return nil
}
