// internal/writer/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// MaxWriteRegisters is the FC16 limit for one write-multiple-registers request.
const MaxWriteRegisters = 123

// registerWriter is the part of modbus.Client the publish path needs.
type registerWriter interface {
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// EndpointClient is a single TCP connection to the publish target.
// Requests are serialised because the unit id lives on the shared handler.
// After a failed request the connection is dropped; the handler dials
// again on the next write.
type EndpointClient struct {
	mu       sync.Mutex
	endpoint string
	setUnit  func(uint8)
	regs     registerWriter
	conn     io.Closer
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func NewEndpointClient(cfg Config) (*EndpointClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("writer modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("writer modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &EndpointClient{
		endpoint: cfg.Endpoint,
		setUnit:  func(id uint8) { h.SlaveId = id },
		regs:     modbus.NewClient(h),
		conn:     h,
	}, nil
}

func (c *EndpointClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.Close()
}

// WriteRegisters writes regs starting at addr in one request.
func (c *EndpointClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	switch {
	case len(regs) == 0:
		return errors.New("writer modbus: empty write")
	case len(regs) > MaxWriteRegisters:
		return fmt.Errorf("writer modbus: %d registers exceed request limit %d", len(regs), MaxWriteRegisters)
	case int(addr)+len(regs) > 1<<16:
		return fmt.Errorf("writer modbus: write at %d of %d registers exceeds register space", addr, len(regs))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setUnit(unitID)

	if _, err := c.regs.WriteMultipleRegisters(addr, uint16(len(regs)), packRegisters(regs)); err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("writer modbus: %s unit=%d addr=%d qty=%d: %w", c.endpoint, unitID, addr, len(regs), err)
	}
	return nil
}

// packRegisters lays registers out big-endian, as they travel on the wire.
func packRegisters(regs []uint16) []byte {
	out := make([]byte, 0, len(regs)*2)
	for _, r := range regs {
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}
