// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/tamzrod/ccd-multitrack/internal/layout"
	"github.com/tamzrod/ccd-multitrack/internal/status"
)

// MaxCapacity is the largest array that fits one Modbus
// write-multiple-registers request together with its count register.
const MaxCapacity = 122

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil config")
	}

	mt := cfg.MultiTrack

	// rows are published as signed 16-bit values
	if v := mt.MaxSizeY; v != nil && (*v < 0 || *v > layout.MaxValue) {
		return fmt.Errorf("multitrack: max_size_y %d out of range 0-%d", *v, layout.MaxValue)
	}
	if mt.Refine.MaxBinning < 0 {
		return errors.New("multitrack: refine.max_binning must be >= 0")
	}

	// ------------------------------------------------------------
	// SOURCE GEOMETRY
	// ------------------------------------------------------------

	if s := mt.Source; s != nil {
		if s.Endpoint == "" {
			return errors.New("source: endpoint required")
		}
		if s.TimeoutMs < 0 || s.IntervalMs < 0 {
			return errors.New("source: timeout_ms and interval_ms must be >= 0")
		}
		if err := validateBlocks("source", namedBlocks(s.Start, s.End, s.Bin)); err != nil {
			return err
		}
	}

	// ------------------------------------------------------------
	// PUBLISH GEOMETRY
	// ------------------------------------------------------------

	if p := mt.Publish; p != nil {
		if p.Endpoint == "" {
			return errors.New("publish: endpoint required")
		}
		if p.TimeoutMs < 0 {
			return errors.New("publish: timeout_ms must be >= 0")
		}

		blocks := namedBlocks(p.Start, p.End, p.Bin)
		if p.StatusAddress != nil {
			blocks = append(blocks, namedSpan{
				name:  "status",
				start: *p.StatusAddress,
				count: status.SlotsPerBlock,
			})
		}
		if err := validateBlocks("publish", blocks); err != nil {
			return err
		}
	}

	return nil
}

type namedSpan struct {
	name  string
	start uint16
	count int // registers, including the count register
}

func (s namedSpan) end() int {
	return int(s.start) + s.count - 1
}

func namedBlocks(start, end, bin ArrayBlock) []namedSpan {
	out := make([]namedSpan, 0, 4)
	for _, b := range []struct {
		name string
		blk  ArrayBlock
	}{{"start", start}, {"end", end}, {"bin", bin}} {
		out = append(out, namedSpan{
			name:  b.name,
			start: b.blk.Address,
			count: int(b.blk.Capacity) + 1,
		})
	}
	return out
}

func validateBlocks(section string, spans []namedSpan) error {
	for i, s := range spans {
		if s.name != "status" && (s.count-1 < 1 || s.count-1 > MaxCapacity) {
			return fmt.Errorf("%s.%s: capacity %d out of range 1-%d", section, s.name, s.count-1, MaxCapacity)
		}
		if s.end() > 65535 {
			return fmt.Errorf("%s.%s: block %d-%d exceeds register space", section, s.name, s.start, s.end())
		}

		for _, prev := range spans[:i] {
			// overlap check (inclusive)
			if !(s.end() < int(prev.start) || int(s.start) > prev.end()) {
				return fmt.Errorf(
					"%s: register overlap: %s range=%d-%d overlaps with %s range=%d-%d",
					section,
					s.name,
					s.start,
					s.end(),
					prev.name,
					prev.start,
					prev.end(),
				)
			}
		}
	}
	return nil
}
