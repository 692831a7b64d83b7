// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tamzrod/ccd-multitrack/internal/layout"
	"github.com/tamzrod/ccd-multitrack/internal/multitrack"
)

// endpointClient is the exact contract the writer uses.
// IMPORTANT: There must be NO other version of this interface anywhere.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

type arrayWriter struct {
	plan Plan
	cli  endpointClient
	log  *zap.Logger
}

// New returns a publisher delivering validated arrays into target memory.
func New(plan Plan, cli endpointClient, opts ...Option) multitrack.Publisher {
	return &arrayWriter{
		plan: plan,
		cli:  cli,
		log:  buildOptions(opts).log,
	}
}

// PublishArray writes the whole block (count + capacity registers) in one
// request so readers never observe a count that does not match the values.
func (w *arrayWriter) PublishArray(p multitrack.Param, values []int32) error {
	if w.cli == nil {
		return fmt.Errorf("writer: missing client for endpoint %s", w.plan.Endpoint)
	}

	dst, ok := w.plan.Arrays[p]
	if !ok {
		return fmt.Errorf("writer: no destination for %s", p)
	}
	if dst.Capacity == 0 {
		return errors.New("writer: zero capacity destination for " + p.String())
	}

	regs := layout.EncodeArray(values, dst.Capacity)

	if err := w.cli.WriteRegisters(w.plan.UnitID, dst.Address, regs); err != nil {
		return fmt.Errorf(
			"writer: ep=%s unit=%d param=%s addr=%d err=%w",
			w.plan.Endpoint, w.plan.UnitID, p, dst.Address, err,
		)
	}

	w.log.Debug("array published",
		zap.Stringer("param", p),
		zap.Uint16("addr", dst.Address),
		zap.Uint16("count", regs[0]),
	)
	return nil
}
