// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tamzrod/ccd-multitrack/internal/status"
)

// StatusWriter is the delivery-only contract for the validation status.
// It receives a snapshot and writes it verbatim.
// No logic, no interpretation.
type StatusWriter interface {
	WriteStatus(s status.Snapshot) error
}

// blockStatusWriter is the concrete implementation used by the driver.
type blockStatusWriter struct {
	plan   *StatusPlan
	unitID uint8
	cli    endpointClient
	log    *zap.Logger

	needFull bool
	last     []uint16
}

// NewStatusWriter builds a status writer if the status block is enabled.
// If plan.Status is nil, status is disabled.
func NewStatusWriter(plan Plan, cli endpointClient, opts ...Option) (StatusWriter, bool) {
	if plan.Status == nil {
		return nil, false
	}

	return &blockStatusWriter{
		plan:     plan.Status,
		unitID:   plan.UnitID,
		cli:      cli,
		log:      buildOptions(opts).log,
		needFull: true, // full re-assert on first successful write
	}, true
}

// WriteStatus delivers a status snapshot into target memory.
// On any write failure, the next call re-asserts the full block.
func (sw *blockStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil || sw.plan == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return errors.New("status writer: missing client")
	}

	regs := status.Encode(s)

	// ------------------------------------------------------------
	// Full block write (re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		if err := sw.cli.WriteRegisters(sw.unitID, sw.plan.Address, regs); err != nil {
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}
		sw.needFull = false
		sw.last = regs
		sw.log.Debug("status block asserted", zap.Uint16("addr", sw.plan.Address))
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: only slots that changed
	// ------------------------------------------------------------
	var errs []string

	for slot := range regs {
		if sw.last[slot] == regs[slot] {
			continue
		}
		if err := sw.cli.WriteRegisters(
			sw.unitID,
			sw.plan.Address+uint16(slot),
			[]uint16{regs[slot]},
		); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d write failed: %v", slot, err))
			continue
		}
		sw.last[slot] = regs[slot]
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt: re-assert on next call.
		sw.needFull = true
		sw.log.Warn("status block out of sync, full re-assert on next write",
			zap.Uint16("addr", sw.plan.Address),
			zap.Int("failed_slots", len(errs)),
		)
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}
