// internal/layout/layout.go
package layout

import "math"

// Array register layout shared by the source device and the publish target:
//
//   Address            element count n (clamped to capacity on decode)
//   Address+1 ..       n values, signed 16-bit two's complement
//   .. Address+Cap     unused slots, zero on encode
//
// Signed values keep negative user input representable so it can be
// corrected (and reported) rather than silently wrapped.

// MaxValue is the largest value an array slot can carry.
const MaxValue = math.MaxInt16

// Registers is the number of registers an array block with the given
// capacity occupies.
func Registers(capacity uint16) uint16 {
	return capacity + 1
}

// EncodeArray packs values into a fixed size block.
// Values beyond capacity are dropped; values outside int16 saturate.
func EncodeArray(values []int32, capacity uint16) []uint16 {
	regs := make([]uint16, Registers(capacity))

	n := min(len(values), int(capacity))
	regs[0] = uint16(n)
	for i := 0; i < n; i++ {
		regs[1+i] = uint16(saturate16(values[i]))
	}
	return regs
}

// DecodeArray unpacks a block read from registers.
// A short read yields only the values actually present.
func DecodeArray(regs []uint16) []int32 {
	if len(regs) == 0 {
		return nil
	}
	n := min(int(regs[0]), len(regs)-1)
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(int16(regs[1+i]))
	}
	return out
}

func saturate16(v int32) int16 {
	switch {
	case v > MaxValue:
		return MaxValue
	case v < math.MinInt16:
		return math.MinInt16
	default:
		return int16(v)
	}
}
