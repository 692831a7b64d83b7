// internal/status/snapshot.go
package status

// Snapshot represents exactly what the status writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	TrackCount   uint16
	MessageCount uint16
	DataHeight   uint16
	MaxSizeY     uint16
	PassCounter  uint16
}

// Observe builds a snapshot from plain ints, saturating each at MaxSlotValue.
// The pass counter is the exception: it is reduced modulo PassCounterModulus
// so readers can keep detecting new passes after 65535 of them.
func Observe(tracks, messages, dataHeight, maxSizeY int, passes uint64) Snapshot {
	return Snapshot{
		TrackCount:   saturate(tracks),
		MessageCount: saturate(messages),
		DataHeight:   saturate(dataHeight),
		MaxSizeY:     saturate(maxSizeY),
		PassCounter:  uint16(passes % PassCounterModulus),
	}
}

func saturate(v int) uint16 {
	switch {
	case v < 0:
		return 0
	case v > MaxSlotValue:
		return MaxSlotValue
	default:
		return uint16(v)
	}
}
