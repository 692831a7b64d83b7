// internal/status/encode.go
package status

// Encode converts a Snapshot into a full status block.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s Snapshot) []uint16 {
	regs := make([]uint16, SlotsPerBlock)

	regs[SlotTrackCount] = s.TrackCount
	regs[SlotMessageCount] = s.MessageCount
	regs[SlotDataHeight] = s.DataHeight
	regs[SlotMaxSizeY] = s.MaxSizeY
	regs[SlotPassCounter] = s.PassCounter

	return regs
}
