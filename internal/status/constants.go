// internal/status/constants.go
package status

// Validation status block layout constants.
// These values define the register protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBlock is the fixed number of registers in the status block.
const SlotsPerBlock = 8

// ---- SLOT INDICES ----

// SlotTrackCount holds the number of validated tracks.
const SlotTrackCount = 0

// SlotMessageCount holds the number of corrections in the last pass.
const SlotMessageCount = 1

// SlotDataHeight holds the total output rows after binning.
const SlotDataHeight = 2

// SlotMaxSizeY holds the sensor height used for validation.
const SlotMaxSizeY = 3

// SlotPassCounter counts validation passes. Unlike the other slots it does
// not saturate: after 65535 it wraps to 0, so a reader compares it for
// change rather than size.
const SlotPassCounter = 4

// ---- RESERVED RANGE ----

// Slots 5-7 are reserved for future use.
const SlotReservedStart = 5
const SlotReservedEnd = 7

// ---- LIMITS ----

// MaxSlotValue is the largest value a slot can carry; larger values saturate.
const MaxSlotValue = 65535

// PassCounterModulus is where SlotPassCounter wraps.
const PassCounterModulus = MaxSlotValue + 1
