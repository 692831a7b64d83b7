// internal/track/normalize.go
package track

import "fmt"

// Reporter records one diagnostic message for the current pass.
type Reporter func(format string, args ...any)

// Normalize coerces user arrays into a valid set of regions for a sensor
// with maxSizeY rows. It never fails: every correction is described in
// Result.Messages instead.
func Normalize(in Input, maxSizeY int) Result {
	return NormalizeWith(in, maxSizeY, nil)
}

// NormalizeWith runs Normalize and then hands the regions to refiner,
// which may apply stricter, camera specific constraints.
func NormalizeWith(in Input, maxSizeY int, refiner Refiner) Result {
	var res Result
	report := func(format string, args ...any) {
		res.Messages = append(res.Messages, fmt.Sprintf(format, args...))
	}

	if maxSizeY < 0 {
		maxSizeY = 0
	}

	numTracks := len(in.Start)
	if numTracks > maxSizeY {
		report("More tracks (%d) than Y pixels (%d)", numTracks, maxSizeY)
		numTracks = maxSizeY
	}

	p := pass{in: in, maxSizeY: maxSizeY, numTracks: numTracks, report: report}

	res.Regions = make([]Region, 0, numTracks)
	prevEnd := 0
	for i := 0; i < numTracks; i++ {
		offset := p.offset(i, prevEnd)
		size := p.size(i, offset)
		size, binning := p.binning(i, size)

		res.Regions = append(res.Regions, Region{Offset: offset, Size: size, Binning: binning})
		prevEnd = offset + size
	}

	if refiner != nil {
		res.Regions = refiner.Refine(res.Regions, report)
	}

	return res
}

// pass carries the inputs shared by every track of one validation run.
type pass struct {
	in        Input
	maxSizeY  int
	numTracks int
	report    Reporter
}

// lastRow is the highest row track i may end on while still leaving one
// row for each of the tracks after it.
func (p pass) lastRow(i int) int {
	return p.maxSizeY - (p.numTracks - i)
}

func (p pass) offset(i, prevEnd int) int {
	num := i + 1
	start := p.in.Start[i]
	last := p.lastRow(i)

	switch {
	case start < 0:
		// prevEnd is 0 for the first track
		p.report("Track %d start (%d) less than 0", num, start)
		return prevEnd
	case i > 0 && start < prevEnd:
		p.report("Track %d start (%d) before end of previous (%d)", num, start, prevEnd)
		return prevEnd
	case start > p.maxSizeY-1:
		p.report("Track %d start (%d) beyond last row (%d)", num, start, p.maxSizeY-1)
		return last
	case start > last:
		p.report("Track %d start (%d) leaves no space for %d more track(s)", num, start, p.numTracks-num)
		return last
	default:
		return start
	}
}

func (p pass) size(i, offset int) int {
	if i >= len(p.in.End) {
		return 1
	}

	num := i + 1
	start := p.in.Start[i]
	end := p.in.End[i]
	last := p.lastRow(i)

	switch {
	case end < 0:
		p.report("Track %d end (%d) less than 0", num, end)
		return 1
	case end < start:
		p.report("Track %d end (%d) before start (%d)", num, end, start)
		return 1
	case end < offset:
		// start was moved past the requested end
		return 1
	case end > p.maxSizeY-1:
		p.report("Track %d end (%d) beyond last row (%d)", num, end, p.maxSizeY-1)
		end = last
	case end > last:
		p.report("Track %d end (%d) leaves no space for %d more track(s)", num, end, p.numTracks-num)
		end = last
	}

	return end + 1 - offset
}

func (p pass) binning(i, size int) (int, int) {
	if i >= len(p.in.Bin) {
		return size, size
	}

	num := i + 1
	bin := p.in.Bin[i]

	switch {
	case bin < 1:
		p.report("Track %d binning (%d) less than 1", num, bin)
		return size, 1
	case bin > size:
		p.report("Track %d binning (%d) exceeds size (%d)", num, bin, size)
		return size, size
	}

	if rem := size % bin; rem != 0 {
		p.report("Track %d binning (%d) does not divide size (%d), size reduced to (%d)", num, bin, size, size-rem)
		size -= rem
	}
	return size, bin
}
