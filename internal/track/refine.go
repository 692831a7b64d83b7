// internal/track/refine.go
package track

// Refiner applies stricter constraints after the default validation pass.
// Implementations must only shrink regions (never move or grow them) so the
// ordering and bounds guarantees of the default pass still hold.
type Refiner interface {
	Refine(regions []Region, report Reporter) []Region
}

// RefinerFunc adapts a plain function to Refiner.
type RefinerFunc func(regions []Region, report Reporter) []Region

func (f RefinerFunc) Refine(regions []Region, report Reporter) []Region {
	return f(regions, report)
}

// Chain applies refiners in order.
func Chain(refiners ...Refiner) Refiner {
	return RefinerFunc(func(regions []Region, report Reporter) []Region {
		for _, r := range refiners {
			if r != nil {
				regions = r.Refine(regions, report)
			}
		}
		return regions
	})
}

// MaxBinning limits binning to limit rows, for cameras whose readout
// cannot sum more than limit rows at once. Size is truncated to stay a
// multiple of the reduced binning. limit < 1 disables the limit.
func MaxBinning(limit int) Refiner {
	return RefinerFunc(func(regions []Region, report Reporter) []Region {
		if limit < 1 {
			return regions
		}
		out := make([]Region, len(regions))
		for i, r := range regions {
			if r.Binning > limit {
				report("Track %d binning (%d) above maximum (%d)", i+1, r.Binning, limit)
				r.Binning = limit
				r.Size -= r.Size % limit
			}
			out[i] = r
		}
		return out
	})
}

// UniformHeight shrinks every track to the height of the smallest one,
// for symmetric multi-track readout. Binning is lowered to the nearest
// value that still divides the common height.
func UniformHeight() Refiner {
	return RefinerFunc(func(regions []Region, report Reporter) []Region {
		if len(regions) == 0 {
			return regions
		}

		height := regions[0].Size
		for _, r := range regions[1:] {
			height = min(height, r.Size)
		}

		out := make([]Region, len(regions))
		for i, r := range regions {
			if r.Size > height {
				report("Track %d height (%d) reduced to (%d) for uniform tracks", i+1, r.Size, height)
				r.Size = height
			}
			if bin := largestDivisor(r.Size, r.Binning); bin != r.Binning {
				report("Track %d binning (%d) reduced to (%d) for uniform tracks", i+1, r.Binning, bin)
				r.Binning = bin
			}
			out[i] = r
		}
		return out
	})
}

// largestDivisor returns the largest d <= limit that divides n.
func largestDivisor(n, limit int) int {
	for d := min(n, limit); d > 1; d-- {
		if n%d == 0 {
			return d
		}
	}
	return 1
}
