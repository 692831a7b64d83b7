// internal/track/region.go
package track

// Region is one validated track along the Y axis.
// Offset is the first covered row, Size the number of raw rows
// and Binning the number of raw rows summed into one output row.
type Region struct {
	Offset  int
	Size    int
	Binning int
}

// End returns the last row covered by the region (inclusive).
func (r Region) End() int {
	return r.Offset + r.Size - 1
}

// DataHeight is the number of output rows after binning.
func (r Region) DataHeight() int {
	if r.Binning <= 0 {
		return 0
	}
	return r.Size / r.Binning
}

// Input holds the user arrays exactly as written.
// End and Bin may be shorter than Start; missing entries select defaults.
type Input struct {
	Start []int
	End   []int
	Bin   []int
}

// ToInput converts validated regions back into user arrays.
// Feeding the result to Normalize reproduces the same regions.
func ToInput(regions []Region) Input {
	in := Input{
		Start: make([]int, len(regions)),
		End:   make([]int, len(regions)),
		Bin:   make([]int, len(regions)),
	}
	for i, r := range regions {
		in.Start[i] = r.Offset
		in.End[i] = r.End()
		in.Bin[i] = r.Binning
	}
	return in
}

// Result is the outcome of one validation pass.
type Result struct {
	Regions  []Region
	Messages []string
}

// TotalDataHeight sums the output rows of all regions.
func (r Result) TotalDataHeight() int {
	total := 0
	for _, reg := range r.Regions {
		total += reg.DataHeight()
	}
	return total
}
