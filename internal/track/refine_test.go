// internal/track/refine_test.go
package track

import (
	"math/rand"
	"testing"
)

func TestMaxBinning_CapsAndTruncates(t *testing.T) {
	in := Input{Start: []int{0, 20}, End: []int{9, 23}}

	res := NormalizeWith(in, 64, MaxBinning(4))

	// 10 rows fully binned -> bin 4, size 8; 4 rows fully binned stays
	expectRegions(t, res.Regions, []Region{{0, 8, 4}, {20, 4, 4}})
	expectMessage(t, res.Messages, "Track 1 binning (10) above maximum (4)")
	if len(res.Messages) != 1 {
		t.Fatalf("expected 1 message, got %q", res.Messages)
	}
}

func TestMaxBinning_DisabledBelowOne(t *testing.T) {
	in := Input{Start: []int{0}, End: []int{9}}

	res := NormalizeWith(in, 64, MaxBinning(0))

	expectRegions(t, res.Regions, []Region{{0, 10, 10}})
}

func TestUniformHeight_ShrinksToSmallest(t *testing.T) {
	in := Input{Start: []int{0, 10, 30}, End: []int{5, 13, 39}, Bin: []int{3, 2, 5}}

	res := NormalizeWith(in, 64, UniformHeight())

	expectRegions(t, res.Regions, []Region{{0, 4, 2}, {10, 4, 2}, {30, 4, 4}})
	expectMessage(t, res.Messages, "Track 1 height (6) reduced to (4) for uniform tracks")
	expectMessage(t, res.Messages, "Track 1 binning (3) reduced to (2) for uniform tracks")
	expectMessage(t, res.Messages, "Track 3 binning (5) reduced to (4) for uniform tracks")
}

func TestUniformHeight_Empty(t *testing.T) {
	res := NormalizeWith(Input{}, 64, UniformHeight())

	if len(res.Regions) != 0 || len(res.Messages) != 0 {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestChain_AppliesInOrder(t *testing.T) {
	var seen []string
	mark := func(name string) Refiner {
		return RefinerFunc(func(regions []Region, report Reporter) []Region {
			seen = append(seen, name)
			report("refiner %s", name)
			return regions
		})
	}

	res := NormalizeWith(Input{Start: []int{-1}}, 8, Chain(mark("a"), nil, mark("b")))

	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Fatalf("unexpected refiner order %q", seen)
	}
	want := []string{"Track 1 start (-1) less than 0", "refiner a", "refiner b"}
	if len(res.Messages) != len(want) {
		t.Fatalf("messages mismatch: got=%q want=%q", res.Messages, want)
	}
	for i := range want {
		if res.Messages[i] != want[i] {
			t.Fatalf("message %d: got=%q want=%q", i, res.Messages[i], want[i])
		}
	}
}

func TestRefiners_KeepInvariantsAndAreStable(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	refiner := Chain(MaxBinning(3), UniformHeight())

	for iter := 0; iter < 2000; iter++ {
		maxSizeY := rng.Intn(40)
		n := rng.Intn(8)
		in := Input{
			Start: randomInts(rng, n, -2, 40),
			End:   randomInts(rng, n, -2, 40),
			Bin:   randomInts(rng, n, 0, 8),
		}

		res := NormalizeWith(in, maxSizeY, refiner)
		checkInvariants(t, in, maxSizeY, res)

		again := NormalizeWith(ToInput(res.Regions), maxSizeY, refiner)
		expectRegions(t, again.Regions, res.Regions)
		if len(again.Messages) != 0 {
			t.Fatalf("input=%+v max=%d: expected stable output, got %q", in, maxSizeY, again.Messages)
		}
	}
}

func TestLargestDivisor(t *testing.T) {
	cases := []struct{ n, limit, want int }{
		{12, 5, 4},
		{7, 7, 7},
		{7, 6, 1},
		{4, 10, 4},
		{1, 3, 1},
	}
	for _, c := range cases {
		if got := largestDivisor(c.n, c.limit); got != c.want {
			t.Fatalf("largestDivisor(%d, %d) = %d, want %d", c.n, c.limit, got, c.want)
		}
	}
}
