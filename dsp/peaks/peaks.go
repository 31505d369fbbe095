// Package peaks finds spectral peaks and splits the bin range into one
// region per peak for identity phase locking.
package peaks

const (
	// DefaultRelThreshold is the minimum peak height relative to the
	// spectrum maximum.
	DefaultRelThreshold = 0.03
	// DefaultNeighbours is the half-width of the local-maximum test.
	DefaultNeighbours = 4

	fallbackPeak = 1
)

// Region is the half-open bin range [Start, End) locked to Peak.
// Start <= Peak < End always holds.
type Region struct {
	Peak  int
	Start int
	End   int
}

// Len returns the number of bins in the region.
func (r Region) Len() int { return r.End - r.Start }

// Contains reports whether bin lies in the region.
func (r Region) Contains(bin int) bool { return bin >= r.Start && bin < r.End }

// Result lists peaks in ascending bin order and their regions, one region
// per peak. Regions are disjoint and cover every bin.
type Result struct {
	Peaks   []int
	Regions []Region
}

// Owners returns, for every bin, the peak whose region contains it.
func (r Result) Owners() []int {
	if len(r.Regions) == 0 {
		return nil
	}

	owners := make([]int, r.Regions[len(r.Regions)-1].End)
	for _, reg := range r.Regions {
		for b := reg.Start; b < reg.End; b++ {
			owners[b] = reg.Peak
		}
	}

	return owners
}

// Locate returns the peaks of mags and the region owned by each.
//
// Bin i, with neighbours <= i < len(mags)-neighbours, is a peak when it
// holds the maximum of mags[i-neighbours:i+neighbours+1] and that maximum
// is at least relThreshold times the global maximum. Windows whose maximum
// falls short skip ahead. Consecutive peaks split the bins between them at
// their midpoint; the first region extends down to bin 0 and the last one
// up to the end. When no bin qualifies, bin 1 owns the whole range.
func Locate(mags []float64, relThreshold float64, neighbours int) Result {
	n := len(mags)
	if n == 0 {
		return Result{}
	}

	if neighbours < 0 {
		neighbours = 0
	}

	threshold := relThreshold * maxOf(mags)

	var found []int

	for i := neighbours; i < n-neighbours; i++ {
		local := maxOf(mags[i-neighbours : i+neighbours+1])
		if local < threshold {
			i += neighbours
			continue
		}

		if mags[i] == local {
			found = append(found, i)
		}
	}

	if len(found) == 0 {
		found = []int{min(fallbackPeak, n-1)}
	}

	return Result{Peaks: found, Regions: partition(found, n)}
}

func partition(peaks []int, n int) []Region {
	if len(peaks) == 0 {
		panic("peaks: empty peak set after fallback")
	}

	regions := make([]Region, len(peaks))
	start := 0

	for j, p := range peaks {
		end := n
		if j+1 < len(peaks) {
			end = max((p+peaks[j+1])/2, p+1)
		}

		regions[j] = Region{Peak: p, Start: start, End: end}
		start = end
	}

	return regions
}

func maxOf(x []float64) float64 {
	m := x[0]
	for _, v := range x[1:] {
		if v > m {
			m = v
		}
	}

	return m
}
