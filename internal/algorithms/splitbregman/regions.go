package splitbregman

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// initialGuess seeds u with 1 wherever f exceeds its global mean and 0
// elsewhere, then derives c1 and c2 from that partition.
func (s *state) initialGuess(threshold float64, policy EmptyRegionPolicy) {
	mean := stat.Mean(s.f.Data, nil)
	for i, v := range s.f.Data {
		if v > mean {
			s.u.Data[i] = 1
		} else {
			s.u.Data[i] = 0
		}
	}
	s.updateRegions(threshold, policy)
}

// updateRegions recomputes c1 (mean of f where u > threshold) and c2 (mean
// of f elsewhere) from the current u.
func (s *state) updateRegions(threshold float64, policy EmptyRegionPolicy) {
	for i, v := range s.u.Data {
		if v > threshold {
			s.mask[i] = 1
		} else {
			s.mask[i] = 0
		}
	}
	fgCount := floats.Sum(s.mask)
	fgSum := floats.Dot(s.mask, s.f.Data)

	for i := range s.mask {
		s.mask[i] = 1 - s.mask[i]
	}
	bgCount := floats.Sum(s.mask)
	bgSum := floats.Dot(s.mask, s.f.Data)

	s.c1 = fgSum / math.Max(fgCount, 1)
	s.c2 = bgSum / math.Max(bgCount, 1)

	if fgCount == 0 || bgCount == 0 {
		s.emptyRegion = true
		if policy == EmptyRegionCollapse {
			if fgCount == 0 {
				s.c1 = s.c2
			} else {
				s.c2 = s.c1
			}
		}
	}
}
