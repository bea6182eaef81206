package trajectory

// Merge consumes two per-station trajectories greedily, at each step
// emitting whichever head has the greater height (geodetic altitude
// above the reference ellipsoid); once one list empties, the remainder
// of the other is appended. Neither list needs to be a prefix of the
// other: the two stations' sample times are not interleaved in general,
// so this is a plain two-finger merge rather than a sorted-merge that
// assumes monotone timestamps across both inputs.
//
// When a and b are each non-increasing in height, the result is
// non-increasing in height by construction; the inputs are not sorted.
func Merge(a, b []Point) []Point {
	merged := make([]Point, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].HeightM >= b[j].HeightM {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}
