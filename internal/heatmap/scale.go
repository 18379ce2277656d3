package heatmap

import "math"

// ApplyScale transforms a series' intensities before resampling. Linear mode
// passes the values through untouched. Log mode compresses with ln(1+y) and
// then repairs: any non-finite result (y == -1 gives -Inf, y < -1 gives NaN)
// is replaced by the maximum finite transformed value of the same series.
// A series with no finite transformed value at all keeps NaN everywhere.
func ApplyScale(mode ScaleMode, y []float64) []float64 {
	if mode != ScaleLog {
		return y
	}

	out := make([]float64, len(y))
	maxFinite := math.Inf(-1)
	hasFinite := false
	for i, v := range y {
		lv := math.Log1p(v)
		out[i] = lv
		if !math.IsInf(lv, 0) && !math.IsNaN(lv) {
			hasFinite = true
			if lv > maxFinite {
				maxFinite = lv
			}
		}
	}

	for i, v := range out {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			if hasFinite {
				out[i] = maxFinite
			} else {
				out[i] = math.NaN()
			}
		}
	}
	return out
}
