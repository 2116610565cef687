package dataset

import "github.com/aclements/go-moremath/stats"

// Summary describes the weight distribution of a dataset.
type Summary struct {
	Count  int     `json:"count"`
	Total  float64 `json:"total"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`
}

// Summarize computes weight statistics. An empty input yields a zero Summary.
func Summarize(recs []Record) Summary {
	if len(recs) == 0 {
		return Summary{}
	}
	xs := make([]float64, len(recs))
	s := Summary{Count: len(recs)}
	for i, r := range recs {
		xs[i] = r.Weight
		s.Total += r.Weight
	}

	s.Min, s.Max = stats.Bounds(xs)
	s.Mean = stats.Mean(xs)
	if len(xs) > 1 {
		s.StdDev = stats.StdDev(xs)
	}
	// R8 interpolation is the middle value for odd counts and the mean of
	// the two middle values for even ones.
	s.Median = stats.Sample{Xs: xs}.Quantile(0.5)
	return s
}
