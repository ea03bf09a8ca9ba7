// Package stats computes aggregate rating statistics for a place. Statistics
// are derived on every read and never persisted or cached.
package stats

import "math"

// Statistics summarizes the ratings attached to a place.
type Statistics struct {
	AverageRating float64     `json:"averageRating"`
	TotalReviews  int         `json:"totalReviews"`
	Distribution  map[int]int `json:"ratingDistribution"`
}

// Compute tallies ratings into an average (one decimal) and a 1..5 bucket
// distribution. Ratings outside 1..5 are ignored defensively; they cannot be
// produced by validation but may exist in hand-edited data.
func Compute(ratings []int) Statistics {
	dist := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	sum := 0
	count := 0
	for _, r := range ratings {
		if r < 1 || r > 5 {
			continue
		}
		dist[r]++
		sum += r
		count++
	}

	avg := 0.0
	if count > 0 {
		avg = math.Round(float64(sum)/float64(count)*10) / 10
	}

	return Statistics{
		AverageRating: avg,
		TotalReviews:  count,
		Distribution:  dist,
	}
}
