package stats

import (
	"math"
	"testing"
)

func TestComputeEmpty(t *testing.T) {
	got := Compute(nil)
	if got.AverageRating != 0 {
		t.Fatalf("AverageRating = %v, want 0", got.AverageRating)
	}
	if got.TotalReviews != 0 {
		t.Fatalf("TotalReviews = %d, want 0", got.TotalReviews)
	}
	for bucket := 1; bucket <= 5; bucket++ {
		if got.Distribution[bucket] != 0 {
			t.Fatalf("Distribution[%d] = %d, want 0", bucket, got.Distribution[bucket])
		}
	}
}

func TestComputeRoundsToOneDecimal(t *testing.T) {
	got := Compute([]int{5, 4, 5})
	if math.Abs(got.AverageRating-4.7) > 0.0001 {
		t.Fatalf("AverageRating = %v, want 4.7", got.AverageRating)
	}
	if got.TotalReviews != 3 {
		t.Fatalf("TotalReviews = %d, want 3", got.TotalReviews)
	}
	want := map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 2}
	for bucket, count := range want {
		if got.Distribution[bucket] != count {
			t.Fatalf("Distribution[%d] = %d, want %d", bucket, got.Distribution[bucket], count)
		}
	}
}

func TestComputeAverageTable(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"single", []int{3}, 3.0},
		{"round up", []int{4, 5}, 4.5},
		{"round down", []int{1, 1, 2}, 1.3},
		{"all fives", []int{5, 5, 5, 5}, 5.0},
		{"thirds", []int{2, 3, 5}, 3.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.ratings)
			if math.Abs(got.AverageRating-tt.want) > 0.0001 {
				t.Fatalf("AverageRating = %v, want %v", got.AverageRating, tt.want)
			}
		})
	}
}

func TestComputeIgnoresOutOfRange(t *testing.T) {
	got := Compute([]int{5, 0, -1, 6, 100, 4})
	if got.TotalReviews != 2 {
		t.Fatalf("TotalReviews = %d, want 2 (out-of-range ignored)", got.TotalReviews)
	}
	if math.Abs(got.AverageRating-4.5) > 0.0001 {
		t.Fatalf("AverageRating = %v, want 4.5", got.AverageRating)
	}
	for bucket := 1; bucket <= 5; bucket++ {
		if bucket != 4 && bucket != 5 && got.Distribution[bucket] != 0 {
			t.Fatalf("Distribution[%d] = %d, want 0", bucket, got.Distribution[bucket])
		}
	}
}
