package accuracy

import "github.com/trendfolio/trendfolio-backend/internal/domain"

// band defines one fixed reporting band on the 0-100 score scale.
// Bands are ordered highest to lowest and partition [0,100] exactly: the top
// band is closed on both ends, every other band excludes its upper bound.
type band struct {
	label string
	min   float64
	max   float64
}

var bands = []band{
	{label: "90-100%", min: 90, max: 100},
	{label: "80-90%", min: 80, max: 90},
	{label: "70-80%", min: 70, max: 80},
	{label: "60-70%", min: 60, max: 70},
	{label: "0-60%", min: 0, max: 60},
}

// Classify partitions a collection of accuracy scores (0-100 scale) into the
// fixed reporting bands. Every score maps to exactly one bucket; output order
// is highest band first. Pure and idempotent.
func Classify(scores []float64) []domain.AccuracyBucket {
	buckets := make([]domain.AccuracyBucket, len(bands))
	for i, b := range bands {
		buckets[i] = domain.AccuracyBucket{
			Range: b.label,
			Min:   b.min,
			Max:   b.max,
		}
	}

	for _, score := range scores {
		buckets[bucketIndex(score)].Count++
	}

	return buckets
}

// bucketIndex assigns a score to a band by its inclusive lower bound.
// Scores below 0 fall into the bottom band, scores above 100 into the top.
func bucketIndex(score float64) int {
	switch {
	case score >= 90:
		return 0
	case score >= 80:
		return 1
	case score >= 70:
		return 2
	case score >= 60:
		return 3
	default:
		return 4
	}
}
