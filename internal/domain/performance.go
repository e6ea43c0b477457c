package domain

import "time"

// DailyPerformance represents one point in a daily performance time series
// Prices here are synthetic chart data, not money, so plain floats are used.
// Accuracy is on the 0-100 scale; for every point after the first it measures
// how close the previous day's prediction landed to this day's price.
type DailyPerformance struct {
	Date       time.Time
	Price      float64
	ChangePct  float64 // day-over-day percent change; 0 for the first point
	Prediction float64 // same-day prediction of the next day's price
	Accuracy   float64
}

// AccuracyBucket represents a fixed percentage band and the number of
// prediction scores that fell in it. Buckets partition [0,100] with no gaps
// or overlaps.
type AccuracyBucket struct {
	Range string  // display label, e.g. "90-100%"
	Min   float64 // inclusive lower bound
	Max   float64 // upper bound; inclusive only for the top band
	Count int
}
