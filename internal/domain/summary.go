package domain

import (
	"time"

	"github.com/montanaflynn/stats"
)

// Sample is a growable collection of durations in seconds.
type Sample []float64

// AddDuration appends d to the sample.
func (s *Sample) AddDuration(d time.Duration) {
	*s = append(*s, d.Seconds())
}

// Summary is the median and mean of a Sample, in seconds.
type Summary struct {
	Median float64 `json:"median"`
	Mean   float64 `json:"mean"`
}

// MedianDuration returns the median as a time.Duration.
func (s Summary) MedianDuration() time.Duration {
	return secondsToDuration(s.Median)
}

// MeanDuration returns the mean as a time.Duration.
func (s Summary) MeanDuration() time.Duration {
	return secondsToDuration(s.Mean)
}

// Summarize computes the median and mean of a sample. An even-length sample's
// median is the mean of its two central values. Nil is returned for an empty
// sample so that "no data" is never confused with a zero duration.
func Summarize(s Sample) *Summary {
	if len(s) == 0 {
		return nil
	}
	data := stats.Float64Data(s)
	median, err := stats.Median(data)
	if err != nil {
		return nil
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return nil
	}
	return &Summary{Median: median, Mean: mean}
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
