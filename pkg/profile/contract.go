package profile

import "time"

// Measure collects one Metric per named unit of work.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates run durations for a single unit of work.
type Metric interface {
	AddDuration(elapsed time.Duration)
	Count() int64
	AVGDuration() time.Duration
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
