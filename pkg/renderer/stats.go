package renderer

import "time"

// RenderStats summarizes a completed render
type RenderStats struct {
	Samples   int
	TotalRays uint64
	Elapsed   time.Duration
}

// RaysPerSecond returns the average ray throughput
func (s RenderStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalRays) / s.Elapsed.Seconds()
}
