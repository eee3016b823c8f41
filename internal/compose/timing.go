package compose

import "math"

// Timing is the uniform split of the narration across image segments.
type Timing struct {
	Count      int
	PerSegment float64
	Total      float64
	// Estimated is set when the narration length was unknown and the
	// per-segment floor was used instead.
	Estimated bool
}

// Plan divides duration evenly over imageCount segments. A zero, negative or
// unmeasurable duration falls back to minSegment per segment.
func Plan(duration float64, imageCount int, minSegment float64) Timing {
	count := max(1, imageCount)

	if math.IsNaN(duration) || math.IsInf(duration, 0) || duration <= 0 {
		return Timing{
			Count:      count,
			PerSegment: minSegment,
			Total:      minSegment * float64(count),
			Estimated:  true,
		}
	}

	return Timing{
		Count:      count,
		PerSegment: duration / float64(count),
		Total:      duration,
	}
}

// Start returns the offset of segment i within the whole video.
func (t Timing) Start(i int) float64 {
	return float64(i) * t.PerSegment
}
