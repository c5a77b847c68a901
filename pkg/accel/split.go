package accel

import "fmt"

// SplitType selects the partitioning strategy used while building the BVH
type SplitType uint8

const (
	// SplitMiddle partitions primitives by whether their centroid falls
	// below or above the midpoint of the node bounds on the split axis.
	SplitMiddle SplitType = iota

	// SplitEqualCounts sorts primitives by centroid and splits at the
	// median index, keeping leaf sizes balanced regardless of clustering.
	SplitEqualCounts

	// SplitSAH evaluates bucketed split candidates with the surface area
	// heuristic and picks the cheapest one.
	SplitSAH
)

func (s SplitType) String() string {
	switch s {
	case SplitMiddle:
		return "middle"
	case SplitEqualCounts:
		return "equal-counts"
	case SplitSAH:
		return "sah"
	}
	return "unknown"
}

// ParseSplitType maps a CLI flag value to a split strategy
func ParseSplitType(name string) (SplitType, error) {
	switch name {
	case "middle":
		return SplitMiddle, nil
	case "equal-counts":
		return SplitEqualCounts, nil
	case "sah":
		return SplitSAH, nil
	}
	return SplitMiddle, fmt.Errorf("accel: unknown split type %q", name)
}
