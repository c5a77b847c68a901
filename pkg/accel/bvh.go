package accel

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/segfall/prism/pkg/core"
	"github.com/segfall/prism/pkg/geometry"
	"github.com/segfall/prism/pkg/log"
)

// Ranges at or below this size become leaf nodes
const leafThreshold = 4

// Number of candidate buckets evaluated by the SAH strategy
const sahBuckets = 12

// node is one slot of the flat BVH arena. Interior nodes carry child indices
// into the same array; leaves carry a contiguous range into the primitive
// list. Depth-first build order guarantees children sit after their parent.
type node struct {
	bounds core.AABB
	left   int32 // child indices, -1 for leaves
	right  int32
	start  int32 // leaf primitive range
	count  int32 // 0 for interior nodes
	axis   uint8 // split axis, drives near-child ordering
}

// Stats summarizes the built hierarchy for diagnostics
type Stats struct {
	Primitives int
	Nodes      int
	Leafs      int
	MaxDepth   int
	BuildTime  time.Duration
}

// BVH is a bounding volume hierarchy stored as a flat node array. It is built
// once over an immutable primitive list and read concurrently by all sampling
// workers; traversal allocates nothing beyond a small explicit stack.
type BVH struct {
	primitives []geometry.Primitive
	nodes      []node
	split      SplitType
	stats      Stats
}

// Build constructs a BVH over the primitive list using the given split
// strategy. The list is copied so the caller's slice stays untouched. A
// primitive with an inverted bounding box is a scene construction defect and
// panics here rather than corrupting the tree.
func Build(primitives []geometry.Primitive, split SplitType) *BVH {
	prims := make([]geometry.Primitive, len(primitives))
	copy(prims, primitives)

	bvh := &BVH{primitives: prims, split: split}
	bvh.stats.Primitives = len(prims)
	if len(prims) == 0 {
		return bvh
	}

	for i := range prims {
		if !prims[i].BoundingBox().IsValid() {
			panic(fmt.Sprintf("accel: primitive %d (%s) has an inverted bounding box", i, prims[i].Kind()))
		}
	}

	start := time.Now()
	bvh.nodes = make([]node, 0, 2*len(prims))
	bvh.buildRange(0, len(prims), 0)
	bvh.stats.Nodes = len(bvh.nodes)
	bvh.stats.BuildTime = time.Since(start)

	logger.Debugf(
		"built %s BVH: %d primitives, %d nodes, %d leafs, max depth %d in %d ms",
		split, len(prims), bvh.stats.Nodes, bvh.stats.Leafs, bvh.stats.MaxDepth,
		bvh.stats.BuildTime.Milliseconds(),
	)
	return bvh
}

var logger = log.New("bvh")

// buildRange partitions primitives[start:end) into a subtree and returns the
// index of its root node.
func (bvh *BVH) buildRange(start, end, depth int) int32 {
	if depth > bvh.stats.MaxDepth {
		bvh.stats.MaxDepth = depth
	}

	bounds := bvh.primitives[start].BoundingBox()
	for i := start + 1; i < end; i++ {
		bounds = bounds.Union(bvh.primitives[i].BoundingBox())
	}

	idx := int32(len(bvh.nodes))
	bvh.nodes = append(bvh.nodes, node{
		bounds: bounds,
		left:   -1,
		right:  -1,
		start:  int32(start),
		count:  int32(end - start),
	})

	if end-start <= leafThreshold {
		bvh.stats.Leafs++
		return idx
	}

	axis := bounds.LongestAxis()
	mid := bvh.splitRange(start, end, axis, bounds)
	if mid <= start || mid >= end {
		// One side came up empty (clustered centroids); fall back to an
		// equal split by index so the recursion always terminates.
		mid = start + (end-start)/2
	}

	left := bvh.buildRange(start, mid, depth+1)
	right := bvh.buildRange(mid, end, depth+1)

	// Re-index after recursion: the append above may have moved the array
	n := &bvh.nodes[idx]
	n.left = left
	n.right = right
	n.count = 0
	n.axis = uint8(axis)
	return idx
}

// splitRange reorders primitives[start:end) according to the configured
// strategy and returns the partition point.
func (bvh *BVH) splitRange(start, end, axis int, bounds core.AABB) int {
	switch bvh.split {
	case SplitMiddle:
		return bvh.splitMiddle(start, end, axis, bounds)
	case SplitEqualCounts:
		return bvh.splitEqualCounts(start, end, axis)
	case SplitSAH:
		return bvh.splitSAH(start, end, axis)
	}
	panic(fmt.Sprintf("accel: unknown split type %d", bvh.split))
}

func (bvh *BVH) centroid(i, axis int) float64 {
	return bvh.primitives[i].BoundingBox().Center().Axis(axis)
}

// splitMiddle partitions by whether each centroid lies below the midpoint of
// the node bounds on the split axis.
func (bvh *BVH) splitMiddle(start, end, axis int, bounds core.AABB) int {
	midpoint := bounds.Center().Axis(axis)

	mid := start
	for i := start; i < end; i++ {
		if bvh.centroid(i, axis) < midpoint {
			bvh.primitives[mid], bvh.primitives[i] = bvh.primitives[i], bvh.primitives[mid]
			mid++
		}
	}
	return mid
}

// splitEqualCounts sorts the range by centroid and splits at the median
func (bvh *BVH) splitEqualCounts(start, end, axis int) int {
	prims := bvh.primitives[start:end]
	sort.Slice(prims, func(i, j int) bool {
		return prims[i].BoundingBox().Center().Axis(axis) < prims[j].BoundingBox().Center().Axis(axis)
	})
	return start + (end-start)/2
}

// splitSAH buckets centroids along the axis and picks the candidate split
// minimizing traversalCost + intersectCost * (areaL*countL + areaR*countR).
// The parent surface area is a constant factor and drops out of the
// comparison. Both costs are one; ties go to the lower split index.
func (bvh *BVH) splitSAH(start, end, axis int) int {
	// Bucket over the centroid extent, not the node bounds, so thin
	// primitives at the edges still spread across buckets.
	cMin := bvh.centroid(start, axis)
	cMax := cMin
	for i := start + 1; i < end; i++ {
		c := bvh.centroid(i, axis)
		cMin = math.Min(cMin, c)
		cMax = math.Max(cMax, c)
	}
	if cMax-cMin < 1e-12 {
		return start // caller falls back to the equal index split
	}

	type bucket struct {
		count  int
		bounds core.AABB
		used   bool
	}
	var buckets [sahBuckets]bucket

	bucketOf := func(i int) int {
		b := int(float64(sahBuckets) * (bvh.centroid(i, axis) - cMin) / (cMax - cMin))
		if b >= sahBuckets {
			b = sahBuckets - 1
		}
		return b
	}

	for i := start; i < end; i++ {
		b := bucketOf(i)
		box := bvh.primitives[i].BoundingBox()
		if !buckets[b].used {
			buckets[b].bounds = box
			buckets[b].used = true
		} else {
			buckets[b].bounds = buckets[b].bounds.Union(box)
		}
		buckets[b].count++
	}

	const traversalCost = 1.0
	const intersectCost = 1.0

	bestSplit := -1
	bestCost := math.Inf(1)
	for split := 0; split < sahBuckets-1; split++ {
		var leftBox, rightBox core.AABB
		leftCount, rightCount := 0, 0
		leftUsed, rightUsed := false, false

		for b := 0; b <= split; b++ {
			if !buckets[b].used {
				continue
			}
			if !leftUsed {
				leftBox = buckets[b].bounds
				leftUsed = true
			} else {
				leftBox = leftBox.Union(buckets[b].bounds)
			}
			leftCount += buckets[b].count
		}
		for b := split + 1; b < sahBuckets; b++ {
			if !buckets[b].used {
				continue
			}
			if !rightUsed {
				rightBox = buckets[b].bounds
				rightUsed = true
			} else {
				rightBox = rightBox.Union(buckets[b].bounds)
			}
			rightCount += buckets[b].count
		}
		if leftCount == 0 || rightCount == 0 {
			continue
		}

		cost := traversalCost + intersectCost*
			(leftBox.SurfaceArea()*float64(leftCount)+rightBox.SurfaceArea()*float64(rightCount))
		if cost < bestCost {
			bestCost = cost
			bestSplit = split
		}
	}
	if bestSplit < 0 {
		return start
	}

	mid := start
	for i := start; i < end; i++ {
		if bucketOf(i) <= bestSplit {
			bvh.primitives[mid], bvh.primitives[i] = bvh.primitives[i], bvh.primitives[mid]
			mid++
		}
	}
	return mid
}

// NearestHit traverses the hierarchy and returns the closest hit along the
// ray, or false when the ray misses everything. Subtrees whose bounds do not
// overlap [Epsilon, bestT] are pruned, and the child nearer to the ray origin
// along the node's split axis is visited first.
func (bvh *BVH) NearestHit(ray core.Ray) (*core.Hit, bool) {
	if len(bvh.nodes) == 0 {
		return nil, false
	}

	var best *core.Hit
	bestT := math.Inf(1)

	stack := make([]int32, 1, 64)
	stack[0] = 0
	for len(stack) > 0 {
		n := &bvh.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if _, _, ok := n.bounds.Hit(ray, core.Epsilon, bestT); !ok {
			continue
		}

		if n.count > 0 {
			for i := n.start; i < n.start+n.count; i++ {
				if hit, ok := bvh.primitives[i].Intersect(ray); ok && hit.T < bestT {
					best = hit
					bestT = hit.T
				}
			}
			continue
		}

		// Far child goes on the stack first so the near child pops first
		if ray.Direction.Axis(int(n.axis)) < 0 {
			stack = append(stack, n.left, n.right)
		} else {
			stack = append(stack, n.right, n.left)
		}
	}

	return best, best != nil
}

// AnyHit reports whether the ray hits anything at all, returning on the first
// intersection found. Used for shadow and occlusion queries.
func (bvh *BVH) AnyHit(ray core.Ray) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	stack := make([]int32, 1, 64)
	stack[0] = 0
	for len(stack) > 0 {
		n := &bvh.nodes[stack[len(stack)-1]]
		stack = stack[:len(stack)-1]

		if _, _, ok := n.bounds.Hit(ray, core.Epsilon, math.Inf(1)); !ok {
			continue
		}

		if n.count > 0 {
			for i := n.start; i < n.start+n.count; i++ {
				if bvh.primitives[i].IntersectP(ray) {
					return true
				}
			}
			continue
		}

		stack = append(stack, n.left, n.right)
	}

	return false
}

// NodeCount returns the number of nodes in the hierarchy
func (bvh *BVH) NodeCount() int {
	return len(bvh.nodes)
}

// Stats returns build diagnostics
func (bvh *BVH) Stats() Stats {
	return bvh.stats
}

// Bounds returns the world bounds of the whole hierarchy, invalid when empty
func (bvh *BVH) Bounds() core.AABB {
	if len(bvh.nodes) == 0 {
		return core.AABB{Min: core.NewVec3(1, 1, 1), Max: core.NewVec3(-1, -1, -1)}
	}
	return bvh.nodes[0].bounds
}
