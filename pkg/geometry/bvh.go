package geometry

import (
	"fmt"
	"time"

	"github.com/df07/go-pbrt-renderer/pkg/bxdf"
	"github.com/df07/go-pbrt-renderer/pkg/core"
	"github.com/df07/go-pbrt-renderer/pkg/interaction"
	"github.com/df07/go-pbrt-renderer/pkg/log"
	"github.com/df07/go-pbrt-renderer/pkg/material"
)

var logger = log.New("geometry")

// SplitMethod selects how the BVH partitions primitives
type SplitMethod int

const (
	SplitSAH SplitMethod = iota
	SplitHLBVH
	SplitMiddle
	SplitEqualCounts
)

func (m SplitMethod) String() string {
	switch m {
	case SplitSAH:
		return "sah"
	case SplitHLBVH:
		return "hlbvh"
	case SplitMiddle:
		return "middle"
	case SplitEqualCounts:
		return "equal"
	}
	return fmt.Sprintf("SplitMethod(%d)", int(m))
}

// ParseSplitMethod maps a name such as "sah" or "hlbvh" to a SplitMethod
func ParseSplitMethod(name string) (SplitMethod, error) {
	for _, m := range []SplitMethod{SplitSAH, SplitHLBVH, SplitMiddle, SplitEqualCounts} {
		if m.String() == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown BVH split method %q", name)
}

const (
	// MaxPrimitivesInNode caps the size of any leaf
	MaxPrimitivesInNode = 255

	sahBuckets        = 12
	maxTraversalDepth = 64
)

// BVHConfig selects the build parameters of a BVH
type BVHConfig struct {
	SplitMethod    SplitMethod
	MaxPrimsInNode int
}

// DefaultBVHConfig returns the SAH build with at most 4 primitives per leaf
func DefaultBVHConfig() BVHConfig {
	return BVHConfig{SplitMethod: SplitSAH, MaxPrimsInNode: 4}
}

// Validate checks the leaf size bound
func (c BVHConfig) Validate() error {
	if c.MaxPrimsInNode < 1 || c.MaxPrimsInNode > MaxPrimitivesInNode {
		return fmt.Errorf("max primitives per BVH node must be in [1, %d], got %d", MaxPrimitivesInNode, c.MaxPrimsInNode)
	}
	return nil
}

// Build constructs a BVH over prims with this configuration
func (c BVHConfig) Build(prims []Primitive) *BVHAccel {
	return NewBVHAccel(prims, c.MaxPrimsInNode, c.SplitMethod)
}

// primitiveInfo is the per-primitive input to the build
type primitiveInfo struct {
	index    int
	bounds   core.Bounds3
	centroid core.Vec3
}

// buildNode is a node of the pointer tree produced during construction
type buildNode struct {
	bounds          core.Bounds3
	children        [2]*buildNode
	splitAxis       int
	firstPrimOffset int
	nPrimitives     int
}

func (n *buildNode) initLeaf(first, count int, bounds core.Bounds3) {
	n.firstPrimOffset = first
	n.nPrimitives = count
	n.bounds = bounds
	n.children = [2]*buildNode{}
}

func (n *buildNode) initInterior(axis int, c0, c1 *buildNode) {
	n.children = [2]*buildNode{c0, c1}
	n.bounds = c0.bounds.Union(c1.bounds)
	n.splitAxis = axis
	n.nPrimitives = 0
}

// linearNode is a node of the flattened tree. Interior nodes store the
// index of their second child; the first child always follows its parent.
type linearNode struct {
	bounds      core.Bounds3
	offset      int // primitives offset for leaves, second child for interior nodes
	nPrimitives int
	axis        int
}

// BVHAccel is a bounding volume hierarchy over primitives. It is immutable
// once built and safe for concurrent queries.
type BVHAccel struct {
	maxPrimsInNode int
	splitMethod    SplitMethod
	primitives     []Primitive
	nodes          []linearNode
}

// NewBVHAccel builds a BVH. It panics when prims is empty.
func NewBVHAccel(prims []Primitive, maxPrimsInNode int, splitMethod SplitMethod) *BVHAccel {
	if len(prims) == 0 {
		panic("geometry: BVH requires at least one primitive")
	}
	start := time.Now()

	b := &BVHAccel{
		maxPrimsInNode: min(MaxPrimitivesInNode, max(1, maxPrimsInNode)),
		splitMethod:    splitMethod,
		primitives:     append([]Primitive(nil), prims...),
	}

	info := make([]primitiveInfo, len(prims))
	for i, p := range b.primitives {
		bounds := p.WorldBound()
		info[i] = primitiveInfo{index: i, bounds: bounds, centroid: bounds.Centroid()}
	}

	totalNodes := 0
	var root *buildNode
	var ordered []Primitive
	if splitMethod == SplitHLBVH {
		root, ordered = b.hlbvhBuild(info, &totalNodes)
	} else {
		ordered = make([]Primitive, 0, len(prims))
		root = b.recursiveBuild(info, &totalNodes, &ordered)
	}
	b.primitives = ordered

	b.nodes = make([]linearNode, totalNodes)
	offset := 0
	b.flatten(root, &offset)
	if offset != totalNodes {
		panic(fmt.Sprintf("geometry: flattened %d of %d BVH nodes", offset, totalNodes))
	}

	logger.Infof("BVH (%s) over %d primitives: %d nodes in %v", splitMethod, len(prims), totalNodes, time.Since(start))
	return b
}

// recursiveBuild partitions info top-down and appends leaf primitives to ordered
func (b *BVHAccel) recursiveBuild(info []primitiveInfo, totalNodes *int, ordered *[]Primitive) *buildNode {
	node := &buildNode{}
	*totalNodes++

	bounds := core.EmptyBounds3()
	for i := range info {
		bounds = bounds.Union(info[i].bounds)
	}

	makeLeaf := func() *buildNode {
		first := len(*ordered)
		for i := range info {
			*ordered = append(*ordered, b.primitives[info[i].index])
		}
		node.initLeaf(first, len(info), bounds)
		return node
	}

	n := len(info)
	if n == 1 {
		return makeLeaf()
	}

	centroidBounds := core.EmptyBounds3()
	for i := range info {
		centroidBounds = centroidBounds.UnionPoint(info[i].centroid)
	}
	dim := centroidBounds.MaximumExtent()
	if centroidBounds.Max.Get(dim) == centroidBounds.Min.Get(dim) {
		// All centroids coincide, nothing to split on
		return makeLeaf()
	}

	mid := -1
	method := b.splitMethod
	if method == SplitMiddle {
		pmid := (centroidBounds.Min.Get(dim) + centroidBounds.Max.Get(dim)) / 2
		m := partitionInfo(info, func(pi *primitiveInfo) bool { return pi.centroid.Get(dim) < pmid })
		if m != 0 && m != n {
			mid = m
		} else {
			method = SplitEqualCounts
		}
	}

	if mid < 0 {
		if method == SplitEqualCounts || n <= 2 {
			mid = n / 2
			nthElement(info, mid, dim)
		} else {
			m, split := sahPartition(info, bounds, centroidBounds, dim, n > b.maxPrimsInNode)
			if !split {
				return makeLeaf()
			}
			mid = m
		}
	}

	node.initInterior(dim,
		b.recursiveBuild(info[:mid], totalNodes, ordered),
		b.recursiveBuild(info[mid:], totalNodes, ordered))
	return node
}

type sahBucket struct {
	count  int
	bounds core.Bounds3
}

// bucketIndex maps a centroid coordinate into one of the SAH buckets
func bucketIndex(c, lo, hi float64) int {
	b := int(sahBuckets * ((c - lo) / (hi - lo)))
	if b >= sahBuckets {
		b = sahBuckets - 1
	}
	return max(b, 0)
}

// minCostSplit returns the bucket boundary with the lowest SAH cost
func minCostSplit(buckets *[sahBuckets]sahBucket, bounds core.Bounds3, traversalCost float64) (int, float64) {
	var cost [sahBuckets - 1]float64
	for i := 0; i < sahBuckets-1; i++ {
		b0, b1 := core.EmptyBounds3(), core.EmptyBounds3()
		count0, count1 := 0, 0
		for j := 0; j <= i; j++ {
			b0 = b0.Union(buckets[j].bounds)
			count0 += buckets[j].count
		}
		for j := i + 1; j < sahBuckets; j++ {
			b1 = b1.Union(buckets[j].bounds)
			count1 += buckets[j].count
		}
		cost[i] = traversalCost +
			(float64(count0)*b0.SurfaceArea()+float64(count1)*b1.SurfaceArea())/bounds.SurfaceArea()
	}

	minCost := cost[0]
	minBucket := 0
	for i := 1; i < sahBuckets-1; i++ {
		if cost[i] < minCost {
			minCost = cost[i]
			minBucket = i
		}
	}
	return minBucket, minCost
}

// sahPartition buckets centroids along dim and splits at the cheapest
// boundary. It reports false when a leaf is cheaper and allowed.
func sahPartition(info []primitiveInfo, bounds, centroidBounds core.Bounds3, dim int, mustSplit bool) (int, bool) {
	lo, hi := centroidBounds.Min.Get(dim), centroidBounds.Max.Get(dim)

	var buckets [sahBuckets]sahBucket
	for i := range buckets {
		buckets[i].bounds = core.EmptyBounds3()
	}
	for i := range info {
		bi := bucketIndex(info[i].centroid.Get(dim), lo, hi)
		buckets[bi].count++
		buckets[bi].bounds = buckets[bi].bounds.Union(info[i].bounds)
	}

	minBucket, minCost := minCostSplit(&buckets, bounds, 1)
	leafCost := float64(len(info))
	if !mustSplit && minCost >= leafCost {
		return 0, false
	}

	mid := partitionInfo(info, func(pi *primitiveInfo) bool {
		return bucketIndex(pi.centroid.Get(dim), lo, hi) <= minBucket
	})
	return mid, true
}

// partitionInfo moves elements satisfying pred to the front and returns their count
func partitionInfo(info []primitiveInfo, pred func(*primitiveInfo) bool) int {
	i := 0
	for j := range info {
		if pred(&info[j]) {
			info[i], info[j] = info[j], info[i]
			i++
		}
	}
	return i
}

// nthElement reorders info so that info[k] holds the element that would be
// there if sorted by centroid along dim, with no larger element before it
// and no smaller one after.
func nthElement(info []primitiveInfo, k, dim int) {
	lo, hi := 0, len(info)-1
	for lo < hi {
		pivot := info[(lo+hi)/2].centroid.Get(dim)
		i, j := lo, hi
		for i <= j {
			for info[i].centroid.Get(dim) < pivot {
				i++
			}
			for info[j].centroid.Get(dim) > pivot {
				j--
			}
			if i <= j {
				info[i], info[j] = info[j], info[i]
				i++
				j--
			}
		}
		switch {
		case k <= j:
			hi = j
		case k >= i:
			lo = i
		default:
			return
		}
	}
}

// flatten writes the tree in depth-first order and returns the node's index
func (b *BVHAccel) flatten(node *buildNode, offset *int) int {
	myOffset := *offset
	*offset++
	linear := &b.nodes[myOffset]
	linear.bounds = node.bounds

	if node.nPrimitives > 0 {
		linear.offset = node.firstPrimOffset
		linear.nPrimitives = node.nPrimitives
		return myOffset
	}

	linear.axis = node.splitAxis
	linear.nPrimitives = 0
	b.flatten(node.children[0], offset)
	linear.offset = b.flatten(node.children[1], offset)
	return myOffset
}

func (b *BVHAccel) WorldBound() core.Bounds3 {
	if len(b.nodes) == 0 {
		return core.EmptyBounds3()
	}
	return b.nodes[0].bounds
}

// rayTraversal precomputes the per-ray values used at every node
func rayTraversal(ray *core.Ray) (core.Vec3, [3]int) {
	invDir := core.NewVec3(1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z)
	var dirIsNeg [3]int
	if invDir.X < 0 {
		dirIsNeg[0] = 1
	}
	if invDir.Y < 0 {
		dirIsNeg[1] = 1
	}
	if invDir.Z < 0 {
		dirIsNeg[2] = 1
	}
	return invDir, dirIsNeg
}

// Intersect returns the closest hit and leaves ray.TMax at its distance
func (b *BVHAccel) Intersect(ray *core.Ray) (*interaction.SurfaceInteraction, bool) {
	if len(b.nodes) == 0 {
		return nil, false
	}
	invDir, dirIsNeg := rayTraversal(ray)

	var closest *interaction.SurfaceInteraction
	var nodesToVisit [maxTraversalDepth]int
	toVisitOffset, current := 0, 0
	for {
		node := &b.nodes[current]
		if node.bounds.IntersectPInv(ray, invDir, dirIsNeg) {
			if node.nPrimitives > 0 {
				for i := 0; i < node.nPrimitives; i++ {
					if si, ok := b.primitives[node.offset+i].Intersect(ray); ok {
						closest = si
					}
				}
				if toVisitOffset == 0 {
					break
				}
				toVisitOffset--
				current = nodesToVisit[toVisitOffset]
			} else {
				// Visit the child on the near side of the split first
				if dirIsNeg[node.axis] == 1 {
					nodesToVisit[toVisitOffset] = current + 1
					current = node.offset
				} else {
					nodesToVisit[toVisitOffset] = node.offset
					current++
				}
				toVisitOffset++
			}
		} else {
			if toVisitOffset == 0 {
				break
			}
			toVisitOffset--
			current = nodesToVisit[toVisitOffset]
		}
	}
	return closest, closest != nil
}

// IntersectP reports whether anything is hit before ray.TMax
func (b *BVHAccel) IntersectP(ray *core.Ray) bool {
	if len(b.nodes) == 0 {
		return false
	}
	invDir, dirIsNeg := rayTraversal(ray)

	var nodesToVisit [maxTraversalDepth]int
	toVisitOffset, current := 0, 0
	for {
		node := &b.nodes[current]
		if node.bounds.IntersectPInv(ray, invDir, dirIsNeg) {
			if node.nPrimitives > 0 {
				for i := 0; i < node.nPrimitives; i++ {
					if b.primitives[node.offset+i].IntersectP(ray) {
						return true
					}
				}
				if toVisitOffset == 0 {
					break
				}
				toVisitOffset--
				current = nodesToVisit[toVisitOffset]
			} else {
				if dirIsNeg[node.axis] == 1 {
					nodesToVisit[toVisitOffset] = current + 1
					current = node.offset
				} else {
					nodesToVisit[toVisitOffset] = node.offset
					current++
				}
				toVisitOffset++
			}
		} else {
			if toVisitOffset == 0 {
				break
			}
			toVisitOffset--
			current = nodesToVisit[toVisitOffset]
		}
	}
	return false
}

func (b *BVHAccel) AreaLight() interaction.AreaLight {
	panic("geometry: BVHAccel.AreaLight should never be called")
}

func (b *BVHAccel) Material() material.Material {
	panic("geometry: BVHAccel.Material should never be called")
}

func (b *BVHAccel) ComputeScatteringFunctions(si *interaction.SurfaceInteraction, mode bxdf.TransportMode, allowMultipleLobes bool) {
	panic("geometry: BVHAccel.ComputeScatteringFunctions should never be called")
}

// BVHStats summarizes the shape of a built BVH
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	AvgDepth    float64
	TotalShapes int
}

// Stats walks the flattened tree and reports its shape
func (b *BVHAccel) Stats() BVHStats {
	var stats BVHStats
	if len(b.nodes) == 0 {
		return stats
	}

	type entry struct{ index, depth int }
	stack := []entry{{0, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &b.nodes[e.index]

		stats.TotalNodes++
		stats.MaxDepth = max(stats.MaxDepth, e.depth)
		if node.nPrimitives > 0 {
			stats.LeafNodes++
			stats.TotalShapes += node.nPrimitives
			stats.AvgDepth += float64(e.depth) // Accumulate depth for average calculation
			continue
		}
		stack = append(stack, entry{e.index + 1, e.depth + 1}, entry{node.offset, e.depth + 1})
	}

	// Calculate average depth after collecting all data
	if stats.LeafNodes > 0 {
		stats.AvgDepth /= float64(stats.LeafNodes)
	}
	return stats
}
