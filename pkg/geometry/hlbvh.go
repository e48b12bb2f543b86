package geometry

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

const (
	mortonBits      = 10
	mortonScale     = 1 << mortonBits
	mortonChunkSize = 512

	// Primitives sharing the top 12 of the 30 Morton bits form one treelet
	treeletMask      = 0b00111111111111000000000000000000
	firstBitIndex    = 29 - 12
	upperSAHCost     = 0.125
	radixBitsPerPass = 6
)

// mortonPrimitive pairs a primitive index with its 30-bit Morton code
type mortonPrimitive struct {
	primitiveIndex int
	mortonCode     uint32
}

// lbvhTreelet is a run of Morton-sorted primitives built independently
type lbvhTreelet struct {
	start, nPrimitives int
	buildNodes         []buildNode
	root               *buildNode
}

// leftShift3 spreads the low 10 bits of x so two zero bits follow each one
func leftShift3(x uint32) uint32 {
	if x == 1<<10 {
		x--
	}
	x = (x | (x << 16)) & 0b00000011000000000000000011111111
	x = (x | (x << 8)) & 0b00000011000000001111000000001111
	x = (x | (x << 4)) & 0b00000011000011000011000011000011
	x = (x | (x << 2)) & 0b00001001001001001001001001001001
	return x
}

// encodeMorton3 interleaves three coordinates in [0, 1024] into a 30-bit code
func encodeMorton3(v core.Vec3) uint32 {
	return (leftShift3(uint32(v.Z)) << 2) | (leftShift3(uint32(v.Y)) << 1) | leftShift3(uint32(v.X))
}

// radixSort sorts by Morton code with a stable least-significant-digit
// radix sort, six bits per pass.
func radixSort(v []mortonPrimitive) {
	const (
		nBits    = 30
		nPasses  = nBits / radixBitsPerPass
		nBuckets = 1 << radixBitsPerPass
		bitMask  = nBuckets - 1
	)
	temp := make([]mortonPrimitive, len(v))
	for pass := 0; pass < nPasses; pass++ {
		lowBit := uint(pass * radixBitsPerPass)
		in, out := v, temp
		if pass&1 == 1 {
			in, out = temp, v
		}

		var bucketCount [nBuckets]int
		for _, mp := range in {
			bucketCount[(mp.mortonCode>>lowBit)&bitMask]++
		}

		var outIndex [nBuckets]int
		for i := 1; i < nBuckets; i++ {
			outIndex[i] = outIndex[i-1] + bucketCount[i-1]
		}

		for _, mp := range in {
			bucket := (mp.mortonCode >> lowBit) & bitMask
			out[outIndex[bucket]] = mp
			outIndex[bucket]++
		}
	}
	if nPasses&1 == 1 {
		copy(v, temp)
	}
}

// hlbvhBuild sorts primitives along a Morton curve, builds treelets in
// parallel and joins their roots with an SAH tree.
func (b *BVHAccel) hlbvhBuild(info []primitiveInfo, totalNodes *int) (*buildNode, []Primitive) {
	bounds := core.EmptyBounds3()
	for i := range info {
		bounds = bounds.UnionPoint(info[i].centroid)
	}

	mortonPrims := make([]mortonPrimitive, len(info))
	nChunks := (len(info) + mortonChunkSize - 1) / mortonChunkSize
	parallelFor(nChunks, func(c int) {
		start := c * mortonChunkSize
		end := min(start+mortonChunkSize, len(info))
		for i := start; i < end; i++ {
			centroidOffset := bounds.Offset(info[i].centroid)
			mortonPrims[i] = mortonPrimitive{
				primitiveIndex: info[i].index,
				mortonCode:     encodeMorton3(centroidOffset.Multiply(mortonScale)),
			}
		}
	})

	radixSort(mortonPrims)

	var treelets []*lbvhTreelet
	for start, end := 0, 1; end <= len(mortonPrims); end++ {
		if end == len(mortonPrims) ||
			mortonPrims[start].mortonCode&treeletMask != mortonPrims[end].mortonCode&treeletMask {
			n := end - start
			treelets = append(treelets, &lbvhTreelet{
				start:       start,
				nPrimitives: n,
				buildNodes:  make([]buildNode, 2*n-1),
			})
			start = end
		}
	}

	ordered := make([]Primitive, len(info))
	var atomicTotal, orderedOffset atomic.Int64
	parallelFor(len(treelets), func(i int) {
		tr := treelets[i]
		nodesCreated := 0
		arena := tr.buildNodes
		tr.root = b.emitLBVH(&arena, info, mortonPrims[tr.start:tr.start+tr.nPrimitives],
			&nodesCreated, ordered, &orderedOffset, firstBitIndex)
		atomicTotal.Add(int64(nodesCreated))
	})
	*totalNodes = int(atomicTotal.Load())

	roots := make([]*buildNode, len(treelets))
	for i, tr := range treelets {
		roots[i] = tr.root
	}
	logger.Debugf("HLBVH built %d treelets", len(roots))
	return buildUpperSAH(roots, totalNodes), ordered
}

// emitLBVH splits a Morton-sorted run on successive code bits. Each leaf
// claims its slice of ordered through the shared atomic offset.
func (b *BVHAccel) emitLBVH(arena *[]buildNode, info []primitiveInfo, mortonPrims []mortonPrimitive,
	totalNodes *int, ordered []Primitive, orderedOffset *atomic.Int64, bitIndex int) *buildNode {
	n := len(mortonPrims)
	if bitIndex == -1 || n < b.maxPrimsInNode {
		*totalNodes++
		node := allocNode(arena)
		bounds := core.EmptyBounds3()
		first := int(orderedOffset.Add(int64(n))) - n
		for i, mp := range mortonPrims {
			ordered[first+i] = b.primitives[mp.primitiveIndex]
			bounds = bounds.Union(info[mp.primitiveIndex].bounds)
		}
		node.initLeaf(first, n, bounds)
		return node
	}

	mask := uint32(1) << uint(bitIndex)
	if mortonPrims[0].mortonCode&mask == mortonPrims[n-1].mortonCode&mask {
		// Every primitive is on the same side of this bit
		return b.emitLBVH(arena, info, mortonPrims, totalNodes, ordered, orderedOffset, bitIndex-1)
	}

	// Binary search for the first primitive with the bit set
	searchStart, searchEnd := 0, n-1
	for searchStart+1 != searchEnd {
		mid := (searchStart + searchEnd) / 2
		if mortonPrims[searchStart].mortonCode&mask == mortonPrims[mid].mortonCode&mask {
			searchStart = mid
		} else {
			searchEnd = mid
		}
	}
	splitOffset := searchEnd

	*totalNodes++
	node := allocNode(arena)
	left := b.emitLBVH(arena, info, mortonPrims[:splitOffset], totalNodes, ordered, orderedOffset, bitIndex-1)
	right := b.emitLBVH(arena, info, mortonPrims[splitOffset:], totalNodes, ordered, orderedOffset, bitIndex-1)
	node.initInterior(bitIndex%3, left, right)
	return node
}

// allocNode hands out the next node of a treelet's preallocated arena
func allocNode(arena *[]buildNode) *buildNode {
	node := &(*arena)[0]
	*arena = (*arena)[1:]
	return node
}

// buildUpperSAH joins treelet roots with the bucketed SAH. The lower
// traversal cost reflects that these nodes sit above whole treelets.
func buildUpperSAH(roots []*buildNode, totalNodes *int) *buildNode {
	if len(roots) == 1 {
		return roots[0]
	}
	*totalNodes++
	node := &buildNode{}

	bounds := core.EmptyBounds3()
	centroidBounds := core.EmptyBounds3()
	for _, r := range roots {
		bounds = bounds.Union(r.bounds)
		centroidBounds = centroidBounds.UnionPoint(r.bounds.Centroid())
	}
	dim := centroidBounds.MaximumExtent()
	lo, hi := centroidBounds.Min.Get(dim), centroidBounds.Max.Get(dim)
	if lo == hi {
		panic(fmt.Sprintf("geometry: %d treelets share one centroid on axis %d", len(roots), dim))
	}

	var buckets [sahBuckets]sahBucket
	for i := range buckets {
		buckets[i].bounds = core.EmptyBounds3()
	}
	for _, r := range roots {
		bi := bucketIndex(r.bounds.Centroid().Get(dim), lo, hi)
		buckets[bi].count++
		buckets[bi].bounds = buckets[bi].bounds.Union(r.bounds)
	}
	minBucket, _ := minCostSplit(&buckets, bounds, upperSAHCost)

	mid := 0
	for i, r := range roots {
		if bucketIndex(r.bounds.Centroid().Get(dim), lo, hi) <= minBucket {
			roots[i], roots[mid] = roots[mid], roots[i]
			mid++
		}
	}
	if mid == 0 || mid == len(roots) {
		panic("geometry: upper SAH split left one side empty")
	}

	node.initInterior(dim,
		buildUpperSAH(roots[:mid], totalNodes),
		buildUpperSAH(roots[mid:], totalNodes))
	return node
}

// parallelFor calls fn for every index in [0, n) from up to GOMAXPROCS
// goroutines and returns once all calls are done
func parallelFor(n int, fn func(i int)) {
	workers := min(n, runtime.GOMAXPROCS(0))
	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1) - 1)
				if i >= n {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}
