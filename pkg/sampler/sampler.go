package sampler

import (
	"math/rand"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// CameraSample holds the sample values a camera needs to generate a ray
type CameraSample struct {
	PFilm core.Vec2
	PLens core.Vec2
	Time  float64
}

// Sampler produces the sample vectors for each pixel sample. A sampler is
// owned by a single goroutine; Clone gives each worker its own stream.
type Sampler interface {
	SamplesPerPixel() int

	// StartPixel begins generating samples for pixel p
	StartPixel(p core.Point2i)

	// StartNextSample advances to the next sample of the current pixel and
	// reports false once every sample has been taken
	StartNextSample() bool

	Get1D() float64
	Get2D() core.Vec2

	// Request1DArray and Request2DArray register arrays of n samples per
	// pixel sample. They must be called before rendering starts.
	Request1DArray(n int)
	Request2DArray(n int)

	// RoundCount adjusts n to a count the sampler can stratify well
	RoundCount(n int) int

	// Get1DArray and Get2DArray return the next requested array for the
	// current sample, or nil when the arrays are exhausted or n does not
	// match the size that was requested.
	Get1DArray(n int) []float64
	Get2DArray(n int) []core.Vec2

	// Reseed restarts the random stream, so a pixel's samples depend only
	// on its seed and not on which pixels were sampled before it
	Reseed(seed int64)

	// Clone returns an independent sampler with the same configuration and
	// array requests, seeded with seed
	Clone(seed int64) Sampler
}

// GetCameraSample draws the film position, time and lens position for pixel p
func GetCameraSample(s Sampler, p core.Point2i) CameraSample {
	var cs CameraSample
	cs.PFilm = p.Vec2().Add(s.Get2D())
	cs.Time = s.Get1D()
	cs.PLens = s.Get2D()
	return cs
}

// PixelSampler generates all dimensions of every sample for a pixel up
// front. Dimensions past the precomputed ones fall back to uniform
// random values.
type PixelSampler struct {
	samplesPerPixel int
	rng             *rand.Rand

	currentPixel            core.Point2i
	currentPixelSampleIndex int

	samples1D          [][]float64
	samples2D          [][]core.Vec2
	current1DDimension int
	current2DDimension int

	samples1DArraySizes []int
	samples2DArraySizes []int
	sampleArray1D       [][]float64
	sampleArray2D       [][]core.Vec2
	array1DOffset       int
	array2DOffset       int
}

// newPixelSampler allocates nSampledDimensions precomputed 1D and 2D dimensions
func newPixelSampler(samplesPerPixel, nSampledDimensions int, seed int64) PixelSampler {
	ps := PixelSampler{
		samplesPerPixel: samplesPerPixel,
		rng:             rand.New(rand.NewSource(seed)),
	}
	for i := 0; i < nSampledDimensions; i++ {
		ps.samples1D = append(ps.samples1D, make([]float64, samplesPerPixel))
		ps.samples2D = append(ps.samples2D, make([]core.Vec2, samplesPerPixel))
	}
	return ps
}

func (ps *PixelSampler) SamplesPerPixel() int { return ps.samplesPerPixel }

func (ps *PixelSampler) Reseed(seed int64) {
	ps.rng.Seed(seed)
}

func (ps *PixelSampler) startPixel(p core.Point2i) {
	ps.currentPixel = p
	ps.currentPixelSampleIndex = 0
	ps.resetDimensions()
}

func (ps *PixelSampler) resetDimensions() {
	ps.current1DDimension, ps.current2DDimension = 0, 0
	ps.array1DOffset, ps.array2DOffset = 0, 0
}

func (ps *PixelSampler) StartNextSample() bool {
	ps.resetDimensions()
	ps.currentPixelSampleIndex++
	return ps.currentPixelSampleIndex < ps.samplesPerPixel
}

func (ps *PixelSampler) Get1D() float64 {
	if ps.current1DDimension < len(ps.samples1D) {
		v := ps.samples1D[ps.current1DDimension][ps.currentPixelSampleIndex]
		ps.current1DDimension++
		return v
	}
	return core.RandomFloat(ps.rng)
}

func (ps *PixelSampler) Get2D() core.Vec2 {
	if ps.current2DDimension < len(ps.samples2D) {
		v := ps.samples2D[ps.current2DDimension][ps.currentPixelSampleIndex]
		ps.current2DDimension++
		return v
	}
	return core.NewVec2(core.RandomFloat(ps.rng), core.RandomFloat(ps.rng))
}

func (ps *PixelSampler) Request1DArray(n int) {
	ps.samples1DArraySizes = append(ps.samples1DArraySizes, n)
	ps.sampleArray1D = append(ps.sampleArray1D, make([]float64, n*ps.samplesPerPixel))
}

func (ps *PixelSampler) Request2DArray(n int) {
	ps.samples2DArraySizes = append(ps.samples2DArraySizes, n)
	ps.sampleArray2D = append(ps.sampleArray2D, make([]core.Vec2, n*ps.samplesPerPixel))
}

func (ps *PixelSampler) RoundCount(n int) int { return n }

func (ps *PixelSampler) Get1DArray(n int) []float64 {
	if ps.array1DOffset == len(ps.sampleArray1D) || ps.samples1DArraySizes[ps.array1DOffset] != n {
		return nil
	}
	arr := ps.sampleArray1D[ps.array1DOffset]
	ps.array1DOffset++
	start := ps.currentPixelSampleIndex * n
	return arr[start : start+n]
}

func (ps *PixelSampler) Get2DArray(n int) []core.Vec2 {
	if ps.array2DOffset == len(ps.sampleArray2D) || ps.samples2DArraySizes[ps.array2DOffset] != n {
		return nil
	}
	arr := ps.sampleArray2D[ps.array2DOffset]
	ps.array2DOffset++
	start := ps.currentPixelSampleIndex * n
	return arr[start : start+n]
}

// replayRequests registers the same arrays on a fresh sampler
func (ps *PixelSampler) replayRequests(dst Sampler) {
	for _, n := range ps.samples1DArraySizes {
		dst.Request1DArray(n)
	}
	for _, n := range ps.samples2DArraySizes {
		dst.Request2DArray(n)
	}
}
