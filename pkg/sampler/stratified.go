package sampler

import (
	"fmt"
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// StratifiedConfig configures a StratifiedSampler
type StratifiedConfig struct {
	XSamples          int  // strata along x per pixel
	YSamples          int  // strata along y per pixel
	Jitter            bool // randomize positions within each stratum
	SampledDimensions int  // precomputed 1D and 2D dimensions per sample
}

// DefaultStratifiedConfig returns 4x4 jittered samples with four dimensions
func DefaultStratifiedConfig() StratifiedConfig {
	return StratifiedConfig{
		XSamples:          4,
		YSamples:          4,
		Jitter:            true,
		SampledDimensions: 4,
	}
}

// Validate checks that the configuration describes at least one sample
func (c StratifiedConfig) Validate() error {
	if c.XSamples < 1 || c.YSamples < 1 {
		return fmt.Errorf("stratified sampler needs at least 1x1 samples, got %dx%d", c.XSamples, c.YSamples)
	}
	if c.SampledDimensions < 0 {
		return fmt.Errorf("sampled dimensions must not be negative, got %d", c.SampledDimensions)
	}
	return nil
}

// StratifiedSampler places one jittered sample in each cell of an
// XSamples x YSamples grid and decorrelates dimensions by shuffling.
// Requested arrays use Latin hypercube samples for 2D.
type StratifiedSampler struct {
	PixelSampler
	config StratifiedConfig
}

// NewStratifiedSampler creates a stratified sampler with the given seed
func NewStratifiedSampler(config StratifiedConfig, seed int64) *StratifiedSampler {
	return &StratifiedSampler{
		PixelSampler: newPixelSampler(config.XSamples*config.YSamples, config.SampledDimensions, seed),
		config:       config,
	}
}

func (s *StratifiedSampler) StartPixel(p core.Point2i) {
	spp := s.samplesPerPixel
	for _, samples := range s.samples1D {
		core.StratifiedSample1D(samples, s.rng, s.config.Jitter)
		core.Shuffle(samples, spp, 1, s.rng)
	}
	for _, samples := range s.samples2D {
		core.StratifiedSample2D(samples, s.config.XSamples, s.config.YSamples, s.rng, s.config.Jitter)
		core.Shuffle(samples, spp, 1, s.rng)
	}

	for i, n := range s.samples1DArraySizes {
		for j := 0; j < spp; j++ {
			arr := s.sampleArray1D[i][j*n : (j+1)*n]
			core.StratifiedSample1D(arr, s.rng, s.config.Jitter)
			core.Shuffle(arr, n, 1, s.rng)
		}
	}
	for i, n := range s.samples2DArraySizes {
		for j := 0; j < spp; j++ {
			core.LatinHypercube2D(s.sampleArray2D[i][j*n:(j+1)*n], s.rng)
		}
	}
	s.startPixel(p)
}

// RoundCount rounds n up to the next perfect square
func (s *StratifiedSampler) RoundCount(n int) int {
	root := int(math.Ceil(math.Sqrt(float64(n))))
	return root * root
}

func (s *StratifiedSampler) Clone(seed int64) Sampler {
	clone := NewStratifiedSampler(s.config, seed)
	s.replayRequests(clone)
	return clone
}
