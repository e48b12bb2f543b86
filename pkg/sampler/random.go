package sampler

import "github.com/df07/go-pbrt-renderer/pkg/core"

// RandomSampler draws every value independently and uniformly
type RandomSampler struct {
	PixelSampler
}

// NewRandomSampler creates a sampler taking samplesPerPixel samples per pixel
func NewRandomSampler(samplesPerPixel int, seed int64) *RandomSampler {
	return &RandomSampler{PixelSampler: newPixelSampler(samplesPerPixel, 0, seed)}
}

func (s *RandomSampler) StartPixel(p core.Point2i) {
	for _, arr := range s.sampleArray1D {
		for i := range arr {
			arr[i] = core.RandomFloat(s.rng)
		}
	}
	for _, arr := range s.sampleArray2D {
		for i := range arr {
			arr[i] = core.NewVec2(core.RandomFloat(s.rng), core.RandomFloat(s.rng))
		}
	}
	s.startPixel(p)
}

func (s *RandomSampler) Clone(seed int64) Sampler {
	clone := NewRandomSampler(s.samplesPerPixel, seed)
	s.replayRequests(clone)
	return clone
}
