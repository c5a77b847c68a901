package renderer

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/segfall/prism/pkg/accel"
	"github.com/segfall/prism/pkg/core"
	"github.com/segfall/prism/pkg/log"
)

// Pixels per chunk. Fixed regardless of worker count so scheduling
// granularity stays stable across machines.
const pixelChunkSize = 10000

// Scatter recursion limit; deeper paths terminate as absorbed
const maxDepth = 50

// SamplerProgress holds one sample pass's radiance estimate: one RGB triple
// of float64 per pixel, row-major, overwritten each time the buffer takes the
// current role. Averaging across passes is the presentation consumer's job.
type SamplerProgress struct {
	SamplesCompleted uint64
	RaysShot         uint64
	CurrentImage     []float64
}

// NewSamplerProgress allocates a zeroed progress buffer for pixelNum pixels
func NewSamplerProgress(pixelNum int) *SamplerProgress {
	return &SamplerProgress{
		CurrentImage: make([]float64, pixelNum*3),
	}
}

// PresentationFunc consumes a completed pass buffer. sampleIndex is the
// number of the pass being presented, counted from 1. The buffer is
// guaranteed untouched for the duration of the call.
type PresentationFunc func(progress *SamplerProgress, sampleIndex int)

// Config holds sampler parameters
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	NumWorkers      int // 0 uses the CPU count
}

// Sampler renders an image progressively, one sample per pixel per pass,
// against an immutable BVH. Two accumulation buffers alternate between the
// previous role (read by the presentation callback) and the current role
// (written by the chunk workers), swapping by pass parity so neither is read
// and written in the same pass.
type Sampler struct {
	config Config
	camera *Camera
	sky    SkyFunc
	bvh    *accel.BVH
	logger log.Logger
}

// NewSampler creates a sampler over a built acceleration structure
func NewSampler(config Config, camera *Camera, sky SkyFunc, bvh *accel.BVH) *Sampler {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	return &Sampler{
		config: config,
		camera: camera,
		sky:    sky,
		bvh:    bvh,
		logger: log.New("sampler"),
	}
}

// SampleImage runs the configured number of passes and returns the last
// completed buffer along with render statistics. The callback, when not nil,
// receives the previous pass's buffer while the current pass computes
// (skipped on the first pass, when no previous buffer exists) and is invoked
// once more after the final pass with the full sample count.
func (s *Sampler) SampleImage(callback PresentationFunc) (*SamplerProgress, RenderStats) {
	pixelNum := s.config.Width * s.config.Height
	buffers := [2]*SamplerProgress{
		NewSamplerProgress(pixelNum),
		NewSamplerProgress(pixelNum),
	}

	numChunks := (pixelNum + pixelChunkSize - 1) / pixelChunkSize

	// One RNG per worker, reused across passes
	rngs := make([]*rand.Rand, s.config.NumWorkers)
	seed := time.Now().UnixNano()
	for w := range rngs {
		rngs[w] = rand.New(rand.NewSource(seed + int64(w)))
	}

	s.logger.Debugf("sampling %dx%d, %d passes, %d workers, %d chunks",
		s.config.Width, s.config.Height, s.config.SamplesPerPixel, s.config.NumWorkers, numChunks)

	start := time.Now()
	var totalRays uint64

	for i := 0; i < s.config.SamplesPerPixel; i++ {
		previous := buffers[i%2]
		current := buffers[(i+1)%2]

		current.SamplesCompleted = 1
		current.RaysShot = 0

		var callbackWg sync.WaitGroup
		if i != 0 && callback != nil {
			callbackWg.Add(1)
			go func(prev *SamplerProgress, sampleIndex int) {
				defer callbackWg.Done()
				callback(prev, sampleIndex)
			}(previous, i)
		}

		chunks := make(chan int, numChunks)
		for c := 0; c < numChunks; c++ {
			chunks <- c
		}
		close(chunks)

		var workerWg sync.WaitGroup
		for w := 0; w < s.config.NumWorkers; w++ {
			workerWg.Add(1)
			go func(rng *rand.Rand) {
				defer workerWg.Done()
				var raysShot uint64
				for chunk := range chunks {
					raysShot += s.sampleChunk(current, chunk, pixelNum, rng)
				}
				atomic.AddUint64(&current.RaysShot, raysShot)
			}(rngs[w])
		}
		workerWg.Wait()

		// Pass barrier: the previous buffer becomes writable again only
		// after its presentation finished
		callbackWg.Wait()

		totalRays += current.RaysShot
	}

	final := buffers[s.config.SamplesPerPixel%2]
	if callback != nil {
		callback(final, s.config.SamplesPerPixel)
	}

	stats := RenderStats{
		Samples:   s.config.SamplesPerPixel,
		TotalRays: totalRays,
		Elapsed:   time.Since(start),
	}
	s.logger.Debugf("render done: %d rays in %s (%.2f Mrays/s)",
		stats.TotalRays, stats.Elapsed, stats.RaysPerSecond()/1e6)

	return final, stats
}

// sampleChunk evaluates one radiance sample for every pixel of the chunk,
// writing into the chunk's disjoint slice of the buffer, and returns the
// number of rays traced.
func (s *Sampler) sampleChunk(current *SamplerProgress, chunk, pixelNum int, rng *rand.Rand) uint64 {
	startPixel := chunk * pixelChunkSize
	endPixel := startPixel + pixelChunkSize
	if endPixel > pixelNum {
		endPixel = pixelNum
	}

	width := float64(s.config.Width)
	height := float64(s.config.Height)

	var raysShot uint64
	for pixel := startPixel; pixel < endPixel; pixel++ {
		x := pixel % s.config.Width
		y := pixel / s.config.Width

		u := (rng.Float64() + float64(x)) / width
		v := 1.0 - (rng.Float64()+float64(y))/height

		ray := s.camera.GetRay(u, v, rng)
		color, rays := s.rayColor(ray, rng, maxDepth)

		current.CurrentImage[pixel*3] = color.X
		current.CurrentImage[pixel*3+1] = color.Y
		current.CurrentImage[pixel*3+2] = color.Z
		raysShot += rays
	}
	return raysShot
}

// rayColor traces the ray through the scene, following material scatters up
// to the depth limit. A miss evaluates the sky; a hit adds any emitted light
// plus the attenuated continuation. Returns the radiance estimate and the
// number of rays traced.
func (s *Sampler) rayColor(ray core.Ray, rng *rand.Rand, depth int) (core.Vec3, uint64) {
	if depth <= 0 {
		return core.Vec3{}, 0
	}

	hit, ok := s.bvh.NearestHit(ray)
	if !ok {
		return s.sky(ray), 1
	}

	var emitted core.Vec3
	if emitter, isEmitter := hit.Material.(core.Emitter); isEmitter {
		emitted = emitter.Emitted(hit)
	}

	result, scattered := hit.Material.Scatter(ray, hit, rng)
	if !scattered {
		return emitted, 1
	}

	color, rays := s.rayColor(result.Scattered, rng, depth-1)
	return emitted.Add(result.Attenuation.MultiplyVec(color)), rays + 1
}

// ToneMap converts a radiance buffer into 8-bit RGB with a gamma-2
// approximation: sqrt(value) * 255, truncated. Channel 0.0 maps to 0 and
// 1.0 to 255; negatives and overshoots clamp.
func ToneMap(progress *SamplerProgress) []uint8 {
	out := make([]uint8, len(progress.CurrentImage))
	for i, v := range progress.CurrentImage {
		out[i] = ToneMapChannel(v)
	}
	return out
}

// ToneMapChannel maps one channel value to a byte
func ToneMapChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	mapped := math.Sqrt(v) * 255.0
	if mapped >= 255.0 {
		return 255
	}
	return uint8(mapped)
}
