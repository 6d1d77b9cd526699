package render

import (
	"sync"

	"github.com/deepteams/jxl/internal/imageplane"
)

// CmsTransformer converts one packed pixel (planar samples gathered
// into a single slice) from the image's native color space into the
// output color space, in place. Implementations are not required to be
// goroutine-safe; the pool below gives each goroutine its own. A
// returned error is an ExternalFailure and aborts the decode.
type CmsTransformer interface {
	Transform(pixel []float32) error
}

// IdentityTransformer is the default CmsTransformer: no pack in the
// retrieval corpus ships an ICC transform engine, so color management
// is a passthrough unless the caller supplies a real Transformer. This
// is correct whenever source and destination color encodings already
// match (the common sRGB/linear-sRGB/Display-P3-without-ICC case).
type IdentityTransformer struct{}

func (IdentityTransformer) Transform(pixel []float32) error { return nil }

// cmsTransformerPool mirrors the teacher's losslessDecoderPool
// (internal/lossless/decode.go): a sync.Pool caching scratch state
// between calls so hot-path color transforms avoid per-pixel
// allocation. Here the cached state is a thread-local CmsTransformer
// rather than a Decoder.
type cmsTransformerPool struct {
	pool    sync.Pool
	newFunc func() CmsTransformer
}

// NewCmsTransformerPool builds a pool that manufactures transformers
// via newFunc on demand.
func NewCmsTransformerPool(newFunc func() CmsTransformer) *cmsTransformerPool {
	return &cmsTransformerPool{newFunc: newFunc}
}

func (p *cmsTransformerPool) acquire() CmsTransformer {
	if v := p.pool.Get(); v != nil {
		return v.(CmsTransformer)
	}
	return p.newFunc()
}

func (p *cmsTransformerPool) release(t CmsTransformer) {
	p.pool.Put(t)
}

// CMS is the color-management stage spec.md §4.7 describes: "per-pixel
// planar->packed->transform->packed->planar via a pool of thread-local
// CmsTransformers". Channels holds one Image per color channel in
// fixed order (e.g. X, Y, B or R, G, B); ProcessChannels gathers each
// pixel across channels into a packed slice, runs it through a pooled
// transformer, and scatters the result back.
type CMS struct {
	Pool *cmsTransformerPool
}

func (CMS) Name() string { return "CMS" }
func (CMS) Border() int  { return 0 }

// ProcessChannels runs the CMS transform over a set of co-located
// channel planes in place. A transform failure is an ExternalFailure
// and stops processing at that pixel.
func (c CMS) ProcessChannels(channels []*imageplane.Image[float32]) error {
	if len(channels) == 0 || c.Pool == nil {
		return nil
	}
	width, height := channels[0].Width, channels[0].Height
	t := c.Pool.acquire()
	defer c.Pool.release(t)

	pixel := make([]float32, len(channels))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for i, ch := range channels {
				pixel[i] = ch.At(x, y)
			}
			if err := t.Transform(pixel); err != nil {
				return err
			}
			for i, ch := range channels {
				ch.Set(x, y, pixel[i])
			}
		}
	}
	return nil
}
