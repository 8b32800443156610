package resources

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"io"
	"sync"
	"time"

	"golang.org/x/image/webp"
)

// Probe decides whether the preferred image encoding can be decoded. It must
// not panic or return an error: any failure means "unsupported".
type Probe func(ctx context.Context) bool

// webpSample is a 1x1 lossy WebP image.
const webpSample = "UklGRiIAAABXRUJQVlA4IBYAAAAwAQCdASoBAAEADsD+JaQAA3AAAAAA"

// ProbeTimeout bounds the default probe.
const ProbeTimeout = 2 * time.Second

// onceProbe runs check at most once per process. The check runs detached
// from any caller, so a cancelled first caller does not decide the result
// for later ones.
type onceProbe struct {
	once   sync.Once
	done   chan struct{}
	result bool
	check  func() bool
}

func newOnceProbe(check func() bool) *onceProbe {
	return &onceProbe{done: make(chan struct{}), check: check}
}

// probe waits for the shared result. A ctx done first reports false
// without caching it.
func (p *onceProbe) probe(ctx context.Context) bool {
	p.once.Do(func() {
		go func() {
			p.result = p.check()
			close(p.done)
		}()
	})
	select {
	case <-p.done:
		return p.result
	case <-ctx.Done():
		return false
	}
}

var webpProbe = newOnceProbe(decodeWebPSample)

// WebPSupported is the default Probe. The first call starts decoding a tiny
// WebP sample, bounded by ProbeTimeout; the result is cached for the life of
// the process. ctx only bounds the wait.
func WebPSupported(ctx context.Context) bool {
	return webpProbe.probe(ctx)
}

func decodeWebPSample() bool {
	data, err := base64.StdEncoding.DecodeString(webpSample)
	if err != nil {
		return false
	}
	ok := probeDecode(context.Background(), ProbeTimeout, data, webp.Decode)
	logger.Debug().Bool("webp", ok).Msg("capability probe settled")
	return ok
}

// probeDecode decodes data with decode and reports whether it produced a
// non-empty image within timeout. Panics and errors report false.
func probeDecode(ctx context.Context, timeout time.Duration, data []byte, decode func(io.Reader) (image.Image, error)) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result := make(chan bool, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- false
			}
		}()
		img, err := decode(bytes.NewReader(data))
		if err != nil || img == nil {
			result <- false
			return
		}
		b := img.Bounds()
		result <- b.Dx() > 0 && b.Dy() > 0
	}()

	select {
	case ok := <-result:
		return ok
	case <-ctx.Done():
		return false
	}
}

// StaticProbe returns a Probe that always answers supported.
func StaticProbe(supported bool) Probe {
	return func(context.Context) bool { return supported }
}
