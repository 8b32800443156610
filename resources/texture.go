package resources

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// Texture is a decoded raster image. The GPU copy is created on first use of
// Image, so decoding can run off the frame loop.
type Texture struct {
	// Path is the path the texture was decoded from.
	Path string
	// Format is the decoder name reported by image.Decode ("png", "webp", ...).
	Format string
	// Pixels is the decoded image.
	Pixels image.Image

	once     sync.Once
	img      *ebiten.Image
	disposed bool
}

// NewTexture wraps an already decoded image.
func NewTexture(path string, pixels image.Image) *Texture {
	return &Texture{Path: path, Pixels: pixels}
}

// Width returns the image width in pixels.
func (t *Texture) Width() int { return t.Pixels.Bounds().Dx() }

// Height returns the image height in pixels.
func (t *Texture) Height() int { return t.Pixels.Bounds().Dy() }

// Image returns the texture as an *ebiten.Image, uploading it on first call.
// It returns nil once the texture is disposed.
func (t *Texture) Image() *ebiten.Image {
	t.once.Do(func() {
		t.img = ebiten.NewImageFromImage(t.Pixels)
	})
	return t.img
}

// Dispose releases the GPU copy. A later Image call does not re-upload.
// Idempotent.
func (t *Texture) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.once.Do(func() {})
	if t.img != nil {
		t.img.Deallocate()
		t.img = nil
	}
}

// Disposed reports whether Dispose has run.
func (t *Texture) Disposed() bool { return t.disposed }

func decodeTexture(ctx context.Context, f Fetcher, p string) (*Texture, error) {
	data, err := readAll(ctx, f, p)
	if err != nil {
		return nil, err
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return &Texture{Path: p, Format: format, Pixels: img}, nil
}

// ImageStrategy decodes a single PNG, JPEG or WebP file into a *Texture.
type ImageStrategy struct{}

// Load implements Strategy.
func (ImageStrategy) Load(ctx context.Context, req Request) (any, error) {
	if len(req.Paths) != 1 {
		return nil, fmt.Errorf("image: want 1 path, got %d", len(req.Paths))
	}
	return decodeTexture(ctx, req.Fetcher, req.Paths[0])
}

// CubeTexture is six square face images in Face order.
type CubeTexture struct {
	Faces [CubeFaces]*Texture
}

// Face returns the image for f.
func (c *CubeTexture) Face(f Face) *Texture { return c.Faces[f] }

// Size returns the edge length of the faces.
func (c *CubeTexture) Size() int { return c.Faces[0].Width() }

// Dispose releases every face.
func (c *CubeTexture) Dispose() {
	for _, f := range c.Faces {
		if f != nil {
			f.Dispose()
		}
	}
}

// CubemapStrategy decodes six face images concurrently into a *CubeTexture.
// It settles once, after every face has decoded; the first face error fails
// the whole cube map.
type CubemapStrategy struct{}

// Load implements Strategy.
func (CubemapStrategy) Load(ctx context.Context, req Request) (any, error) {
	if len(req.Paths) != CubeFaces {
		return nil, fmt.Errorf("cubemap: want %d paths, got %d", CubeFaces, len(req.Paths))
	}
	cube := &CubeTexture{}
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range req.Paths {
		g.Go(func() error {
			tex, err := decodeTexture(gctx, req.Fetcher, p)
			if err != nil {
				return fmt.Errorf("face %s: %w", Face(i), err)
			}
			cube.Faces[i] = tex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	size := cube.Faces[0].Width()
	for i, f := range cube.Faces {
		if f.Width() != size || f.Height() != size {
			return nil, fmt.Errorf("cubemap: face %s is %dx%d, want %dx%d", Face(i), f.Width(), f.Height(), size, size)
		}
	}
	return cube, nil
}
