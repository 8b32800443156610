package hologram

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/hologram/resources"
)

var (
	whiteOnce  sync.Once
	whiteImage *ebiten.Image
)

// whitePixel returns a 1x1 white image used as the source for solid-color
// triangles.
func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage = ebiten.NewImage(1, 1)
		whiteImage.Fill(ColorWhite.RGBA())
	})
	return whiteImage
}

// lineBatch accumulates screen-space line segments as quads and submits them
// in a single DrawTriangles32 call. For N segments: 4N vertices, 6N indices.
type lineBatch struct {
	verts []ebiten.Vertex
	inds  []uint32
	width float64
}

func (b *lineBatch) reset() {
	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
}

// segments returns the number of queued segments.
func (b *lineBatch) segments() int { return len(b.verts) / 4 }

// add queues a segment from (x0, y0) to (x1, y1). Degenerate segments are
// dropped.
func (b *lineBatch) add(x0, y0, x1, y1 float64, c Color) {
	nx, ny, ok := perpendicular(x0, y0, x1, y1)
	if !ok {
		return
	}
	halfW := b.width / 2
	if halfW <= 0 {
		halfW = 0.5
	}
	nx, ny = nx*halfW, ny*halfW

	r, g, bl, a := float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A)
	v := uint32(len(b.verts))
	for _, p := range [4][2]float64{
		{x0 + nx, y0 + ny},
		{x0 - nx, y0 - ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
	} {
		b.verts = append(b.verts, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		})
	}
	b.inds = append(b.inds, v, v+1, v+2, v+1, v+3, v+2)
}

// flush draws every queued segment onto dst and empties the batch.
func (b *lineBatch) flush(dst *ebiten.Image, blend ebiten.Blend) {
	if len(b.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = blend
	op.AntiAlias = true
	dst.DrawTriangles32(b.verts, b.inds, whitePixel(), &op)
	b.reset()
}

// perpendicular returns the unit left-perpendicular of the segment from a to
// b. ok is false for zero-length segments.
func perpendicular(ax, ay, bx, by float64) (nx, ny float64, ok bool) {
	dx := bx - ax
	dy := by - ay
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, 0, false
	}
	return -dy / ln, dx / ln, true
}

// wireframeStyle colors the edges of a wireframe. shade maps a segment's
// screen-space midpoint y (0 at the top) to a color.
type wireframeStyle struct {
	shade func(y float64) Color
	// maxSegments bounds the work per model per frame; zero means no bound.
	maxSegments int
}

// addModel projects every triangle edge of m through cam and queues it.
// model places the model in the world. It returns the number of segments
// queued.
func (b *lineBatch) addModel(m *resources.Model, model mgl32.Mat4, cam *Camera, width, height int, style wireframeStyle) int {
	if m == nil {
		return 0
	}
	world := m.WorldTransforms()
	vp := cam.ViewProjection()
	queued := 0
	full := false

	var screen [][2]float64
	var visible []bool
	m.Walk(func(node, _ int) {
		if full {
			return
		}
		mi := m.Nodes[node].Mesh
		if mi < 0 || mi >= len(m.Meshes) {
			return
		}
		mvp := vp.Mul4(model).Mul4(world[node])
		for _, prim := range m.Meshes[mi].Primitives {
			screen = screen[:0]
			visible = visible[:0]
			for _, p := range prim.Positions {
				clip := mvp.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
				if clip.W() < cam.Near {
					screen = append(screen, [2]float64{})
					visible = append(visible, false)
					continue
				}
				inv := 1 / clip.W()
				screen = append(screen, [2]float64{
					(float64(clip.X()*inv) + 1) / 2 * float64(width),
					(1 - float64(clip.Y()*inv)) / 2 * float64(height),
				})
				visible = append(visible, true)
			}
			edge := func(i, j uint32) {
				if int(i) >= len(screen) || int(j) >= len(screen) || !visible[i] || !visible[j] {
					return
				}
				a, c := screen[i], screen[j]
				col := ColorWhite
				if style.shade != nil {
					col = style.shade((a[1] + c[1]) / 2)
				}
				b.add(a[0], a[1], c[0], c[1], col)
				queued++
			}
			forEachTriangle(prim, func(i0, i1, i2 uint32) {
				if full {
					return
				}
				edge(i0, i1)
				edge(i1, i2)
				edge(i2, i0)
				if style.maxSegments > 0 && queued >= style.maxSegments {
					full = true
				}
			})
		}
	})
	return queued
}

// forEachTriangle calls fn with the vertex indices of each triangle of p.
func forEachTriangle(p resources.Primitive, fn func(i0, i1, i2 uint32)) {
	if p.Indices != nil {
		for i := 0; i+2 < len(p.Indices); i += 3 {
			fn(p.Indices[i], p.Indices[i+1], p.Indices[i+2])
		}
		return
	}
	for i := 0; i+2 < len(p.Positions); i += 3 {
		fn(uint32(i), uint32(i+1), uint32(i+2))
	}
}
