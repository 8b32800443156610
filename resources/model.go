package resources

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"math"
	"path"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Model is a decoded glTF 2.0 scene: the raw document plus a flattened node
// graph with mesh geometry read out of its buffers.
type Model struct {
	Path     string
	Document *gltf.Document
	// Nodes mirrors Document.Nodes.
	Nodes []ModelNode
	// Roots are the node indices of the default scene.
	Roots []int
	// Meshes mirrors Document.Meshes.
	Meshes []Mesh
}

// ModelNode is one scene-graph node. Mesh is -1 for nodes without geometry.
type ModelNode struct {
	Name     string
	Mesh     int
	Children []int
	// Local is the node's transform relative to its parent.
	Local mgl32.Mat4
}

// Mesh holds the primitives of one glTF mesh.
type Mesh struct {
	Name       string
	Primitives []Primitive
}

// Primitive is a triangle list. Indices is nil for non-indexed geometry.
type Primitive struct {
	Positions [][3]float32
	Indices   []uint32
}

// Walk visits every node reachable from Roots depth-first. Cycles in a
// malformed document are visited once.
func (m *Model) Walk(fn func(node, depth int)) {
	seen := make([]bool, len(m.Nodes))
	var visit func(i, depth int)
	visit = func(i, depth int) {
		if i < 0 || i >= len(m.Nodes) || seen[i] {
			return
		}
		seen[i] = true
		fn(i, depth)
		for _, c := range m.Nodes[i].Children {
			visit(c, depth+1)
		}
	}
	for _, r := range m.Roots {
		visit(r, 0)
	}
}

// WorldTransforms returns each node's transform relative to the model root,
// indexed like Nodes. Unreachable nodes get the identity.
func (m *Model) WorldTransforms() []mgl32.Mat4 {
	world := make([]mgl32.Mat4, len(m.Nodes))
	for i := range world {
		world[i] = mgl32.Ident4()
	}
	var parents []int
	m.Walk(func(node, depth int) {
		parents = parents[:depth]
		if depth == 0 {
			world[node] = m.Nodes[node].Local
		} else {
			world[node] = world[parents[depth-1]].Mul4(m.Nodes[node].Local)
		}
		parents = append(parents, node)
	})
	return world
}

// Bounds returns the axis-aligned bounds of every vertex position. An empty
// model returns zero bounds.
func (m *Model) Bounds() (lo, hi [3]float32) {
	first := true
	for _, mesh := range m.Meshes {
		for _, prim := range mesh.Primitives {
			for _, p := range prim.Positions {
				if first {
					lo, hi = p, p
					first = false
					continue
				}
				for k := 0; k < 3; k++ {
					lo[k] = float32(math.Min(float64(lo[k]), float64(p[k])))
					hi[k] = float32(math.Max(float64(hi[k]), float64(p[k])))
				}
			}
		}
	}
	return lo, hi
}

// VertexCount returns the total number of positions across all meshes.
func (m *Model) VertexCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		for _, prim := range mesh.Primitives {
			n += len(prim.Positions)
		}
	}
	return n
}

// ModelStrategy decodes .gltf and .glb files. External buffers and images
// are resolved relative to the model when the fetcher is backed by an fs.FS.
type ModelStrategy struct{}

// Load implements Strategy.
func (ModelStrategy) Load(ctx context.Context, req Request) (any, error) {
	if len(req.Paths) != 1 {
		return nil, fmt.Errorf("model: want 1 path, got %d", len(req.Paths))
	}
	p := req.Paths[0]
	data, err := readAll(ctx, req.Fetcher, p)
	if err != nil {
		return nil, err
	}

	var dec *gltf.Decoder
	if fp, ok := req.Fetcher.(fsProvider); ok {
		dir, err := fs.Sub(fp.FileSystem(), path.Dir(cleanPath(p)))
		if err != nil {
			return nil, err
		}
		dec = gltf.NewDecoderFS(bytes.NewReader(data), dir)
	} else {
		dec = gltf.NewDecoder(bytes.NewReader(data))
	}
	doc := new(gltf.Document)
	if err := dec.Decode(doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return buildModel(p, doc)
}

func buildModel(p string, doc *gltf.Document) (*Model, error) {
	m := &Model{
		Path:     p,
		Document: doc,
		Nodes:    make([]ModelNode, len(doc.Nodes)),
		Meshes:   make([]Mesh, len(doc.Meshes)),
	}
	for i, n := range doc.Nodes {
		mn := ModelNode{
			Name:     n.Name,
			Mesh:     -1,
			Children: append([]int(nil), n.Children...),
			Local:    localMatrix(n),
		}
		if n.Mesh != nil {
			mn.Mesh = *n.Mesh
		}
		m.Nodes[i] = mn
	}
	for i, mesh := range doc.Meshes {
		out := Mesh{Name: mesh.Name}
		for j, prim := range mesh.Primitives {
			pos, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}
			if pos < 0 || pos >= len(doc.Accessors) {
				return nil, fmt.Errorf("mesh %d primitive %d: position accessor %d out of range", i, j, pos)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[pos], nil)
			if err != nil {
				return nil, fmt.Errorf("mesh %d primitive %d: %w", i, j, err)
			}
			pr := Primitive{Positions: positions}
			if prim.Indices != nil {
				idx := *prim.Indices
				if idx < 0 || idx >= len(doc.Accessors) {
					return nil, fmt.Errorf("mesh %d primitive %d: index accessor %d out of range", i, j, idx)
				}
				indices, err := modeler.ReadIndices(doc, doc.Accessors[idx], nil)
				if err != nil {
					return nil, fmt.Errorf("mesh %d primitive %d: %w", i, j, err)
				}
				pr.Indices = indices
			}
			out.Primitives = append(out.Primitives, pr)
		}
		m.Meshes[i] = out
	}

	switch {
	case doc.Scene != nil && *doc.Scene < len(doc.Scenes):
		m.Roots = append(m.Roots, doc.Scenes[*doc.Scene].Nodes...)
	case len(doc.Scenes) > 0:
		m.Roots = append(m.Roots, doc.Scenes[0].Nodes...)
	default:
		m.Roots = rootNodes(m.Nodes)
	}
	return m, nil
}

var identity16 = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// localMatrix returns n's matrix, or T * R * S when it has none. glTF stores
// both column-major, as mgl32 does.
func localMatrix(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != ([16]float64{}) && n.Matrix != identity16 {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	t, r, s := n.Translation, n.Rotation, n.Scale
	if r == ([4]float64{}) {
		r = [4]float64{0, 0, 0, 1}
	}
	if s == ([3]float64{}) {
		s = [3]float64{1, 1, 1}
	}
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

// rootNodes returns every node that is nobody's child.
func rootNodes(nodes []ModelNode) []int {
	child := make([]bool, len(nodes))
	for _, n := range nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(nodes) {
				child[c] = true
			}
		}
	}
	var roots []int
	for i := range nodes {
		if !child[i] {
			roots = append(roots, i)
		}
	}
	return roots
}
