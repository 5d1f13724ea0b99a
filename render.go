package warpfx

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RenderCommand is a single quad draw emitted during scene traversal.
type RenderCommand struct {
	Node        *Node
	Depth       float64
	RenderLayer uint8
	treeOrder   int // assigned during traversal for stable sort
}

// traverse walks the node tree depth-first and emits a command for every
// visible quad whose corners all project inside the camera's depth range.
func (s *Scene) traverse(n *Node, cam *Camera, treeOrder *int) {
	if !n.Visible {
		return
	}

	if n.Type == NodeTypeQuad && n.Material != nil && n.Material.Texture != nil {
		if depth, ok := projectQuad(n, cam); ok {
			*treeOrder++
			s.commands = append(s.commands, RenderCommand{
				Node:        n,
				Depth:       depth,
				RenderLayer: n.RenderLayer,
				treeOrder:   *treeOrder,
			})
		}
	}

	for _, child := range n.children {
		s.traverse(child, cam, treeOrder)
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should draw before or with b:
// lower layers first, then farther quads first (painter's order), then
// tree order. Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	if a.Depth != b.Depth {
		return a.Depth > b.Depth
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

// submit draws the sorted commands onto target.
func (s *Scene) submit(target *ebiten.Image) {
	var op ebiten.DrawTrianglesShaderOptions
	for i := range s.commands {
		n := s.commands[i].Node
		mat := n.Material
		b := mat.Texture.Bounds()
		tint := Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha}
		quadVertices(s.vertBuf[:], n.projected,
			float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), tint)

		op.Images[0] = mat.Texture
		op.Uniforms = mat.Uniforms()
		op.Blend = n.BlendMode.EbitenBlend()
		target.DrawTrianglesShader(s.vertBuf[:], quadIndices, mat.Program().Shader(), &op)
	}
}
