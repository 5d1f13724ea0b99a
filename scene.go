package warpfx

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 16

// DefaultClearColor is the scene background (#141414).
var DefaultClearColor = ColorFromHex(0x141414)

// Scene owns the node tree, the camera, and the per-frame command buffers.
type Scene struct {
	root   *Node
	camera *Camera
	debug  bool

	// ClearColor fills the target before quads are drawn.
	ClearColor Color

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand
	vertBuf  [4]ebiten.Vertex
}

// NewScene creates a scene with a pre-created root container and a camera
// covering the given viewport.
func NewScene(viewport Rect) *Scene {
	return &Scene{
		root:       NewContainer("root"),
		camera:     NewCamera(viewport),
		ClearColor: DefaultClearColor,
		commands:   make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:    make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// Quads returns every quad node in tree order.
func (s *Scene) Quads() []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.Type == NodeTypeQuad {
			out = append(out, n)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(s.root)
	return out
}

// Draw clears target, projects every visible quad through the camera, sorts
// back to front and submits the draws.
func (s *Scene) Draw(target *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	target.Fill(s.ClearColor.toRGBA())
	s.collect()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// collect refreshes world transforms and rebuilds the command list.
func (s *Scene) collect() {
	s.commands = s.commands[:0]
	updateWorldTransform(s.root, mgl64.Vec3{}, 1, 1, 1, false)
	treeOrder := 0
	s.traverse(s.root, s.camera, &treeOrder)
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth
// warnings and per-frame timing stats are logged.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
