package warpfx

import "github.com/go-gl/mathgl/mgl64"

// updateWorldTransform recomputes a node's world position, scale and alpha.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
//
// Composition: world = parentPos + (X*parentScaleX, Y*parentScaleY, Z).
// Depth is never scaled; planes stay parallel to the XY plane.
func updateWorldTransform(n *Node, parentPos mgl64.Vec3, parentSX, parentSY, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldPos = parentPos.Add(mgl64.Vec3{n.X * parentSX, n.Y * parentSY, n.Z})
		n.worldScaleX = parentSX * n.ScaleX
		n.worldScaleY = parentSY * n.ScaleY
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldPos, n.worldScaleX, n.worldScaleY, n.worldAlpha, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local X, Y and Z and marks it dirty.
func (n *Node) SetPosition(x, y, z float64) {
	n.X = x
	n.Y = y
	n.Z = z
	n.transformDirty = true
}

// SetZ sets the node's local depth offset and marks it dirty.
func (n *Node) SetZ(z float64) {
	n.Z = z
	n.transformDirty = true
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetAlpha sets the node's alpha and marks it dirty.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldPosition returns the position computed during the last transform update.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.worldPos
}
