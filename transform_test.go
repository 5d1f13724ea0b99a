package warpfx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func assertVec3(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	if !got.ApproxEqualThreshold(want, epsilon) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func updateRoot(root *Node) {
	updateWorldTransform(root, mgl64.Vec3{}, 1, 1, 1, false)
}

func TestWorldTransformTranslation(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("n")
	n.SetPosition(1, 2, 3)
	root.AddChild(n)
	updateRoot(root)
	assertVec3(t, "world", n.WorldPosition(), mgl64.Vec3{1, 2, 3})
}

func TestWorldTransformParentScale(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	parent.SetPosition(10, 0, 1)
	parent.SetScale(2, 3)
	child := NewContainer("child")
	child.SetPosition(1, 1, 0.5)
	root.AddChild(parent)
	parent.AddChild(child)
	updateRoot(root)

	// X and Y are scaled by the parent; Z is never scaled.
	assertVec3(t, "child", child.WorldPosition(), mgl64.Vec3{12, 3, 1.5})
	assertNear(t, "worldScaleX", child.worldScaleX, 2)
	assertNear(t, "worldScaleY", child.worldScaleY, 3)
}

func TestWorldAlphaInherited(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	parent.SetAlpha(0.5)
	child := NewContainer("child")
	child.SetAlpha(0.5)
	root.AddChild(parent)
	parent.AddChild(child)
	updateRoot(root)
	assertNear(t, "worldAlpha", child.worldAlpha, 0.25)
}

func TestDirtyFlagCleared(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("n")
	root.AddChild(n)
	updateRoot(root)
	if n.transformDirty {
		t.Error("transformDirty should be false after update")
	}
}

func TestSetZRecomputesOnlyWhenDirty(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("n")
	root.AddChild(n)
	updateRoot(root)

	// A direct field write without MarkDirty is not picked up.
	n.Z = 5
	updateRoot(root)
	assertNear(t, "stale Z", n.WorldPosition().Z(), 0)

	n.SetZ(5)
	updateRoot(root)
	assertNear(t, "Z", n.WorldPosition().Z(), 5)
}

func TestParentMoveRecomputesChildren(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewContainer("child")
	child.SetPosition(1, 0, 0)
	root.AddChild(parent)
	parent.AddChild(child)
	updateRoot(root)

	parent.SetPosition(0, 0, 2)
	updateRoot(root)
	assertVec3(t, "child", child.WorldPosition(), mgl64.Vec3{1, 0, 2})
}

func TestMarkDirty(t *testing.T) {
	root := NewContainer("root")
	n := NewContainer("n")
	root.AddChild(n)
	updateRoot(root)

	n.X = 4
	n.MarkDirty()
	updateRoot(root)
	assertNear(t, "X", n.WorldPosition().X(), 4)
}
