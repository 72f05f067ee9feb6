package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// AxisAlignedBox represents a box whose faces are perpendicular to the coordinate axes
type AxisAlignedBox struct {
	Min core.Vec3 // Minimum corner
	Max core.Vec3 // Maximum corner
}

// NewAxisAlignedBox creates a box spanning the two opposite corners a and b.
// The corners may be given in any order.
func NewAxisAlignedBox(a, b core.Vec3) *AxisAlignedBox {
	return &AxisAlignedBox{
		Min: core.NewVec3(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max: core.NewVec3(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
	}
}

// Intersect tests if a ray intersects with the box using the slab method
func (b *AxisAlignedBox) Intersect(ray core.Ray) (Hit, bool) {
	entry, exit := math.Inf(-1), math.Inf(1)
	entryAxis, exitAxis := -1, -1
	entryFlipped, exitFlipped := false, false

	for axis := 0; axis < 3; axis++ {
		minVal := b.Min.Component(axis)
		maxVal := b.Max.Component(axis)
		origin := ray.Origin.Component(axis)
		direction := ray.Direction.Component(axis)

		// Handle parallel rays (direction near zero)
		if math.Abs(direction) < core.Epsilon {
			if origin <= minVal || origin >= maxVal {
				return Hit{}, false // Ray origin outside slab
			}
			continue
		}

		// Calculate intersection distances for this axis
		t1 := (minVal - origin) / direction
		t2 := (maxVal - origin) / direction

		// Ensure t1 <= t2; a swap means the ray enters through the max face
		flipped := false
		if t1 > t2 {
			t1, t2 = t2, t1
			flipped = true
		}

		if t1 > entry {
			entry, entryAxis, entryFlipped = t1, axis, flipped
		}
		if t2 < exit {
			exit, exitAxis, exitFlipped = t2, axis, flipped
		}
	}

	// Degenerate direction: every axis was parallel
	if entryAxis < 0 {
		return Hit{}, false
	}

	if entry > exit || exit <= core.Epsilon {
		return Hit{}, false
	}

	if entry > core.Epsilon {
		if entry >= core.Infinity {
			return Hit{}, false
		}
		normal := core.Axis(entryAxis)
		if !entryFlipped {
			normal = normal.Negate() // entered through the min face
		}
		return Hit{T: entry, Normal: normal}, true
	}

	// Ray starts inside the box, report where it leaves
	if exit >= core.Infinity {
		return Hit{}, false
	}
	normal := core.Axis(exitAxis)
	if exitFlipped {
		normal = normal.Negate() // leaves through the min face
	}
	return Hit{T: exit, Normal: normal, Inside: true}, true
}

func (b *AxisAlignedBox) String() string {
	return fmt.Sprintf("AxisAlignedBox(min=%v, max=%v)", b.Min, b.Max)
}
