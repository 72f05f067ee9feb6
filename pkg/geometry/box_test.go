package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewAxisAlignedBox_OrdersCorners(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(1, -2, 3), core.NewVec3(-1, 2, -3))

	if box.Min != core.NewVec3(-1, -2, -3) {
		t.Errorf("Expected min (-1,-2,-3), got %v", box.Min)
	}
	if box.Max != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected max (1,2,3), got %v", box.Max)
	}
}

func TestAxisAlignedBox_Intersect(t *testing.T) {
	// Create a 2x2x2 box centered at origin
	box := NewAxisAlignedBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

	tests := []struct {
		name           string
		ray            core.Ray
		shouldHit      bool
		expectedT      float64
		expectedNormal core.Vec3
		expectedInside bool
	}{
		{
			name:           "Ray hits min x face",
			ray:            core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit:      true,
			expectedT:      4.0,
			expectedNormal: core.NewVec3(-1, 0, 0),
		},
		{
			name:           "Ray hits max x face",
			ray:            core.NewRay(core.NewVec3(5, 0, 0), core.NewVec3(-1, 0, 0)),
			shouldHit:      true,
			expectedT:      4.0,
			expectedNormal: core.NewVec3(1, 0, 0),
		},
		{
			name:           "Ray hits max y face from above",
			ray:            core.NewRay(core.NewVec3(0.5, 3, 0.5), core.NewVec3(0, -1, 0)),
			shouldHit:      true,
			expectedT:      2.0,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
		{
			name:           "Ray hits min z face",
			ray:            core.NewRay(core.NewVec3(0, 0, -3), core.NewVec3(0, 0, 1)),
			shouldHit:      true,
			expectedT:      2.0,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name: "Diagonal ray enters through the face it reaches last",
			ray: core.NewRay(
				core.NewVec3(-3, -2.5, 0),
				core.NewVec3(2, 1, 0).Normalize(),
			),
			shouldHit:      true,
			expectedT:      1.5 * math.Sqrt(5), // enters the y slab at (0, -1, 0)
			expectedNormal: core.NewVec3(0, -1, 0),
		},
		{
			name:      "Ray misses box",
			ray:       core.NewRay(core.NewVec3(0, 3, -3), core.NewVec3(0, 0, 1)),
			shouldHit: false,
		},
		{
			name:      "Parallel ray outside slab",
			ray:       core.NewRay(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Parallel ray on slab boundary",
			ray:       core.NewRay(core.NewVec3(-5, 1, 0), core.NewVec3(1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Box behind the ray",
			ray:       core.NewRay(core.NewVec3(-5, 0, 0), core.NewVec3(-1, 0, 0)),
			shouldHit: false,
		},
		{
			name:      "Zero direction",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0)),
			shouldHit: false,
		},
		{
			name:           "Ray inside box leaves through max x face",
			ray:            core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)),
			shouldHit:      true,
			expectedT:      1.0,
			expectedNormal: core.NewVec3(1, 0, 0),
			expectedInside: true,
		},
		{
			name:           "Ray inside box leaves through min y face",
			ray:            core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0, -1, 0)),
			shouldHit:      true,
			expectedT:      1.5,
			expectedNormal: core.NewVec3(0, -1, 0),
			expectedInside: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := box.Intersect(tt.ray)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got hit=%t (t=%f)", tt.shouldHit, isHit, hit.T)
			}
			if !tt.shouldHit {
				return
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if hit.Inside != tt.expectedInside {
				t.Errorf("Expected inside %t, got %t", tt.expectedInside, hit.Inside)
			}
			if hit.T <= core.Epsilon {
				t.Errorf("Hit parameter %g must exceed epsilon", hit.T)
			}
		})
	}
}

func TestAxisAlignedBox_HitPointOnSurface(t *testing.T) {
	box := NewAxisAlignedBox(core.NewVec3(2, 0, -4), core.NewVec3(4, 1, -2))
	ray := core.NewRayThrough(core.NewVec3(0, 0.5, 0), core.NewVec3(3, 0.5, -2.5))

	hit, isHit := box.Intersect(ray)
	if !isHit {
		t.Fatal("Expected hit, got miss")
	}

	point := ray.At(hit.T)
	// The hit point must lie on the face the normal points out of
	switch {
	case hit.Normal == core.NewVec3(-1, 0, 0):
		if math.Abs(point.X-2) > 1e-9 {
			t.Errorf("Expected point on x=2 face, got %v", point)
		}
	case hit.Normal == core.NewVec3(0, 0, 1):
		if math.Abs(point.Z+2) > 1e-9 {
			t.Errorf("Expected point on z=-2 face, got %v", point)
		}
	default:
		t.Errorf("Unexpected normal %v for hit point %v", hit.Normal, point)
	}
}
