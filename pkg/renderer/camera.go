package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera maps image pixels to points on the view plane
type Camera interface {
	// Position returns the eye point all primary rays start from
	Position() core.Vec3

	// ConfigureResolution returns a copy of the camera mapped onto a
	// width x height image whose view plane is planeWidth wide.
	// The receiver is left unchanged.
	ConfigureResolution(height, width int, planeWidth float64) Camera

	// MapPixelToPlanePoint returns the view-plane point for pixel (x, y).
	// Integer coordinates are pixel centers; fractional parts offset within the pixel.
	MapPixelToPlanePoint(x, y float64) core.Vec3
}

// PinholeCamera is an ideal pinhole camera looking along Towards
type PinholeCamera struct {
	position        core.Vec3
	towards         core.Vec3
	up              core.Vec3
	right           core.Vec3
	distanceToPlane float64

	width, height int
	pixelWidth    float64
}

// NewPinholeCamera creates a camera at position looking along towards.
// up only needs to be roughly perpendicular to towards; it is re-orthogonalized.
func NewPinholeCamera(position, towards, up core.Vec3, distanceToPlane float64) *PinholeCamera {
	towards = towards.Normalize()
	right := towards.Cross(up).Normalize()
	up = right.Cross(towards).Normalize()

	return &PinholeCamera{
		position:        position,
		towards:         towards,
		up:              up,
		right:           right,
		distanceToPlane: distanceToPlane,
		width:           1,
		height:          1,
		pixelWidth:      1,
	}
}

// Position implements the Camera interface
func (c *PinholeCamera) Position() core.Vec3 {
	return c.position
}

// ConfigureResolution implements the Camera interface
func (c *PinholeCamera) ConfigureResolution(height, width int, planeWidth float64) Camera {
	configured := *c
	configured.width = width
	configured.height = height
	configured.pixelWidth = planeWidth / float64(width)
	return &configured
}

// MapPixelToPlanePoint implements the Camera interface
func (c *PinholeCamera) MapPixelToPlanePoint(x, y float64) core.Vec3 {
	center := c.position.Add(c.towards.Multiply(c.distanceToPlane))

	// Image y grows downward, world up grows upward
	dx := (x - math.Floor(float64(c.width)/2)) * c.pixelWidth
	dy := (y - math.Floor(float64(c.height)/2)) * c.pixelWidth

	return center.Add(c.right.Multiply(dx)).Subtract(c.up.Multiply(dy))
}

// Valid reports whether the orientation vectors span a usable frame
func (c *PinholeCamera) Valid() error {
	if c == nil {
		return fmt.Errorf("camera is nil")
	}
	if c.towards.LengthSquared() == 0 {
		return fmt.Errorf("camera towards vector is zero")
	}
	if c.right.LengthSquared() == 0 {
		return fmt.Errorf("camera up vector is parallel to towards vector")
	}
	if c.distanceToPlane <= 0 {
		return fmt.Errorf("camera distance to plane must be positive, got %g", c.distanceToPlane)
	}
	return nil
}

func (c *PinholeCamera) String() string {
	return fmt.Sprintf("PinholeCamera(position=%v, towards=%v, up=%v, distance=%g)",
		c.position, c.towards, c.up, c.distanceToPlane)
}
