package components

import (
	"github.com/chewxy/math32"

	"github.com/davsar89/GDML-Studio/engine/math"
)

/**
 * @brief A perspective camera looking at a target point. Ideally,
 * these are created and managed by the camera system.
 */
type Camera struct {
	/**
	 * @brief The position of this camera.
	 * NOTE: Do not set this directly, use SetPosition() instead
	 * so the view matrix is recalculated when needed.
	 */
	Position math.Vec3
	/** @brief The point the camera looks at. */
	Target math.Vec3
	/** @brief The world up direction. */
	Up math.Vec3
	/** @brief Vertical field of view in degrees. */
	FOV float32
	/** @brief Viewport width divided by height. */
	Aspect float32
	/** @brief Near clipping plane distance. */
	Near float32
	/** @brief Far clipping plane distance. */
	Far float32
	/** @brief Internal flag used to determine when the matrices need to be rebuilt. */
	IsDirty bool
	/**
	 * @brief The view matrix of this camera.
	 * NOTE: IMPORTANT: Do not get this directly, use GetView() instead
	 * so the view matrix is recalculated when needed.
	 */
	ViewMatrix       math.Mat4
	ProjectionMatrix math.Mat4
}

const (
	DefaultFOV  float32 = 50
	DefaultNear float32 = 0.1
	DefaultFar  float32 = 100000
)

func NewCamera() *Camera {
	camera := &Camera{}
	camera.Reset()
	return camera
}

func (c *Camera) Reset() {
	c.Position = math.NewVec3(500, 500, 500)
	c.Target = math.NewVec3Zero()
	c.Up = math.NewVec3Up()
	c.FOV = DefaultFOV
	c.Aspect = 1
	c.Near = DefaultNear
	c.Far = DefaultFar
	c.IsDirty = true
}

func (c *Camera) GetPosition() math.Vec3 {
	return c.Position
}

func (c *Camera) SetPosition(position math.Vec3) {
	c.Position = position
	c.IsDirty = true
}

// LookAt points the camera at target without moving it.
func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
	c.IsDirty = true
}

func (c *Camera) SetClipPlanes(near, far float32) {
	c.Near = near
	c.Far = far
	c.IsDirty = true
}

func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.Aspect = aspect
	c.IsDirty = true
}

func (c *Camera) FOVRadians() float32 {
	return math.DegToRad(c.FOV)
}

func (c *Camera) update() {
	if c.IsDirty {
		c.ViewMatrix = math.NewMat4LookAt(c.Position, c.Target, c.Up)
		c.ProjectionMatrix = math.NewMat4Perspective(c.FOVRadians(), c.Aspect, c.Near, c.Far)
		c.IsDirty = false
	}
}

func (c *Camera) GetView() math.Mat4 {
	c.update()
	return c.ViewMatrix
}

func (c *Camera) GetProjection() math.Mat4 {
	c.update()
	return c.ProjectionMatrix
}

// Forward returns the unit direction from the camera to its target.
func (c *Camera) Forward() math.Vec3 {
	return c.Target.Sub(c.Position).Normalized()
}

func (c *Camera) Right() math.Vec3 {
	return c.Forward().Cross(c.Up).Normalized()
}

/**
 * @brief Builds a world-space ray from the camera through a point of the
 * viewport given in normalized device coordinates ([-1, 1] on both axes,
 * +y up).
 */
func (c *Camera) RayFromNDC(x, y float32) math.Ray {
	forward := c.Forward()
	right := c.Right()
	up := right.Cross(forward)
	halfHeight := math32.Tan(c.FOVRadians() * 0.5)
	halfWidth := halfHeight * c.Aspect
	dir := forward.
		Add(right.MulScalar(x * halfWidth)).
		Add(up.MulScalar(y * halfHeight))
	return math.NewRay(c.Position, dir)
}
