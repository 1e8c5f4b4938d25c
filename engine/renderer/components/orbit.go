package components

import (
	"github.com/chewxy/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/davsar89/GDML-Studio/engine/math"
)

// pitch stays just short of the poles so the look-at basis never degenerates.
const maxPitch float32 = 1.55334306

type orbitAnim struct {
	yaw      *gween.Tween
	pitch    *gween.Tween
	distance *gween.Tween
	done     [3]bool
}

// OrbitControls moves a camera on a sphere around a pivot target.
type OrbitControls struct {
	Camera *Camera
	// Target is the orbit pivot.
	Target math.Vec3

	MinDistance float32
	MaxDistance float32
	// Duration of animated steps in seconds. Zero applies steps at once.
	Duration float32
	Easing   ease.TweenFunc

	yaw      float32
	pitch    float32
	distance float32

	anim *orbitAnim
}

func NewOrbitControls(camera *Camera) *OrbitControls {
	oc := &OrbitControls{
		Camera:      camera,
		Target:      camera.Target,
		MinDistance: 0,
		MaxDistance: math32.Inf(1),
		Duration:    0.25,
		Easing:      ease.OutCubic,
	}
	oc.Sync()
	return oc
}

// Sync reads the orbit angles back from the camera position, dropping any
// animation in flight. Call it after moving the camera directly.
func (oc *OrbitControls) Sync() {
	oc.anim = nil
	offset := oc.Camera.Position.Sub(oc.Target)
	oc.distance = offset.Length()
	if oc.distance == 0 {
		oc.yaw, oc.pitch = 0, 0
		return
	}
	oc.yaw = math32.Atan2(offset.X, offset.Z)
	oc.pitch = math32.Asin(math.Clamp(offset.Y/oc.distance, -1, 1))
}

// SetTarget moves the pivot and keeps the camera where it is.
func (oc *OrbitControls) SetTarget(target math.Vec3) {
	oc.Target = target
	oc.Camera.LookAt(target)
	oc.Sync()
}

func (oc *OrbitControls) Distance() float32 {
	return oc.distance
}

// OrbitBy rotates the camera around the pivot by the given yaw and pitch in radians.
func (oc *OrbitControls) OrbitBy(yaw, pitch float32) {
	oc.animateTo(oc.yaw+yaw, math.Clamp(oc.pitch+pitch, -maxPitch, maxPitch), oc.distance)
}

// Dolly scales the camera distance to the pivot; factors below 1 move closer.
func (oc *OrbitControls) Dolly(factor float32) {
	if factor <= 0 {
		return
	}
	oc.animateTo(oc.yaw, oc.pitch, math.Clamp(oc.distance*factor, oc.MinDistance, oc.MaxDistance))
}

func (oc *OrbitControls) animateTo(yaw, pitch, distance float32) {
	if oc.Duration <= 0 {
		oc.anim = nil
		oc.yaw, oc.pitch, oc.distance = yaw, pitch, distance
		oc.apply()
		return
	}
	oc.anim = &orbitAnim{
		yaw:      gween.New(oc.yaw, yaw, oc.Duration, oc.Easing),
		pitch:    gween.New(oc.pitch, pitch, oc.Duration, oc.Easing),
		distance: gween.New(oc.distance, distance, oc.Duration, oc.Easing),
	}
}

// IsAnimating reports whether an orbit step is still in flight.
func (oc *OrbitControls) IsAnimating() bool {
	return oc.anim != nil
}

// Update advances any running animation by dt seconds and places the camera.
func (oc *OrbitControls) Update(dt float32) {
	if oc.anim != nil {
		a := oc.anim
		if !a.done[0] {
			oc.yaw, a.done[0] = a.yaw.Update(dt)
		}
		if !a.done[1] {
			oc.pitch, a.done[1] = a.pitch.Update(dt)
		}
		if !a.done[2] {
			oc.distance, a.done[2] = a.distance.Update(dt)
		}
		if a.done[0] && a.done[1] && a.done[2] {
			oc.anim = nil
		}
		oc.apply()
	}
}

func (oc *OrbitControls) apply() {
	cp := math32.Cos(oc.pitch)
	offset := math.NewVec3(
		cp*math32.Sin(oc.yaw),
		math32.Sin(oc.pitch),
		cp*math32.Cos(oc.yaw),
	).MulScalar(oc.distance)
	oc.Camera.SetPosition(oc.Target.Add(offset))
	oc.Camera.LookAt(oc.Target)
}
