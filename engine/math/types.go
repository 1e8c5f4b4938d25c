package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

/** @brief a 4x4 matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements, row-major, applied to row vectors. */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 * An extents value with Min > Max on any axis is empty.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}

// Ray is a half-line starting at Origin. Direction is expected to be normalized.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

/**
 * @brief Represents the placement of an object relative to its parent.
 * Rotation holds Euler angles in radians, applied about the parent's fixed
 * axes in X, Y, Z order. NOTE: The properties of this should not be edited
 * directly, but done via the setters to ensure proper matrix generation.
 */
type Transform struct {
	/** @brief The position relative to the parent. */
	Position Vec3
	/** @brief The extrinsic X-Y-Z rotation relative to the parent. */
	Rotation Vec3
	/** @brief The scale relative to the parent. */
	Scale Vec3
	/**
	 * @brief Indicates if the position, rotation or scale have changed,
	 * indicating that the local matrix needs to be recalculated.
	 */
	IsDirty bool
	/**
	 * @brief The local transformation matrix, updated whenever
	 * the position, rotation or scale have changed.
	 */
	Local Mat4
}
