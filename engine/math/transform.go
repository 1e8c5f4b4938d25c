package math

func TransformCreate() *Transform {
	return TransformFromPlacement(NewVec3Zero(), NewVec3Zero())
}

// TransformFromPlacement builds a transform from a position and an extrinsic
// X-Y-Z rotation, the way placements are expressed in geometry documents.
func TransformFromPlacement(position, rotation Vec3) *Transform {
	t := &Transform{}
	t.SetPositionRotationScale(position, rotation, NewVec3One())
	t.Local = NewMat4Identity()
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.IsDirty = true
}

func (t *Transform) SetPositionRotationScale(position, rotation, scale Vec3) {
	t.Position = position
	t.Rotation = rotation
	t.Scale = scale
	t.IsDirty = true
}

// GetLocal returns scale, then rotation, then translation as one matrix.
func (t *Transform) GetLocal() Mat4 {
	if t != nil {
		if t.IsDirty {
			r := NewMat4EulerXYZ(t.Rotation.X, t.Rotation.Y, t.Rotation.Z)
			tr := r.Mul(NewMat4Translation(t.Position))
			s := NewMat4Scale(t.Scale)
			t.Local = s.Mul(tr)
			t.IsDirty = false
		}
		return t.Local
	}
	return NewMat4Identity()
}

// GetWorld composes the local matrix with the parent's world matrix.
func (t *Transform) GetWorld(parentWorld Mat4) Mat4 {
	l := t.GetLocal()
	return l.Mul(parentWorld)
}
