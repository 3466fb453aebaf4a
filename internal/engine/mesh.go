package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Scale    rl.Vector3
}

// Matrix returns scale, then rotation, then translation
func (t Transform) Matrix() rl.Matrix {
	s := rl.MatrixScale(t.Scale.X, t.Scale.Y, t.Scale.Z)
	r := rl.QuaternionToMatrix(t.Rotation)
	tr := rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(s, r), tr)
}

// Mesh is a drawable node: shared geometry and material plus its own transform.
// CastShadow meshes drop a shadow onto ReceiveShadow meshes.
type Mesh struct {
	Name          string
	Geometry      *Geometry
	Material      *Material
	Transform     Transform
	Visible       bool
	CastShadow    bool
	ReceiveShadow bool
}

func NewMesh(name string, geometry *Geometry, material *Material) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: geometry,
		Material: material,
		Visible:  true,
		Transform: Transform{
			Rotation: rl.QuaternionIdentity(),
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
	}
}

func (m *Mesh) SetPosition(p rl.Vector3) {
	m.Transform.Position = p
}

func (m *Mesh) SetRotation(q rl.Quaternion) {
	m.Transform.Rotation = q
}

func (m *Mesh) SetScale(s rl.Vector3) {
	m.Transform.Scale = s
}

// Matrix is the model matrix used when drawing
func (m *Mesh) Matrix() rl.Matrix {
	return m.Transform.Matrix()
}

// Size is the axis-aligned size of the scaled geometry before rotation
func (m *Mesh) Size() rl.Vector3 {
	if m.Geometry == nil {
		return rl.Vector3{}
	}
	return rl.Vector3Multiply(m.Geometry.Extents(), m.Transform.Scale)
}
