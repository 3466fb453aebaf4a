package physics

// Material tags a body's surface. Materials are compared by identity.
type Material struct {
	Name string
}

func NewMaterial(name string) *Material {
	return &Material{Name: name}
}

// ContactMaterial describes how two materials interact on contact
type ContactMaterial struct {
	A, B        *Material
	Friction    float32 // Coulomb coefficient
	Restitution float32 // 0 = no bounce, 1 = perfect bounce
}

func NewContactMaterial(a, b *Material, friction, restitution float32) ContactMaterial {
	return ContactMaterial{A: a, B: b, Friction: friction, Restitution: restitution}
}

type materialPair struct {
	a, b *Material
}
