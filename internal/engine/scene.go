package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Scene is an append-only list of meshes. Meshes are never removed.
type Scene struct {
	Name       string
	Background rl.Color
	Meshes     []*Mesh
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:       name,
		Background: rl.Black,
		Meshes:     make([]*Mesh, 0),
	}
}

func (s *Scene) Add(m *Mesh) {
	s.Meshes = append(s.Meshes, m)
}

// Traverse visits every visible mesh in insertion order
func (s *Scene) Traverse(fn func(*Mesh)) {
	for _, m := range s.Meshes {
		if m.Visible {
			fn(m)
		}
	}
}

// Receivers returns the visible meshes that shadows fall onto
func (s *Scene) Receivers() []*Mesh {
	var out []*Mesh
	s.Traverse(func(m *Mesh) {
		if m.ReceiveShadow {
			out = append(out, m)
		}
	})
	return out
}
