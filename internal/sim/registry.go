package sim

import (
	"playground/internal/engine"
	"playground/internal/physics"
)

type Kind int

const (
	KindBox Kind = iota
	KindSphere
)

func (k Kind) String() string {
	if k == KindSphere {
		return "sphere"
	}
	return "box"
}

// Handle is the stable index of a tracked object in its registry
type Handle int

// TrackedObject pairs a visual mesh with the physics body that drives it.
// The scene owns the mesh and the world owns the body.
type TrackedObject struct {
	Handle Handle
	Kind   Kind
	Mesh   *engine.Mesh
	Body   *physics.Body
}

// Registry is an append-only arena of tracked objects
type Registry struct {
	objects []TrackedObject
	boxes   []Handle
	spheres []Handle
	byBody  map[*physics.Body]Handle
}

func NewRegistry() *Registry {
	return &Registry{byBody: make(map[*physics.Body]Handle)}
}

func (r *Registry) add(kind Kind, mesh *engine.Mesh, body *physics.Body) TrackedObject {
	obj := TrackedObject{
		Handle: Handle(len(r.objects)),
		Kind:   kind,
		Mesh:   mesh,
		Body:   body,
	}
	r.objects = append(r.objects, obj)
	r.byBody[body] = obj.Handle
	if kind == KindSphere {
		r.spheres = append(r.spheres, obj.Handle)
	} else {
		r.boxes = append(r.boxes, obj.Handle)
	}
	return obj
}

func (r *Registry) Get(h Handle) (TrackedObject, bool) {
	if h < 0 || int(h) >= len(r.objects) {
		return TrackedObject{}, false
	}
	return r.objects[h], true
}

// Lookup finds the object driven by body
func (r *Registry) Lookup(body *physics.Body) (TrackedObject, bool) {
	h, ok := r.byBody[body]
	if !ok {
		return TrackedObject{}, false
	}
	return r.objects[h], true
}

func (r *Registry) Len() int {
	return len(r.objects)
}

// Boxes returns box handles in spawn order. The slice must not be modified.
func (r *Registry) Boxes() []Handle {
	return r.boxes
}

// Spheres returns sphere handles in spawn order. The slice must not be modified.
func (r *Registry) Spheres() []Handle {
	return r.spheres
}

func (r *Registry) FirstSphere() (TrackedObject, bool) {
	if len(r.spheres) == 0 {
		return TrackedObject{}, false
	}
	return r.objects[r.spheres[0]], true
}

func (r *Registry) Each(fn func(TrackedObject)) {
	for _, obj := range r.objects {
		fn(obj)
	}
}
