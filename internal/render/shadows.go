package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"playground/internal/engine"
)

const (
	shadowLift     = 0.01
	shadowFade     = 15
	shadowMaxAlpha = 0.45
	shadowSlices   = 24
)

// blob is a soft round shadow lying on a receiver
type blob struct {
	Center rl.Vector3
	Radius float32
	Alpha  float32
}

// shadowBlobs projects every visible CastShadow mesh along the light onto
// the highest ReceiveShadow mesh below it. Receivers are horizontal planes
// at their position's height.
func shadowBlobs(scene *engine.Scene, light Light) []blob {
	if light.Direction.Y >= 0 {
		return nil
	}
	receivers := scene.Receivers()
	if len(receivers) == 0 {
		return nil
	}

	var blobs []blob
	scene.Traverse(func(m *engine.Mesh) {
		if !m.CastShadow || m.Geometry == nil {
			return
		}
		pos := m.Transform.Position
		floor, ok := receiverBelow(receivers, pos.Y)
		if !ok {
			return
		}
		height := pos.Y - floor
		alpha := shadowMaxAlpha * (1 - height/shadowFade)
		if alpha <= 0 {
			return
		}
		size := m.Size()
		t := height / -light.Direction.Y
		center := rl.Vector3Add(pos, rl.Vector3Scale(light.Direction, t))
		center.Y = floor + shadowLift
		blobs = append(blobs, blob{
			Center: center,
			Radius: maxf(size.X, size.Z) / 2,
			Alpha:  alpha,
		})
	})
	return blobs
}

func receiverBelow(receivers []*engine.Mesh, y float32) (float32, bool) {
	best, found := float32(0), false
	for _, r := range receivers {
		ry := r.Transform.Position.Y
		if ry <= y && (!found || ry > best) {
			best, found = ry, true
		}
	}
	return best, found
}

func drawShadows(blobs []blob) {
	for _, b := range blobs {
		rl.DrawCylinder(b.Center, b.Radius, b.Radius, 0.001, shadowSlices, rl.Fade(rl.Black, b.Alpha))
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
