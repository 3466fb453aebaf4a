package compute

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"playground/internal/physics"
)

// Sphere is a bounding sphere packed as vec4: xyz = center, w = radius.
type Sphere struct {
	X, Y, Z float32
	Radius  float32
}

// IndexPair is a candidate pair by position in the uploaded sphere slice.
type IndexPair struct {
	A, B uint32
}

// boundsSlack keeps touching AABBs overlapping under the shader's strict test.
const boundsSlack = 1e-3

const workgroupSize = 256

const broadphaseShader = `
struct Sphere {
    pos: vec3<f32>,
    radius: f32,
}

struct Pair {
    a: u32,
    b: u32,
}

@group(0) @binding(0) var<storage, read> spheres: array<Sphere>;
@group(0) @binding(1) var<storage, read_write> pairs: array<Pair>;
@group(0) @binding(2) var<storage, read_write> pairCount: atomic<u32>;
@group(0) @binding(3) var<uniform> objectCount: u32;

@compute @workgroup_size(256)
fn main(@builtin(global_invocation_id) global_id: vec3<u32>) {
    let i = global_id.x;
    if (i >= objectCount) {
        return;
    }
    let a = spheres[i];
    for (var j = i + 1u; j < objectCount; j = j + 1u) {
        let b = spheres[j];
        let diff = a.pos - b.pos;
        let r = a.radius + b.radius;
        if (dot(diff, diff) < r * r) {
            let idx = atomicAdd(&pairCount, 1u);
            if (idx < arrayLength(&pairs)) {
                pairs[idx] = Pair(i, j);
            }
        }
    }
}
`

// Broadphase tests enclosing spheres on the GPU, then confirms candidates
// against the exact AABBs on the CPU so its pair set matches the CPU
// strategies. Any GPU failure switches it to the fallback permanently.
type Broadphase struct {
	dev      *Device
	logger   *zap.Logger
	fallback physics.Broadphase
	failed   bool

	layout   *wgpu.BindGroupLayout
	pipeline *wgpu.ComputePipeline
	shader   *wgpu.ShaderModule
	pLayout  *wgpu.PipelineLayout

	spheresBuf *Buffer
	pairsBuf   *Buffer
	countBuf   *Buffer
	uniformBuf *Buffer

	maxObjects uint32
	maxPairs   uint32

	bounded   []*physics.Body
	unbounded []*physics.Body
	spheres   []Sphere
}

// NewBroadphase compiles the pair shader on dev. fallback serves every call
// after a GPU error; nil selects sweep-and-prune.
func NewBroadphase(dev *Device, fallback physics.Broadphase, logger *zap.Logger) (*Broadphase, error) {
	if dev == nil {
		return nil, ErrUnavailable
	}
	if fallback == nil {
		fallback = physics.NewSAPBroadphase()
	}
	if logger == nil {
		logger = dev.logger
	}
	bp := &Broadphase{dev: dev, logger: logger, fallback: fallback}
	if err := bp.compile(); err != nil {
		bp.Release()
		return nil, err
	}
	return bp, nil
}

// OpenBroadphase opens a device and a broadphase on it with sweep-and-prune as
// the fallback. release frees both.
func OpenBroadphase(logger *zap.Logger) (*Broadphase, func(), error) {
	dev, err := Open(logger)
	if err != nil {
		return nil, nil, err
	}
	bp, err := NewBroadphase(dev, physics.NewSAPBroadphase(), logger)
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	return bp, func() {
		bp.Release()
		dev.Close()
	}, nil
}

func (bp *Broadphase) Name() string {
	return "gpu"
}

// Failed reports whether the GPU path has been abandoned for the fallback.
func (bp *Broadphase) Failed() bool {
	return bp.failed
}

func (bp *Broadphase) Pairs(bodies []*physics.Body, dst []physics.Pair) []physics.Pair {
	if bp.failed {
		return bp.fallback.Pairs(bodies, dst)
	}
	start := len(dst)

	bp.bounded, bp.unbounded = physics.SplitUnbounded(bodies, bp.bounded[:0], bp.unbounded[:0])
	dst = physics.AppendUnboundedPairs(bp.bounded, bp.unbounded, dst)
	if len(bp.bounded) < 2 {
		return dst
	}

	bp.spheres = boundingSpheres(bp.bounded, bp.spheres[:0])
	candidates, err := bp.detect(bp.spheres)
	if err != nil {
		bp.failed = true
		bp.logger.Warn("gpu broadphase failed, using fallback",
			zap.String("fallback", bp.fallback.Name()), zap.Error(err))
		return bp.fallback.Pairs(bodies, dst[:start])
	}
	return confirmPairs(bp.bounded, candidates, dst)
}

func (bp *Broadphase) detect(spheres []Sphere) ([]IndexPair, error) {
	n := uint32(len(spheres))
	if err := bp.ensureCapacity(n, bp.maxPairs); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < 2; attempt++ {
		bp.dev.write(bp.spheresBuf, wgpu.ToBytes(spheres))
		bp.dev.write(bp.countBuf, wgpu.ToBytes([]uint32{0}))
		bp.dev.write(bp.uniformBuf, wgpu.ToBytes([]uint32{n}))

		if err := bp.dispatch(n); err != nil {
			return nil, err
		}

		raw, err := bp.dev.read(bp.countBuf, 4)
		if err != nil {
			return nil, err
		}
		count := wgpu.FromBytes[uint32](raw)[0]
		if count == 0 {
			return nil, nil
		}
		if count > bp.maxPairs {
			// Overflowed; grow and run again.
			if err := bp.ensureCapacity(n, count*2); err != nil {
				return nil, err
			}
			continue
		}

		raw, err = bp.dev.read(bp.pairsBuf, uint64(count)*8)
		if err != nil {
			return nil, err
		}
		pairs := make([]IndexPair, count)
		copy(pairs, wgpu.FromBytes[IndexPair](raw))
		return pairs, nil
	}
	return nil, fmt.Errorf("pair buffer overflow with %d objects", n)
}

func (bp *Broadphase) compile() error {
	device := bp.dev.device

	layout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "broadphase_layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage}},
			{Binding: 1, Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}},
			{Binding: 2, Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeStorage}},
			{Binding: 3, Visibility: wgpu.ShaderStageCompute,
				Buffer: wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform}},
		},
	})
	if err != nil {
		return fmt.Errorf("bind group layout: %w", err)
	}
	bp.layout = layout

	bp.pLayout, err = device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "broadphase_pipeline_layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return fmt.Errorf("pipeline layout: %w", err)
	}

	bp.shader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "broadphase_shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: broadphaseShader},
	})
	if err != nil {
		return fmt.Errorf("shader module: %w", err)
	}

	bp.pipeline, err = device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  "broadphase_pipeline",
		Layout: bp.pLayout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     bp.shader,
			EntryPoint: "main",
		},
	})
	if err != nil {
		return fmt.Errorf("compute pipeline: %w", err)
	}

	uniform, err := bp.dev.createBuffer("objectCount", 16,
		wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	bp.uniformBuf = uniform
	return nil
}

// ensureCapacity reallocates the storage buffers when the body or pair count
// outgrows them.
func (bp *Broadphase) ensureCapacity(objects, pairs uint32) error {
	if pairs < objects*4 {
		pairs = objects * 4
	}
	if objects > bp.maxObjects {
		bp.spheresBuf.Release()
		buf, err := bp.dev.createBuffer("spheres", uint64(objects)*16,
			wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		bp.spheresBuf, bp.maxObjects = buf, objects
	}
	if pairs > bp.maxPairs {
		bp.pairsBuf.Release()
		buf, err := bp.dev.createBuffer("pairs", uint64(pairs)*8,
			wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc)
		if err != nil {
			return err
		}
		bp.pairsBuf, bp.maxPairs = buf, pairs
	}
	if bp.countBuf == nil {
		buf, err := bp.dev.createBuffer("pairCount", 4,
			wgpu.BufferUsageStorage|wgpu.BufferUsageCopySrc|wgpu.BufferUsageCopyDst)
		if err != nil {
			return err
		}
		bp.countBuf = buf
	}
	return nil
}

func (bp *Broadphase) dispatch(objects uint32) error {
	device := bp.dev.device

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "broadphase_bindgroup",
		Layout: bp.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: bp.spheresBuf.buffer, Size: bp.spheresBuf.size},
			{Binding: 1, Buffer: bp.pairsBuf.buffer, Size: bp.pairsBuf.size},
			{Binding: 2, Buffer: bp.countBuf.buffer, Size: bp.countBuf.size},
			{Binding: 3, Buffer: bp.uniformBuf.buffer, Size: bp.uniformBuf.size},
		},
	})
	if err != nil {
		return fmt.Errorf("bind group: %w", err)
	}
	defer bindGroup.Release()

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(bp.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups((objects+workgroupSize-1)/workgroupSize, 1, 1)
	pass.End()
	pass.Release()

	commands, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer commands.Release()

	bp.dev.queue.Submit(commands)
	return nil
}

// Release frees the shader, pipeline and buffers. The device stays open.
func (bp *Broadphase) Release() {
	bp.spheresBuf.Release()
	bp.pairsBuf.Release()
	bp.countBuf.Release()
	bp.uniformBuf.Release()
	bp.spheresBuf, bp.pairsBuf, bp.countBuf, bp.uniformBuf = nil, nil, nil, nil
	bp.maxObjects, bp.maxPairs = 0, 0
	if bp.pipeline != nil {
		bp.pipeline.Release()
		bp.pipeline = nil
	}
	if bp.shader != nil {
		bp.shader.Release()
		bp.shader = nil
	}
	if bp.pLayout != nil {
		bp.pLayout.Release()
		bp.pLayout = nil
	}
	if bp.layout != nil {
		bp.layout.Release()
		bp.layout = nil
	}
}

// boundingSpheres encloses each body's AABB in a sphere around its center.
func boundingSpheres(bodies []*physics.Body, dst []Sphere) []Sphere {
	for _, b := range bodies {
		box := b.AABB()
		c := box.Center()
		half := rl.Vector3Scale(rl.Vector3Subtract(box.Max, box.Min), 0.5)
		dst = append(dst, Sphere{
			X:      c.X,
			Y:      c.Y,
			Z:      c.Z,
			Radius: rl.Vector3Length(half) + boundsSlack,
		})
	}
	return dst
}

// confirmPairs keeps sphere candidates whose AABBs really overlap and which
// involve at least one movable body.
func confirmPairs(bodies []*physics.Body, candidates []IndexPair, dst []physics.Pair) []physics.Pair {
	for _, c := range candidates {
		if int(c.A) >= len(bodies) || int(c.B) >= len(bodies) {
			continue
		}
		a, b := bodies[c.A], bodies[c.B]
		if physics.NeedsTest(a, b) && a.AABB().Intersects(b.AABB()) {
			dst = append(dst, physics.Pair{A: a, B: b})
		}
	}
	return dst
}
