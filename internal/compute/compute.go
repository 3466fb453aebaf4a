// Package compute runs physics helpers as WebGPU compute shaders.
// It is independent of raylib's OpenGL context and works headless when an
// adapter is available.
package compute

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// ErrUnavailable is returned when no GPU adapter or device can be acquired.
var ErrUnavailable = errors.New("compute: gpu unavailable")

// Device owns a WebGPU instance, adapter and queue.
type Device struct {
	mu       sync.Mutex
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	logger   *zap.Logger
	closed   bool
}

// AdapterInfo describes the selected GPU.
type AdapterInfo struct {
	Name       string
	Vendor     string
	Backend    string
	DeviceType string
	Driver     string
}

// Buffer wraps a GPU buffer.
type Buffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

// Open acquires a high-performance adapter and its device.
func Open(logger *zap.Logger) (*Device, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	instance := wgpu.CreateInstance(nil)

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		instance.Release()
		return nil, fmt.Errorf("%w: adapter: %v", ErrUnavailable, err)
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("%w: device: %v", ErrUnavailable, err)
	}

	d := &Device{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    device.GetQueue(),
		logger:   logger,
	}
	info := d.Info()
	logger.Info("gpu compute ready",
		zap.String("adapter", info.Name),
		zap.String("backend", info.Backend),
		zap.String("type", info.DeviceType))
	return d, nil
}

// Info reports the adapter behind the device.
func (d *Device) Info() AdapterInfo {
	ai := d.adapter.GetInfo()
	return AdapterInfo{
		Name:       ai.Name,
		Vendor:     ai.VendorName,
		Backend:    ai.BackendType.String(),
		DeviceType: ai.AdapterType.String(),
		Driver:     ai.DriverDescription,
	}
}

func (d *Device) createBuffer(label string, size uint64, usage wgpu.BufferUsage) (*Buffer, error) {
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create buffer %s: %w", label, err)
	}
	return &Buffer{buffer: buf, size: size}, nil
}

func (d *Device) write(buf *Buffer, data []byte) {
	d.queue.WriteBuffer(buf.buffer, 0, data)
}

// read copies buf back to the CPU through a staging buffer. buf must carry
// BufferUsageCopySrc.
func (d *Device) read(buf *Buffer, size uint64) ([]byte, error) {
	if size == 0 || size > buf.size {
		size = buf.size
	}
	staging, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "staging_read",
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer staging.Release()

	encoder, err := d.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	encoder.CopyBufferToBuffer(buf.buffer, 0, staging, 0, size)
	commands, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("finish encoder: %w", err)
	}
	d.queue.Submit(commands)
	commands.Release()

	done := make(chan error, 1)
	err = staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			done <- fmt.Errorf("map buffer: %v", status)
			return
		}
		done <- nil
	})
	if err != nil {
		return nil, err
	}

	d.device.Poll(true, nil)
	if err := <-done; err != nil {
		return nil, err
	}

	mapped := staging.GetMappedRange(0, uint(size))
	out := make([]byte, len(mapped))
	copy(out, mapped)
	staging.Unmap()
	return out, nil
}

// Close releases the device. Safe to call more than once.
func (d *Device) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.queue.Release()
	d.device.Release()
	d.adapter.Release()
	d.instance.Release()
}

// Release frees the buffer's GPU memory.
func (b *Buffer) Release() {
	if b != nil && b.buffer != nil {
		b.buffer.Release()
	}
}
