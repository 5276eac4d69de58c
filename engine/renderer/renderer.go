package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-bulb/common"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceTarget is the window side of the renderer: something that can describe a platform
// surface and report its size in pixels. window.Window satisfies it.
type SurfaceTarget interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
	pendingClearColor    *common.Color
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API over the GPU backend: it caches pipelines by key, creates uniform bind
// groups from parsed shader layouts, and encodes one render pass per frame
// (BeginFrame, Draw, EndFrame, Present).
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// Pipelines retrieves a copy of the pipeline cache.
	//
	// Returns:
	//   - map[string]pipeline.Pipeline: a map of pipeline keys to their corresponding Pipeline objects
	Pipelines() map[string]pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipeline for each pipeline via the backend and caches
	// it by PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface for a new size. Call it when the window is resized.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode. Takes effect on the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//   - bufferSizeOverrides: custom buffer sizes to use instead of MinBindingSize, keyed by binding index (nil safe)
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error

	// WriteBuffers queues buffer writes for the next submission.
	//
	// Parameters:
	//   - writes: the buffer writes
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and begins the frame's render pass.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	BeginFrame() error

	// Draw encodes a draw of vertexCount generated vertices with the cached pipeline.
	//
	// Parameters:
	//   - pipelineKey: the key of a registered pipeline
	//   - vertexCount: the number of vertices to draw
	//   - bindGroups: providers bound to groups 0..n-1 in order
	//
	// Returns:
	//   - error: an error if the pipeline is not registered
	Draw(pipelineKey string, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the frame's commands.
	EndFrame()

	// Present displays the frame.
	Present()

	// Release releases every cached pipeline and the GPU backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer for the given surface and configures the surface at its current size.
// GPU initialization failures panic.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - target: the window to render into
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, target SurfaceTarget, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
	}

	for _, opt := range options {
		opt(r)
	}

	msaa := MSAAOff
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(target.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if r.pendingClearColor != nil {
		r.backend.SetClearColor(*r.pendingClearColor)
	}

	r.backend.ConfigureSurface(target.Width(), target.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) Pipelines() map[string]pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]pipeline.Pipeline, len(r.pipelineCache))
	for k, p := range r.pipelineCache {
		out[k] = p
	}
	return out
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferSizeOverrides)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) Draw(pipelineKey string, vertexCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	r.backend.Draw(p, vertexCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Release() {
	r.mu.Lock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.mu.Unlock()

	r.backend.Release()
}
