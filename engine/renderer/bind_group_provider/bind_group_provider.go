package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the implementation of the BindGroupProvider interface.
type bindGroupProvider struct {
	label string

	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
}

// BindGroupProvider owns the GPU objects behind one bind group: the layout, the bind group itself
// and the buffers bound at each binding index. The renderer fills it in InitBindGroup and reads it
// back when encoding draws and buffer writes.
type BindGroupProvider interface {
	// Release releases every GPU object held by the provider.
	Release()

	// Label returns the debug label used for the GPU objects created for this provider.
	Label() string

	// BindGroup returns the bind group, or nil before InitBindGroup.
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the bind group layout, or nil before InitBindGroup.
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the buffer bound at a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer, or nil if not created
	Buffer(binding int) *wgpu.Buffer

	// Buffers returns every buffer keyed by binding index.
	Buffers() map[int]*wgpu.Buffer

	// SetBindGroup stores the bind group.
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the bind group layout.
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores the buffer for a binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates an empty provider. GPU objects are created later by the renderer.
//
// Parameters:
//   - label: the debug label for GPU objects created for this provider
//   - options: functional options to configure the provider
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *bindGroupProvider) Label() string {
	return p.label
}

func (p *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *bindGroupProvider) Buffers() map[int]*wgpu.Buffer {
	return p.buffers
}

func (p *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *bindGroupProvider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *bindGroupProvider) Release() {
	for i, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, i)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
}
