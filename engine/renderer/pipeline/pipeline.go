package pipeline

import (
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
// It holds the underlying render pipeline and the state used to create it.
type pipeline struct {
	// pipelineKey is the unique identifier for this pipeline, used for caching and lookups
	pipelineKey string

	// both shaders must be set before the pipeline is registered with a renderer
	vertexShader, fragmentShader shader.Shader

	// nil until the renderer registers the pipeline
	renderPipeline *wgpu.RenderPipeline

	blendEnabled bool
	cullMode     wgpu.CullMode
	topology     wgpu.PrimitiveTopology
	frontFace    wgpu.FrontFace
	writeMask    wgpu.ColorWriteMask
	blendState   *wgpu.BlendState
}

// Pipeline defines the interface for a render pipeline built from a vertex and a fragment shader.
// It holds the configuration state required for pipeline creation (blend, cull, topology) and the
// GPU pipeline object once registered.
type Pipeline interface {
	// PipelineKey returns the unique identifier for the pipeline
	//
	// Returns:
	//   - string: the unique identifier for the pipeline
	PipelineKey() string

	// Shader returns the shader for the given stage
	//
	// Parameters:
	//   - shaderType: the stage of the shader to return
	//
	// Returns:
	//   - shader.Shader: the shader for the stage, or nil if not set
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the GPU pipeline object, or nil before registration.
	RenderPipeline() *wgpu.RenderPipeline

	// BlendEnabled returns whether the color target uses BlendState.
	BlendEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order considered front-facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask of the color target.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state applied when BlendEnabled is true.
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the GPU pipeline object created by the renderer
	//
	// Parameters:
	//   - p: the created render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release releases the GPU pipeline object, if any.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a new render pipeline description. Blending is off, culling is off and the
// topology is a triangle list, which is what a fullscreen pass needs.
//
// Parameters:
//   - pipelineKey: the unique identifier for the pipeline
//   - opts: functional options to configure the pipeline
//
// Returns:
//   - Pipeline: the configured pipeline, not yet registered with a renderer
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:  pipelineKey,
		blendEnabled: false,
		cullMode:     wgpu.CullModeNone,
		topology:     wgpu.PrimitiveTopologyTriangleList,
		frontFace:    wgpu.FrontFaceCCW,
		writeMask:    wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
