package renderer

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/shader"
)

// FractalPipelineKey is the pipeline cache key of the fullscreen Mandelbulb pass.
const FractalPipelineKey = "mandelbulb"

// fullscreenVertexCount is the vertex count of the fullscreen triangle.
const fullscreenVertexCount = 3

type fractalPassImpl struct {
	renderer Renderer

	camera     bind_group_provider.BindGroupProvider
	params     bind_group_provider.BindGroupProvider
	bindGroups []bind_group_provider.BindGroupProvider
}

// FractalPass draws the Mandelbulb with one fullscreen triangle. It owns the camera and
// fractal parameter uniforms, whose bind group slots come from the fragment shader's
// @oxy:group declarations.
type FractalPass interface {
	// WriteCamera uploads the camera uniform for the next frame.
	//
	// Parameters:
	//   - u: the camera uniform
	WriteCamera(u camera.GPUCameraUniform)

	// WriteParams uploads the fractal parameter uniform for the next frame.
	//
	// Parameters:
	//   - p: the fractal parameter uniform
	WriteParams(p fractal.GPUParams)

	// Draw renders and presents one frame.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired
	Draw() error

	// Resize reconfigures the surface.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)

	// Release releases the uniform buffers and bind groups. The renderer is not released.
	Release()
}

var _ FractalPass = &fractalPassImpl{}

// NewFractalPass builds the fullscreen vertex and Mandelbulb fragment shaders, registers the
// pipeline with r and creates the camera and parameter uniform bind groups.
//
// Parameters:
//   - r: the renderer to draw with
//
// Returns:
//   - FractalPass: the ready pass
//   - error: an error if a shader fails to parse or a GPU object cannot be created
func NewFractalPass(r Renderer) (FractalPass, error) {
	vs, err := shader.NewShader("fullscreen", shader.ShaderTypeVertex, fractal.FullscreenVertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader(FractalPipelineKey, shader.ShaderTypeFragment, fractal.MandelbulbFragmentSource)
	if err != nil {
		return nil, err
	}

	p := pipeline.NewPipeline(FractalPipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
	)
	if err := r.RegisterPipelines(p); err != nil {
		return nil, err
	}

	slots, err := uniformSlots(fs.Declarations())
	if err != nil {
		return nil, err
	}

	fp := &fractalPassImpl{
		renderer: r,
		camera:   bind_group_provider.NewBindGroupProvider("Camera"),
		params:   bind_group_provider.NewBindGroupProvider("Fractal Params"),
	}
	providers := map[shader.AnnotationArg]bind_group_provider.BindGroupProvider{
		shader.AnnotationArgCamera:        fp.camera,
		shader.AnnotationArgFractalParams: fp.params,
	}

	groups := make([]int, 0, len(slots))
	for g := range slots {
		groups = append(groups, g)
	}
	sort.Ints(groups)
	for i, g := range groups {
		if g != i {
			return nil, fmt.Errorf("fractal shader: bind groups must be contiguous from 0, found group %d at position %d", g, i)
		}
		provider := providers[slots[g]]
		if err := r.InitBindGroup(provider, fs.BindGroupLayoutDescriptor(g), nil); err != nil {
			return nil, fmt.Errorf("init %s bind group: %w", provider.Label(), err)
		}
		fp.bindGroups = append(fp.bindGroups, provider)
	}

	return fp, nil
}

func (fp *fractalPassImpl) WriteCamera(u camera.GPUCameraUniform) {
	fp.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		bind_group_provider.UniformWrite(fp.camera, u.Marshal()),
	})
}

func (fp *fractalPassImpl) WriteParams(p fractal.GPUParams) {
	fp.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		bind_group_provider.UniformWrite(fp.params, p.Marshal()),
	})
}

func (fp *fractalPassImpl) Draw() error {
	if err := fp.renderer.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	if err := fp.renderer.Draw(FractalPipelineKey, fullscreenVertexCount, fp.bindGroups); err != nil {
		fp.renderer.EndFrame()
		fp.renderer.Present()
		return err
	}
	fp.renderer.EndFrame()
	fp.renderer.Present()
	return nil
}

func (fp *fractalPassImpl) Resize(width, height int) {
	fp.renderer.Resize(width, height)
}

func (fp *fractalPassImpl) Release() {
	fp.camera.Release()
	fp.params.Release()
	fp.bindGroups = nil
}

// uniformSlots maps each bind group index to the struct bound there, using the shader's
// @oxy:group declarations. Only binding 0 of each group is supported.
//
// Parameters:
//   - decls: the shader's declarations
//
// Returns:
//   - map[int]shader.AnnotationArg: struct type keyed by group index
//   - error: an error if camera or fractal_params is missing or a group holds more than one binding
func uniformSlots(decls []shader.Annotation) (map[int]shader.AnnotationArg, error) {
	slots := make(map[int]shader.AnnotationArg)
	for _, d := range decls {
		if d.Type != shader.AnnotationTypeBindingGroup {
			continue
		}
		if *d.Binding != 0 {
			return nil, fmt.Errorf("line %d: only binding 0 is supported, got %d", d.Line, *d.Binding)
		}
		if prev, ok := slots[*d.Group]; ok {
			return nil, fmt.Errorf("line %d: group %d already holds %s", d.Line, *d.Group, prev)
		}
		slots[*d.Group] = d.Args[2]
	}
	for _, want := range []shader.AnnotationArg{shader.AnnotationArgCamera, shader.AnnotationArgFractalParams} {
		found := false
		for _, got := range slots {
			found = found || got == want
		}
		if !found {
			return nil, fmt.Errorf("fractal shader does not declare a %s uniform", want)
		}
	}
	return slots, nil
}
