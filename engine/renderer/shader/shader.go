package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader is written for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// shader is the implementation of the Shader interface.
// It holds all of the persistent shader data required for pipeline creation.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	bindingVarNames            map[int]map[int]string
	structSizes                map[string]wgslTypeLayout
	entryPoint                 string
	module                     *wgpu.ShaderModuleDescriptor

	pp PreProcessor
}

// Shader defines the interface for a pre-processed and parsed WGSL shader. It exposes the shader's
// unique key, source code, entry point, bind group layout descriptors and the annotation declarations
// needed for pipeline creation and resource wiring.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for caching and lookups.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the pre-processed WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// BindGroupLayoutDescriptor retrieves the bind group layout descriptor for a group index.
	//
	// Parameters:
	//   - group: the @group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, or an empty descriptor if the group is unused
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors retrieves all parsed bind group layout descriptors keyed by group index.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// BindGroupVarName retrieves the variable name declared at a group and binding.
	//
	// Parameters:
	//   - group: the bind group index
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - string: the variable name, or an empty string if not found
	BindGroupVarName(group, binding int) string

	// BindGroupFromVarName retrieves the binding index for a variable name within a group.
	//
	// Parameters:
	//   - group: the bind group index
	//   - varName: the variable name within the group
	//
	// Returns:
	//   - int: the binding index, or -1 if not found
	//   - bool: true if the variable name was found
	BindGroupFromVarName(group int, varName string) (int, bool)

	// StructSize returns the WGSL host-shareable size of a struct declared in the shader.
	//
	// Parameters:
	//   - name: the WGSL struct name
	//
	// Returns:
	//   - uint64: the size in bytes
	//   - bool: true if the struct was found and all of its fields could be resolved
	StructSize(name string) (uint64, bool)

	// EntryPoint returns the entry point name for this shader's stage.
	EntryPoint() string

	// Module returns the wgpu.ShaderModuleDescriptor built from the processed source.
	Module() *wgpu.ShaderModuleDescriptor

	// ShaderType returns the stage of the shader.
	ShaderType() ShaderType

	// Declarations returns the group and provider annotations parsed from the shader source.
	//
	// Returns:
	//   - []Annotation: the declarations in source order
	Declarations() []Annotation
}

var _ Shader = &shader{}

// NewShader pre-processes and parses WGSL source into a Shader. The source is usually one of the
// embedded assets (e.g. fractal.MandelbulbFragmentSource).
//
// Parameters:
//   - key: a unique identifier for the shader, used for caching and lookups
//   - shaderType: the stage the shader is written for
//   - source: the raw WGSL source, possibly containing @oxy: annotations
//
// Returns:
//   - Shader: the parsed shader
//   - error: an error if pre-processing fails or the source has no entry point for the stage
func NewShader(key string, shaderType ShaderType, source string) (Shader, error) {
	if source == "" {
		return nil, fmt.Errorf("shader %s: empty source", key)
	}
	s := &shader{
		key:        key,
		shaderType: shaderType,
		pp:         NewPreProcessor(),
	}
	if err := s.parseSource(source); err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.bindingVarNames[group] == nil {
		return ""
	}
	return s.bindingVarNames[group][binding]
}

func (s *shader) BindGroupFromVarName(group int, varName string) (int, bool) {
	if s.bindingVarNames[group] == nil {
		return -1, false
	}
	for binding, name := range s.bindingVarNames[group] {
		if name == varName {
			return binding, true
		}
	}
	return -1, false
}

func (s *shader) StructSize(name string) (uint64, bool) {
	layout, ok := s.structSizes[name]
	return layout.size, ok
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) Declarations() []Annotation {
	return s.pp.Declarations()
}

// parseSource runs the pre-processor, builds the shader module descriptor, and extracts the
// entry point, struct sizes and bind group layouts.
func (s *shader) parseSource(raw string) error {
	var err error
	s.source, err = s.pp.Process(raw)
	if err != nil {
		return fmt.Errorf("pre-process: %w", err)
	}
	s.module = &wgpu.ShaderModuleDescriptor{
		Label: s.key,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: s.source,
		},
	}
	s.entryPoint = parseEntryPoint(s.source, s.shaderType)
	if s.entryPoint == "" {
		return fmt.Errorf("no @%s entry point", s.shaderType)
	}

	var visibility wgpu.ShaderStage
	switch s.shaderType {
	case ShaderTypeVertex:
		visibility = wgpu.ShaderStageVertex
	case ShaderTypeFragment:
		visibility = wgpu.ShaderStageFragment
	default:
		visibility = wgpu.ShaderStageNone
	}
	s.structSizes = computeStructSizes(parseStructBlocks(stripComments(s.source)))
	s.bindGroupLayoutDescriptors, s.bindingVarNames = parseBindGroupLayouts(s.source, visibility)
	return nil
}
