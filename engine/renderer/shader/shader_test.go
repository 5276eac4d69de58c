package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/engine/camera"
	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestMandelbulbFragmentLayouts(t *testing.T) {
	s, err := NewShader("mandelbulb", ShaderTypeFragment, fractal.MandelbulbFragmentSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.EntryPoint() != "fs_main" {
		t.Fatalf("entry point = %q", s.EntryPoint())
	}

	cameraSize := uint64((&camera.GPUCameraUniform{}).Size())
	paramsSize := uint64((&fractal.GPUParams{}).Size())

	tests := []struct {
		group   int
		varName string
		size    uint64
	}{
		{0, "camera", cameraSize},
		{1, "params", paramsSize},
	}
	for _, tt := range tests {
		desc := s.BindGroupLayoutDescriptor(tt.group)
		if len(desc.Entries) != 1 {
			t.Fatalf("group %d: %d entries, want 1", tt.group, len(desc.Entries))
		}
		e := desc.Entries[0]
		if e.Buffer.Type != wgpu.BufferBindingTypeUniform {
			t.Errorf("group %d: buffer type %v, want uniform", tt.group, e.Buffer.Type)
		}
		if e.Buffer.MinBindingSize != tt.size {
			t.Errorf("group %d: MinBindingSize %d, want %d", tt.group, e.Buffer.MinBindingSize, tt.size)
		}
		if e.Visibility != wgpu.ShaderStageFragment {
			t.Errorf("group %d: visibility %v", tt.group, e.Visibility)
		}
		if got := s.BindGroupVarName(tt.group, 0); got != tt.varName {
			t.Errorf("group %d: var name %q, want %q", tt.group, got, tt.varName)
		}
	}

	if size, ok := s.StructSize("CameraUniform"); !ok || size != cameraSize {
		t.Errorf("CameraUniform size = %d (%v), want %d", size, ok, cameraSize)
	}
	if size, ok := s.StructSize("FractalParams"); !ok || size != paramsSize {
		t.Errorf("FractalParams size = %d (%v), want %d", size, ok, paramsSize)
	}
	if b, ok := s.BindGroupFromVarName(1, "params"); !ok || b != 0 {
		t.Errorf("BindGroupFromVarName(1, params) = %d, %v", b, ok)
	}
	if _, ok := s.BindGroupFromVarName(1, "camera"); ok {
		t.Errorf("camera should not be found in group 1")
	}
}

func TestFullscreenVertexHasNoBindings(t *testing.T) {
	s, err := NewShader("fullscreen", ShaderTypeVertex, fractal.FullscreenVertexSource)
	if err != nil {
		t.Fatalf("NewShader: %v", err)
	}
	if s.EntryPoint() != "vs_main" {
		t.Fatalf("entry point = %q", s.EntryPoint())
	}
	if n := len(s.BindGroupLayoutDescriptors()); n != 0 {
		t.Fatalf("%d bind groups, want 0", n)
	}
	if size, ok := s.StructSize("VertexOutput"); !ok || size != 8 {
		t.Fatalf("VertexOutput size = %d (%v), want 8 (builtins skipped)", size, ok)
	}
}

func TestNewShaderErrors(t *testing.T) {
	if _, err := NewShader("empty", ShaderTypeVertex, ""); err == nil {
		t.Errorf("expected error for empty source")
	}
	if _, err := NewShader("wrong-stage", ShaderTypeVertex, fractal.MandelbulbFragmentSource); err == nil {
		t.Errorf("expected error for missing vertex entry point")
	}
	if _, err := NewShader("bad-include", ShaderTypeFragment, "//@oxy:include light\n@fragment fn main() {}"); err == nil {
		t.Errorf("expected error for unknown include")
	}
}

func TestStructLayoutRules(t *testing.T) {
	src := `
struct Inner {
    a: vec3<f32>,
}
struct Outer {
    x: f32,
    inner: Inner,
    list: array<vec2<f32>, 3>,
    m: mat4x4<f32>,
}
/* struct Hidden { a: f32, } */
`
	sizes := computeStructSizes(parseStructBlocks(stripComments(src)))
	if got := sizes["Inner"].size; got != 16 {
		t.Errorf("Inner size = %d, want 16", got)
	}
	// x @0, inner @16 (align 16), list @32 (3*8), m @64 (align 16) -> 128
	if got := sizes["Outer"].size; got != 128 {
		t.Errorf("Outer size = %d, want 128", got)
	}
	if _, ok := sizes["Hidden"]; ok {
		t.Errorf("struct inside a block comment was parsed")
	}
}

func TestParseBindGroupLayoutsStorage(t *testing.T) {
	src := `
struct Item { v: vec4<f32>, }
@group(2) @binding(1) var<storage, read> items: array<Item>;
@group(2) @binding(0) var<uniform> scale: f32;
@group(3) @binding(0) var tex: texture_2d<f32>;
`
	layouts, names := parseBindGroupLayouts(src, wgpu.ShaderStageVertex)
	entries := layouts[2].Entries
	if len(entries) != 2 || entries[0].Binding != 0 || entries[1].Binding != 1 {
		t.Fatalf("entries not sorted by binding: %+v", entries)
	}
	if entries[1].Buffer.Type != wgpu.BufferBindingTypeReadOnlyStorage || entries[1].Buffer.MinBindingSize != 16 {
		t.Errorf("storage entry = %+v", entries[1].Buffer)
	}
	if entries[0].Buffer.MinBindingSize != 4 {
		t.Errorf("uniform f32 MinBindingSize = %d", entries[0].Buffer.MinBindingSize)
	}
	if _, ok := layouts[3]; ok {
		t.Errorf("texture binding should be skipped")
	}
	if names[2][1] != "items" {
		t.Errorf("var name = %q", names[2][1])
	}
}

func TestPreProcessorExpandsAnnotations(t *testing.T) {
	src := strings.Join([]string{
		"//@oxy:include camera",
		"//@oxy:include camera",
		"//@oxy:group 0 0 storage_uniform cam camera",
		"//@oxy:provider 1 0 fractal_params",
		"@group(1) @binding(0) var<uniform> raw: vec4<f32>;",
	}, "\n")

	pp := NewPreProcessor()
	out, err := pp.Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if n := strings.Count(out, "struct CameraUniform"); n != 1 {
		t.Errorf("CameraUniform declared %d times, want 1", n)
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> cam: CameraUniform;") {
		t.Errorf("group declaration missing:\n%s", out)
	}
	if strings.Contains(out, "@oxy:") {
		t.Errorf("annotation left in output:\n%s", out)
	}

	decls := pp.Declarations()
	if len(decls) != 2 {
		t.Fatalf("%d declarations, want 2", len(decls))
	}
	if decls[0].Type != AnnotationTypeBindingGroup || decls[0].Args[2] != AnnotationArgCamera {
		t.Errorf("first declaration = %+v", decls[0])
	}
	if decls[1].Type != AnnotationTypeProvider || *decls[1].Group != 1 || decls[1].Args[0] != AnnotationArgFractalParams {
		t.Errorf("second declaration = %+v", decls[1])
	}

	// declarations reset between calls
	if _, err := pp.Process("fn f() {}"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(pp.Declarations()) != 0 {
		t.Errorf("declarations not reset")
	}
}

func TestParseAnnotationErrors(t *testing.T) {
	tests := []string{
		"//@oxy:",
		"//@oxy:include",
		"//@oxy:include model",
		"//@oxy:group 0 0 storage_uniform camera",
		"//@oxy:group x 0 storage_uniform cam camera",
		"//@oxy:group 0 -1 storage_uniform cam camera",
		"//@oxy:group 0 0 storage_write cam camera",
		"//@oxy:provider 0 0 material",
		"//@oxy:shadow 0 0",
	}
	for _, line := range tests {
		if _, err := parseAnnotation(line, 1); err == nil {
			t.Errorf("%q: expected error", line)
		}
	}
	if a, err := parseAnnotation("// plain comment", 1); a != nil || err != nil {
		t.Errorf("plain comment parsed as %v, %v", a, err)
	}
}
