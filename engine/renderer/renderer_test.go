package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/engine/fractal"
	"github.com/Carmen-Shannon/oxy-bulb/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestMergeBindGroupLayoutsOrsVisibility(t *testing.T) {
	vertex := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "camera", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
		}},
	}
	fragment := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Label: "camera", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageFragment},
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
		1: {Label: "params", Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageFragment},
		}},
	}

	merged := mergeBindGroupLayouts(vertex, fragment)

	if len(merged) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(merged))
	}
	g0 := merged[0].Entries
	if len(g0) != 2 || g0[0].Binding != 0 || g0[1].Binding != 1 {
		t.Fatalf("expected bindings 0 and 1 in order, got %+v", g0)
	}
	if want := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment; g0[0].Visibility != want {
		t.Errorf("expected shared binding visible to both stages, got %v", g0[0].Visibility)
	}
	if merged[1].Label != "params" {
		t.Errorf("fragment-only group should be kept as is, got %q", merged[1].Label)
	}
}

func TestUniformSlotsFromMandelbulbShader(t *testing.T) {
	fs, err := shader.NewShader("mandelbulb", shader.ShaderTypeFragment, fractal.MandelbulbFragmentSource)
	if err != nil {
		t.Fatalf("parse fragment shader: %v", err)
	}

	slots, err := uniformSlots(fs.Declarations())
	if err != nil {
		t.Fatalf("uniformSlots: %v", err)
	}
	if slots[0] != shader.AnnotationArgCamera || slots[1] != shader.AnnotationArgFractalParams {
		t.Errorf("expected camera at group 0 and params at group 1, got %v", slots)
	}
}

func TestUniformSlotsErrors(t *testing.T) {
	group := func(g, b int, typ shader.AnnotationArg) shader.Annotation {
		return shader.Annotation{
			Type:    shader.AnnotationTypeBindingGroup,
			Args:    []shader.AnnotationArg{"storage_uniform", "v", typ},
			Group:   &g,
			Binding: &b,
		}
	}

	tests := []struct {
		name  string
		decls []shader.Annotation
	}{
		{"missing params", []shader.Annotation{group(0, 0, shader.AnnotationArgCamera)}},
		{"non-zero binding", []shader.Annotation{
			group(0, 1, shader.AnnotationArgCamera),
			group(1, 0, shader.AnnotationArgFractalParams),
		}},
		{"shared group", []shader.Annotation{
			group(0, 0, shader.AnnotationArgCamera),
			group(0, 0, shader.AnnotationArgFractalParams),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uniformSlots(tt.decls); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
