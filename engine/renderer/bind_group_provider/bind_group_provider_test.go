package bind_group_provider

import "testing"

func TestNewBindGroupProviderKeepsLabel(t *testing.T) {
	p := NewBindGroupProvider("Camera")
	if p.Label() != "Camera" {
		t.Fatalf("label = %q, want Camera", p.Label())
	}
	if p.BindGroup() != nil || p.BindGroupLayout() != nil || len(p.Buffers()) != 0 {
		t.Fatalf("new provider should hold no GPU objects")
	}
	if p.Buffer(0) != nil {
		t.Fatalf("unexpected buffer at binding 0")
	}
	// nothing to release, must not panic
	p.Release()
}

func TestUniformWriteTargetsBindingZero(t *testing.T) {
	p := NewBindGroupProvider("Fractal Params")
	data := []byte{1, 2, 3, 4}

	w := UniformWrite(p, data)

	if w.Provider != p || w.Binding != 0 || w.Offset != 0 || len(w.Data) != 4 {
		t.Fatalf("unexpected write %+v", w)
	}
}
