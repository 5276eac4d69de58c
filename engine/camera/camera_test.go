package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	eps            = 1e-4
	basisTolerance = 1e-5
)

func vecNear(a, b mgl32.Vec3) bool {
	return a.ApproxEqualThreshold(b, eps)
}

func TestDefaultPoseLooksAtOrigin(t *testing.T) {
	c := NewCamera()
	if got := c.Position(); !vecNear(got, mgl32.Vec3{0, -3, 0}) {
		t.Fatalf("position = %v", got)
	}
	if got := c.Forward(); !vecNear(got, mgl32.Vec3{0, 1, 0}) {
		t.Fatalf("forward = %v, want (0,1,0)", got)
	}
	if got := c.Right(); !vecNear(got, mgl32.Vec3{-1, 0, 0}) {
		t.Fatalf("right = %v, want (-1,0,0)", got)
	}
	if got := c.Up(); !vecNear(got, mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("up = %v, want (0,0,-1)", got)
	}
}

func TestBasisStaysOrthonormal(t *testing.T) {
	c := NewCamera()
	for _, rot := range [][2]float32{{-90, 180}, {-10, 33}, {-170, -400}, {0, 0}, {-179, 720}, {-45, 90.5}} {
		c.SetRotation(rot[0], rot[1])
		r, u, f := c.Right(), c.Up(), c.Forward()
		for name, v := range map[string]mgl32.Vec3{"right": r, "up": u, "forward": f} {
			if !mgl32.FloatEqualThreshold(v.Len(), 1, basisTolerance) {
				t.Fatalf("rot %v: |%s| = %v", rot, name, v.Len())
			}
		}
		if math.Abs(float64(r.Dot(u))) > basisTolerance || math.Abs(float64(r.Dot(f))) > basisTolerance || math.Abs(float64(u.Dot(f))) > basisTolerance {
			t.Fatalf("rot %v: basis not orthogonal r=%v u=%v f=%v", rot, r, u, f)
		}
	}
}

func TestPitchIsClamped(t *testing.T) {
	c := NewCamera()
	c.Update(0, Input{MouseY: -10000})
	if p, _ := c.Rotation(); p != MaxPitch {
		t.Fatalf("pitch = %v, want %v", p, MaxPitch)
	}
	c.Update(0, Input{MouseY: 10000})
	if p, _ := c.Rotation(); p != MinPitch {
		t.Fatalf("pitch = %v, want %v", p, MinPitch)
	}
	c.SetRotation(20, 0)
	if p, _ := c.Rotation(); p != MaxPitch {
		t.Fatalf("SetRotation pitch = %v, want %v", p, MaxPitch)
	}
}

func TestMovementScalesWithScaleAndSprint(t *testing.T) {
	c := NewCamera()
	c.Update(0.5, Input{Forward: true})
	if got := c.Position(); !vecNear(got, mgl32.Vec3{0, -2, 0}) {
		t.Fatalf("after forward: %v, want (0,-2,0)", got)
	}

	c.Reset()
	c.SetScale(2)
	c.Update(1, Input{Forward: true})
	if got := c.Position(); !vecNear(got, mgl32.Vec3{0, -2, 0}) {
		t.Fatalf("scaled forward: %v, want (0,-2,0)", got)
	}

	c.Reset()
	c.Update(0.1, Input{Forward: true, Sprint: true})
	if got := c.Position(); !vecNear(got, mgl32.Vec3{0, -2.4, 0}) {
		t.Fatalf("sprint forward: %v, want (0,-2.4,0)", got)
	}
}

func TestPositionClampedToSphere(t *testing.T) {
	c := NewCamera()
	c.Update(1, Input{Back: true})
	if got := c.Position(); !vecNear(got, mgl32.Vec3{0, -3, 0}) {
		t.Fatalf("position = %v, want clamped to (0,-3,0)", got)
	}

	free := NewCamera(WithMaxDistance(0))
	free.Update(1, Input{Back: true})
	if got := free.Position(); !vecNear(got, mgl32.Vec3{0, -5, 0}) {
		t.Fatalf("unclamped position = %v, want (0,-5,0)", got)
	}
}

func TestSetRotationMatchesMouseLook(t *testing.T) {
	a := NewCamera()
	a.SetRotation(-60, 200)

	b := NewCamera()
	b.Update(0, Input{MouseX: 20 / DefaultSensitivity, MouseY: -30 / DefaultSensitivity})

	if !vecNear(a.Forward(), b.Forward()) || !vecNear(a.Right(), b.Right()) {
		t.Fatalf("forward %v vs %v, right %v vs %v", a.Forward(), b.Forward(), a.Right(), b.Right())
	}
}

func TestSetPositionRebuildsView(t *testing.T) {
	c := NewCamera()
	c.SetPosition(1, 2, 0.5)
	v := c.ViewMatrix()
	eye := v.Mul4x1(mgl32.Vec4{1, 2, 0.5, 1})
	if !vecNear(eye.Vec3(), mgl32.Vec3{}) {
		t.Fatalf("eye in view space = %v, want origin", eye)
	}
}

func TestSetScaleIgnoresInvalid(t *testing.T) {
	c := NewCamera()
	c.SetScale(4)
	c.SetScale(0)
	c.SetScale(-1)
	c.SetScale(float32(math.NaN()))
	if got := c.Scale(); got != 4 {
		t.Fatalf("scale = %v, want 4", got)
	}
	c.Reset()
	if got := c.Scale(); got != 1 {
		t.Fatalf("scale after reset = %v, want 1", got)
	}
}

func TestResizedUpdatesAspect(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))
	if got := c.Aspect(); !mgl32.FloatEqualThreshold(got, 800.0/600.0, eps) {
		t.Fatalf("aspect = %v", got)
	}
	c.Resized(1920, 1080)
	if got := c.Aspect(); !mgl32.FloatEqualThreshold(got, 1920.0/1080.0, eps) {
		t.Fatalf("aspect = %v", got)
	}
	c.Resized(0, 100)
	if got := c.Aspect(); !mgl32.FloatEqualThreshold(got, 1920.0/1080.0, eps) {
		t.Fatalf("aspect changed on zero width: %v", got)
	}
}

func TestUniformMarshalLayout(t *testing.T) {
	c := NewCamera(WithViewport(200, 100))
	u := c.Uniform()
	if u.Size() != 64 {
		t.Fatalf("size = %d, want 64", u.Size())
	}
	buf := u.Marshal()
	if len(buf) != 64 {
		t.Fatalf("marshal len = %d", len(buf))
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:])); got != -3 {
		t.Fatalf("eye.y = %v, want -3", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[12:])); got != 2 {
		t.Fatalf("aspect = %v, want 2", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[52:])); !mgl32.FloatEqualThreshold(got, 1, eps) {
		t.Fatalf("forward.y = %v, want 1", got)
	}
}
