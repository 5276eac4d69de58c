package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-bulb/common"
)

func TestControllerConsumeResetsMouse(t *testing.T) {
	cc := NewCameraController(WithEnabled(true))
	cc.MouseMoved(3, -2)
	cc.MouseMoved(1, 1)

	in := cc.Consume()
	if in.MouseX != 4 || in.MouseY != -1 {
		t.Fatalf("mouse = (%v, %v), want (4, -1)", in.MouseX, in.MouseY)
	}
	in = cc.Consume()
	if in.MouseX != 0 || in.MouseY != 0 {
		t.Fatalf("mouse not reset: (%v, %v)", in.MouseX, in.MouseY)
	}
}

func TestControllerDisabledDropsMouse(t *testing.T) {
	cc := NewCameraController()
	if cc.Enabled() {
		t.Fatalf("controller should start disabled")
	}
	cc.MouseMoved(10, 10)
	if in := cc.Consume(); in.MouseX != 0 {
		t.Fatalf("mouse accumulated while disabled")
	}

	if !cc.Toggle() {
		t.Fatalf("toggle should enable")
	}
	cc.MouseMoved(5, 0)
	if cc.Toggle() {
		t.Fatalf("toggle should disable")
	}
	if in := cc.Consume(); in.MouseX != 0 {
		t.Fatalf("disable should clear the accumulator, got %v", in.MouseX)
	}
}

func TestControllerHeldKeys(t *testing.T) {
	cc := NewCameraController()
	cc.KeyDown(common.KeyW)
	cc.KeyDown(common.KeyLeftShift)
	cc.KeyDown(common.KeyC)

	in := cc.Consume()
	if !in.Forward || !in.Sprint || !in.Down || in.Back || in.Up {
		t.Fatalf("unexpected input %+v", in)
	}
	// held keys persist across frames
	if in = cc.Consume(); !in.Forward {
		t.Fatalf("forward released without KeyUp")
	}

	cc.KeyUp(common.KeyW)
	if cc.IsDown(common.KeyW) {
		t.Fatalf("W still held")
	}
	cc.Release()
	if in = cc.Consume(); in.Sprint || in.Down {
		t.Fatalf("Release left keys held: %+v", in)
	}
}

func TestControllerCustomBindings(t *testing.T) {
	b := DefaultKeyBindings
	b.Up = common.KeyR
	cc := NewCameraController(WithKeyBindings(b))
	cc.KeyDown(common.KeySpace)
	if cc.Consume().Up {
		t.Fatalf("space should no longer move up")
	}
	cc.KeyDown(common.KeyR)
	if !cc.Consume().Up {
		t.Fatalf("rebound key did not move up")
	}
}
