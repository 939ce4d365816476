package camera

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestNew(t *testing.T) {
	cam := New(1280, 720, -1, 1)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	// the world fits the 720 pixel side
	if !near(cam.Scale(), 360) {
		t.Errorf("expected 360 px per unit, got %f", cam.Scale())
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, -1, 1)

	sx, sy := cam.WorldToScreen(0, 0)
	if !near(float64(sx), 640) || !near(float64(sy), 360) {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}

	sx, _ = cam.WorldToScreen(0.5, 0)
	if !near(float64(sx), 820) {
		t.Errorf("expected x 820, got %f", sx)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, -1, 1)
	cam.Zoom = 2

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if !near(float64(sx), float64(tc.sx)) || !near(float64(sy), float64(tc.sy)) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(1280, 720, -1, 1)
	cam.X = -0.9

	// a point at the right edge is closer through the left edge
	sx, _ := cam.WorldToScreen(0.95, 0)
	if sx >= 640 {
		t.Errorf("expected point on left of screen, got x=%f", sx)
	}

	cam.Wrap = false
	sx, _ = cam.WorldToScreen(0.95, 0)
	if sx <= 640 {
		t.Errorf("expected point on right of screen without wrap, got x=%f", sx)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(1280, 720, -1, 1)
	cam.X = -0.9

	cam.Pan(-72, 0) // 0.2 world units
	if !near(cam.X, 0.9) {
		t.Errorf("expected X to wrap to 0.9, got %f", cam.X)
	}

	cam.Wrap = false
	cam.X = -0.9
	cam.Pan(-720, 0)
	if cam.X != -1 {
		t.Errorf("expected X clamped to -1, got %f", cam.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, -1, 1)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MinZoom, cam.Zoom)
	}

	cam.SetZoom(1000)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("expected zoom clamped to %f, got %f", cam.MaxZoom, cam.Zoom)
	}
}

func TestZoomAtKeepsPointFixed(t *testing.T) {
	cam := New(1280, 720, -1, 1)

	wx, wy := cam.ScreenToWorld(1000, 200)
	cam.ZoomAt(1000, 200, 2)
	sx, sy := cam.WorldToScreen(wx, wy)

	if !near(float64(sx), 1000) || !near(float64(sy), 200) {
		t.Errorf("point moved to (%f, %f)", sx, sy)
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, -1, 1)
	cam.Zoom = 4 // visible half-height 0.25 units

	if !cam.IsVisible(0, 0, 0.01) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(0, 0.6, 0.01) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(0, 0.3, 0.1) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestScreenLength(t *testing.T) {
	cam := New(800, 800, -1, 1)
	if got := cam.ScreenLength(0.5); !near(float64(got), 200) {
		t.Errorf("ScreenLength(0.5) = %f, want 200", got)
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, -1, 1)
	cam.X = 0.5
	cam.Y = 0.5
	cam.Zoom = 2.5

	cam.Reset()

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected position (0, 0), got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
