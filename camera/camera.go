// Package camera maps the square simulation world onto the screen with pan
// and zoom.
package camera

import "math"

// Camera controls the viewport into the simulation world.
// When Wrap is set the world is toroidal and panning wraps around.
type Camera struct {
	// Center of the view in world coordinates
	X, Y float64

	// Zoom level (1.0 = the whole world fits the shorter viewport side)
	Zoom float64

	// Viewport dimensions in pixels
	ViewportW, ViewportH float32

	// World bounds, the same on both axes
	WorldMin, WorldMax float64

	Wrap bool

	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world at zoom 1.
func New(viewportW, viewportH float32, worldMin, worldMax float64) *Camera {
	return &Camera{
		X:         (worldMin + worldMax) / 2,
		Y:         (worldMin + worldMax) / 2,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldMin:  worldMin,
		WorldMax:  worldMax,
		Wrap:      true,
		MinZoom:   0.5,
		MaxZoom:   32.0,
	}
}

// Scale returns screen pixels per world unit.
func (c *Camera) Scale() float64 {
	side := math.Min(float64(c.ViewportW), float64(c.ViewportH))
	return side / c.worldSize() * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
// In a wrapped world the shortest path to the view center is used.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float32) {
	dx, dy := c.delta(wx, wy)
	s := c.Scale()
	sx = c.ViewportW/2 + float32(dx*s)
	sy = c.ViewportH/2 + float32(dy*s)
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float64) {
	s := c.Scale()
	wx = c.X + float64(sx-c.ViewportW/2)/s
	wy = c.Y + float64(sy-c.ViewportH/2)/s
	if c.Wrap {
		wx, wy = c.wrap(wx), c.wrap(wy)
	}
	return wx, wy
}

// ScreenLength converts a world distance to pixels.
func (c *Camera) ScreenLength(worldLen float64) float32 {
	return float32(worldLen * c.Scale())
}

// IsVisible returns true if a circle at (wx, wy) with given world radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	dx, dy := c.delta(wx, wy)
	s := c.Scale()
	halfW := float64(c.ViewportW)/(2*s) + radius
	halfH := float64(c.ViewportH)/(2*s) + radius
	return math.Abs(dx) <= halfW && math.Abs(dy) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += float64(dx) / s
	c.Y += float64(dy) / s
	if c.Wrap {
		c.X, c.Y = c.wrap(c.X), c.wrap(c.Y)
		return
	}
	c.X = clamp(c.X, c.WorldMin, c.WorldMax)
	c.Y = clamp(c.Y, c.WorldMin, c.WorldMax)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor keeping the world point under (sx, sy) in place.
func (c *Camera) ZoomAt(sx, sy float32, factor float64) {
	before := c.Scale()
	c.ZoomBy(factor)
	after := c.Scale()
	offX := float64(sx - c.ViewportW/2)
	offY := float64(sy - c.ViewportH/2)
	c.X += offX/before - offX/after
	c.Y += offY/before - offY/after
	if c.Wrap {
		c.X, c.Y = c.wrap(c.X), c.wrap(c.Y)
	}
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = (c.WorldMin + c.WorldMax) / 2
	c.Y = c.X
	c.Zoom = 1.0
}

func (c *Camera) worldSize() float64 {
	return c.WorldMax - c.WorldMin
}

// delta returns the offset from the view center to (wx, wy).
func (c *Camera) delta(wx, wy float64) (dx, dy float64) {
	dx, dy = wx-c.X, wy-c.Y
	if c.Wrap {
		dx = toroidalDelta(dx, c.worldSize())
		dy = toroidalDelta(dy, c.worldSize())
	}
	return dx, dy
}

// wrap maps v into [WorldMin, WorldMax).
func (c *Camera) wrap(v float64) float64 {
	size := c.worldSize()
	r := math.Mod(v-c.WorldMin, size)
	if r < 0 {
		r += size
	}
	return r + c.WorldMin
}

// toroidalDelta folds d into [-size/2, size/2].
func toroidalDelta(d, size float64) float64 {
	if d > size/2 {
		d -= size
	} else if d < -size/2 {
		d += size
	}
	return d
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
