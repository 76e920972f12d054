package scene

import (
	"github.com/manicakes/progearsdk/internal/fixmath"
	"github.com/manicakes/progearsdk/internal/hw"
	"github.com/manicakes/progearsdk/internal/spring"
)

// Camera holds the world-space view origin. Tracking, shake, and
// bounds clamping run during Scene.Update, after actor logic, so the
// draw pass sees the settled position.
type Camera struct {
	X, Y fixmath.Fixed

	zoom       uint8
	zoomTarget uint8
	zoomEvery  uint8 // frames between easing steps
	zoomTick   uint8

	minX, minY fixmath.Fixed
	maxX, maxY fixmath.Fixed
	bounded    bool

	shakeX spring.Spring
	shakeY spring.Spring

	target   Handle
	deadW    fixmath.Fixed
	deadH    fixmath.Fixed
	tracking bool
}

func (c *Camera) init() {
	c.zoom = 16
	c.zoomTarget = 16
	c.shakeX = spring.NewTuned(0, spring.BouncyStiffness, spring.BouncyDamping)
	c.shakeY = spring.NewTuned(0, spring.BouncyStiffness, spring.BouncyDamping)
}

// SetPosition jumps the camera. Clamped to bounds if set.
func (c *Camera) SetPosition(x, y fixmath.Fixed) {
	c.X = x
	c.Y = y
	c.clamp()
}

// SetBounds restricts the view origin to a world rectangle.
func (c *Camera) SetBounds(minX, minY, maxX, maxY fixmath.Fixed) {
	c.minX, c.minY = minX, minY
	c.maxX, c.maxY = maxX, maxY
	c.bounded = true
	c.clamp()
}

// ClearBounds removes the restriction.
func (c *Camera) ClearBounds() { c.bounded = false }

// SetZoom sets the global sprite zoom, 1..16 where 16 is full size.
func (c *Camera) SetZoom(zoom uint8) {
	if zoom < 1 {
		zoom = 1
	}
	if zoom > 16 {
		zoom = 16
	}
	c.zoom = zoom
	c.zoomTarget = zoom
}

// ZoomToward eases toward a zoom level one step every stepFrames
// video frames instead of snapping.
func (c *Camera) ZoomToward(target, stepFrames uint8) {
	if target < 1 {
		target = 1
	}
	if target > 16 {
		target = 16
	}
	c.zoomTarget = target
	if stepFrames < 1 {
		stepFrames = 1
	}
	c.zoomEvery = stepFrames
	c.zoomTick = stepFrames
}

// Zoom returns the current zoom level.
func (c *Camera) Zoom() uint8 { return c.zoom }

// Shake kicks the view with a decaying wobble.
func (c *Camera) Shake(magnitude fixmath.Fixed) {
	c.shakeX.Impulse(magnitude)
	c.shakeY.Impulse(-magnitude / 2)
}

// Track follows an actor, keeping it inside a deadzone rectangle
// centered on screen. Zero deadzone centers the actor exactly.
func (c *Camera) Track(h Handle, deadW, deadH fixmath.Fixed) {
	c.target = h
	c.deadW = deadW
	c.deadH = deadH
	c.tracking = true
}

// StopTracking releases the followed actor.
func (c *Camera) StopTracking() { c.tracking = false }

func (c *Camera) update(s *Scene) {
	if c.zoom != c.zoomTarget {
		c.zoomTick--
		if c.zoomTick == 0 {
			c.zoomTick = c.zoomEvery
			if c.zoom < c.zoomTarget {
				c.zoom++
			} else {
				c.zoom--
			}
		}
	}
	if c.tracking {
		if a := s.Get(c.target); a != nil {
			c.follow(a)
		} else {
			c.tracking = false
		}
	}
	c.clamp()
	c.shakeX.Update()
	c.shakeY.Update()
}

func (c *Camera) follow(a *Actor) {
	centerX := c.X + fixmath.FIX(hw.ScreenWidth/2)
	centerY := c.Y + fixmath.FIX(hw.ScreenHeight/2)

	if dx := a.X - centerX; dx > c.deadW {
		c.X += dx - c.deadW
	} else if dx < -c.deadW {
		c.X += dx + c.deadW
	}
	if dy := a.Y - centerY; dy > c.deadH {
		c.Y += dy - c.deadH
	} else if dy < -c.deadH {
		c.Y += dy + c.deadH
	}
}

func (c *Camera) clamp() {
	if !c.bounded {
		return
	}
	c.X = fixmath.Clamp(c.X, c.minX, c.maxX)
	c.Y = fixmath.Clamp(c.Y, c.minY, c.maxY)
}

// screenOriginX returns the integer world X at the left screen edge,
// shake included.
func (c *Camera) screenOriginX() int {
	return (c.X + c.shakeX.Value).Int()
}

func (c *Camera) screenOriginY() int {
	return (c.Y + c.shakeY.Value).Int()
}

// WorldToScreen converts a world position to screen pixels.
func (c *Camera) WorldToScreen(x, y fixmath.Fixed) (int, int) {
	return x.Int() - c.screenOriginX(), y.Int() - c.screenOriginY()
}

// ScreenToWorld converts screen pixels to a world position.
func (c *Camera) ScreenToWorld(sx, sy int) (fixmath.Fixed, fixmath.Fixed) {
	return fixmath.FIX(sx + c.screenOriginX()), fixmath.FIX(sy + c.screenOriginY())
}
