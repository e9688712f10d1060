package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformcore/motion"
	"golang.org/x/image/colornames"
)

// pixelsPerUnit is the zoom: one level tile is this many screen pixels.
const pixelsPerUnit = 32

// view maps y-up world units onto the y-down screen around a centre point.
type view struct {
	center        cp.Vector
	width, height float64
}

func (v view) toScreen(p cp.Vector) (float32, float32) {
	x := (p.X-v.center.X)*pixelsPerUnit + v.width/2
	y := v.height/2 - (p.Y-v.center.Y)*pixelsPerUnit
	return float32(x), float32(y)
}

func (v view) line(screen *ebiten.Image, a, b cp.Vector, width float32, clr color.Color) {
	ax, ay := v.toScreen(a)
	bx, by := v.toScreen(b)
	vector.StrokeLine(screen, ax, ay, bx, by, width, clr, true)
}

func (v view) strokeBB(screen *ebiten.Image, bb cp.BB, width float32, clr color.Color) {
	x, y := v.toScreen(cp.Vector{X: bb.L, Y: bb.T})
	w := float32((bb.R - bb.L) * pixelsPerUnit)
	h := float32((bb.T - bb.B) * pixelsPerUnit)
	vector.StrokeRect(screen, x, y, w, h, width, clr, false)
}

func (v view) fillBB(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y := v.toScreen(cp.Vector{X: bb.L, Y: bb.T})
	w := float32((bb.R - bb.L) * pixelsPerUnit)
	h := float32((bb.T - bb.B) * pixelsPerUnit)
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)
}

// drawActor outlines the actor's box in clr. With debug on it also shows
// the probe rays, lit on faces in contact, and where the box is headed.
func drawActor(screen *ebiten.Image, v view, insp motion.Inspection, clr color.Color, debug bool) {
	v.strokeBB(screen, insp.Bounds.BB(), 2, clr)
	if !debug {
		return
	}

	v.strokeBB(screen, insp.Future.BB(), 1, colornames.Gray)

	fans := []struct {
		r   motion.RayRange
		hit bool
	}{
		{insp.Rays.Up, insp.Contacts.Up},
		{insp.Rays.Right, insp.Contacts.Right},
		{insp.Rays.Down, insp.Contacts.Down},
		{insp.Rays.Left, insp.Contacts.Left},
	}
	for _, f := range fans {
		rayColor := color.Color(colornames.Dimgray)
		if f.hit {
			rayColor = colornames.Lime
		}
		for i := 0; i < insp.RayCount; i++ {
			origin := f.r.Point(i, insp.RayCount)
			v.line(screen, origin, origin.Add(f.r.Dir.Mult(insp.RayLength)), 1, rayColor)
		}
	}

	centre := insp.Bounds.Center
	v.line(screen, centre, centre.Add(insp.Displacement.Mult(10)), 1, colornames.Gold)
}

// chipmunkDrawer renders the collision space through a view.
type chipmunkDrawer struct {
	screen *ebiten.Image
	view   view
}

func drawSpace(screen *ebiten.Image, v view, space *cp.Space) {
	if screen == nil || space == nil {
		return
	}
	cp.DrawSpace(space, &chipmunkDrawer{screen: screen, view: v})
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	steps := 20
	prev := cp.Vector{X: pos.X + radius, Y: pos.Y}
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		cur := cp.Vector{X: pos.X + math.Cos(th)*radius, Y: pos.Y + math.Sin(th)*radius}
		d.view.line(d.screen, prev, cur, 1, c)
		prev = cur
	}
	// angle indicator
	d.view.line(d.screen, pos, cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}, 1, c)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.view.line(d.screen, a, b, 1, fcolorToRGBA(fill))
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.view.line(d.screen, a, b, 1, fcolorToRGBA(outline))
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		d.view.line(d.screen, verts[i], verts[(i+1)%count], 1, c)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(fill)
	l := size / 2 / pixelsPerUnit
	d.view.line(d.screen, cp.Vector{X: pos.X - l, Y: pos.Y}, cp.Vector{X: pos.X + l, Y: pos.Y}, 1, c)
	d.view.line(d.screen, cp.Vector{X: pos.X, Y: pos.Y - l}, cp.Vector{X: pos.X, Y: pos.Y + l}, 1, c)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
