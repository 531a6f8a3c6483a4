package geom

import "math"

// Orientation returns twice the signed area of triangle (a,b,c). Positive
// means counter-clockwise, negative clockwise, zero collinear.
func Orientation(a, b, c Vec2) float64 {
	return a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y)
}

// CircumCenter returns the centre of the circle through a, b and c, and
// false if the three points are collinear within Tolerance (the caller
// should treat the returned value as meaningless in that case).
func CircumCenter(a, b, c Vec2) (Vec2, bool) {
	det := 2 * Orientation(a, b, c)
	if math.Abs(det) < Tolerance {
		return Infinity(), false
	}

	aa := a.X*a.X + a.Y*a.Y
	bb := b.X*b.X + b.Y*b.Y
	cc := c.X*c.X + c.Y*c.Y

	ux := (aa*(b.Y-c.Y) + bb*(c.Y-a.Y) + cc*(a.Y-b.Y)) / det
	uy := (aa*(c.X-b.X) + bb*(a.X-c.X) + cc*(b.X-a.X)) / det

	return Vec2{ux, uy}, true
}

// ParabolaY evaluates the parabola focused at focus with the given
// directrix at x. focus.Y must not equal directrix.
func ParabolaY(x float64, focus Vec2, directrix float64) float64 {
	return (x*x - 2*focus.X*x + focus.X*focus.X + focus.Y*focus.Y - directrix*directrix) /
		(2 * (focus.Y - directrix))
}

// ParabolaGradient is d/dx of the focus/directrix parabola at x, or +Inf
// if the tangent there is vertical.
func ParabolaGradient(x float64, focus Vec2, directrix float64) float64 {
	dy := x - focus.X
	dx := focus.Y - directrix
	if dx == 0 {
		return math.Inf(1)
	}
	return dy / dx
}

// BreakpointX is the x-coordinate where the focus-directrix parabolas of
// left and right (sharing directrix) intersect. The boolean return is
// false when the two parabolas do not have a well-separated intersection
// (discriminant below Tolerance) — the caller should then fall back to
// the midpoint of the two foci's x-coordinates.
func BreakpointX(left, right Vec2, directrix float64) (float64, bool) {
	a, b := left.X, left.Y
	u, v := right.X, right.Y
	d := directrix

	if SoftEquals(b, v) {
		return (a + u) * 0.5, true
	}
	if SoftEquals(v, d) {
		return u, true
	}
	if SoftEquals(b, d) {
		return a, true
	}

	discriminant := (d - b) * (d - v) * ((a-u)*(a-u) + (b-v)*(b-v))
	if discriminant < Tolerance {
		return 0, false
	}
	return (a*d - a*v + b*u - d*u - math.Sqrt(discriminant)) / (b - v), true
}

// PerpendicularBisectorSlope is the slope of the perpendicular bisector of
// the segment left-right, or +Inf if that bisector is vertical.
func PerpendicularBisectorSlope(left, right Vec2) float64 {
	dy := right.X - left.X
	dx := left.Y - right.Y
	if dx == 0 {
		return math.Inf(1)
	}
	return dy / dx
}

// RayBoxIntersection returns the nearest forward (t >= 0) intersection of
// the ray from origin at angle with the axis-aligned rectangle
// [bottomLeft, topRight]. origin must lie inside or on the rectangle; the
// result is undefined if no forward intersection exists.
func RayBoxIntersection(origin Vec2, angle float64, bottomLeft, topRight Vec2) Vec2 {
	cosT := math.Cos(angle)
	sinT := math.Sin(angle)

	var candidates []Vec2

	if cosT != 0 {
		t1 := (bottomLeft.X - origin.X) / cosT
		y1 := origin.Y + t1*sinT
		if t1 >= 0 && y1 >= bottomLeft.Y && y1 <= topRight.Y {
			candidates = append(candidates, Vec2{bottomLeft.X, y1})
		}
		t2 := (topRight.X - origin.X) / cosT
		y2 := origin.Y + t2*sinT
		if t2 >= 0 && y2 >= bottomLeft.Y && y2 <= topRight.Y {
			candidates = append(candidates, Vec2{topRight.X, y2})
		}
	}

	if sinT != 0 {
		t3 := (bottomLeft.Y - origin.Y) / sinT
		x3 := origin.X + t3*cosT
		if t3 >= 0 && x3 >= bottomLeft.X && x3 <= topRight.X {
			candidates = append(candidates, Vec2{x3, bottomLeft.Y})
		}
		t4 := (topRight.Y - origin.Y) / sinT
		x4 := origin.X + t4*cosT
		if t4 >= 0 && x4 >= bottomLeft.X && x4 <= topRight.X {
			candidates = append(candidates, Vec2{x4, topRight.Y})
		}
	}

	closest := candidates[0]
	minDist := closest.DistanceTo(origin)
	for _, c := range candidates[1:] {
		if d := c.DistanceTo(origin); d < minDist {
			closest = c
			minDist = d
		}
	}
	return closest
}
