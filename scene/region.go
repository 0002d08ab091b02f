package scene

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Polygon is a closed region authored in world space. Regions may be
// concave; containment uses the even-odd rule.
type Polygon struct {
	verts []cp.Vector
}

func NewPolygon(verts []cp.Vector) (Polygon, error) {
	if len(verts) < 3 {
		return Polygon{}, fmt.Errorf("scene: polygon needs at least 3 points, got %d", len(verts))
	}
	return Polygon{verts: verts}, nil
}

// Contains reports whether the point lies inside the polygon, using an
// even-odd ray cast along +X.
func (p Polygon) Contains(pt cp.Vector) bool {
	inside := false
	n := len(p.verts)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := p.verts[i]
		b := p.verts[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ClosestBoundaryPoint returns the point on the polygon's outline nearest
// to pt.
func (p Polygon) ClosestBoundaryPoint(pt cp.Vector) cp.Vector {
	best := p.verts[0]
	bestDist := pt.DistanceSq(best)
	n := len(p.verts)
	for i := 0; i < n; i++ {
		candidate := closestPointOnSegment(pt, p.verts[i], p.verts[(i+1)%n])
		if d := pt.DistanceSq(candidate); d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}

func closestPointOnSegment(pt, a, b cp.Vector) cp.Vector {
	seg := b.Sub(a)
	lenSq := seg.LengthSq()
	if lenSq == 0 {
		return a
	}
	t := pt.Sub(a).Dot(seg) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(seg.Mult(t))
}
