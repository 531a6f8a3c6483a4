package dcel

import (
	"math"

	"github.com/tanh-x/voronoi-viz/internal/geom"
)

// BoundingBoxPadding is the fraction of the major axis added as symmetric
// padding around the site/vertex bounding square. The value is cosmetic
// (any value in roughly 0.1-0.5 reads fine) but fixed so dumps are
// deterministic.
const BoundingBoxPadding = 0.362160297

// BuildDual walks the consolidated Voronoi DCEL d and produces its
// straight-line dual, the Delaunay triangulation: one vertex per site,
// one face per interior Voronoi vertex (plus a single unbounded face),
// and one directed edge pair per interior Voronoi edge. The result is
// itself consolidated before being returned.
func BuildDual(d *DCEL, sites []*Site) *DCEL {
	dual := New()

	bottomLeft := geom.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	topRight := geom.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}

	siteVertices := make(map[int]*Vertex, len(sites))
	for _, s := range sites {
		v := dual.NewVertex(s.ID, s.Pos)
		siteVertices[s.ID] = v

		bottomLeft.X = minf(bottomLeft.X, s.X())
		bottomLeft.Y = minf(bottomLeft.Y, s.Y())
		topRight.X = maxf(topRight.X, s.X())
		topRight.Y = maxf(topRight.Y, s.Y())
	}

	width := topRight.X - bottomLeft.X
	height := topRight.Y - bottomLeft.Y
	majorAxis := maxf(width, height)

	centroid := geom.Vec2{X: (topRight.X + bottomLeft.X) * 0.5, Y: (topRight.Y + bottomLeft.Y) * 0.5}
	topRight = centroid.Add(geom.Vec2{X: majorAxis, Y: majorAxis}.Scale(0.5))
	bottomLeft = centroid.Sub(geom.Vec2{X: majorAxis, Y: majorAxis}.Scale(0.5))

	dual.TopRight = topRight
	dual.BottomLeft = bottomLeft
	dual.MajorAxis = majorAxis * (1 + 2*BoundingBoxPadding) * 0.5
	dual.Centroid = centroid

	triangleFace := make(map[*Vertex]*Face, len(d.Vertices))
	for _, v := range d.Vertices {
		if v.IsBoundary {
			continue
		}
		triangleFace[v] = dual.NewTriangleFace(dual.NumFaces() + 1)
	}
	unbounded := dual.NewUnboundedFace()

	for _, edge := range d.Forward {
		leftOuter := unbounded
		if !edge.Dest.IsBoundary {
			f, ok := triangleFace[edge.Dest]
			if !ok {
				continue
			}
			leftOuter = f
		}
		rightOuter := unbounded
		if !edge.Origin.IsBoundary {
			f, ok := triangleFace[edge.Origin]
			if !ok {
				continue
			}
			rightOuter = f
		}

		leftFace := edge.IncidentFace
		rightFace := edge.Twin.IncidentFace
		if leftFace == nil || rightFace == nil || leftFace == rightFace {
			continue
		}

		a, aok := siteVertices[leftFace.Label]
		b, bok := siteVertices[rightFace.Label]
		if !aok || !bok {
			continue
		}

		dualEdge, twinEdge := dual.NewEdge(a, b)
		dualEdge.IncidentFace = leftOuter
		twinEdge.IncidentFace = rightOuter
		leftOuter.OfferComponent(dualEdge)
		rightOuter.OfferComponent(twinEdge)
	}

	Consolidate(dual)
	return dual
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
