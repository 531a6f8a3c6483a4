package fortune

import (
	"math"

	"github.com/tanh-x/voronoi-viz/internal/dcel"
	"github.com/tanh-x/voronoi-viz/internal/geom"
)

// EdgeSkeleton ("vertex pair") is a directed Voronoi edge under
// construction: up to two endpoints (a synthetic origin proxy born at
// breakpoint creation, and/or a real Voronoi vertex born at a circle
// event), a growth angle, and the two sites it separates.
type EdgeSkeleton struct {
	V1, V2               *dcel.Vertex
	Angle                float64
	IncidentSiteA, IncidentSiteB *dcel.Site
}

func newEdgeSkeleton(siteA, siteB *dcel.Site) *EdgeSkeleton {
	return &EdgeSkeleton{Angle: math.NaN(), IncidentSiteA: siteA, IncidentSiteB: siteB}
}

// OfferVertex attaches vertex as the skeleton's first or second endpoint.
// A third offer (which only happens when a merged breakpoint's fresh
// skeleton is later closed off by a cocircular event sharing its
// position) extends the segment to whichever of the three points is most
// extremal, collapsing the near-duplicate otherwise.
func (es *EdgeSkeleton) OfferVertex(vertex *dcel.Vertex) {
	switch {
	case es.V1 == nil:
		es.V1 = vertex
	case es.V2 == nil:
		es.V2 = vertex
	default:
		dir12 := es.V2.Pos.Sub(es.V1.Pos)
		dir13 := vertex.Pos.Sub(es.V1.Pos)
		dir23 := vertex.Pos.Sub(es.V2.Pos)

		dist12 := dir12.Norm()
		dist13 := dir13.Norm()
		dist23 := dir23.Norm()

		if dist13 < geom.Tolerance || dist23 < geom.Tolerance {
			return
		}

		if dist13 > dist12 && dist13 > dist23 {
			es.V2 = vertex
		} else if dist23 > dist12 && dist23 > dist13 {
			es.V1 = vertex
		}
	}
}

// EdgeFactory accumulates real Voronoi vertices and edge skeletons during
// the sweep, on behalf of C6. "Real" here means offered via OfferVertex —
// a synthetic origin proxy living only inside an EdgeSkeleton.V1 is never
// registered and is resolved by the clipper instead.
type EdgeFactory struct {
	real    map[*dcel.Vertex]bool
	ordered []*dcel.Vertex
	Pairs   []*EdgeSkeleton
}

// NewEdgeFactory constructs an empty factory.
func NewEdgeFactory() *EdgeFactory {
	return &EdgeFactory{real: make(map[*dcel.Vertex]bool)}
}

// OfferVertex registers vertex as a real, finalized Voronoi vertex.
func (f *EdgeFactory) OfferVertex(vertex *dcel.Vertex) {
	if !f.real[vertex] {
		f.real[vertex] = true
		f.ordered = append(f.ordered, vertex)
	}
}

// RealVertices returns every registered vertex in offer order, so
// downstream dumps stay deterministic.
func (f *EdgeFactory) RealVertices() []*dcel.Vertex {
	return f.ordered
}

// IsReal reports whether vertex was registered via OfferVertex.
func (f *EdgeFactory) IsReal(vertex *dcel.Vertex) bool {
	return f.real[vertex]
}

// OfferPair registers pair as an edge skeleton to be resolved at
// clipping time.
func (f *EdgeFactory) OfferPair(pair *EdgeSkeleton) {
	f.Pairs = append(f.Pairs, pair)
}

// NumVertices is the count of real (registered) vertices so far; the
// next Voronoi vertex created should be labelled NumVertices()+1.
func (f *EdgeFactory) NumVertices() int {
	return len(f.real)
}
