// Package dcel is the doubly connected edge list model: vertices,
// twinned half-edges, and faces, plus the post-sweep topological
// consolidation and Delaunay dual construction.
package dcel

import (
	"math"

	"github.com/tanh-x/voronoi-viz/internal/geom"
)

// Site is an input point carrying the dense, positive, caller-assigned
// identifier that survives into the Voronoi face label and the Delaunay
// vertex label.
type Site struct {
	Pos geom.Vec2
	ID  int
}

func (s *Site) X() float64 { return s.Pos.X }
func (s *Site) Y() float64 { return s.Pos.Y }

// Vertex is a DCEL vertex: a Voronoi circumcentre, a clipped boundary
// point, or (for the dual graph) an input site.
type Vertex struct {
	Label        int
	Pos          geom.Vec2
	IsBoundary   bool
	IncidentEdge *HalfEdge
}

func (v *Vertex) X() float64 { return v.Pos.X }
func (v *Vertex) Y() float64 { return v.Pos.Y }

// HalfEdge is one direction of an edge, always paired with a Twin running
// the opposite way. Next/Prev are only well-defined after Consolidate.
type HalfEdge struct {
	Origin, Dest *Vertex
	Angle        float64
	Twin         *HalfEdge
	Next, Prev   *HalfEdge
	IncidentFace *Face
	Unbounded    bool
}

func newHalfEdge(origin, dest *Vertex) *HalfEdge {
	angle := math.NaN()
	if origin != nil && dest != nil {
		angle = math.Atan2(dest.Y()-origin.Y(), dest.X()-origin.X())
	}
	return &HalfEdge{Origin: origin, Dest: dest, Angle: angle}
}

// bindTwins cross-links e and other as twins of each other.
func bindTwins(e, other *HalfEdge) {
	e.Twin = other
	other.Twin = e
}

// chainNext sets e.Next = other and other.Prev = e.
func chainNext(e, other *HalfEdge) {
	e.Next = other
	other.Prev = e
}

// Face is a Voronoi cell (site-labelled) or, in the dual graph, a
// Delaunay triangle (vertex-labelled) or the single unbounded face.
type Face struct {
	Label     int
	Site      *Site
	Outer     *HalfEdge
	Inner     *HalfEdge
	Unbounded bool
}

// OfferComponent records edge as a boundary component of f, flipping f to
// unbounded the first time it receives an edge with Unbounded set — this
// is the classifier that decides whether a cell's component is stored in
// Outer (bounded) or Inner (touches the clip box).
func (f *Face) OfferComponent(edge *HalfEdge) {
	switch {
	case edge.Unbounded:
		f.Unbounded = true
		f.Outer = nil
		f.Inner = edge
	case !f.Unbounded:
		f.Outer = edge
	default:
		f.Inner = edge
	}
}

// DCEL owns every vertex, half-edge and face it has produced; consumers
// never free these independently.
type DCEL struct {
	Vertices  []*Vertex
	HalfEdges []*HalfEdge
	Faces     []*Face

	// Forward holds one representative half-edge per undirected edge (the
	// one originally created by the clipper, before its twin); the dual
	// builder walks only these.
	Forward []*HalfEdge

	BottomLeft, TopRight geom.Vec2
	Centroid             geom.Vec2
	MajorAxis            float64

	Consolidated bool
}

// New constructs an empty DCEL.
func New() *DCEL {
	return &DCEL{}
}

// NewVertex creates and registers a labelled interior vertex.
func (d *DCEL) NewVertex(label int, pos geom.Vec2) *Vertex {
	v := &Vertex{Label: label, Pos: pos}
	d.Vertices = append(d.Vertices, v)
	return v
}

// NewBoundaryVertex creates and registers a clipped boundary vertex.
func (d *DCEL) NewBoundaryVertex(pos geom.Vec2, label int) *Vertex {
	v := &Vertex{Label: label, Pos: pos, IsBoundary: true}
	d.Vertices = append(d.Vertices, v)
	return v
}

// NewFace creates and registers a site-labelled Voronoi cell.
func (d *DCEL) NewFace(site *Site) *Face {
	f := &Face{Label: site.ID, Site: site}
	d.Faces = append(d.Faces, f)
	return f
}

// NewUnboundedFace creates and registers the dual graph's single
// unbounded face.
func (d *DCEL) NewUnboundedFace() *Face {
	f := &Face{Label: -1, Unbounded: true}
	d.Faces = append(d.Faces, f)
	return f
}

// NewTriangleFace creates and registers a Delaunay face dualizing a
// Voronoi vertex.
func (d *DCEL) NewTriangleFace(label int) *Face {
	f := &Face{Label: label}
	d.Faces = append(d.Faces, f)
	return f
}

// NewEdge creates a twinned half-edge pair from v1 to v2 (and back),
// registers both with the DCEL, and records the forward half as the
// canonical representative. Either endpoint being a boundary vertex marks
// both halves unbounded.
func (d *DCEL) NewEdge(v1, v2 *Vertex) (forward, twin *HalfEdge) {
	forward = newHalfEdge(v1, v2)
	twin = newHalfEdge(v2, v1)
	if v1.IsBoundary || v2.IsBoundary {
		forward.Unbounded = true
		twin.Unbounded = true
	}
	bindTwins(forward, twin)
	d.HalfEdges = append(d.HalfEdges, forward, twin)
	d.Forward = append(d.Forward, forward)
	return forward, twin
}

func (d *DCEL) NumVertices() int  { return len(d.Vertices) }
func (d *DCEL) NumHalfEdges() int { return len(d.HalfEdges) }
func (d *DCEL) NumEdges() int     { return len(d.HalfEdges) / 2 }
func (d *DCEL) NumFaces() int     { return len(d.Faces) }

// CenteredX maps a world x-coordinate into the [-1,1]-ish viewport frame
// used by downstream renderers, relative to the recorded centroid and
// major axis.
func (d *DCEL) CenteredX(x float64) float64 { return (x - d.Centroid.X) / d.MajorAxis }

// CenteredY maps a world y-coordinate the same way.
func (d *DCEL) CenteredY(y float64) float64 { return (y - d.Centroid.Y) / d.MajorAxis }
