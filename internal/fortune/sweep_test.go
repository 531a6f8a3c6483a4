package fortune

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanh-x/voronoi-viz/internal/dcel"
	"github.com/tanh-x/voronoi-viz/internal/geom"
)

func site(x, y float64, id int) *dcel.Site {
	return &dcel.Site{Pos: geom.Vec2{X: x, Y: y}, ID: id}
}

func realVertices(d *dcel.DCEL) []*dcel.Vertex {
	var out []*dcel.Vertex
	for _, v := range d.Vertices {
		if !v.IsBoundary {
			out = append(out, v)
		}
	}
	return out
}

func assertTwinSymmetry(t *testing.T, d *dcel.DCEL) {
	t.Helper()
	for _, e := range d.HalfEdges {
		assert.NotEqual(t, e, e.Twin)
		assert.Equal(t, e, e.Twin.Twin)
		assert.Equal(t, e.Origin, e.Twin.Dest)
		assert.Equal(t, e.Dest, e.Twin.Origin)
	}
}

func assertWithinBounds(t *testing.T, d *dcel.DCEL) {
	t.Helper()
	for _, v := range realVertices(d) {
		assert.GreaterOrEqual(t, v.Pos.X, d.BottomLeft.X)
		assert.LessOrEqual(t, v.Pos.X, d.TopRight.X)
		assert.GreaterOrEqual(t, v.Pos.Y, d.BottomLeft.Y)
		assert.LessOrEqual(t, v.Pos.Y, d.TopRight.Y)
	}
}

// TestSingleSite covers S1: a lone site contributes no breakpoints at all,
// so the only edges that exist are the four perimeter segments stitched
// between the clip box's corners.
func TestSingleSite(t *testing.T) {
	sites := []*dcel.Site{site(0, 0, 1)}
	d := NewSweeper(sites, nil).ComputeAll()

	assert.Len(t, d.Vertices, 4)
	assert.Empty(t, realVertices(d))
	require.Len(t, d.Faces, 1)
	assert.Equal(t, 4, d.NumEdges())
	assertTwinSymmetry(t, d)
	assert.True(t, d.Faces[0].Unbounded)
}

// TestTwoSites covers S2: the one bisector is the y-axis, a vertical
// unbounded line whose synthetic origin carries an infinite y — the case
// clip.go must resolve directly rather than via RayBoxIntersection.
func TestTwoSites(t *testing.T) {
	sites := []*dcel.Site{site(-1, 0, 1), site(1, 0, 2)}
	d := NewSweeper(sites, nil).ComputeAll()

	assert.Len(t, d.Faces, 2)
	assert.Empty(t, realVertices(d))
	assert.Len(t, d.Vertices, 6) // 4 corners + top/bottom bisector landings
	assert.Equal(t, 7, d.NumEdges())
	assertTwinSymmetry(t, d)
	assertWithinBounds(t, d)

	for _, v := range d.Vertices {
		if v.Label > 4 {
			assert.InDelta(t, 0, v.Pos.X, 1e-6)
		}
	}
}

// TestThreeSitesNonCollinear covers S3: one real vertex at the exact
// circumcentre of the three foci. The two y=-1 sites are swept first, so
// the third site lands on their vertical bisector and the vertex comes
// from the site-on-breakpoint branch rather than a circle event.
func TestThreeSitesNonCollinear(t *testing.T) {
	sites := []*dcel.Site{site(0, 2, 1), site(-2, -1, 2), site(2, -1, 3)}
	d := NewSweeper(sites, nil).ComputeAll()

	real := realVertices(d)
	require.Len(t, real, 1)
	// Circumcentre of (0,2), (-2,-1), (2,-1): by symmetry x=0; solving
	// |2-y| = sqrt(4+(y+1)^2) gives y=-1/6.
	assert.InDelta(t, 0, real[0].Pos.X, 1e-9)
	assert.InDelta(t, -1.0/6.0, real[0].Pos.Y, 1e-9)

	assert.Len(t, d.Faces, 3)
	assertTwinSymmetry(t, d)
	assertWithinBounds(t, d)
}

// TestFourCocircularSites covers S4: four sites on the unit circle collapse
// to a single degree-4 vertex at the origin via cocircular expansion.
func TestFourCocircularSites(t *testing.T) {
	sites := []*dcel.Site{site(1, 0, 1), site(0, 1, 2), site(-1, 0, 3), site(0, -1, 4)}
	d := NewSweeper(sites, nil).ComputeAll()

	real := realVertices(d)
	require.Len(t, real, 1)
	assert.InDelta(t, 0, real[0].Pos.X, 1e-9)
	assert.InDelta(t, 0, real[0].Pos.Y, 1e-9)

	assert.Len(t, d.Faces, 4)
	assertTwinSymmetry(t, d)
	assertWithinBounds(t, d)
}

// TestSiteOnBreakpointDegeneracy covers S6: the fourth site lands exactly
// on the bisector of the other two, forcing the site-on-breakpoint branch.
func TestSiteOnBreakpointDegeneracy(t *testing.T) {
	sites := []*dcel.Site{site(0, 2, 1), site(-1, 0, 2), site(1, 0, 3), site(0, -4, 4)}
	d := NewSweeper(sites, nil).ComputeAll()

	assert.Len(t, d.Faces, 4)
	assertTwinSymmetry(t, d)
	assertWithinBounds(t, d)
	assert.NotEmpty(t, realVertices(d))
}

// TestComputeAllIsDeterministic covers testable property 7: two runs on the
// same input must agree on every vertex position.
func TestComputeAllIsDeterministic(t *testing.T) {
	build := func() *dcel.DCEL {
		sites := []*dcel.Site{site(0, 2, 1), site(-2, -1, 2), site(2, -1, 3), site(0, 5, 4)}
		return NewSweeper(sites, nil).ComputeAll()
	}
	d1 := build()
	d2 := build()

	require.Equal(t, len(d1.Vertices), len(d2.Vertices))
	require.Equal(t, len(d1.HalfEdges), len(d2.HalfEdges))
	for i := range d1.Vertices {
		assert.InDelta(t, d1.Vertices[i].Pos.X, d2.Vertices[i].Pos.X, 1e-9)
		assert.InDelta(t, d1.Vertices[i].Pos.Y, d2.Vertices[i].Pos.Y, 1e-9)
	}
}

// TestNoFalseCircleEventOnConvexArc checks the candidacy rejection rule:
// three collinear-ish foci arranged so the middle arc's circumcircle never
// converges below the sweep line must never fabricate a vertex for it.
func TestNoFalseCircleEventOnConvexArc(t *testing.T) {
	sites := []*dcel.Site{site(-5, 0, 1), site(0, 0, 2), site(5, 0, 3)}
	d := NewSweeper(sites, nil).ComputeAll()

	assert.Empty(t, realVertices(d))
	assert.Len(t, d.Faces, 3)
	assertTwinSymmetry(t, d)
}
