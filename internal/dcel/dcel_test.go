package dcel

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanh-x/voronoi-viz/internal/geom"
)

// buildSquareDiagram builds a tiny hand-rolled DCEL: a single interior
// vertex at the origin with four boundary rays along the axes, mimicking
// the S4-shaped degree-4 vertex scenario.
func buildSquareDiagram(t *testing.T) *DCEL {
	t.Helper()
	d := New()

	siteN := &Site{Pos: geom.Vec2{X: 0, Y: 5}, ID: 1}
	siteE := &Site{Pos: geom.Vec2{X: 5, Y: 0}, ID: 2}
	siteS := &Site{Pos: geom.Vec2{X: 0, Y: -5}, ID: 3}
	siteW := &Site{Pos: geom.Vec2{X: -5, Y: 0}, ID: 4}

	faceN := d.NewFace(siteN)
	faceE := d.NewFace(siteE)
	faceS := d.NewFace(siteS)
	faceW := d.NewFace(siteW)

	center := d.NewVertex(1, geom.Vec2{X: 0, Y: 0})
	top := d.NewBoundaryVertex(geom.Vec2{X: 0, Y: 10}, 1)
	right := d.NewBoundaryVertex(geom.Vec2{X: 10, Y: 0}, 2)
	bottom := d.NewBoundaryVertex(geom.Vec2{X: 0, Y: -10}, 3)
	left := d.NewBoundaryVertex(geom.Vec2{X: -10, Y: 0}, 4)

	wire := func(a, b *Vertex, faceLeft, faceRight *Face) {
		fwd, twin := d.NewEdge(a, b)
		fwd.IncidentFace = faceLeft
		twin.IncidentFace = faceRight
		faceLeft.OfferComponent(fwd)
		faceRight.OfferComponent(twin)
	}

	wire(center, top, faceW, faceN)
	wire(center, right, faceN, faceE)
	wire(center, bottom, faceE, faceS)
	wire(center, left, faceS, faceW)

	Consolidate(d)
	return d
}

func TestConsolidateDegreeFourVertex(t *testing.T) {
	d := buildSquareDiagram(t)

	center := d.Vertices[0]
	require.NotNil(t, center.IncidentEdge)

	// This fixture is a bare 4-ray star with no enclosed area, so the one
	// face cycle reachable from the center is the Euler tour of all four
	// rays: 8 half-edge hops back to the start.
	start := center.IncidentEdge
	e := start
	steps := 0
	for {
		e = e.Next
		steps++
		require.NotNil(t, e)
		if e == start {
			break
		}
		require.LessOrEqual(t, steps, 8)
	}
	assert.Equal(t, 8, steps)
}

func TestTwinSymmetry(t *testing.T) {
	d := buildSquareDiagram(t)
	for _, e := range d.HalfEdges {
		assert.NotEqual(t, e, e.Twin)
		assert.Equal(t, e, e.Twin.Twin)
		assert.Equal(t, e.Origin, e.Twin.Dest)
		assert.Equal(t, e.Dest, e.Twin.Origin)
	}
}

func TestDumpVoronoiIsDeterministic(t *testing.T) {
	d := buildSquareDiagram(t)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, DumpVoronoi(&buf1, d))
	require.NoError(t, DumpVoronoi(&buf2, d))
	assert.Equal(t, buf1.String(), buf2.String())
	assert.Contains(t, buf1.String(), "v1")
}

// TestDumpVoronoiMatchesAcrossEquivalentBuilds rebuilds the same fixture
// from scratch and diffs the two dumps line-by-line with go-cmp, catching
// any field that slips a consolidation-order dependency into the output
// that a plain string-equality check would only report as "not equal".
func TestDumpVoronoiMatchesAcrossEquivalentBuilds(t *testing.T) {
	d1 := buildSquareDiagram(t)
	d2 := buildSquareDiagram(t)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, DumpVoronoi(&buf1, d1))
	require.NoError(t, DumpVoronoi(&buf2, d2))

	lines1 := strings.Split(buf1.String(), "\n")
	lines2 := strings.Split(buf2.String(), "\n")
	if diff := cmp.Diff(lines1, lines2); diff != "" {
		t.Errorf("dump mismatch between equivalent builds (-want +got):\n%s", diff)
	}
}

func TestBuildDualProducesOneVertexPerSite(t *testing.T) {
	d := buildSquareDiagram(t)
	sites := []*Site{
		{Pos: geom.Vec2{X: 0, Y: 5}, ID: 1},
		{Pos: geom.Vec2{X: 5, Y: 0}, ID: 2},
		{Pos: geom.Vec2{X: 0, Y: -5}, ID: 3},
		{Pos: geom.Vec2{X: -5, Y: 0}, ID: 4},
	}

	dual := BuildDual(d, sites)
	assert.Equal(t, len(sites), len(dual.Vertices))
	assert.True(t, dual.Consolidated)
}
