package fortune

import (
	"math"
	"sort"

	"github.com/tanh-x/voronoi-viz/internal/dcel"
	"github.com/tanh-x/voronoi-viz/internal/geom"
)

const boundaryBottomLeft = 1
const boundaryBottomRight = 2
const boundaryTopRight = 3
const boundaryTopLeft = 4

// boundaryResolver turns the sweep's open-ended EdgeSkeletons into closed
// half-edge pairs against a padded bounding box, the clipper's job (C7).
type boundaryResolver struct {
	dcel       *dcel.DCEL
	faces      map[int]*dcel.Face
	boundaries []*dcel.Vertex
}

// BuildDCEL resolves every edge skeleton the sweep produced into a
// consolidated Voronoi DCEL, clipped to a padded square around the sites
// and real vertices.
func BuildDCEL(sites []*dcel.Site, factory *EdgeFactory) *dcel.DCEL {
	d := dcel.New()
	r := &boundaryResolver{dcel: d, faces: make(map[int]*dcel.Face, len(sites))}

	for _, site := range sites {
		r.faces[site.ID] = d.NewFace(site)
	}

	bottomLeft, topRight, centroid, majorAxis := r.computeBoundingBox(sites, factory.RealVertices())
	d.BottomLeft, d.TopRight, d.Centroid, d.MajorAxis = bottomLeft, topRight, centroid, majorAxis

	d.Vertices = append(d.Vertices, factory.RealVertices()...)
	r.placeCorners(bottomLeft, topRight)

	for _, pair := range factory.Pairs {
		r.resolvePair(pair, factory, bottomLeft, topRight)
	}

	r.stitchPerimeter(sites, bottomLeft, topRight)

	dcel.Consolidate(d)
	return d
}

// computeBoundingBox finds the tight box around sites and real vertices,
// squares it around its centroid, and inflates it by
// dcel.BoundingBoxPadding so every unbounded ray has room to land on an
// edge of the box rather than exactly on a site.
func (r *boundaryResolver) computeBoundingBox(sites []*dcel.Site, vertices []*dcel.Vertex) (bottomLeft, topRight, centroid geom.Vec2, majorAxis float64) {
	bottomLeft = geom.Infinity()
	topRight = geom.Vec2{X: -bottomLeft.X, Y: -bottomLeft.Y}

	expand := func(p geom.Vec2) {
		if p.X < bottomLeft.X {
			bottomLeft.X = p.X
		}
		if p.Y < bottomLeft.Y {
			bottomLeft.Y = p.Y
		}
		if p.X > topRight.X {
			topRight.X = p.X
		}
		if p.Y > topRight.Y {
			topRight.Y = p.Y
		}
	}
	for _, s := range sites {
		expand(s.Pos)
	}
	for _, v := range vertices {
		expand(v.Pos)
	}

	width := topRight.X - bottomLeft.X
	height := topRight.Y - bottomLeft.Y
	axis := width
	if height > axis {
		axis = height
	}
	if axis == 0 {
		axis = 1
	}

	centroid = topRight.Add(bottomLeft).Scale(0.5)
	paddedHalf := axis * (1 + 2*dcel.BoundingBoxPadding) * 0.5

	bottomLeft = centroid.Sub(geom.Vec2{X: paddedHalf, Y: paddedHalf})
	topRight = centroid.Add(geom.Vec2{X: paddedHalf, Y: paddedHalf})
	majorAxis = paddedHalf

	return bottomLeft, topRight, centroid, majorAxis
}

func (r *boundaryResolver) placeCorners(bottomLeft, topRight geom.Vec2) {
	bl := r.dcel.NewBoundaryVertex(bottomLeft, boundaryBottomLeft)
	br := r.dcel.NewBoundaryVertex(geom.Vec2{X: topRight.X, Y: bottomLeft.Y}, boundaryBottomRight)
	tr := r.dcel.NewBoundaryVertex(topRight, boundaryTopRight)
	tl := r.dcel.NewBoundaryVertex(geom.Vec2{X: bottomLeft.X, Y: topRight.Y}, boundaryTopLeft)
	r.boundaries = []*dcel.Vertex{bl, br, tr, tl}
}

// getOrCreateBoundary snaps pos to an existing corner or previously
// created boundary point (within geom.Tolerance) before minting a new
// boundary vertex, so adjacent unbounded cells share a clip point.
func (r *boundaryResolver) getOrCreateBoundary(pos geom.Vec2) *dcel.Vertex {
	for _, v := range r.boundaries {
		if geom.SoftEqualsVec2(v.Pos, pos) {
			return v
		}
	}
	v := r.dcel.NewBoundaryVertex(pos, len(r.boundaries)+1)
	r.boundaries = append(r.boundaries, v)
	return v
}

// resolvePair closes off a single edge skeleton and wires its half-edge
// pair into the DCEL, dispatching on which endpoints are real.
func (r *boundaryResolver) resolvePair(pair *EdgeSkeleton, factory *EdgeFactory, bottomLeft, topRight geom.Vec2) {
	v1Real := factory.IsReal(pair.V1)
	v2Real := pair.V2 != nil && factory.IsReal(pair.V2)

	var vA, vB *dcel.Vertex

	switch {
	case v1Real && v2Real:
		if pair.V1 == pair.V2 {
			return
		}
		vA, vB = pair.V1, pair.V2

	case v1Real && !v2Real:
		vA = pair.V1
		vB = r.getOrCreateBoundary(geom.RayBoxIntersection(pair.V1.Pos, pair.Angle, bottomLeft, topRight))

	case !v1Real && v2Real:
		// The synthetic origin never got its own endpoint; shoot the ray
		// from the real vertex instead, flipping direction when the
		// synthetic origin sat to the left of it.
		rayAngle := pair.Angle
		if pair.V1.Pos.X < pair.V2.Pos.X {
			rayAngle += math.Pi
		}
		vA = pair.V2
		vB = r.getOrCreateBoundary(geom.RayBoxIntersection(pair.V2.Pos, rayAngle, bottomLeft, topRight))

	default:
		// Neither endpoint was ever touched by a circle event: a fully
		// unbounded bisector. A vertical one carries an infinite-y
		// synthetic origin (born when the breakpoint's directrix equalled
		// its focus's y) that RayBoxIntersection's origin-inside-box
		// precondition can't accept, so it's resolved directly as the
		// vertical segment through the origin's x.
		if math.IsInf(pair.V1.Pos.Y, 0) {
			vA = r.getOrCreateBoundary(geom.Vec2{X: pair.V1.Pos.X, Y: topRight.Y})
			vB = r.getOrCreateBoundary(geom.Vec2{X: pair.V1.Pos.X, Y: bottomLeft.Y})
		} else {
			vA = r.getOrCreateBoundary(geom.RayBoxIntersection(pair.V1.Pos, pair.Angle, bottomLeft, topRight))
			vB = r.getOrCreateBoundary(geom.RayBoxIntersection(pair.V1.Pos, pair.Angle+math.Pi, bottomLeft, topRight))
		}
	}

	if vA == vB {
		return
	}

	forward, twin := r.dcel.NewEdge(vA, vB)

	faceA := r.faces[pair.IncidentSiteA.ID]
	faceB := r.faces[pair.IncidentSiteB.ID]

	dir := vB.Pos.Sub(vA.Pos)
	towardA := pair.IncidentSiteA.Pos.Sub(vA.Pos)
	if dir.Cross(towardA) > 0 {
		forward.IncidentFace, twin.IncidentFace = faceA, faceB
	} else {
		forward.IncidentFace, twin.IncidentFace = faceB, faceA
	}

	forward.IncidentFace.OfferComponent(forward)
	twin.IncidentFace.OfferComponent(twin)
}

// stitchPerimeter closes the box around the resolved rays: every boundary
// vertex gathered by getOrCreateBoundary (plus the four corners) is walked
// once around the perimeter in order, wiring a half-edge pair between each
// consecutive pair so every boundary-touching face's component threads into
// a closed cycle instead of dead-ending at an isolated ray landing. Each
// segment's incident face is whichever site is nearest its midpoint — the
// same nearest-site property the diagram is built to satisfy, so it always
// names the one cell that actually borders that stretch of the box.
func (r *boundaryResolver) stitchPerimeter(sites []*dcel.Site, bottomLeft, topRight geom.Vec2) {
	corners := r.boundaries[:4]

	var bottom, right, top, left []*dcel.Vertex
	for _, v := range r.boundaries[4:] {
		switch {
		case geom.SoftEquals(v.Pos.Y, bottomLeft.Y):
			bottom = append(bottom, v)
		case geom.SoftEquals(v.Pos.Y, topRight.Y):
			top = append(top, v)
		case geom.SoftEquals(v.Pos.X, bottomLeft.X):
			left = append(left, v)
		default:
			right = append(right, v)
		}
	}
	sort.Slice(bottom, func(i, j int) bool { return bottom[i].Pos.X < bottom[j].Pos.X })
	sort.Slice(right, func(i, j int) bool { return right[i].Pos.Y < right[j].Pos.Y })
	sort.Slice(top, func(i, j int) bool { return top[i].Pos.X > top[j].Pos.X })
	sort.Slice(left, func(i, j int) bool { return left[i].Pos.Y > left[j].Pos.Y })

	perimeter := []*dcel.Vertex{corners[boundaryBottomLeft - 1]}
	perimeter = append(perimeter, bottom...)
	perimeter = append(perimeter, corners[boundaryBottomRight-1])
	perimeter = append(perimeter, right...)
	perimeter = append(perimeter, corners[boundaryTopRight-1])
	perimeter = append(perimeter, top...)
	perimeter = append(perimeter, corners[boundaryTopLeft-1])
	perimeter = append(perimeter, left...)

	for i := range perimeter {
		a := perimeter[i]
		b := perimeter[(i+1)%len(perimeter)]
		if a == b {
			continue
		}
		forward, _ := r.dcel.NewEdge(a, b)
		mid := a.Pos.Add(b.Pos).Scale(0.5)
		face := r.nearestFace(mid, sites)
		forward.IncidentFace = face
		face.OfferComponent(forward)
	}
}

// nearestFace returns the face of whichever site is closest to pos.
func (r *boundaryResolver) nearestFace(pos geom.Vec2, sites []*dcel.Site) *dcel.Face {
	var best *dcel.Site
	bestDist := math.Inf(1)
	for _, s := range sites {
		if d := pos.DistanceTo(s.Pos); d < bestDist {
			bestDist, best = d, s
		}
	}
	return r.faces[best.ID]
}
