package fortune

import (
	"log"
	"math"

	"github.com/tanh-x/voronoi-viz/internal/dcel"
	"github.com/tanh-x/voronoi-viz/internal/geom"
	"github.com/tanh-x/voronoi-viz/internal/pqueue"
	"github.com/tanh-x/voronoi-viz/internal/splay"
)

// Sweeper drains the event queue against the beach line, the single
// entry point for C6. A fresh Sweeper is required per computation — a
// second call to ComputeAll is undefined, matching spec.md's resource
// model.
type Sweeper struct {
	sweepY  float64
	beach   *splay.Tree[*Chain, *ChainValue]
	queue   *pqueue.Queue[*Event]
	factory *EdgeFactory
	sites   []*dcel.Site
	logger  *log.Logger

	eventCounter int
}

// NewSweeper seeds the event queue with one site event per input site.
func NewSweeper(sites []*dcel.Site, logger *log.Logger) *Sweeper {
	if logger == nil {
		logger = log.Default()
	}
	s := &Sweeper{factory: NewEdgeFactory(), sites: sites, logger: logger}
	s.beach = splay.New[*Chain, *ChainValue](func(a, b *Chain) bool {
		return a.FieldOrdering(s.sweepY) < b.FieldOrdering(s.sweepY)
	})
	s.queue = pqueue.New[*Event](eventLess)

	for _, site := range sites {
		s.queue.Add(NewSiteEvent(site))
	}
	if !s.queue.Empty() {
		s.sweepY = s.queue.Peek().Y()
	}
	return s
}

// Factory exposes the edge factory accumulated so far, for the clipper.
func (s *Sweeper) Factory() *EdgeFactory { return s.factory }

// ComputeAll drains every event and returns the resulting Voronoi DCEL
// via the bounding-box clipper.
func (s *Sweeper) ComputeAll() *dcel.DCEL {
	for !s.queue.Empty() {
		s.StepNextEvent()
	}
	return BuildDCEL(s.sites, s.factory)
}

// StepNextEvent polls and dispatches a single event; a no-op if the
// queue is empty.
func (s *Sweeper) StepNextEvent() {
	if s.queue.Empty() {
		return
	}
	event := s.queue.Poll()
	s.eventCounter++
	s.sweepY = event.Y()

	s.logger.Printf("event #%d (%s) at y=%f", s.eventCounter, eventKind(event), s.sweepY)

	if event.IsSiteEvent {
		s.handleSiteEvent(event)
	} else {
		s.handleCircleEvent(event)
	}
}

func eventKind(e *Event) string {
	if e.IsSiteEvent {
		return "site"
	}
	return "circle"
}

func (s *Sweeper) handleSiteEvent(event *Event) {
	newArc := NewArc(event.Site)
	s.logger.Printf("handling site event for %s", newArc)

	node := s.beach.Root
	for node != nil {
		if node.Key.IsArc {
			break
		}
		x := node.Key.FieldOrdering(s.sweepY)
		if geom.SoftEquals(event.Pos.X, x) {
			s.handleSiteOnBreakpointDegeneracy(event, node)
			return
		}
		if event.Pos.X < x {
			node = node.Left
		} else {
			node = node.Right
		}
	}

	if node == nil {
		s.beach.Insert(newArc, &ChainValue{}, false)
		s.logger.Printf("first arc, moving on")
		return
	}

	arcAboveNode := node
	arcAbove := arcAboveNode.Key
	s.logger.Printf("arc above is %s, focus %v", arcAbove, arcAbove.Focus)

	if arcAboveNode.Value.CircleEvent != nil {
		arcAboveNode.Value.CircleEvent.Invalidated = true
	}

	oldParent := arcAboveNode.Parent
	wasLeftChild := oldParent != nil && oldParent.Left == arcAboveNode
	prevNeighbor := arcAboveNode.Prev
	nextNeighbor := arcAboveNode.Next

	s.beach.RemoveNode(arcAboveNode, false)

	edge := newEdgeSkeleton(arcAbove.Focus, newArc.Focus)
	originY := geom.ParabolaY(event.Pos.X, arcAbove.Focus.Pos, s.sweepY)
	origin := geom.Vec2{X: event.Pos.X, Y: originY}

	sameLevelDegen := geom.SoftEquals(arcAbove.Focus.Y(), event.Pos.Y)
	if math.IsInf(origin.Y, 0) || math.IsNaN(origin.Y) {
		origin.X = (newArc.Focus.X() + arcAbove.Focus.X()) / 2.0
	}
	edge.V1 = &dcel.Vertex{Pos: origin}
	edgeAngle := math.Atan(geom.ParabolaGradient(event.Pos.X, arcAbove.Focus.Pos, s.sweepY))
	if edgeAngle > 0 {
		edgeAngle -= math.Pi
	}
	edge.Angle = edgeAngle
	s.factory.OfferPair(edge)

	var leftArcNode, newArcNode, rightArcNode *chainNode

	if !sameLevelDegen {
		leftArc := NewArc(arcAbove.Focus)
		rightArc := NewArc(arcAbove.Focus)
		leftBp := NewBreakpoint(leftArc.Focus, newArc.Focus)
		rightBp := NewBreakpoint(newArc.Focus, rightArc.Focus)

		leftArcNode = &chainNode{Key: leftArc, Value: &ChainValue{}}
		newArcNode = &chainNode{Key: newArc, Value: &ChainValue{}}
		rightArcNode = &chainNode{Key: rightArc, Value: &ChainValue{}}
		leftBpNode := &chainNode{Key: leftBp, Value: &ChainValue{BreakpointEdge: edge}}
		rightBpNode := &chainNode{Key: rightBp, Value: &ChainValue{BreakpointEdge: edge}}

		leftBpNode.SetLeft(leftArcNode)
		leftBpNode.SetRight(rightBpNode)
		rightBpNode.SetLeft(newArcNode)
		rightBpNode.SetRight(rightArcNode)

		leftArcNode.Prev = prevNeighbor
		if prevNeighbor != nil {
			prevNeighbor.Next = leftArcNode
		}
		leftArcNode.Next = leftBpNode
		leftBpNode.Prev = leftArcNode
		leftBpNode.Next = newArcNode
		newArcNode.Prev = leftBpNode
		newArcNode.Next = rightBpNode
		rightBpNode.Prev = newArcNode
		rightBpNode.Next = rightArcNode
		rightArcNode.Prev = rightBpNode
		rightArcNode.Next = nextNeighbor
		if nextNeighbor != nil {
			nextNeighbor.Prev = rightArcNode
		}

		attachSubtreeRoot(s.beach, leftBpNode, oldParent, wasLeftChild)
	} else {
		// Level-equal degeneracy: the new site and the old focus share a
		// y-coordinate, so the arc above has zero height. Only one
		// breakpoint separates the two foci, ordered left/right by x.
		newIsLeft := event.Pos.X < arcAbove.Focus.X()

		var leftFocus, rightFocus *dcel.Site
		if newIsLeft {
			leftFocus, rightFocus = newArc.Focus, arcAbove.Focus
		} else {
			leftFocus, rightFocus = arcAbove.Focus, newArc.Focus
		}
		bp := NewBreakpoint(leftFocus, rightFocus)
		bpNode := &chainNode{Key: bp, Value: &ChainValue{BreakpointEdge: edge}}

		var leftChain, rightChain *Chain
		if newIsLeft {
			leftChain, rightChain = newArc, arcAbove
		} else {
			leftChain, rightChain = arcAbove, newArc
		}
		leftArcNode = &chainNode{Key: leftChain, Value: &ChainValue{}}
		rightArcNode = &chainNode{Key: rightChain, Value: &ChainValue{}}
		if newIsLeft {
			newArcNode = leftArcNode
		} else {
			newArcNode = rightArcNode
		}

		bpNode.SetLeft(leftArcNode)
		bpNode.SetRight(rightArcNode)

		leftArcNode.Prev = prevNeighbor
		if prevNeighbor != nil {
			prevNeighbor.Next = leftArcNode
		}
		leftArcNode.Next = bpNode
		bpNode.Prev = leftArcNode
		bpNode.Next = rightArcNode
		rightArcNode.Prev = bpNode
		rightArcNode.Next = nextNeighbor
		if nextNeighbor != nil {
			nextNeighbor.Prev = rightArcNode
		}

		attachSubtreeRoot(s.beach, bpNode, oldParent, wasLeftChild)
	}

	circ1 := s.checkAndCreateCircleEvent(leftArcNode)
	circ2 := s.checkAndCreateCircleEvent(rightArcNode)
	s.offerCircleEventPair(circ1, circ2)
}

// attachSubtreeRoot wires newRoot into the position vacated by the
// removed arc-above node, given its captured former parent.
func attachSubtreeRoot(beach *splay.Tree[*Chain, *ChainValue], newRoot, oldParent *chainNode, wasLeftChild bool) {
	switch {
	case oldParent == nil:
		beach.Root = newRoot
		newRoot.Parent = nil
	case wasLeftChild:
		oldParent.SetLeft(newRoot)
	default:
		oldParent.SetRight(newRoot)
	}
}

// handleSiteOnBreakpointDegeneracy handles a new site landing exactly on
// an existing breakpoint: a Voronoi vertex is created immediately where
// the breakpoint meets the site's vertical line (the centre of the circle
// through the site and the breakpoint's two foci), the breakpoint's
// in-progress edge is closed off there,
// and the breakpoint is replaced by a three-arc splice (leftArc, newArc,
// rightArc) bounded by two fresh breakpoints whose edges begin at the new
// vertex.
func (s *Sweeper) handleSiteOnBreakpointDegeneracy(event *Event, bpNode *chainNode) {
	s.logger.Printf("degeneracy: site on breakpoint %s", bpNode.Key)

	s.beach.Splay(bpNode, nil)
	oldBp := bpNode.Key
	oldEdge := bpNode.Value.BreakpointEdge

	leftArcNode := bpNode.Prev
	rightArcNode := bpNode.Next

	newArc := NewArc(event.Site)
	newArcNode := &chainNode{Key: newArc, Value: &ChainValue{}}

	leftBp := NewBreakpoint(oldBp.LeftSite, event.Site)
	rightBp := NewBreakpoint(event.Site, oldBp.RightSite)
	leftBpNode := &chainNode{Key: leftBp, Value: &ChainValue{}}
	rightBpNode := &chainNode{Key: rightBp, Value: &ChainValue{}}

	leftSubtree := bpNode.Left
	rightSubtree := bpNode.Right

	leftBpNode.SetLeft(leftSubtree)
	leftBpNode.SetRight(rightBpNode)
	rightBpNode.SetLeft(newArcNode)
	rightBpNode.SetRight(rightSubtree)

	s.beach.Root = leftBpNode
	leftBpNode.Parent = nil

	leftBpNode.Prev = leftArcNode
	leftArcNode.Next = leftBpNode
	leftBpNode.Next = newArcNode
	newArcNode.Prev = leftBpNode
	newArcNode.Next = rightBpNode
	rightBpNode.Prev = newArcNode
	rightBpNode.Next = rightArcNode
	rightArcNode.Prev = rightBpNode

	focus := oldBp.LeftSite.Pos
	if geom.SoftEquals(focus.Y, s.sweepY) {
		focus = oldBp.RightSite.Pos
	}
	vertexPos := geom.Vec2{X: event.Pos.X, Y: geom.ParabolaY(event.Pos.X, focus, s.sweepY)}

	label := s.factory.NumVertices() + 1
	newVertex := &dcel.Vertex{Label: label, Pos: vertexPos}
	s.factory.OfferVertex(newVertex)

	if oldEdge != nil {
		oldEdge.OfferVertex(newVertex)
	}

	leftEdge := newEdgeSkeleton(oldBp.LeftSite, event.Site)
	leftEdge.V1 = newVertex
	leftAngle := math.Atan(geom.PerpendicularBisectorSlope(oldBp.LeftSite.Pos, event.Site.Pos))
	if leftAngle > 0 {
		leftAngle -= math.Pi
	}
	leftEdge.Angle = leftAngle
	s.factory.OfferPair(leftEdge)
	leftBpNode.Value.BreakpointEdge = leftEdge

	rightEdge := newEdgeSkeleton(event.Site, oldBp.RightSite)
	rightEdge.V1 = newVertex
	rightAngle := math.Atan(geom.PerpendicularBisectorSlope(event.Site.Pos, oldBp.RightSite.Pos))
	if rightAngle > 0 {
		rightAngle -= math.Pi
	}
	rightEdge.Angle = rightAngle
	s.factory.OfferPair(rightEdge)
	rightBpNode.Value.BreakpointEdge = rightEdge

	if leftArcNode.Value.CircleEvent != nil {
		leftArcNode.Value.CircleEvent.Invalidated = true
		leftArcNode.Value.CircleEvent = nil
	}
	if rightArcNode.Value.CircleEvent != nil {
		rightArcNode.Value.CircleEvent.Invalidated = true
		rightArcNode.Value.CircleEvent = nil
	}

	circ1 := s.checkAndCreateCircleEvent(leftArcNode)
	circ2 := s.checkAndCreateCircleEvent(rightArcNode)
	s.offerCircleEventPair(circ1, circ2)
}

func (s *Sweeper) handleCircleEvent(event *Event) {
	if event.Invalidated {
		s.logger.Printf("circle event already invalidated, skipping")
		return
	}

	arcNode := event.ArcNode
	leftBpNode := arcNode.Prev
	rightBpNode := arcNode.Next

	cocircular := false
	for {
		if s.queue.Empty() {
			break
		}
		next := s.queue.Peek()
		if next.IsSiteEvent {
			break
		}
		if !geom.SoftEqualsVec2(next.Pos, event.Pos) {
			break
		}
		cocircular = true
		polled := s.queue.Poll()

		nextLeftBp := polled.ArcNode.Prev
		nextRightBp := polled.ArcNode.Next
		if s.beach.Less(nextLeftBp.Key, leftBpNode.Key) {
			leftBpNode = nextLeftBp
		}
		if s.beach.Less(rightBpNode.Key, nextRightBp.Key) {
			rightBpNode = nextRightBp
		}
	}
	if cocircular {
		s.logger.Printf("cocircular expansion at (%f,%f)", event.Pos.X, event.Pos.Y)
	}

	leftBp := leftBpNode.Key
	rightBp := rightBpNode.Key

	var vanishingArcNodes, vanishingBpNodes []*chainNode
	vanishingBpNodes = append(vanishingBpNodes, leftBpNode)
	node := leftBpNode
	for node != rightBpNode {
		node = node.Next
		vanishingArcNodes = append(vanishingArcNodes, node)
		node = node.Next
		vanishingBpNodes = append(vanishingBpNodes, node)
	}

	if event.CircleCenter.IsInfinite() {
		return
	}

	label := s.factory.NumVertices() + 1
	newVertex := &dcel.Vertex{Label: label, Pos: event.CircleCenter}
	s.factory.OfferVertex(newVertex)

	for _, bn := range vanishingBpNodes {
		if bn.Value.BreakpointEdge != nil {
			bn.Value.BreakpointEdge.OfferVertex(newVertex)
		}
	}

	mergedBp := NewBreakpoint(leftBp.LeftSite, rightBp.RightSite)
	mergedEdge := newEdgeSkeleton(leftBp.LeftSite, rightBp.RightSite)
	mergedEdge.V1 = newVertex
	angle := math.Atan(geom.PerpendicularBisectorSlope(leftBp.LeftSite.Pos, rightBp.RightSite.Pos))
	if angle > 0 {
		angle -= math.Pi
	}
	mergedEdge.Angle = angle
	s.factory.OfferPair(mergedEdge)
	mergedBpNode := &chainNode{Key: mergedBp, Value: &ChainValue{BreakpointEdge: mergedEdge}}

	prevOuterArc := leftBpNode.Prev
	nextOuterArc := rightBpNode.Next
	mergedBpNode.Prev = prevOuterArc
	mergedBpNode.Next = nextOuterArc
	if prevOuterArc != nil {
		prevOuterArc.Next = mergedBpNode
	}
	if nextOuterArc != nil {
		nextOuterArc.Prev = mergedBpNode
	}

	for _, an := range vanishingArcNodes {
		s.beach.RemoveNode(an, false)
	}
	for i := 1; i <= len(vanishingBpNodes)-2; i++ {
		s.beach.RemoveNode(vanishingBpNodes[i], false)
	}

	s.beach.Splay(leftBpNode, nil)
	s.beach.Splay(rightBpNode, nil)

	// The "<" shape: leftBpNode and rightBpNode are adjacent in list
	// order once the vanishing nodes between them are gone, so splaying
	// leftBpNode to the root and then rightBpNode to the root leaves
	// rightBpNode as the new root with leftBpNode as its left child —
	// see DESIGN.md's proof for internal/fortune.
	subtreeParent := rightBpNode.Parent
	mergedBpNode.SetLeft(leftBpNode.Left)
	mergedBpNode.SetRight(rightBpNode.Right)

	switch {
	case subtreeParent == nil:
		s.beach.Root = mergedBpNode
		mergedBpNode.Parent = nil
	case subtreeParent.Left == leftBpNode:
		subtreeParent.SetLeft(mergedBpNode)
	default:
		subtreeParent.SetRight(mergedBpNode)
	}

	prevNeighborArc := event.ArcNode.Prev.Prev
	nextNeighborArc := event.ArcNode.Next.Next
	if prevNeighborArc != nil && prevNeighborArc.Value.CircleEvent != nil {
		prevNeighborArc.Value.CircleEvent.Invalidated = true
	}
	if nextNeighborArc != nil && nextNeighborArc.Value.CircleEvent != nil {
		nextNeighborArc.Value.CircleEvent.Invalidated = true
	}

	circ1 := s.checkAndCreateCircleEvent(prevNeighborArc)
	circ2 := s.checkAndCreateCircleEvent(nextNeighborArc)
	s.offerCircleEventPair(circ1, circ2)
}

// checkAndCreateCircleEvent tests whether arcNode, together with its
// flanking breakpoints' outer foci, converges to a circle event below
// the current sweep line; see spec.md's candidacy rules.
func (s *Sweeper) checkAndCreateCircleEvent(arcNode *chainNode) *Event {
	if arcNode == nil {
		return nil
	}
	arc := arcNode.Key
	if !arc.IsArc || arcNode.Prev == nil || arcNode.Next == nil {
		return nil
	}

	a := arcNode.Prev.Key.LeftSite
	b := arc.Focus
	c := arcNode.Next.Key.RightSite

	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		return nil
	}
	if geom.Orientation(a.Pos, b.Pos, c.Pos) >= 0 {
		return nil
	}

	center, ok := geom.CircumCenter(a.Pos, b.Pos, c.Pos)
	if !ok {
		return nil
	}
	radius := center.DistanceTo(a.Pos)
	eventY := center.Y - radius
	if eventY+geom.Tolerance > s.sweepY {
		return nil
	}

	if prev := arcNode.Value.CircleEvent; prev != nil {
		if prev.Y() < eventY {
			return nil
		}
		prev.Invalidated = true
	}

	circleEvent := &Event{Pos: geom.Vec2{X: center.X, Y: eventY}, CircleCenter: center, ArcNode: arcNode}
	for _, site := range s.sites {
		if radius-center.DistanceTo(site.Pos) > geom.Tolerance {
			return nil
		}
	}
	arcNode.Value.CircleEvent = circleEvent
	return circleEvent
}

// offerCircleEventPair enqueues up to two new circle events, skipping a
// duplicate when both resolve to the same position for the same arc.
func (s *Sweeper) offerCircleEventPair(e1, e2 *Event) {
	var add1, add2 bool
	switch {
	case e1 != nil && e2 != nil:
		add1 = true
		add2 = !geom.SoftEquals(e1.Pos.X, e2.Pos.X) ||
			!geom.SoftEquals(e1.Pos.Y, e2.Pos.Y) ||
			e1.ArcNode.Key.Focus != e2.ArcNode.Key.Focus
	default:
		add1 = e1 != nil
		add2 = e2 != nil
	}

	if add1 {
		s.queue.Add(e1)
	}
	if add2 {
		s.queue.Add(e2)
	}
}
