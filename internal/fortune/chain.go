// Package fortune is the sweep-line engine: the beach-line state machine
// (C6), the edge-skeleton factory (C5), and the bounding-box clipper (C7).
package fortune

import (
	"fmt"

	"github.com/tanh-x/voronoi-viz/internal/dcel"
	"github.com/tanh-x/voronoi-viz/internal/geom"
)

// Chain is a beach-line node: either an arc (a leaf, holding the site
// whose parabola it traces) or a breakpoint (an internal node, holding
// the two foci whose parabolas currently cross there).
type Chain struct {
	IsArc bool

	// Set when IsArc.
	Focus *dcel.Site

	// Set when !IsArc.
	LeftSite, RightSite *dcel.Site
}

// NewArc constructs an arc chain focused at site.
func NewArc(site *dcel.Site) *Chain {
	return &Chain{IsArc: true, Focus: site}
}

// NewBreakpoint constructs a breakpoint chain between left and right.
func NewBreakpoint(left, right *dcel.Site) *Chain {
	return &Chain{IsArc: false, LeftSite: left, RightSite: right}
}

// FieldOrdering is this chain's position along the beach line at the
// given directrix (the current sweep y): the arc's focus x, or the
// breakpoint's current intersection x (falling back to the midpoint of
// the two foci when the parabolas haven't separated yet).
func (c *Chain) FieldOrdering(directrix float64) float64 {
	if c.IsArc {
		return c.Focus.X()
	}
	x, ok := geom.BreakpointX(c.LeftSite.Pos, c.RightSite.Pos, directrix)
	if !ok {
		return (c.LeftSite.X() + c.RightSite.X()) / 2.0
	}
	return x
}

func (c *Chain) String() string {
	if c.IsArc {
		return fmt.Sprintf("Arc[%d]", c.Focus.ID)
	}
	return fmt.Sprintf("BP[%d,%d]", c.LeftSite.ID, c.RightSite.ID)
}

// ChainValue is the splay node payload: an arc node carries its pending
// circle event (if any); a breakpoint node carries the edge skeleton it
// is tracing.
type ChainValue struct {
	BreakpointEdge *EdgeSkeleton
	CircleEvent    *Event
}
