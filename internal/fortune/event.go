package fortune

import (
	"fmt"

	"github.com/tanh-x/voronoi-viz/internal/dcel"
	"github.com/tanh-x/voronoi-viz/internal/geom"
	"github.com/tanh-x/voronoi-viz/internal/splay"
)

type chainNode = splay.Node[*Chain, *ChainValue]

// Event is a site or circle event. Circle events carry a back-pointer to
// the beach-line arc they would remove and a remembered circle centre;
// they are never re-keyed once queued, only flagged invalid.
type Event struct {
	IsSiteEvent bool
	Pos         geom.Vec2

	// Set when IsSiteEvent.
	Site *dcel.Site

	// Set when a circle event.
	CircleCenter geom.Vec2
	ArcNode      *chainNode
	Invalidated  bool
}

func (e *Event) X() float64 { return e.Pos.X }
func (e *Event) Y() float64 { return e.Pos.Y }

func (e *Event) String() string {
	if e.IsSiteEvent {
		return fmt.Sprintf("SiteEvent(%d)", e.Site.ID)
	}
	return fmt.Sprintf("CircleEvent(%f,%f)", e.Pos.X, e.Pos.Y)
}

// NewSiteEvent builds the event seeded for site.
func NewSiteEvent(site *dcel.Site) *Event {
	return &Event{IsSiteEvent: true, Pos: site.Pos, Site: site}
}

// eventLess is the event queue's total order: lower y first, then lower
// x, then site events before circle events on a tie. Coordinates that
// agree within geom.Tolerance count as equal.
func eventLess(a, b *Event) bool {
	if !geom.SoftEquals(a.Pos.Y, b.Pos.Y) {
		return a.Pos.Y < b.Pos.Y
	}
	if !geom.SoftEquals(a.Pos.X, b.Pos.X) {
		return a.Pos.X < b.Pos.X
	}
	if a.IsSiteEvent != b.IsSiteEvent {
		return a.IsSiteEvent
	}
	return false
}
