// Package voronoi computes Voronoi diagrams and their Delaunay dual from a
// set of 2-D sites via Fortune's sweep-line algorithm.
package voronoi

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/tanh-x/voronoi-viz/internal/dcel"
	"github.com/tanh-x/voronoi-viz/internal/fortune"
	"github.com/tanh-x/voronoi-viz/internal/geom"
)

// Site is an input point. ID must be a dense, positive, caller-assigned
// identifier — it survives into the Voronoi face label and the Delaunay
// vertex label.
type Site struct {
	X, Y float64
	ID   int
}

// Options configures a diagram computation.
type Options struct {
	// Logger receives the sweep's step-by-step trace. Defaults to
	// log.Default() when nil.
	Logger *log.Logger
}

// Voronoi drives one sweep computation: New seeds it, Generate (or
// repeated HandleNextEvent calls) drains it, and the accessors below read
// out the result.
type Voronoi struct {
	sites []Site
	opts  Options

	sweeper *fortune.Sweeper
	result  *dcel.DCEL
}

// New validates sites and constructs a fresh, unstepped computation.
func New(sites []Site, opts Options) (*Voronoi, error) {
	if len(sites) == 0 {
		return nil, errors.New("voronoi: at least one site is required")
	}

	seen := make(map[int]bool, len(sites))
	for _, s := range sites {
		if s.ID <= 0 {
			return nil, fmt.Errorf("voronoi: site ID must be positive, got %d", s.ID)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("voronoi: duplicate site ID %d", s.ID)
		}
		seen[s.ID] = true
	}

	v := &Voronoi{sites: sites, opts: opts}
	v.Reset()
	return v, nil
}

func (v *Voronoi) internalSites() []*dcel.Site {
	sites := make([]*dcel.Site, len(v.sites))
	for i, s := range v.sites {
		sites[i] = &dcel.Site{Pos: geom.Vec2{X: s.X, Y: s.Y}, ID: s.ID}
	}
	return sites
}

// Reset rebuilds the sweep state from scratch, discarding any progress.
func (v *Voronoi) Reset() {
	v.sweeper = fortune.NewSweeper(v.internalSites(), v.opts.Logger)
	v.result = nil
}

// HandleNextEvent steps the sweep by a single event; a no-op once the
// queue is drained.
func (v *Voronoi) HandleNextEvent() {
	v.sweeper.StepNextEvent()
}

// Generate drains the sweep, builds the clipped Voronoi DCEL, and caches
// it for the accessors below.
func (v *Voronoi) Generate() *dcel.DCEL {
	v.result = v.sweeper.ComputeAll()
	return v.result
}

// VoronoiDCEL returns the diagram built by the most recent Generate call,
// or nil if Generate has not run yet.
func (v *Voronoi) VoronoiDCEL() *dcel.DCEL { return v.result }

// Delaunay returns the straight-line dual of the most recent Generate
// call's result, or nil if Generate has not run yet.
func (v *Voronoi) Delaunay() *dcel.DCEL {
	if v.result == nil {
		return nil
	}
	return dcel.BuildDual(v.result, v.internalSites())
}

// DumpVoronoi writes the Voronoi DCEL's deterministic text dump.
func (v *Voronoi) DumpVoronoi(w io.Writer) error {
	if v.result == nil {
		return errors.New("voronoi: Generate has not run yet")
	}
	return dcel.DumpVoronoi(w, v.result)
}

// DumpDelaunay writes the Delaunay dual's deterministic text dump.
func (v *Voronoi) DumpDelaunay(w io.Writer) error {
	dual := v.Delaunay()
	if dual == nil {
		return errors.New("voronoi: Generate has not run yet")
	}
	return dcel.DumpDelaunay(w, dual)
}
