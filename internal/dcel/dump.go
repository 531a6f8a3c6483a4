package dcel

import (
	"fmt"
	"io"
)

func vertexLabel(v *Vertex) string {
	if v.IsBoundary {
		return fmt.Sprintf("b%d", v.Label)
	}
	return fmt.Sprintf("v%d", v.Label)
}

func pairString(e *HalfEdge) string {
	return fmt.Sprintf("%s,%s", vertexPart(e.Origin), vertexPart(e.Dest))
}

func vertexPart(v *Vertex) string {
	if v.IsBoundary {
		return fmt.Sprintf("b%d", v.Label)
	}
	return fmt.Sprintf("%d", v.Label)
}

func posString(x, y float64) string {
	return fmt.Sprintf("(%f,%f)", x, y)
}

func edgeOrNil(e *HalfEdge) string {
	if e == nil {
		return "nil"
	}
	return pairString(e)
}

// DumpVoronoi writes the deterministic, line-oriented Voronoi text dump
// used as a test fixture format: a block of vertices, a block of cells,
// then a block of edges.
func DumpVoronoi(w io.Writer, d *DCEL) error {
	bw := func(format string, args ...interface{}) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}

	if err := bw("\n"); err != nil {
		return err
	}
	for _, v := range d.Vertices {
		incident := "nil"
		if v.IncidentEdge != nil {
			incident = "e" + pairString(v.IncidentEdge)
		}
		if err := bw("%s %s %s\n", vertexLabel(v), posString(v.X(), v.Y()), incident); err != nil {
			return err
		}
	}

	if err := bw("\n"); err != nil {
		return err
	}
	for _, f := range d.Faces {
		outer := "nil"
		if f.Outer != nil {
			outer = "e" + pairString(f.Outer)
		}
		inner := "nil"
		if f.Inner != nil {
			inner = "e" + pairString(f.Inner)
		}
		if err := bw("c%d %s %s\n", f.Label, outer, inner); err != nil {
			return err
		}
	}

	if err := bw("\n"); err != nil {
		return err
	}
	for _, e := range d.HalfEdges {
		face := "nil"
		if e.IncidentFace != nil {
			face = fmt.Sprintf("f%d", e.IncidentFace.Label)
		}
		if err := bw(
			"e%s %s e%s %s e%s e%s\n",
			pairString(e), vertexLabel(e.Origin), pairString(e.Twin), face,
			edgeOrNil(e.Next), edgeOrNil(e.Prev),
		); err != nil {
			return err
		}
	}
	return nil
}

// DumpDelaunay writes the deterministic Delaunay text dump: vertices,
// faces (triangles plus the single unbounded face), then edges.
func DumpDelaunay(w io.Writer, d *DCEL) error {
	bw := func(format string, args ...interface{}) error {
		_, err := fmt.Fprintf(w, format, args...)
		return err
	}

	if err := bw("\n"); err != nil {
		return err
	}
	for _, v := range d.Vertices {
		if err := bw("p%d %s %s\n", v.Label, posString(v.X(), v.Y()), edgeOrNil(v.IncidentEdge)); err != nil {
			return err
		}
	}

	if err := bw("\n"); err != nil {
		return err
	}
	for _, f := range d.Faces {
		outer := edgeOrNil(f.Outer)
		inner := edgeOrNil(f.Inner)
		if f.Unbounded {
			if err := bw("uf %s %s\n", outer, inner); err != nil {
				return err
			}
			continue
		}
		if err := bw("t%d %s %s\n", f.Label, outer, inner); err != nil {
			return err
		}
	}

	if err := bw("\n"); err != nil {
		return err
	}
	for _, e := range d.HalfEdges {
		face := "nil"
		if e.IncidentFace != nil {
			if e.IncidentFace.Unbounded {
				face = "uf"
			} else {
				face = fmt.Sprintf("t%d", e.IncidentFace.Label)
			}
		}
		if err := bw(
			"d%s p%d d%s %s d%s d%s\n",
			pairString(e), e.Origin.Label, pairString(e.Twin), face,
			edgeOrNilD(e.Next), edgeOrNilD(e.Prev),
		); err != nil {
			return err
		}
	}
	return nil
}

func edgeOrNilD(e *HalfEdge) string {
	if e == nil {
		return "nil"
	}
	return "d" + pairString(e)
}
