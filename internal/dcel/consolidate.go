package dcel

import "sort"

// Consolidate threads Next/Prev around every vertex by angle-sorting its
// incident (origin-rooted) half-edges, so that following .Next from any
// half-edge traces the boundary cycle of its incident face. Must be run
// once, after every vertex and edge has been inserted.
func Consolidate(d *DCEL) {
	incidence := make(map[*Vertex][]*HalfEdge, len(d.Vertices))
	for _, v := range d.Vertices {
		incidence[v] = nil
	}
	for _, e := range d.HalfEdges {
		if _, ok := incidence[e.Origin]; ok {
			incidence[e.Origin] = append(incidence[e.Origin], e)
		}
	}

	for _, v := range d.Vertices {
		edges := incidence[v]
		if len(edges) == 0 {
			continue
		}
		sort.Slice(edges, func(i, j int) bool { return edges[i].Angle < edges[j].Angle })

		if len(edges) == 1 {
			e := edges[0]
			v.IncidentEdge = e
			chainNext(e.Twin, e)
			continue
		}

		e := edges[len(edges)-1]
		v.IncidentEdge = e
		for _, next := range edges {
			chainNext(next.Twin, e)
			e = next
		}
	}

	d.Consolidated = true
}
