package geo

import "github.com/golang/geo/s2"

// FitRingDo iterates over the cells approximating the region of a ring, with
// the smallest cell being maxLevel. Cells clear of the boundary are visited
// with interior set when contains reports their centre as inside, cells
// touching the boundary are visited at maxLevel. Return false in the iterator
// to stop the loop.
func FitRingDo(ring *Ring, maxLevel int, contains func(s2.Point) bool, fn func(cellID s2.CellID, interior bool) bool) {
	if maxLevel > s2.MaxLevel {
		maxLevel = s2.MaxLevel
	}

	segs := ring.Segments()
	for i := 0; i < 6; i++ {
		cellID := s2.CellIDFromFace(i)
		if nxt := fitRingDo(segs, cellID, maxLevel, contains, fn); !nxt {
			return
		}
	}
}

func fitRingDo(segs []Arc, cellID s2.CellID, maxLevel int, contains func(s2.Point) bool, fn func(s2.CellID, bool) bool) bool {
	cell := s2.CellFromCellID(cellID)

	touching := touchingCell(cell, segs)
	if len(touching) == 0 {
		if contains(cell.Center()) {
			return fn(cellID, true)
		}
		return true
	} else if cell.Level() >= maxLevel {
		return fn(cellID, false)
	}

	for _, childID := range cellID.Children() {
		if !fitRingDo(touching, childID, maxLevel, contains, fn) {
			return false
		}
	}
	return true
}

// touchingCell returns the segments that touch the cell.
func touchingCell(cell s2.Cell, segs []Arc) []Arc {
	var res []Arc
	for _, s := range segs {
		if cell.ContainsPoint(s.Start) || cell.ContainsPoint(s.End) {
			res = append(res, s)
			continue
		}

		crosser := s2.NewEdgeCrosser(s.Start, s.End)
		for k := 0; k < 4; k++ {
			if crosser.CrossingSign(cell.Vertex(k), cell.Vertex((k+1)%4)) != s2.DoNotCross {
				res = append(res, s)
				break
			}
		}
	}
	return res
}
