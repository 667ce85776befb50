package battlefield

// LineOfSight reports whether a straight line from one cell to another is clear.
// Only the cells strictly between from and to are checked, so an occupied
// target is still visible.
//
// Precondition: from and to are valid ids of m.
func LineOfSight(m Map, from, to int) bool {
	dim := m.Dimensions()
	x0, y0 := dim.Coordinates(from)
	x1, y1 := dim.Coordinates(to)

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	x, y := x0, y0
	for {
		if x == x1 && y == y1 {
			return true
		}
		if x != x0 || y != y0 {
			id, _ := dim.CellID(x, y)
			if c, ok := m.Get(id); !ok || c.SightBlocking() {
				return false
			}
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}
