package sbt

import "github.com/twpayne/go-geom"

// Contains reports whether (x, y) lies inside p's outer ring under the
// even-odd rule. A horizontal ray is cast toward +x and each edge that
// straddles y to the right of the point toggles the result. The straddle
// test is half-open (yi > y) != (yj > y), so horizontal edges never count
// and a vertex touching the ray is counted once.
func Contains(p *geom.Polygon, x, y float64) bool {
	if p == nil || p.NumLinearRings() == 0 {
		return false
	}
	if !p.Bounds().OverlapsPoint(geom.XY, geom.Coord{x, y}) {
		return false
	}
	return ringContains(p.LinearRing(0).FlatCoords(), p.Stride(), x, y)
}

func ringContains(flat []float64, stride int, x, y float64) bool {
	n := len(flat) / stride
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := flat[i*stride], flat[i*stride+1]
		xj, yj := flat[j*stride], flat[j*stride+1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
