package sbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-geom"
)

func square() *geom.Polygon {
	return geom.NewPolygonFlat(geom.XY, []float64{0, 0, 2, 0, 2, 2, 0, 2, 0, 0}, []int{10})
}

func TestContains_Square(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 1, 1, true},
		{"near corner inside", 0.01, 1.99, true},
		{"left of square", -1, 1, false},
		{"right of square", 3, 1, false},
		{"above square", 1, 3, false},
		{"below square", 1, -0.5, false},
	}
	p := square()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(p, tt.x, tt.y))
		})
	}
}

func TestContains_Concave(t *testing.T) {
	// U shape open at the top between x=1 and x=2.
	u := geom.NewPolygonFlat(geom.XY, []float64{
		0, 0, 3, 0, 3, 3, 2, 3, 2, 1, 1, 1, 1, 3, 0, 3, 0, 0,
	}, []int{18})

	assert.True(t, Contains(u, 0.5, 2))
	assert.True(t, Contains(u, 2.5, 2))
	assert.True(t, Contains(u, 1.5, 0.5))
	assert.False(t, Contains(u, 1.5, 2), "notch is outside")
}

func TestContains_BoundaryDeterministic(t *testing.T) {
	p := square()
	// Half-open rule: bottom/left edges count as inside, top/right as outside.
	assert.True(t, Contains(p, 0, 1))
	assert.False(t, Contains(p, 2, 1))
	for i := 0; i < 10; i++ {
		assert.Equal(t, Contains(p, 0, 1), Contains(p, 0, 1))
	}
}

func TestContains_Degenerate(t *testing.T) {
	assert.False(t, Contains(nil, 1, 1))
	assert.False(t, Contains(geom.NewPolygon(geom.XY), 1, 1))

	// Zone 1 is digitised with identical x and y series: a zero-area sliver.
	z1, _ := LookupZone(CodeSensitive)
	assert.False(t, Contains(z1.Polygon, 3, 2))
	assert.False(t, Contains(z1.Polygon, 2, 3))
}
