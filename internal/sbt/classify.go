package sbt

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Point is one CPT reading: normalized cone tip resistance and friction
// ratio (percent). Qtn is placed on the chart's horizontal coordinate and
// Rf on the vertical one, even though the zone tables digitise Rf along x.
type Point struct {
	Qtn float64 `json:"qtn" yaml:"qtn"`
	Rf  float64 `json:"rf" yaml:"rf"`
}

// Classifier maps CPT points to Soil Behaviour Type codes.
// The zero value is ready to use and logs through zap.L().
type Classifier struct {
	log *zap.Logger
}

// NewClassifier returns a Classifier that logs overlap diagnostics to log.
// A nil logger falls back to the global zap logger.
func NewClassifier(log *zap.Logger) *Classifier {
	return &Classifier{log: log}
}

func (c *Classifier) logger() *zap.Logger {
	if c == nil || c.log == nil {
		return zap.L()
	}
	return c.log
}

// Classify returns one code per (qtn[i], rf[i]) pair using the package
// default Classifier.
func Classify(qtn, rf []float64) ([]int, error) {
	return (&Classifier{}).Classify(qtn, rf)
}

// ClassifyPoints classifies points using the package default Classifier.
func ClassifyPoints(points []Point) ([]int, error) {
	return (&Classifier{}).ClassifyPoints(points)
}

// Classify returns one code per (qtn[i], rf[i]) pair. The series must have
// equal length and hold only finite values; otherwise the whole batch is
// rejected with ErrInvalidInput.
func (c *Classifier) Classify(qtn, rf []float64) ([]int, error) {
	points, err := Pair(qtn, rf)
	if err != nil {
		return nil, err
	}
	return c.ClassifyPoints(points)
}

// ClassifyPoints returns one code per point, in input order.
//
// A point's code is the sum of the codes of every zone that contains it.
// Zones are meant to be disjoint, so this is normally the single matching
// code, or 0 when no zone matches. Along a few digitised boundaries the
// zones overlap slightly and the sum is returned as is (zones 2 and 3
// together yield 5, zones 5 and 6 yield 11). Callers that need the
// individual zones should use Matches.
func (c *Classifier) ClassifyPoints(points []Point) ([]int, error) {
	if err := Validate(points); err != nil {
		return nil, err
	}

	zones := registry()
	codes := make([]int, len(points))
	for i, p := range points {
		codes[i] = c.classifyOne(zones, i, p)
	}
	return codes, nil
}

func (c *Classifier) classifyOne(zones []Zone, idx int, p Point) int {
	sum, hits := 0, 0
	for _, z := range zones {
		if Contains(z.Polygon, p.Qtn, p.Rf) {
			sum += z.Code
			hits++
		}
	}
	if hits > 1 {
		c.logger().Debug("sbt: point falls in overlapping zones",
			zap.Int("index", idx),
			zap.Float64("qtn", p.Qtn),
			zap.Float64("rf", p.Rf),
			zap.Int("zones", hits),
			zap.Int("code", sum),
		)
	}
	return sum
}

// Matches returns the codes of every zone containing p, in registry order.
// It returns nil when p lies outside all zones.
func Matches(p Point) []int {
	var codes []int
	for _, z := range registry() {
		if Contains(z.Polygon, p.Qtn, p.Rf) {
			codes = append(codes, z.Code)
		}
	}
	return codes
}

// Pair zips two equal-length series into points.
func Pair(qtn, rf []float64) ([]Point, error) {
	if len(qtn) != len(rf) {
		return nil, eris.Wrapf(ErrInvalidInput, "qtn has %d values, rf has %d", len(qtn), len(rf))
	}
	points := make([]Point, len(qtn))
	for i := range qtn {
		points[i] = Point{Qtn: qtn[i], Rf: rf[i]}
	}
	return points, nil
}

// Validate rejects points holding NaN or infinite values.
func Validate(points []Point) error {
	for i, p := range points {
		if !finite(p.Qtn) {
			return eris.Wrapf(ErrInvalidInput, "point %d: qtn is %v", i, p.Qtn)
		}
		if !finite(p.Rf) {
			return eris.Wrapf(ErrInvalidInput, "point %d: rf is %v", i, p.Rf)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
