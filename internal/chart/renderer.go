package chart

import (
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sells-group/sbt-cli/internal/sbt"
)

// Chart window, fixed to the published chart extent.
const (
	MinRf  = 0.1
	MaxRf  = 10.0
	MinQtn = 1.0
	MaxQtn = 1000.0
)

// InvalidModeMessage is reported when a chart is requested in an unknown mode.
const InvalidModeMessage = "ERROR - Please specify plot mode"

var zoneFill = map[int]color.Color{
	sbt.CodeSensitive:    color.RGBA{R: 255, A: 255},
	sbt.CodeOrganic:      color.RGBA{R: 160, G: 82, B: 45, A: 255},
	sbt.CodeClay:         color.RGBA{R: 70, G: 130, B: 180, A: 255},
	sbt.CodeSiltMixture:  color.RGBA{G: 128, B: 128, A: 255},
	sbt.CodeSandMixture:  color.RGBA{R: 143, G: 188, B: 143, A: 255},
	sbt.CodeSand:         color.RGBA{R: 222, G: 184, B: 135, A: 255},
	sbt.CodeGravellySand: color.RGBA{R: 255, G: 215, A: 255},
	sbt.CodeStiffSand:    color.RGBA{R: 128, G: 128, B: 128, A: 255},
	sbt.CodeStiffFine:    color.RGBA{R: 211, G: 211, B: 211, A: 255},
}

// Request describes one chart. Codes is optional; when set it must match
// Points in length and each point is labelled with its code.
type Request struct {
	Mode   Mode
	Format string
	Points []sbt.Point
	Codes  []int
}

// Renderer draws SBT charts at a fixed page size.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	log    *zap.Logger
}

// NewRenderer returns a Renderer producing charts of the given size in
// centimetres.
func NewRenderer(widthCM, heightCM float64, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.L()
	}
	return &Renderer{
		Width:  vg.Length(widthCM) * vg.Centimeter,
		Height: vg.Length(heightCM) * vg.Centimeter,
		log:    log,
	}
}

// Render draws the chart for req and writes it to w. An unknown mode is
// reported and returns ErrInvalidRenderMode without writing anything.
func (r *Renderer) Render(w io.Writer, req Request) error {
	if req.Mode != ModeColored && req.Mode != ModeOutline {
		r.log.Warn(InvalidModeMessage, zap.String("mode", string(req.Mode)))
		return eris.Wrapf(sbt.ErrInvalidRenderMode, "mode %q", req.Mode)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return eris.Errorf("chart: size %.2fx%.2f cm must be positive",
			float64(r.Width/vg.Centimeter), float64(r.Height/vg.Centimeter))
	}
	format, err := ParseFormat(req.Format)
	if err != nil {
		return err
	}
	if err := checkPlottable(req); err != nil {
		return err
	}

	p, err := r.build(req)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(r.Width, r.Height, format)
	if err != nil {
		return eris.Wrap(err, "chart: create writer")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return eris.Wrap(err, "chart: write")
	}

	r.log.Debug("chart rendered",
		zap.String("mode", string(req.Mode)),
		zap.String("format", format),
		zap.Int("points", len(req.Points)),
	)
	return nil
}

func (r *Renderer) build(req Request) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Rf (%)"
	p.Y.Label.Text = "Qtn (dimensionless)"
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	for _, z := range sbt.Polygons() {
		poly, err := plotter.NewPolygon(ringXYs(z))
		if err != nil {
			return nil, eris.Wrapf(err, "chart: zone %d polygon", z.Code)
		}
		poly.LineStyle.Color = color.Black
		poly.LineStyle.Width = vg.Points(0.75)
		if req.Mode == ModeColored {
			poly.Color = zoneFill[z.Code]
		} else {
			poly.Color = nil
		}
		p.Add(poly)
	}

	if len(req.Points) > 0 {
		xys := pointXYs(req.Points)
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, eris.Wrap(err, "chart: points")
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Color = color.Black
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(scatter)

		if len(req.Codes) > 0 {
			labels := make([]string, len(req.Codes))
			for i, c := range req.Codes {
				labels[i] = strconv.Itoa(c)
			}
			l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
			if err != nil {
				return nil, eris.Wrap(err, "chart: labels")
			}
			l.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
			p.Add(l)
		}
	}

	// Adding plotters widens the axes to their data; pin the chart window.
	p.X.Min, p.X.Max = MinRf, MaxRf
	p.Y.Min, p.Y.Max = MinQtn, MaxQtn
	return p, nil
}

// checkPlottable rejects points that cannot be placed on log axes.
func checkPlottable(req Request) error {
	if len(req.Codes) > 0 && len(req.Codes) != len(req.Points) {
		return eris.Wrapf(sbt.ErrInvalidInput, "chart: %d codes for %d points", len(req.Codes), len(req.Points))
	}
	for i, pt := range req.Points {
		if !positive(pt.Qtn) || !positive(pt.Rf) {
			return eris.Wrapf(sbt.ErrInvalidInput, "chart: point %d (%v, %v) is not plottable on log axes", i, pt.Qtn, pt.Rf)
		}
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func ringXYs(z sbt.Zone) plotter.XYs {
	n := z.Polygon.NumCoords()
	xys := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		c := z.Polygon.Coord(i)
		xys[i] = plotter.XY{X: c.X(), Y: c.Y()}
	}
	return xys
}

// pointXYs places each point the same way the classifier does.
func pointXYs(points []sbt.Point) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i] = plotter.XY{X: pt.Qtn, Y: pt.Rf}
	}
	return xys
}
