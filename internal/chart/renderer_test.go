package chart

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sells-group/sbt-cli/internal/sbt"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func samplePoints() []sbt.Point {
	return []sbt.Point{{Qtn: 1, Rf: 5}, {Qtn: 0.5, Rf: 30}, {Qtn: 0.7, Rf: 90}, {Qtn: 8, Rf: 18}}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"colored", ModeColored},
		{"Coloured", ModeColored},
		{"c", ModeColored},
		{" outline ", ModeOutline},
		{"w", ModeOutline},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseMode("x")
	assert.True(t, sbt.IsInvalidRenderMode(err))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/png", ContentType(FormatPNG))
	assert.Equal(t, "image/svg+xml", ContentType(FormatSVG))
}

func TestRender_PNG(t *testing.T) {
	r := NewRenderer(12, 10, zap.NewNop())
	var buf bytes.Buffer

	err := r.Render(&buf, Request{Mode: ModeColored, Format: FormatPNG, Points: samplePoints()})
	require.NoError(t, err)
	require.Greater(t, buf.Len(), len(pngMagic))
	assert.Equal(t, pngMagic, buf.Bytes()[:len(pngMagic)])
}

func TestRender_SVGOutlineWithCodes(t *testing.T) {
	r := NewRenderer(12, 10, zap.NewNop())
	var buf bytes.Buffer

	err := r.Render(&buf, Request{
		Mode:   ModeOutline,
		Format: FormatSVG,
		Points: samplePoints(),
		Codes:  []int{3, 5, 6, 3},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "Rf (%)")
	assert.Contains(t, out, "Qtn (dimensionless)")
}

func TestRender_NoPoints(t *testing.T) {
	r := NewRenderer(12, 10, zap.NewNop())
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, Request{Mode: ModeOutline, Format: FormatSVG}))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRender_InvalidModeDrawsNothing(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	r := NewRenderer(12, 10, zap.New(core))
	var buf bytes.Buffer

	err := r.Render(&buf, Request{Mode: Mode("x"), Format: FormatPNG, Points: samplePoints()})
	require.Error(t, err)
	assert.True(t, sbt.IsInvalidRenderMode(err))
	assert.Zero(t, buf.Len())
	assert.Equal(t, 1, logs.FilterMessage(InvalidModeMessage).Len())
}

func TestRender_RejectsUnplottable(t *testing.T) {
	r := NewRenderer(12, 10, zap.NewNop())
	tests := []struct {
		name string
		req  Request
	}{
		{"zero qtn", Request{Points: []sbt.Point{{Qtn: 0, Rf: 5}}}},
		{"negative rf", Request{Points: []sbt.Point{{Qtn: 1, Rf: -5}}}},
		{"nan", Request{Points: []sbt.Point{{Qtn: math.NaN(), Rf: 5}}}},
		{"inf", Request{Points: []sbt.Point{{Qtn: 1, Rf: math.Inf(1)}}}},
		{"codes mismatch", Request{Points: samplePoints(), Codes: []int{3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Mode = ModeColored
			tt.req.Format = FormatPNG
			var buf bytes.Buffer
			err := r.Render(&buf, tt.req)
			assert.True(t, sbt.IsInvalidInput(err))
			assert.Zero(t, buf.Len())
		})
	}
}

func TestRender_NonPositiveSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero width", 0, 10},
		{"zero height", 12, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(tt.width, tt.height, zap.NewNop())
			var buf bytes.Buffer
			var err error
			require.NotPanics(t, func() {
				err = r.Render(&buf, Request{Mode: ModeColored, Format: FormatPNG, Points: samplePoints()})
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "must be positive")
			assert.Zero(t, buf.Len())
		})
	}
}

func TestRender_UnsupportedFormat(t *testing.T) {
	r := NewRenderer(12, 10, zap.NewNop())
	var buf bytes.Buffer
	err := r.Render(&buf, Request{Mode: ModeColored, Format: "gif"})
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
