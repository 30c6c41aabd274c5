//go:build !integration

package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/sbt-cli/internal/sbt"
)

func goldenPoints() ([]sbt.Point, []int) {
	return []sbt.Point{{Qtn: 1, Rf: 5}, {Qtn: 0.5, Rf: 30}, {Qtn: 0.7, Rf: 90}, {Qtn: 8, Rf: 18}},
		[]int{3, 5, 6, 3}
}

func TestWriteClassification_Table(t *testing.T) {
	points, codes := goldenPoints()
	var buf bytes.Buffer
	require.NoError(t, writeClassification(&buf, "table", points, codes))

	out := buf.String()
	assert.Contains(t, out, "QTN")
	assert.Contains(t, out, "ZONE")
	assert.Contains(t, out, "clay - silty clay to clay")
	assert.Contains(t, out, "sands - clean sand to silty sand")
	assert.NotContains(t, out, "unclassified")
}

func TestWriteClassification_TableSummaryLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeClassification(&buf, "table",
		[]sbt.Point{{Qtn: 1000, Rf: 1000}, {Qtn: 7.9, Rf: 4.8}}, []int{0, 11}))
	assert.Contains(t, buf.String(), "1 unclassified, 1 overlapping of 2 points")
}

func TestWriteClassification_JSON(t *testing.T) {
	points, codes := goldenPoints()
	var buf bytes.Buffer
	require.NoError(t, writeClassification(&buf, "json", points, codes))

	var out classifyOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Points, 4)
	assert.Equal(t, 6, out.Points[2].Code)
	assert.Equal(t, 0.7, out.Points[2].Qtn)
	assert.Equal(t, 4, out.Summary.Total)
}

func TestWriteClassification_YAML(t *testing.T) {
	points, codes := goldenPoints()
	var buf bytes.Buffer
	require.NoError(t, writeClassification(&buf, "yaml", points, codes))

	var out classifyOutput
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Points, 4)
	assert.Equal(t, 5, out.Points[1].Code)
	assert.Equal(t, sbt.ZoneName(5), out.Points[1].Zone)
}

func TestWriteClassification_UnknownFormat(t *testing.T) {
	points, codes := goldenPoints()
	var buf bytes.Buffer
	err := writeClassification(&buf, "xml", points, codes)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestClassifyCommand_Golden(t *testing.T) {
	stdout, _, err := executeCommand(t, "classify", "--qtn", "1,0.5,0.7,8", "--rf", "5,30,90,18", "-o", "json")
	require.NoError(t, err)

	var out classifyOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	got := make([]int, len(out.Points))
	for i, p := range out.Points {
		got[i] = p.Code
	}
	assert.Equal(t, []int{3, 5, 6, 3}, got)
}

func TestClassifyCommand_LengthMismatch(t *testing.T) {
	_, _, err := executeCommand(t, "classify", "--qtn", "1,2", "--rf", "5")
	require.Error(t, err)
	assert.True(t, sbt.IsInvalidInput(err))
}
