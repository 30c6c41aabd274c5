// Package sbt classifies Cone Penetration Test soundings into Robertson (2010)
// Soil Behaviour Type zones by point-in-polygon membership on the
// normalized chart.
package sbt

import "strconv"

// Zone codes, numbered as on Robertson's (2010) chart.
const (
	CodeUnclassified = 0
	CodeSensitive    = 1
	CodeOrganic      = 2
	CodeClay         = 3
	CodeSiltMixture  = 4
	CodeSandMixture  = 5
	CodeSand         = 6
	CodeGravellySand = 7
	CodeStiffSand    = 8
	CodeStiffFine    = 9
)

// ZoneCount is the number of zones on the chart.
const ZoneCount = 9

// MaxCode is the largest value Classify can return: a point inside every
// zone at once sums to 1+2+...+9.
const MaxCode = ZoneCount * (ZoneCount + 1) / 2

var zoneNames = [ZoneCount + 1]string{
	CodeUnclassified: "unclassified",
	CodeSensitive:    "sensitive, fine grained",
	CodeOrganic:      "organic soils - clay",
	CodeClay:         "clay - silty clay to clay",
	CodeSiltMixture:  "silt mixtures - clayey silt to silty clay",
	CodeSandMixture:  "sand mixtures - silty sand to sandy silt",
	CodeSand:         "sands - clean sand to silty sand",
	CodeGravellySand: "gravelly sand to dense sand",
	CodeStiffSand:    "very stiff sand to clayey sand",
	CodeStiffFine:    "very stiff, fine grained",
}

// ZoneName returns the Robertson label for a classification code.
// Codes above 9 can only come from overlapping zones and are reported as
// "overlap"; negative codes are "invalid".
func ZoneName(code int) string {
	switch {
	case code < 0:
		return "invalid"
	case code <= ZoneCount:
		return zoneNames[code]
	case code <= MaxCode:
		return "overlap"
	default:
		return "invalid (" + strconv.Itoa(code) + ")"
	}
}
