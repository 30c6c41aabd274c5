package sbt

// Summary tallies a batch of classification codes.
type Summary struct {
	Total        int         `json:"total" yaml:"total"`
	Unclassified int         `json:"unclassified" yaml:"unclassified"`
	Overlap      int         `json:"overlap" yaml:"overlap"`
	ByCode       map[int]int `json:"by_code" yaml:"by_code"`
}

// Summarize counts codes by value. Codes above 9 are counted under Overlap
// as well as ByCode; sums of overlapping zones that stay at or below 9 are
// indistinguishable from a single zone and are not.
func Summarize(codes []int) Summary {
	s := Summary{Total: len(codes), ByCode: make(map[int]int)}
	for _, c := range codes {
		s.ByCode[c]++
		switch {
		case c == CodeUnclassified:
			s.Unclassified++
		case c > ZoneCount:
			s.Overlap++
		}
	}
	return s
}
