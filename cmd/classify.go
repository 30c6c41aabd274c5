package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/sbt-cli/internal/sbt"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify CPT points into SBT zones",
	Long:  "Classifies each (qtn, rf) pair against the nine Robertson (2010) zones and prints one code per point.",
	Example: `  sbt-cli classify --qtn 1,0.5,0.7,8 --rf 5,30,90,18
  sbt-cli classify --qtn 1 --rf 5 --output json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("classify"); err != nil {
			return err
		}

		qtn, _ := cmd.Flags().GetFloat64Slice("qtn")
		rf, _ := cmd.Flags().GetFloat64Slice("rf")
		output, _ := cmd.Flags().GetString("output")

		points, err := sbt.Pair(qtn, rf)
		if err != nil {
			return err
		}

		classifier := sbt.NewClassifier(zap.L())
		var codes []int
		if cfg.Classify.ParallelThreshold > 0 && len(points) >= cfg.Classify.ParallelThreshold {
			codes, err = classifier.ClassifyParallel(cmd.Context(), points, cfg.Classify.Workers)
		} else {
			codes, err = classifier.ClassifyPoints(points)
		}
		if err != nil {
			return err
		}

		return writeClassification(cmd.OutOrStdout(), output, points, codes)
	},
}

func init() {
	classifyCmd.Flags().Float64Slice("qtn", nil, "normalized cone tip resistance values (comma separated)")
	classifyCmd.Flags().Float64Slice("rf", nil, "friction ratio values in percent (comma separated)")
	classifyCmd.Flags().StringP("output", "o", "table", "output format: table, json, yaml")
	_ = classifyCmd.MarkFlagRequired("qtn")
	_ = classifyCmd.MarkFlagRequired("rf")
	rootCmd.AddCommand(classifyCmd)
}

// classifiedPoint is one row of classify output.
type classifiedPoint struct {
	Qtn  float64 `json:"qtn" yaml:"qtn"`
	Rf   float64 `json:"rf" yaml:"rf"`
	Code int     `json:"code" yaml:"code"`
	Zone string  `json:"zone" yaml:"zone"`
}

type classifyOutput struct {
	Points  []classifiedPoint `json:"points" yaml:"points"`
	Summary sbt.Summary       `json:"summary" yaml:"summary"`
}

func buildClassifyOutput(points []sbt.Point, codes []int) classifyOutput {
	rows := make([]classifiedPoint, len(points))
	for i, p := range points {
		rows[i] = classifiedPoint{Qtn: p.Qtn, Rf: p.Rf, Code: codes[i], Zone: sbt.ZoneName(codes[i])}
	}
	return classifyOutput{Points: rows, Summary: sbt.Summarize(codes)}
}

// writeClassification renders results in the requested output format.
func writeClassification(out io.Writer, format string, points []sbt.Point, codes []int) error {
	result := buildClassifyOutput(points, codes)

	switch format {
	case "table", "":
		formatClassifyTable(out, result)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return eris.Wrap(err, "classify: encode yaml")
		}
		return enc.Close()
	default:
		return eris.Errorf("classify: unknown output format %q", format)
	}
}

// formatClassifyTable writes a tabular list of classified points to w.
func formatClassifyTable(out io.Writer, result classifyOutput) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tQTN\tRF\tCODE\tZONE")
	_, _ = fmt.Fprintln(w, "-\t---\t--\t----\t----")
	for i, p := range result.Points {
		_, _ = fmt.Fprintf(w, "%d\t%g\t%g\t%d\t%s\n", i, p.Qtn, p.Rf, p.Code, p.Zone)
	}
	_ = w.Flush()

	if result.Summary.Unclassified > 0 || result.Summary.Overlap > 0 {
		_, _ = fmt.Fprintf(out, "\n%d unclassified, %d overlapping of %d points\n",
			result.Summary.Unclassified, result.Summary.Overlap, result.Summary.Total)
	}
}
