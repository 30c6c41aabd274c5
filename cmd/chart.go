package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/sbt-cli/internal/chart"
	"github.com/sells-group/sbt-cli/internal/sbt"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render the SBT chart with plotted points",
	Long:  "Draws the nine Robertson (2010) zones on log-log axes (Rf 0.1-10 %, Qtn 1-1000) and overlays the given points.",
	Example: `  sbt-cli chart --qtn 1,0.5,0.7,8 --rf 5,30,90,18 --out chart.png
  sbt-cli chart --qtn 1 --rf 5 --mode outline --format svg --out -`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("chart"); err != nil {
			return err
		}

		qtn, _ := cmd.Flags().GetFloat64Slice("qtn")
		rf, _ := cmd.Flags().GetFloat64Slice("rf")
		modeFlag, _ := cmd.Flags().GetString("mode")
		formatFlag, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")
		labels, _ := cmd.Flags().GetBool("labels")

		if modeFlag == "" {
			modeFlag = cfg.Chart.Mode
		}
		if formatFlag == "" {
			formatFlag = cfg.Chart.Format
		}

		mode, err := chart.ParseMode(modeFlag)
		if err != nil {
			// Reported, not fatal: nothing is drawn.
			fmt.Fprintln(cmd.ErrOrStderr(), chart.InvalidModeMessage)
			zap.L().Warn("chart: invalid mode", zap.String("mode", modeFlag))
			return nil
		}
		format, err := chart.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		points, err := sbt.Pair(qtn, rf)
		if err != nil {
			return err
		}
		req := chart.Request{Mode: mode, Format: format, Points: points}
		if labels {
			codes, err := sbt.NewClassifier(zap.L()).ClassifyPoints(points)
			if err != nil {
				return err
			}
			req.Codes = codes
		}

		renderer := chart.NewRenderer(cfg.Chart.WidthCM, cfg.Chart.HeightCM, zap.L())
		var buf bytes.Buffer
		if err := renderer.Render(&buf, req); err != nil {
			return err
		}

		if outPath == "" {
			outPath = "sbt-chart." + format
		}
		if err := writeChart(cmd.OutOrStdout(), outPath, buf.Bytes()); err != nil {
			return err
		}
		if outPath != "-" {
			zap.L().Info("chart written", zap.String("path", outPath), zap.Int("points", len(points)))
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().Float64Slice("qtn", nil, "normalized cone tip resistance values (comma separated)")
	chartCmd.Flags().Float64Slice("rf", nil, "friction ratio values in percent (comma separated)")
	chartCmd.Flags().String("mode", "", "zone style: colored (c) or outline (w); default from config")
	chartCmd.Flags().String("format", "", "image format: png or svg; default from config")
	chartCmd.Flags().String("out", "", `output file, "-" for stdout (default sbt-chart.<format>)`)
	chartCmd.Flags().Bool("labels", false, "label each point with its SBT code")
	rootCmd.AddCommand(chartCmd)
}

// writeChart writes rendered bytes to path, or to stdout when path is "-".
func writeChart(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return eris.Wrap(err, "chart: write stdout")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "chart: write %s", path)
	}
	return nil
}
