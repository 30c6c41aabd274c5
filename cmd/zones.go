package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sells-group/sbt-cli/internal/sbt"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Print the SBT zone boundaries as GeoJSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := sbt.ZonesGeoJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() { rootCmd.AddCommand(zonesCmd) }
