package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bankops/atmrecon/internal/cmd/output"
	"github.com/bankops/atmrecon/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := map[string]string{
			"version": Version,
			"commit":  Commit,
			"date":    Date,
			"go":      runtime.Version(),
			"os":      runtime.GOOS,
			"arch":    runtime.GOARCH,
		}

		format := output.DetectFormat(viper.GetString(config.KeyOutput))
		if format == output.FormatTable {
			fmt.Fprintf(cmd.OutOrStdout(), "atmrecon %s (%s, %s) %s %s/%s\n",
				Version, Commit, Date, info["go"], info["os"], info["arch"])
			return nil
		}
		return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
