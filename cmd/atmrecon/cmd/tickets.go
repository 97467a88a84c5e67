package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bankops/atmrecon/internal/cmd/output"
	"github.com/bankops/atmrecon/internal/config"
	"github.com/bankops/atmrecon/internal/ingest"
	"github.com/bankops/atmrecon/pkg/recon"
	"github.com/bankops/atmrecon/pkg/tabular"
)

var ticketsCmd = &cobra.Command{
	Use:   "tickets <file>",
	Short: "Inspect a downtime ticket log after header discovery",
	Long: `Inspect a downtime ticket log after header discovery.

Loads a raw ticket dump, locates the true header row behind any report
banners, and prints the cleaned table. Useful for verifying that a dump is
usable before running a reconciliation batch.`,
	Args: cobra.ExactArgs(1),
	RunE: runTickets,
}

func init() {
	rootCmd.AddCommand(ticketsCmd)
}

func runTickets(cmd *cobra.Command, args []string) error {
	raw, err := ingest.OpenRawTable(args[0])
	if err != nil {
		return err
	}
	clean, err := recon.CleanTicketTable(raw)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", args[0], err)
	}

	format := output.DetectFormat(viper.GetString(config.KeyOutput))
	if format == output.FormatTable {
		formatter := output.NewFormatter(output.FormatTable)
		if err := formatter.Format(cmd.OutOrStdout(), output.Data{
			Headers: clean.Headers,
			Rows:    clean.Rows,
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d tickets\n", clean.Len())
		return nil
	}
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), ticketsView(clean))
}

// ticketsView is the serializable form of a cleaned ticket table.
func ticketsView(clean *tabular.Table) map[string]any {
	return map[string]any{
		"headers": clean.Headers,
		"rows":    clean.Rows,
		"count":   clean.Len(),
	}
}
