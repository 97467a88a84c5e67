package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bankops/atmrecon/internal/cmd/output"
	"github.com/bankops/atmrecon/internal/config"
	"github.com/bankops/atmrecon/internal/ingest"
	"github.com/bankops/atmrecon/pkg/logging"
	"github.com/bankops/atmrecon/pkg/recon"
	"github.com/bankops/atmrecon/pkg/tabular"
)

var (
	ticketsPath    string
	exclusionsPath string
	faultsPath     string
	vendorPath     string
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile fault records against the downtime ticket log",
	Long: `Reconcile fault records against the downtime ticket log.

The ticket log is a raw CSV dump: report banners before the real header are
tolerated, and the header row is located by its "Ticket Key" and "Start Time"
markers. Each fault source is a headered CSV and is processed independently;
failure of one source does not block the others.`,
	Example: `  atmrecon reconcile --tickets th.csv --exclusions excl.csv --tolerance 30
  atmrecon reconcile --tickets th.csv --faults base.csv --vendor ncr.csv -o json`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&ticketsPath, "tickets", "", "downtime ticket log CSV (required)")
	reconcileCmd.Flags().StringVar(&exclusionsPath, "exclusions", "", "exclusion report CSV")
	reconcileCmd.Flags().StringVar(&faultsPath, "faults", "", "generic fault log CSV")
	reconcileCmd.Flags().StringVar(&vendorPath, "vendor", "", "vendor fault log CSV")
	reconcileCmd.Flags().Int(config.KeyTolerance, config.DefaultToleranceMinutes,
		"matching tolerance in minutes (0-120)")
	_ = reconcileCmd.MarkFlagRequired("tickets")

	if err := viper.BindPFlag(config.KeyTolerance, reconcileCmd.Flags().Lookup(config.KeyTolerance)); err != nil {
		panic(fmt.Sprintf("Failed to bind tolerance flag: %v", err))
	}

	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, _ []string) error {
	tolerance, err := config.Tolerance()
	if err != nil {
		return err
	}

	raw, err := ingest.OpenRawTable(ticketsPath)
	if err != nil {
		return err
	}

	logger := logging.Default()
	engine, err := recon.New(raw,
		recon.WithTolerance(tolerance),
		recon.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("loading ticket log %s: %w", ticketsPath, err)
	}

	batch, err := loadBatch()
	if err != nil {
		return err
	}
	if len(batch) == 0 {
		return fmt.Errorf("no fault sources given: use --exclusions, --faults or --vendor")
	}

	result := engine.ReconcileAll(batch)
	for source, srcErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", source, srcErr)
	}

	format := output.DetectFormat(viper.GetString(config.KeyOutput))
	if format == output.FormatTable {
		return renderTables(cmd, result)
	}
	formatter := output.NewFormatter(format)
	return formatter.Format(cmd.OutOrStdout(), batchView(result))
}

// loadBatch reads every fault source whose flag was provided.
func loadBatch() (map[recon.Source]*tabular.Table, error) {
	paths := map[recon.Source]string{
		recon.SourceExclusions: exclusionsPath,
		recon.SourceFaultLog:   faultsPath,
		recon.SourceVendor:     vendorPath,
	}

	batch := make(map[recon.Source]*tabular.Table)
	for source, path := range paths {
		if path == "" {
			continue
		}
		t, err := ingest.OpenTable(path)
		if err != nil {
			return nil, err
		}
		batch[source] = t
	}
	return batch, nil
}

// renderTables prints one table plus a summary line per reconciled source.
func renderTables(cmd *cobra.Command, result *recon.BatchResult) error {
	formatter := output.NewFormatter(output.FormatTable)
	w := cmd.OutOrStdout()

	for _, source := range recon.Sources {
		results, ok := result.Results[source]
		if !ok {
			continue
		}

		fmt.Fprintf(w, "\n%s\n", output.Title(string(source)))
		data := output.Data{
			Headers: []string{"ATM", "Category", "Status", "Ticket Key", "Fault Start", "Ticket Start", "Ticket End"},
		}
		for _, r := range results {
			data.Rows = append(data.Rows, []string{
				r.ATMID,
				r.Category,
				string(r.Status),
				r.TicketKey,
				fmtTime(r.FaultStart),
				fmtTime(r.TicketStart),
				fmtTime(r.TicketEnd),
			})
		}
		if err := formatter.Format(w, data); err != nil {
			return err
		}

		s := result.Summaries[source]
		fmt.Fprintf(w, "%d records: %d matched, %d unmatched, %d time mismatches\n",
			s.Total, s.Matched, s.Unmatched, s.TimeMismatch)
	}
	fmt.Fprintf(w, "\nrun %s complete\n", result.RunID)
	return nil
}

// batchView is the serializable form of a batch result for json/yaml output.
func batchView(result *recon.BatchResult) map[string]any {
	errs := make(map[string]string, len(result.Errors))
	for source, err := range result.Errors {
		errs[string(source)] = err.Error()
	}
	return map[string]any{
		"run_id":    result.RunID,
		"results":   result.Results,
		"summaries": result.Summaries,
		"errors":    errs,
	}
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
