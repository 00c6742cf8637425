package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docwatch/internal/core/domain"
)

// errNothingStored makes scan exit non-zero when no document was found.
var errNothingStored = errors.New("no documents stored")

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan configured directories once and report",
	Long: `Walks every configured directory, extracts documentation from the
matching files and prints a summary. Per-file problems are reported as
warnings; the command fails only when no document could be stored.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(scanCmd)
}

type scanReport struct {
	FilesScanned    int      `json:"files_scanned"`
	DocumentsStored int      `json:"documents_stored"`
	Warnings        []string `json:"warnings,omitempty"`
}

func runScan(cmd *cobra.Command, _ []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	report, err := rt.Load(cmd.Context())
	if err != nil {
		return err
	}

	if scanJSON {
		if err := writeJSON(cmd.OutOrStdout(), newScanReport(&report)); err != nil {
			return err
		}
	} else {
		p := newPrinter(cmd.OutOrStdout())
		p.printf("%s\n", p.title(rt.Config().Title))
		p.printf("Scanned %d files, stored %d documents\n", report.FilesScanned, report.DocumentsStored)
		if n := report.Warnings(); n > 0 {
			p.printf("%d warnings:\n", n)
			for _, w := range newScanReport(&report).Warnings {
				p.printf("  %s\n", p.dim(w))
			}
		}
	}

	if report.DocumentsStored == 0 {
		return errNothingStored
	}
	return nil
}

func newScanReport(r *domain.LoadReport) scanReport {
	out := scanReport{
		FilesScanned:    r.FilesScanned,
		DocumentsStored: r.DocumentsStored,
	}
	for _, e := range r.ScanErrors {
		out.Warnings = append(out.Warnings, e.Error())
	}
	for _, e := range r.ExtractErrors {
		out.Warnings = append(out.Warnings, e.Error())
	}
	for _, e := range r.InsertErrors {
		out.Warnings = append(out.Warnings, e.Error())
	}
	return out
}
