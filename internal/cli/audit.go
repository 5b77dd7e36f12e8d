package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ben-kodbiz/quranlingo/internal/audit"
	"github.com/ben-kodbiz/quranlingo/internal/dataset"
	"github.com/ben-kodbiz/quranlingo/internal/report"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report ayah counts and numbering problems per surah",
	Long: `Audit prints, for every surah in the dataset, how many ayahs are present
and the numbers of the first and last one. It warns when the last number
exceeds the ayahs present and when a surah was cut off after five ayahs.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare ayah counts against the true surah lengths",
	Long: `Reconcile compares the ayahs present for each known surah with its true
length and summarizes the surahs that are short. Surahs without a known
length are skipped; add them under reference_counts in the config file.`,
	Args: cobra.NoArgs,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(reconcileCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ds, err := dataset.Load(cfg.Data.Dataset)
	if err != nil {
		return err
	}
	return report.Audit(cmd.OutOrStdout(), audit.Audit(ds))
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ds, err := dataset.Load(cfg.Data.Dataset)
	if err != nil {
		return err
	}

	reference := audit.ReferenceCounts(cfg.ReferenceCounts)
	r := audit.Reconcile(ds, reference)
	log.Debug("reconciled ayah counts",
		zap.Int("reference", len(reference)),
		zap.Int("checked", len(r.Checked)),
		zap.Int("short", len(r.Deficits)),
	)
	return report.Reconcile(cmd.OutOrStdout(), r)
}
