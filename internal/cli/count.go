package cli

import (
	"github.com/spf13/cobra"

	"github.com/ben-kodbiz/quranlingo/internal/dataset"
	"github.com/ben-kodbiz/quranlingo/internal/report"
	"github.com/ben-kodbiz/quranlingo/internal/vocab"
)

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count [dataset]",
	Short: "Tally vocabulary items per surah",
	Long: `Count tallies the question entries and ayah words of every surah and
prints running totals. It reads data.vocab_dataset unless a dataset path
is given.

Example:
  quranlingo count
  quranlingo count surahs.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCount,
}

func init() {
	rootCmd.AddCommand(countCmd)
}

func runCount(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	path := cfg.Data.VocabDataset
	if len(args) == 1 {
		path = args[0]
	}

	ds, err := dataset.Load(path)
	if err != nil {
		return err
	}
	return report.Vocab(cmd.OutOrStdout(), vocab.Count(ds))
}
