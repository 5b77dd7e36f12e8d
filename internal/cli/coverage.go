package cli

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ben-kodbiz/quranlingo/internal/coverage"
	"github.com/ben-kodbiz/quranlingo/internal/dataset"
	"github.com/ben-kodbiz/quranlingo/internal/glossary"
	"github.com/ben-kodbiz/quranlingo/internal/model"
	"github.com/ben-kodbiz/quranlingo/internal/report"
)

// missingCmd represents the missing command
var missingCmd = &cobra.Command{
	Use:   "missing <surah-id>",
	Short: "List the words of one surah that the glossary lacks",
	Long: `Missing checks every word entry of a surah, duplicates included, against
the glossary and lists the entries without a meaning.

Example:
  quranlingo missing al-ghashiyah
  quranlingo missing al-asr --glossary word_meanings.json`,
	Args: cobra.ExactArgs(1),
	RunE: runMissing,
}

// coverageCmd represents the coverage command
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Show glossary coverage for every surah",
	Long: `Coverage prints, for every surah, how many of its distinct words the
glossary defines and flags surahs below the completion threshold.`,
	Args: cobra.NoArgs,
	RunE: runCoverage,
}

func init() {
	rootCmd.AddCommand(missingCmd)
	rootCmd.AddCommand(coverageCmd)

	coverageCmd.Flags().Float64("threshold", 0, "coverage percent counted as complete (default: coverage.threshold)")
	coverageCmd.Flags().String("detail", "", "list the missing words of the surah whose id contains this text (default: coverage.detail)")
	_ = viper.BindPFlag("coverage.threshold", coverageCmd.Flags().Lookup("threshold"))
	_ = viper.BindPFlag("coverage.detail", coverageCmd.Flags().Lookup("detail"))
}

func runMissing(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ds, err := dataset.Load(cfg.Data.Dataset)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	surah, err := dataset.Find(ds, args[0])
	if errors.Is(err, dataset.ErrNotFound) {
		return report.SurahNotFound(out, args[0])
	}
	if err != nil {
		return err
	}

	g, err := loadGlossary(cfg, log)
	if err != nil {
		return err
	}
	if err := report.GlossarySize(out, len(g), filepath.Base(cfg.Data.GlossarySource)); err != nil {
		return err
	}
	return report.MissingWords(out, coverage.CheckSurah(surah, g))
}

func runCoverage(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ds, err := dataset.Load(cfg.Data.Dataset)
	if err != nil {
		return err
	}

	g, err := loadGlossary(cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := report.GlossarySize(out, len(g), filepath.Base(cfg.Data.GlossarySource)); err != nil {
		return err
	}

	a := coverage.Analyze(ds, g, coverage.Options{
		Threshold: cfg.Coverage.Threshold,
		SkipIDs:   cfg.Coverage.SkipIDs,
	})
	log.Debug("analyzed coverage",
		zap.Int("surahs", len(a.Surahs)),
		zap.Int("needs_fixing", len(a.NeedsFixing())),
		zap.Float64("threshold", a.Threshold),
	)
	return report.Coverage(out, a, cfg.Coverage.Detail)
}

// loadGlossary reads the glossary the coverage commands check against
func loadGlossary(cfg *model.Config, log *zap.Logger) (glossary.Glossary, error) {
	g, err := glossary.Load(cfg.Data.GlossarySource, cfg.Data.GlossaryTable)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded glossary", zap.String("path", cfg.Data.GlossarySource), zap.Int("words", len(g)))
	return g, nil
}
