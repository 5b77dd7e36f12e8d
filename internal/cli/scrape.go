package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ben-kodbiz/quranlingo/internal/dataset"
	"github.com/ben-kodbiz/quranlingo/internal/glossary"
	"github.com/ben-kodbiz/quranlingo/internal/pipeline"
)

var (
	scrapeLimit   int
	scrapeNoCache bool
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch English meanings for dataset words from the dictionary",
	Long: `Scrape looks up every dataset word that the meanings file does not have
yet, one request at a time with a pause between requests, and rewrites the
file after each word that yields a meaning. Interrupting the run keeps
everything stored so far.

Example:
  quranlingo scrape --limit 20
  quranlingo scrape --delay 5s --cache-file meanings.json`,
	Args: cobra.NoArgs,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "maximum number of words to look up (0 = all)")
	scrapeCmd.Flags().BoolVar(&scrapeNoCache, "no-cache", false, "disable the page cache (force fresh fetch)")
	scrapeCmd.Flags().Duration("delay", 0, "pause between requests (default: scrape.delay)")
	scrapeCmd.Flags().Bool("ignore-robots", false, "do not consult robots.txt")
	_ = viper.BindPFlag("scrape.delay", scrapeCmd.Flags().Lookup("delay"))
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if scrapeNoCache {
		cfg.Cache.Enabled = false
	}
	if ignore, _ := cmd.Flags().GetBool("ignore-robots"); ignore {
		cfg.Scrape.RespectRobots = false
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := dataset.Load(cfg.Data.Dataset)
	if err != nil {
		return err
	}
	words := dataset.UniqueWords(ds)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Found %d unique Arabic words\n", len(words))

	known, err := glossary.LoadCache(cfg.Data.GlossaryCache)
	if err != nil {
		return fmt.Errorf("load existing meanings: %w", err)
	}
	fmt.Fprintf(out, "Loaded %d existing word meanings\n", len(known))
	fmt.Fprintf(out, "Scraping meanings for %d words\n", len(pipeline.Pending(words, known, scrapeLimit)))

	scraper := pipeline.NewScraper(cfg, cfg.Data.GlossaryCache, log)
	stats, err := scraper.Run(ctx, words, known, scrapeLimit)
	log.Debug("scrape finished",
		zap.Int("pending", stats.Pending),
		zap.Int("requested", stats.Requested),
		zap.Int("from_cache", stats.FromCache),
		zap.Int("stored", stats.Stored),
		zap.Int("empty", stats.Empty),
		zap.Int("disallowed", stats.Disallowed),
		zap.Int("failed", stats.Failed),
	)
	if errors.Is(err, context.Canceled) {
		log.Warn("scrape interrupted", zap.Int("stored", stats.Stored))
		err = nil
	}
	if err != nil {
		return err
	}

	if stats.Disallowed > 0 {
		fmt.Fprintf(out, "Note: robots.txt disallows %d of %d lookups; rerun with --ignore-robots to fetch them\n",
			stats.Disallowed, stats.Pending)
	}
	fmt.Fprintf(out, "Completed scraping. Total words with meanings: %d\n", len(known))
	fmt.Fprintf(out, "Results saved to %s\n", cfg.Data.GlossaryCache)
	return nil
}
