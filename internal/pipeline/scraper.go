// Package pipeline fetches dictionary pages for dataset words and stores the
// meanings found in the glossary cache file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ben-kodbiz/quranlingo/internal/cache"
	"github.com/ben-kodbiz/quranlingo/internal/extract"
	"github.com/ben-kodbiz/quranlingo/internal/glossary"
	"github.com/ben-kodbiz/quranlingo/internal/model"
	"github.com/ben-kodbiz/quranlingo/internal/util"
	"github.com/ben-kodbiz/quranlingo/internal/worker"
)

// ErrDisallowed marks a lookup URL excluded by robots.txt
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Stats summarizes a scrape run
type Stats struct {
	Pending   int // Words selected for lookup
	Requested int // Pages fetched over the network
	FromCache int // Pages served by the page cache
	Stored    int // Words written to the glossary cache
	Empty      int // Pages without any meaning
	Disallowed int // Lookups skipped because robots.txt excludes them
	Failed     int // Lookups that failed
}

// Scraper looks words up one at a time, pausing between requests
type Scraper struct {
	fetcher *Fetcher
	limiter *worker.Limiter
	robots  *util.RobotsChecker // nil when robots.txt is ignored
	pages   cache.Cache         // nil when page caching is off
	baseURL string
	delay   time.Duration
	output  string
	log     *zap.Logger
}

// NewScraper wires a scraper from configuration. Meanings are written to
// output after every word that yields at least one.
func NewScraper(cfg *model.Config, output string, log *zap.Logger) *Scraper {
	if log == nil {
		log = zap.NewNop()
	}

	fetcher := NewFetcher(cfg.HTTP)
	s := &Scraper{
		fetcher: fetcher,
		limiter: worker.NewLimiter(cfg.Scrape.RequestsPerSecond, cfg.Scrape.Burst),
		baseURL: cfg.Scrape.BaseURL,
		delay:   cfg.Scrape.Delay,
		output:  output,
		log:     log,
	}
	if cfg.Scrape.RespectRobots {
		s.robots = util.NewRobotsChecker(fetcher.Client(), cfg.HTTP.UserAgent, cfg.Scrape.RobotsTTL)
	}
	if cfg.Cache.Enabled && cfg.Cache.Dir != "" {
		s.pages = cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}
	return s
}

// Pending returns the words without an entry in known, in their original
// order, truncated to limit when limit > 0
func Pending(words []string, known glossary.Glossary, limit int) []string {
	var pending []string
	for _, w := range words {
		if known.Has(w) {
			continue
		}
		pending = append(pending, w)
		if limit > 0 && len(pending) == limit {
			break
		}
	}
	return pending
}

// Run looks up every pending word and stores the meanings it finds into
// known, rewriting the output file after each stored word. Per-word failures
// are logged and skipped. The returned error is either a failure to write
// the output file or the context's error when the run was interrupted;
// everything stored before that point is already on disk.
func (s *Scraper) Run(ctx context.Context, words []string, known glossary.Glossary, limit int) (Stats, error) {
	pending := Pending(words, known, limit)
	stats := Stats{Pending: len(pending)}

	for i, word := range pending {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		lookupURL := LookupURL(s.baseURL, word)
		log := s.log.With(
			zap.String("word", word),
			zap.String("url", lookupURL),
			zap.Int("index", i+1),
			zap.Int("total", len(pending)),
		)

		fromCache := stats.FromCache
		meanings, err := s.lookup(ctx, lookupURL, &stats)
		if err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			if errors.Is(err, ErrDisallowed) {
				log.Debug("lookup disallowed by robots.txt")
				stats.Disallowed++
				continue
			}
			log.Warn("lookup failed", zap.Error(err))
			stats.Failed++
			continue
		}

		if len(meanings) == 0 {
			log.Info("no meanings found")
			stats.Empty++
			continue
		}

		known.Set(word, meanings)
		if err := glossary.Save(s.output, known); err != nil {
			return stats, fmt.Errorf("save meanings: %w", err)
		}
		stats.Stored++
		log.Info("stored meanings", zap.Int("meanings", len(meanings)), zap.Bool("cached", stats.FromCache > fromCache))
	}
	return stats, nil
}

// lookup returns the meanings on the page at lookupURL, counting where the
// page came from in stats
func (s *Scraper) lookup(ctx context.Context, lookupURL string, stats *Stats) ([]string, error) {
	key := cache.PageKey(lookupURL)
	if s.pages != nil {
		if page, ok := s.pages.Get(key); ok {
			stats.FromCache++
			return extract.Meanings(string(page))
		}
	}

	gap := s.delay
	if s.robots != nil {
		policy, err := s.robots.Check(ctx, lookupURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !policy.Allowed {
			return nil, ErrDisallowed
		}
		if policy.CrawlDelay > gap {
			gap = policy.CrawlDelay
		}
	}

	if err := s.limiter.WaitWithDelay(ctx, lookupURL, gap); err != nil {
		return nil, err
	}

	stats.Requested++
	page, err := s.fetcher.Fetch(ctx, lookupURL)
	s.limiter.Done(lookupURL)
	if err != nil {
		return nil, err
	}

	if s.pages != nil {
		if err := s.pages.Set(key, page, 0); err != nil {
			s.log.Debug("page cache write failed", zap.Error(err))
		}
	}

	return extract.Meanings(string(page))
}
