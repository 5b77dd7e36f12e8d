package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ben-kodbiz/quranlingo/internal/glossary"
	"github.com/ben-kodbiz/quranlingo/internal/model"
)

// dictServer serves dictionary pages from a word -> HTML map and counts
// lookups per word
type dictServer struct {
	*httptest.Server
	robots string

	mu    sync.Mutex
	pages map[string]string
	hits  map[string]int
}

func newDictServer(t *testing.T, robots string, pages map[string]string) *dictServer {
	t.Helper()
	ds := &dictServer{robots: robots, pages: pages, hits: make(map[string]int)}
	ds.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			if ds.robots == "" {
				http.NotFound(w, r)
				return
			}
			_, _ = fmt.Fprint(w, ds.robots)
			return
		}

		word := strings.TrimPrefix(r.URL.Path, "/dict/ar-en/")
		ds.mu.Lock()
		ds.hits[word]++
		page, ok := ds.pages[word]
		ds.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, page)
	}))
	t.Cleanup(ds.Close)
	return ds
}

func (ds *dictServer) requests() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	n := 0
	for _, c := range ds.hits {
		n += c
	}
	return n
}

func listPage(meanings ...string) string {
	var b strings.Builder
	b.WriteString(`<html><body><div class="panel-body"><ul class="meaning-results">`)
	for _, m := range meanings {
		b.WriteString("<li>" + m + "</li>")
	}
	b.WriteString(`</ul></div></body></html>`)
	return b.String()
}

func testScraperConfig(t *testing.T, baseURL string) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Scrape.BaseURL = baseURL + "/dict/ar-en/"
	cfg.Scrape.Delay = 0
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "pages")
	return cfg
}

func TestPending(t *testing.T) {
	known := glossary.New()
	known.Set("إن", []string{"indeed"})
	words := []string{"كتاب", "إن", "قلم", "نور"}

	tests := []struct {
		limit int
		want  []string
	}{
		{0, []string{"كتاب", "قلم", "نور"}},
		{2, []string{"كتاب", "قلم"}},
		{10, []string{"كتاب", "قلم", "نور"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Pending(words, known, tt.limit)); diff != "" {
			t.Errorf("Pending(limit=%d) mismatch (-want +got):\n%s", tt.limit, diff)
		}
	}
}

func TestScraper_Run(t *testing.T) {
	server := newDictServer(t, "", map[string]string{
		"كتاب": listPage("book", "  scripture\n  text "),
		"قلم":  `<div class="panel-body"><div class="meaning-results">1. pen 2. reed</div></div>`,
		"نور":  `<html><body>no results</body></html>`,
	})
	cfg := testScraperConfig(t, server.URL)
	output := filepath.Join(t.TempDir(), "word_meanings.json")

	known := glossary.New()
	known.Set("إن", []string{"indeed"})

	s := NewScraper(cfg, output, nil)
	stats, err := s.Run(context.Background(), []string{"كتاب", "إن", "مفقود", "قلم", "نور"}, known, 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantStats := Stats{Pending: 4, Requested: 4, Stored: 2, Empty: 1, Failed: 1}
	if diff := cmp.Diff(wantStats, stats); diff != "" {
		t.Errorf("Stats mismatch (-want +got):\n%s", diff)
	}

	saved, err := glossary.LoadCache(output)
	if err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}
	want := glossary.New()
	want.Set("إن", []string{"indeed"})
	want.Set("كتاب", []string{"book", "scripture text"})
	want.Set("قلم", []string{"pen", "reed"})
	if diff := cmp.Diff(want, saved); diff != "" {
		t.Errorf("saved glossary mismatch (-want +got):\n%s", diff)
	}
	if saved.Has("مفقود") || saved.Has("نور") {
		t.Error("words without meanings must not be stored")
	}
}

func TestScraper_PageCache(t *testing.T) {
	server := newDictServer(t, "", map[string]string{"كتاب": listPage("book")})
	cfg := testScraperConfig(t, server.URL)
	dir := t.TempDir()

	first := NewScraper(cfg, filepath.Join(dir, "a.json"), nil)
	if _, err := first.Run(context.Background(), []string{"كتاب"}, glossary.New(), 0); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	// A second scraper sharing the page cache directory makes no request
	second := NewScraper(cfg, filepath.Join(dir, "b.json"), nil)
	stats, err := second.Run(context.Background(), []string{"كتاب"}, glossary.New(), 0)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if stats.Requested != 0 || stats.FromCache != 1 || stats.Stored != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if got := server.requests(); got != 1 {
		t.Errorf("expected 1 request in total, got %d", got)
	}
}

func TestScraper_NotFoundIsNotCached(t *testing.T) {
	server := newDictServer(t, "", map[string]string{})
	cfg := testScraperConfig(t, server.URL)
	output := filepath.Join(t.TempDir(), "out.json")

	for i := 0; i < 2; i++ {
		stats, err := NewScraper(cfg, output, nil).Run(context.Background(), []string{"مفقود"}, glossary.New(), 0)
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		if stats.Failed != 1 || stats.FromCache != 0 {
			t.Errorf("run %d: unexpected stats %+v", i, stats)
		}
	}
	if got := server.requests(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
}

func TestScraper_Limit(t *testing.T) {
	server := newDictServer(t, "", map[string]string{
		"كتاب": listPage("book"),
		"قلم":  listPage("pen"),
	})
	cfg := testScraperConfig(t, server.URL)
	cfg.Cache.Enabled = false

	stats, err := NewScraper(cfg, filepath.Join(t.TempDir(), "out.json"), nil).
		Run(context.Background(), []string{"كتاب", "قلم"}, glossary.New(), 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Pending != 1 || stats.Requested != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if got := server.requests(); got != 1 {
		t.Errorf("expected 1 request, got %d", got)
	}
}

func TestScraper_RobotsDisallow(t *testing.T) {
	server := newDictServer(t, "User-agent: *\nDisallow: /dict/\n", map[string]string{"كتاب": listPage("book")})
	cfg := testScraperConfig(t, server.URL)

	stats, err := NewScraper(cfg, filepath.Join(t.TempDir(), "out.json"), nil).
		Run(context.Background(), []string{"كتاب"}, glossary.New(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Disallowed != 1 || stats.Failed != 0 || stats.Requested != 0 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if got := server.requests(); got != 0 {
		t.Errorf("expected no dictionary requests, got %d", got)
	}

	cfg.Scrape.RespectRobots = false
	stats, err = NewScraper(cfg, filepath.Join(t.TempDir(), "out.json"), nil).
		Run(context.Background(), []string{"كتاب"}, glossary.New(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Stored != 1 {
		t.Errorf("expected lookup when robots.txt is ignored, got %+v", stats)
	}
}

func TestScraper_Cancelled(t *testing.T) {
	server := newDictServer(t, "", map[string]string{"كتاب": listPage("book")})
	cfg := testScraperConfig(t, server.URL)
	output := filepath.Join(t.TempDir(), "out.json")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := NewScraper(cfg, output, nil).Run(ctx, []string{"كتاب"}, glossary.New(), 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if stats.Stored != 0 || server.requests() != 0 {
		t.Errorf("expected no work after cancellation, got %+v", stats)
	}
}

func TestScraper_DelayAfterEachResponse(t *testing.T) {
	const delay = 200 * time.Millisecond

	type span struct{ start, end time.Time }
	var (
		mu    sync.Mutex
		spans []span
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		defer func() {
			mu.Lock()
			spans = append(spans, span{started, time.Now()})
			mu.Unlock()
		}()

		switch strings.TrimPrefix(r.URL.Path, "/dict/ar-en/") {
		case "بطيء":
			// Slower than the delay
			time.Sleep(2 * delay)
			_, _ = fmt.Fprint(w, listPage("slow"))
		case "مفقود":
			http.NotFound(w, r)
		default:
			_, _ = fmt.Fprint(w, listPage("found"))
		}
	}))
	defer server.Close()

	cfg := testScraperConfig(t, server.URL)
	cfg.Scrape.Delay = delay
	cfg.Scrape.RespectRobots = false
	cfg.Cache.Enabled = false

	stats, err := NewScraper(cfg, filepath.Join(t.TempDir(), "out.json"), nil).
		Run(context.Background(), []string{"بطيء", "مفقود", "كتاب"}, glossary.New(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Requested != 3 || stats.Failed != 1 || stats.Stored != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(spans) != 3 {
		t.Fatalf("expected 3 requests, got %d", len(spans))
	}
	for i := 1; i < len(spans); i++ {
		if pause := spans[i].start.Sub(spans[i-1].end); pause < delay {
			t.Errorf("pause before request %d was %v, want at least %v", i+1, pause, delay)
		}
	}
}
