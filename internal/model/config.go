package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete quranlingo configuration
type Config struct {
	Data            DataConfig     `yaml:"data" mapstructure:"data"`
	HTTP            HTTPConfig     `yaml:"http" mapstructure:"http"`
	Scrape          ScrapeConfig   `yaml:"scrape" mapstructure:"scrape"`
	Cache           CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Coverage        CoverageConfig `yaml:"coverage" mapstructure:"coverage"`
	ReferenceCounts map[string]int `yaml:"reference_counts,omitempty" mapstructure:"reference_counts"` // Extra or corrected true ayah counts by slug
	Log             LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the files the commands read and write
type DataConfig struct {
	Dataset        string `yaml:"dataset" mapstructure:"dataset"`                 // Surah dataset used by most commands
	VocabDataset   string `yaml:"vocab_dataset" mapstructure:"vocab_dataset"`     // Dataset tallied by the vocabulary counter
	GlossarySource string `yaml:"glossary_source" mapstructure:"glossary_source"` // Glossary checked for coverage (.js, .json, .yaml)
	GlossaryCache  string `yaml:"glossary_cache" mapstructure:"glossary_cache"`   // Scraper output (word -> meanings)
	GlossaryTable  string `yaml:"glossary_table" mapstructure:"glossary_table"`   // Identifier of the table literal in a .js source
}

// HTTPConfig controls requests to the dictionary site
type HTTPConfig struct {
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent      string        `yaml:"user_agent" mapstructure:"user_agent"`
	Referer        string        `yaml:"referer" mapstructure:"referer"`
	AcceptLanguage string        `yaml:"accept_language" mapstructure:"accept_language"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy      string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy     string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy        string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
	InsecureTLS    bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
}

// ScrapeConfig controls the dictionary scraper
type ScrapeConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url"`
	Delay             time.Duration `yaml:"delay" mapstructure:"delay"`                             // Pause between requests
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 disables the token bucket
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RobotsTTL         time.Duration `yaml:"robots_ttl" mapstructure:"robots_ttl"` // How long fetched robots.txt rules are reused
}

// CacheConfig controls the fetched-page cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	DiskTTL time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// CoverageConfig controls the coverage checkers
type CoverageConfig struct {
	Threshold float64  `yaml:"threshold" mapstructure:"threshold"` // Percent at or above which a surah is complete
	SkipIDs   []string `yaml:"skip_ids" mapstructure:"skip_ids"`   // Lessons that are not Quranic surahs
	Detail    string   `yaml:"detail" mapstructure:"detail"`       // Slug substring that gets an extended listing
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Env   string `yaml:"env" mapstructure:"env"`     // development or production
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dataset:        "surahs.json",
			VocabDataset:   "github_surahs.json",
			GlossarySource: "word_meanings.js",
			GlossaryCache:  "word_meanings.json",
			GlossaryTable:  "WORD_MEANINGS",
		},
		HTTP: HTTPConfig{
			Timeout:        10 * time.Second,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			Referer:        "https://www.almaany.com/en/",
			AcceptLanguage: "en-US,en;q=0.9",
			MaxBodyBytes:   2_000_000,
		},
		Scrape: ScrapeConfig{
			BaseURL:       "https://www.almaany.com/en/dict/ar-en/",
			Delay:         2 * time.Second,
			Burst:         1,
			RespectRobots: true,
			RobotsTTL:     time.Hour,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCacheDir(),
			DiskTTL: 30 * 24 * time.Hour,
		},
		Coverage: CoverageConfig{
			Threshold: 90,
			SkipIDs:   []string{"basic-quranic-words", "common-quranic-verbs"},
			Detail:    "ghashiyah",
		},
		Log: LogConfig{
			Env:   "development",
			Level: "info",
		},
	}
}

func defaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".quranlingo-cache"
	}
	return filepath.Join(dir, "quranlingo")
}
