package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ben-kodbiz/quranlingo/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	cfg := model.DefaultConfig().HTTP
	cfg.Timeout = 5 * time.Second
	return cfg
}

func TestFetch_Success(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, "<html><body>OK</body></html>")
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	body, err := NewFetcher(cfg).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(body) != "<html><body>OK</body></html>" {
		t.Errorf("Unexpected HTML: %s", body)
	}

	for key, want := range map[string]string{
		"User-Agent":      cfg.UserAgent,
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://www.almaany.com/en/",
	} {
		if got.Get(key) != want {
			t.Errorf("header %s = %q, want %q", key, got.Get(key), want)
		}
	}
	if !strings.HasPrefix(got.Get("Accept"), "text/html") {
		t.Errorf("unexpected Accept header %q", got.Get("Accept"))
	}
}

func TestFetch_NonOK(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusNotFound, "unexpected status: 404 Not Found"},
		{http.StatusNoContent, "unexpected status: 204 No Content"},
		{http.StatusServiceUnavailable, "unexpected status: 503 Service Unavailable"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("Unexpected error: %s", err)
			}
		})
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("x", 100))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 10
	body, err := NewFetcher(cfg).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(body) != 10 {
		t.Errorf("expected body capped at 10 bytes, got %d", len(body))
	}
}

func TestFetch_RedirectLoop(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+"/again", http.StatusFound)
	}))
	defer server.Close()

	_, err := NewFetcher(testHTTPConfig()).Fetch(context.Background(), server.URL)
	if err == nil || !strings.Contains(err.Error(), "stopped after 3 redirects") {
		t.Errorf("expected redirect cap error, got %v", err)
	}
}

func TestLookupURL(t *testing.T) {
	tests := []struct {
		base, word, want string
	}{
		{"https://www.almaany.com/en/dict/ar-en/", "كتاب", "https://www.almaany.com/en/dict/ar-en/%D9%83%D8%AA%D8%A7%D8%A8"},
		{"http://localhost/dict", "a b", "http://localhost/dict/a%20b"},
		{"http://localhost/", "a/b", "http://localhost/a%2Fb"},
	}

	for _, tt := range tests {
		if got := LookupURL(tt.base, tt.word); got != tt.want {
			t.Errorf("LookupURL(%q, %q) = %q, want %q", tt.base, tt.word, got, tt.want)
		}
	}
}
