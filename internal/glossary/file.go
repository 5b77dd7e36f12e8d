package glossary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for glossary files with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported glossary format")

// DefaultTable is the identifier of the table literal in a glossary source file
const DefaultTable = "WORD_MEANINGS"

// Format identifies a glossary file layout
type Format string

const (
	FormatSource Format = "source" // JavaScript with an embedded table literal
	FormatJSON   Format = "json"   // {"word": ["meaning", ...]}
	FormatYAML   Format = "yaml"   // word: [meaning, ...]
)

// FormatOf picks the format from a file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".mjs", ".ts":
		return FormatSource, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads a glossary file of any supported format. table names the
// literal to extract from source files (DefaultTable when empty).
func Load(path, table string) (Glossary, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}

	switch format {
	case FormatSource:
		if table == "" {
			table = DefaultTable
		}
		g, err := ParseSource(string(data), table)
		if err != nil {
			return nil, fmt.Errorf("parse glossary %s: %w", path, err)
		}
		return g, nil
	case FormatYAML:
		var raw map[string][]string
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse glossary %s: %w", path, err)
		}
		return normalize(raw), nil
	default:
		var raw map[string][]string
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse glossary %s: %w", path, err)
		}
		return normalize(raw), nil
	}
}

// LoadCache reads the scraper's cache file. A missing file is an empty
// glossary; an unreadable one is an error so it is never overwritten.
func LoadCache(path string) (Glossary, error) {
	g, err := Load(path, "")
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	return g, err
}

// Save rewrites the whole file at path in the format implied by its
// extension. The data goes to a temporary file in the same directory first
// and is renamed over path, so an interrupted write leaves the old file.
func Save(path string, g Glossary) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch format {
	case FormatYAML:
		data, err = encodeYAML(g)
	case FormatJSON:
		data, err = encodeJSON(g)
	default:
		return fmt.Errorf("%w: cannot write %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("encode glossary: %w", err)
	}

	return writeFileAtomic(path, data)
}

func encodeJSON(g Glossary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string][]string(g)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeYAML(g Glossary) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(map[string][]string(g)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create glossary dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write glossary: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close glossary: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod glossary: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace glossary: %w", err)
	}
	return nil
}
