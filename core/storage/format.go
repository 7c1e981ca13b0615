package storage

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bibforge/core/bibtex"
	"bibforge/core/record"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is a serialization of a record collection.
type Format string

const (
	FormatBibTeX Format = "bibtex"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// Compression wraps a format.
type Compression string

const (
	CompressionNone Compression = ""
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// ParseFormat validates a format name. "bib" is accepted for bibtex and "yml" for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bib", "bibtex":
		return FormatBibTeX, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Detect derives format and compression from a file name.
func Detect(path string) (Format, Compression) {
	name := strings.ToLower(filepath.Base(path))

	comp := CompressionNone
	switch {
	case strings.HasSuffix(name, ".gz"):
		comp = CompressionGzip
		name = strings.TrimSuffix(name, ".gz")
	case strings.HasSuffix(name, ".zst"):
		comp = CompressionZstd
		name = strings.TrimSuffix(name, ".zst")
	}

	switch filepath.Ext(name) {
	case ".json":
		return FormatJSON, comp
	case ".yaml", ".yml":
		return FormatYAML, comp
	default:
		return FormatBibTeX, comp
	}
}

// Decode reads every record of r in the given format.
func Decode(format Format, r io.Reader, source string) ([]record.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []record.Record{}, nil
	}

	var recs []record.Record
	switch format {
	case FormatBibTeX:
		recs, err = bibtex.Parse(bytes.NewReader(data), source)
	case FormatJSON:
		err = json.Unmarshal(data, &recs)
	case FormatYAML:
		err = yaml.Unmarshal(data, &recs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, source, err)
	}
	if recs == nil {
		recs = []record.Record{}
	}
	return recs, nil
}

// Encode writes recs to w in the given format.
func Encode(format Format, w io.Writer, recs []record.Record) error {
	switch format {
	case FormatBibTeX:
		return bibtex.Write(w, recs)
	case FormatJSON:
		if recs == nil {
			recs = []record.Record{}
		}
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err
	case FormatYAML:
		if len(recs) == 0 {
			_, err := io.WriteString(w, "[]\n")
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(recs); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}
