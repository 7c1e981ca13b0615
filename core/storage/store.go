package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"bibforge/core/record"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Loader reads one reference file.
type Loader interface {
	// Load reads path into a collection whose Source is path.
	Load(ctx context.Context, path string) (record.Collection, error)
}

// Writer serializes a collection.
type Writer interface {
	// Write replaces path with the records of c.
	Write(ctx context.Context, path string, c record.Collection) error
}

// Enumerator lists candidate input files.
type Enumerator interface {
	// Enumerate returns the reference files directly inside dir, sorted by name.
	Enumerate(dir string) ([]string, error)
}

// Store defines the interface for collection storage operations.
type Store interface {
	Loader
	Writer
	Enumerator
}

// NewStore creates a filesystem store based on the configuration.
func NewStore(cfg Config) (Store, error) {
	s := &fileStore{extensions: normalizeExtensions(cfg.Extensions)}
	if cfg.OutputFormat != "" {
		f, err := ParseFormat(cfg.OutputFormat)
		if err != nil {
			return nil, err
		}
		s.outputFormat = f
	}
	return s, nil
}

type fileStore struct {
	extensions   []string
	outputFormat Format
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func (s *fileStore) Load(ctx context.Context, path string) (record.Collection, error) {
	if err := ctx.Err(); err != nil {
		return record.Collection{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return record.Collection{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	format, comp := Detect(path)
	r, err := decompress(f, comp)
	if err != nil {
		return record.Collection{}, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	defer r.Close()

	recs, err := Decode(format, r, path)
	if err != nil {
		return record.Collection{}, err
	}
	return record.Collection{Source: path, Records: recs}, nil
}

func decompress(r io.Reader, comp Compression) (io.ReadCloser, error) {
	switch comp {
	case CompressionGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return gz, nil
	case CompressionZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	default:
		return io.NopCloser(r), nil
	}
}

// Write encodes into a temporary file next to path and renames it over path,
// so a failed run never leaves a partial output behind.
func (s *fileStore) Write(ctx context.Context, path string, c record.Collection) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	format, comp := Detect(path)
	if s.outputFormat != "" {
		format = s.outputFormat
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".bibforge-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w, closeW, err := compress(tmp, comp)
	if err != nil {
		return fmt.Errorf("failed to open compressor: %w", err)
	}
	closed := false
	defer func() {
		if !closed {
			_ = closeW()
		}
	}()
	if err = Encode(format, w, c.Records); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	closed = true
	if err = closeW(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

func compress(w io.Writer, comp Compression) (io.Writer, func() error, error) {
	switch comp {
	case CompressionGzip:
		gz := gzip.NewWriter(w)
		return gz, gz.Close, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return enc, enc.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}

func (s *fileStore) Enumerate(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !s.matches(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s (extensions %s)", ErrNoInputFiles, dir, strings.Join(s.extensions, ", "))
	}
	return files, nil
}

func (s *fileStore) matches(name string) bool {
	name = strings.ToLower(name)
	for _, ext := range s.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
