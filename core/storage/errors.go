package storage

import "errors"

// Sentinel errors for storage operations.
var (
	// ErrDirNotFound indicates the input directory does not exist or is not a directory.
	ErrDirNotFound = errors.New("input directory not found")
	// ErrNoInputFiles indicates a directory holds no file with a reference extension.
	ErrNoInputFiles = errors.New("no reference files found")
	// ErrUnknownFormat indicates an unsupported format name.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrParse indicates a source file could not be decoded.
	ErrParse = errors.New("parse error")
)
