// Package storage loads and writes reference collections on the local filesystem.
//
// It provides the three collaborators the pipeline consumes:
//
//   - Loader: reads one file into a record.Collection, preserving record and field order.
//   - Writer: serializes a collection, replacing any existing file atomically.
//   - Enumerator: lists the reference files of a directory.
//
// # Formats
//
// The format follows the file extension: .bib/.bibtex (BibTeX), .json (array of flat
// objects) and .yaml/.yml (sequence of flat mappings). Unknown extensions are treated
// as BibTeX. A trailing .gz or .zst adds gzip or zstd compression on top of any format.
// Config.OutputFormat forces the format used by Write.
//
// # Store Interface
//
// Store bundles the three roles so callers can mock the filesystem in tests
// (see core/storage/mocks).
//
// # Usage
//
//	store, err := storage.NewStore(cfg.Storage)
//	files, err := store.Enumerate("library/")
//	coll, err := store.Load(ctx, files[0])
//	err = store.Write(ctx, "out.bib.gz", coll)
package storage
