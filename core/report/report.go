package report

import (
	"fmt"
	"io"
	"strings"

	"bibforge/core/algebra"
	"bibforge/core/record"

	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
)

// Summary holds every count reported during a run.
type Summary struct {
	// Sources is the number of input collections.
	Sources int `json:"sources"`
	// Loaded is the total number of records read.
	Loaded int `json:"loaded"`
	// Removed counts records without the comparison field, per source.
	Removed map[string]int `json:"removed"`
	// Operation is the set operation that ran, if any.
	Operation algebra.Operation `json:"operation"`
	// Implicit is true when the operation was a merge synthesized for filtering or listing.
	Implicit bool `json:"implicit"`
	// Result is the size of the operation result.
	Result int `json:"result"`
	// Duplicates is the number of records merge dropped.
	Duplicates int `json:"duplicates"`
	// Filtered is true when the regex filter ran.
	Filtered bool `json:"filtered"`
	// AfterFilter is the size of the result after filtering.
	AfterFilter int `json:"after_filter"`
	// Output is the written path, if any.
	Output string `json:"output"`
	// Written is the number of records written.
	Written int `json:"written"`
	// Digest is the xxh3 digest of the written records.
	Digest string `json:"digest"`
}

// Reporter emits the counts of a run.
type Reporter struct {
	logger  *zap.Logger
	out     io.Writer
	summary Summary
}

// New creates a reporter writing human-readable lines to out.
func New(logger *zap.Logger, out io.Writer) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}
	return &Reporter{
		logger:  logger,
		out:     out,
		summary: Summary{Removed: map[string]int{}},
	}
}

func (r *Reporter) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Loaded reports the collections read from the sources.
func (r *Reporter) Loaded(colls []record.Collection) {
	r.summary.Sources = len(colls)
	r.summary.Loaded = record.Total(colls)

	r.printf("Found %d entries", r.summary.Loaded)
	r.logger.Info("Loaded sources",
		zap.Int("sources", r.summary.Sources),
		zap.Int("entries", r.summary.Loaded),
	)
}

// Removed reports records dropped for lacking the comparison field. Zero counts are silent.
func (r *Reporter) Removed(source, field string, n int) {
	if n == 0 {
		return
	}
	r.summary.Removed[source] += n

	r.printf("Ignored %d entries from %s that do not contain the field '%s'.", n, source, field)
	r.logger.Warn("Entries without comparison field ignored",
		zap.String("source", source),
		zap.String("field", field),
		zap.Int("count", n),
	)
}

// Operation reports the outcome of an explicitly requested operation.
func (r *Reporter) Operation(out algebra.Outcome, sources []string) {
	r.recordOutcome(out, false)

	switch out.Operation {
	case algebra.OpMerge:
		r.printf("Merged %d entries from %s. Found %d duplicates. Merging result contains %d entries.",
			out.Inputs, strings.Join(sources, ", "), out.Duplicates, out.Result.Len())
	case algebra.OpIntersection:
		r.printf("Found %d common entries in %s and %s.", out.Result.Len(), sourceAt(sources, 0), sourceAt(sources, 1))
	case algebra.OpDifference:
		r.printf("Found %d unique entries in %s compared to %s.", out.Result.Len(), sourceAt(sources, 0), sourceAt(sources, 1))
	}
	r.logOutcome(out)
}

// ImplicitMerge reports the merge synthesized when filtering or listing without an operation.
func (r *Reporter) ImplicitMerge(out algebra.Outcome) {
	r.recordOutcome(out, true)

	r.printf("No operation selected; merged all sources into %d entries (%d duplicates).",
		out.Result.Len(), out.Duplicates)
	r.logOutcome(out)
}

func (r *Reporter) recordOutcome(out algebra.Outcome, implicit bool) {
	r.summary.Operation = out.Operation
	r.summary.Implicit = implicit
	r.summary.Result = out.Result.Len()
	r.summary.Duplicates = out.Duplicates
}

func (r *Reporter) logOutcome(out algebra.Outcome) {
	r.logger.Info("Operation completed",
		zap.String("operation", string(out.Operation)),
		zap.Bool("implicit", r.summary.Implicit),
		zap.Int("inputs", out.Inputs),
		zap.Int("result", out.Result.Len()),
		zap.Int("duplicates", out.Duplicates),
	)
}

// Filtered reports the size before and after the regex filter.
func (r *Reporter) Filtered(before, after int) {
	r.summary.Filtered = true
	r.summary.AfterFilter = after

	if after == 0 {
		r.printf("Filtering removed all entries.")
		r.logger.Warn("Filtering removed all entries", zap.Int("before", before))
		return
	}
	r.printf("After filtering, result contains %d of %d.", after, before)
	r.logger.Info("Filter applied", zap.Int("before", before), zap.Int("after", after))
}

// Written reports the output file.
func (r *Reporter) Written(path string, c record.Collection) {
	r.summary.Output = path
	r.summary.Written = c.Len()
	r.summary.Digest = Digest(c)

	r.printf("Wrote %d entries to %s.", c.Len(), path)
	r.logger.Info("Output written",
		zap.String("path", path),
		zap.Int("entries", c.Len()),
		zap.String("digest", r.summary.Digest),
	)
}

// Summary returns a copy of the counts reported so far.
func (r *Reporter) Summary() Summary {
	s := r.summary
	s.Removed = make(map[string]int, len(r.summary.Removed))
	for k, v := range r.summary.Removed {
		s.Removed[k] = v
	}
	return s
}

// Digest returns an order-sensitive xxh3 fingerprint of every field of every record.
func Digest(c record.Collection) string {
	h := xxh3.New()
	for _, rec := range c.Records {
		for _, f := range rec.Fields() {
			h.Write([]byte(f.Name))
			h.Write([]byte{0x1f})
			h.Write([]byte(f.Value))
			h.Write([]byte{0x1e})
		}
		h.Write([]byte{0x1d})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func sourceAt(sources []string, i int) string {
	if i < len(sources) {
		return sources[i]
	}
	return "?"
}
