package forge

import (
	"context"
	"fmt"
	"io"

	"bibforge/core/algebra"
	"bibforge/core/record"
	"bibforge/core/report"
	"bibforge/core/storage"

	"go.uber.org/zap"
)

// Result is what a run produced.
type Result struct {
	// Collection is the final record collection.
	Collection record.Collection
	// Sources lists the loaded paths, in order.
	Sources []string
	// Summary holds the reported counts.
	Summary report.Summary
}

// Service runs forge requests.
type Service struct {
	store    storage.Store
	policies algebra.Policies
	out      io.Writer
	logger   *zap.Logger
}

// NewService creates a new forge service. Report lines and list output go to out.
func NewService(store storage.Store, policies algebra.Policies, out io.Writer, logger *zap.Logger) *Service {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		policies: policies,
		out:      out,
		logger:   logger,
	}
}

// Run executes req.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	rules, err := req.Validate()
	if err != nil {
		return nil, err
	}

	paths, err := s.resolve(req)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Resolved inputs", zap.Strings("paths", paths))

	collections := make([]record.Collection, 0, len(paths))
	for _, p := range paths {
		c, err := s.store.Load(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}
		collections = append(collections, c)
	}

	rep := report.New(s.logger, s.out)
	rep.Loaded(collections)

	field := req.PrimaryField()
	kept := make([]record.Collection, 0, len(collections))
	for _, c := range collections {
		if req.Lower {
			c = record.LowerField(c, field)
		}
		k, removed := record.Partition(c, field)
		rep.Removed(c.Source, field, removed.Len())
		kept = append(kept, k)
	}

	var ran *algebra.Outcome
	if req.Operation != "" {
		out, err := algebra.Apply(req.Operation, kept, field, s.policies)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		rep.Operation(out, paths)
		ran = &out
	}

	outcome, implicit, err := EnsureResult(ran, kept, field, s.policies)
	if err != nil {
		return nil, err
	}
	if implicit {
		rep.ImplicitMerge(outcome)
	}

	result := outcome.Result
	if rules.Active() {
		before := result.Len()
		result = rules.Apply(result)
		rep.Filtered(before, result.Len())
	}

	if req.Output != "" {
		if err := s.store.Write(ctx, req.Output, result); err != nil {
			return nil, fmt.Errorf("write %s: %w", req.Output, err)
		}
		rep.Written(req.Output, result)
	}

	if req.List {
		for _, rec := range result.Records {
			fmt.Fprintln(s.out, ListLine(rec, req.Fields))
		}
	}

	return &Result{
		Collection: result,
		Sources:    paths,
		Summary:    rep.Summary(),
	}, nil
}

func (s *Service) resolve(req Request) ([]string, error) {
	if len(req.Inputs) > 0 {
		return append([]string(nil), req.Inputs...), nil
	}
	paths, err := s.store.Enumerate(req.Dir)
	if err != nil {
		return nil, err
	}
	if req.Operation != "" {
		if err := req.Operation.CheckOperands(len(paths)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
	}
	return paths, nil
}
