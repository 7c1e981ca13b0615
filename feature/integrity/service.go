package integrity

import (
	"context"
	"fmt"

	"bibforge/core/algebra"
	"bibforge/core/storage"
	"bibforge/feature/integrity/checks"

	"go.uber.org/zap"
)

// SourceReport holds the check results of one source.
type SourceReport struct {
	Source     string                  `json:"source"`
	Records    int                     `json:"records"`
	Field      checks.FieldReport      `json:"field"`
	Merge      []checks.DuplicateGroup `json:"merge_duplicates"`
	Pair       []checks.DuplicateGroup `json:"pair_duplicates"`
	PolicyDiff int                     `json:"policy_diff"`
}

// Clean reports whether the source has no missing fields and no duplicates under either key policy.
func (r SourceReport) Clean() bool {
	return len(r.Field.Missing) == 0 && len(r.Merge) == 0 && len(r.Pair) == 0
}

// Service handles integrity checks.
type Service struct {
	loader   storage.Loader
	policies algebra.Policies
	logger   *zap.Logger
}

// NewService creates a new integrity service.
func NewService(loader storage.Loader, policies algebra.Policies, logger *zap.Logger) *Service {
	return &Service{
		loader:   loader,
		policies: policies,
		logger:   logger,
	}
}

// Check loads every path and reports on it with respect to field.
func (s *Service) Check(ctx context.Context, paths []string, field string) ([]SourceReport, error) {
	reports := make([]SourceReport, 0, len(paths))
	for _, p := range paths {
		c, err := s.loader.Load(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", p, err)
		}

		r := SourceReport{
			Source:  c.Source,
			Records: c.Len(),
			Field:   checks.CheckField(c, field),
			Merge:   checks.CheckDuplicates(c, field, s.policies.Merge),
			Pair:    checks.CheckDuplicates(c, field, s.policies.Pair),
		}
		r.PolicyDiff = checks.Surplus(r.Merge) - checks.Surplus(r.Pair)

		s.logger.Info("Source checked",
			zap.String("source", r.Source),
			zap.Int("records", r.Records),
			zap.Int("missing", len(r.Field.Missing)),
			zap.Int("merge_duplicates", checks.Surplus(r.Merge)),
			zap.Int("pair_duplicates", checks.Surplus(r.Pair)),
		)
		if r.PolicyDiff != 0 {
			s.logger.Warn("Key policies disagree",
				zap.String("source", r.Source),
				zap.String("merge_policy", string(s.policies.Merge)),
				zap.String("pair_policy", string(s.policies.Pair)),
				zap.Int("difference", r.PolicyDiff),
			)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
