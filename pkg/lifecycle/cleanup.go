package lifecycle

import "context"

// Purger deletes judgments that violate data-quality criteria.
// All criteria run in one transaction. With dryRun the transaction is
// rolled back after counting.
type Purger interface {
	Purge(ctx context.Context, dryRun bool) (PurgeReport, error)
}

// CriterionCount is the number of rows deleted under one criterion.
type CriterionCount struct {
	Label   string
	Deleted int64
}

// PurgeReport lists deletions in the order criteria were applied.
type PurgeReport struct {
	Counts []CriterionCount
	DryRun bool
}

// Total returns the number of deleted rows across all criteria.
func (r PurgeReport) Total() int64 {
	var res int64
	for _, c := range r.Counts {
		res += c.Deleted
	}
	return res
}

// Normalizer cleans stored judgment texts. Only changed rows are
// updated, all updates are committed together or not at all.
type Normalizer interface {
	Normalize(ctx context.Context, dryRun bool) (NormalizeReport, error)
}

// NormalizeReport summarizes a normalization pass.
type NormalizeReport struct {
	// Scanned is the number of rows with non-NULL text.
	Scanned int64

	// Changed is the number of rows whose text was cleaned.
	Changed int64

	DryRun bool
}
