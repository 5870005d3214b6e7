package lifecycle_test

import (
	"testing"

	"github.com/lexlib/lexdb/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestPurgeReportTotal verifies sequential counts add up.
func TestPurgeReportTotal(t *testing.T) {
	r := lifecycle.PurgeReport{
		Counts: []lifecycle.CriterionCount{
			{Label: "empty_or_short", Deleted: 10},
			{Label: "placeholder", Deleted: 3},
			{Label: "boilerplate", Deleted: 0},
		},
	}
	assert.Equal(t, int64(13), r.Total())
	assert.Equal(t, int64(0), lifecycle.PurgeReport{}.Total())
}
