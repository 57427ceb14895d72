package scheduler

import (
	"testing"

	"github.com/alexanderramin/wayfarer/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalSort_ScoreThenID(t *testing.T) {
	candidates := []ScoredCandidate{
		{Activity: testutil.NewTestActivity("c"), Score: 0.5},
		{Activity: testutil.NewTestActivity("b"), Score: 0.7},
		{Activity: testutil.NewTestActivity("a"), Score: 0.5},
		{Activity: testutil.NewTestActivity("d"), Score: 0.9},
	}

	CanonicalSort(candidates)

	var ids []string
	for _, c := range candidates {
		ids = append(ids, c.Activity.ID)
	}
	assert.Equal(t, []string{"d", "b", "a", "c"}, ids)
}
