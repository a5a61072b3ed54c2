package pgsql

import (
	"testing"

	"github.com/SscSPs/fee_management_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBuildFeeStructureQuery(t *testing.T) {
	region, level := int64(21), int64(5)

	tests := []struct {
		name      string
		filter    domain.FeeStructureFilter
		wantArgs  []any
		contains  []string
		excluding []string
	}{
		{
			name:      "categories only",
			filter:    domain.FeeStructureFilter{CategoryIDs: []int64{1, 2}},
			wantArgs:  []any{[]int64{1, 2}},
			excluding: []string{"region_id =", "level_id ="},
		},
		{
			name:     "region and level",
			filter:   domain.FeeStructureFilter{CategoryIDs: []int64{1}, RegionID: &region, LevelID: &level},
			wantArgs: []any{[]int64{1}, int64(21), int64(5)},
			contains: []string{"region_id = $2", "level_id = $3"},
		},
		{
			name:      "level without region",
			filter:    domain.FeeStructureFilter{CategoryIDs: []int64{3}, LevelID: &level},
			wantArgs:  []any{[]int64{3}, int64(5)},
			contains:  []string{"level_id = $2"},
			excluding: []string{"region_id ="},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildFeeStructureQuery(tt.filter)
			assert.Equal(t, tt.wantArgs, args)
			assert.Contains(t, query, "is_active = TRUE")
			assert.Contains(t, query, "fee_fund_category_id = ANY($1)")
			for _, s := range tt.contains {
				assert.Contains(t, query, s)
			}
			for _, s := range tt.excluding {
				assert.NotContains(t, query, s)
			}
		})
	}
}
