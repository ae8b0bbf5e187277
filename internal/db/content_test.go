package db

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nightjar-labs/marquee/internal/model"
)

func groupItems(ids ...int) []model.ContentItem {
	out := make([]model.ContentItem, 0, len(ids))
	for pos, id := range ids {
		out = append(out, model.ContentItem{ID: id, Position: pos})
	}
	return out
}

func TestMergeReorderPermutation(t *testing.T) {
	current := groupItems(1, 2, 3, 4)

	// a full permutation comes back exactly as submitted, positions 0..n-1
	// being the result indexes
	assert.Equal(t, []int{3, 1, 4, 2}, mergeReorder(current, []int{3, 1, 4, 2}))
	assert.Equal(t, []int{4, 3, 2, 1}, mergeReorder(current, []int{4, 3, 2, 1}))
	assert.Equal(t, []int{1, 2, 3, 4}, mergeReorder(current, []int{1, 2, 3, 4}))
}

func TestMergeReorderDuplicatesCollapse(t *testing.T) {
	current := groupItems(1, 2, 3)

	assert.Equal(t, []int{2, 1, 3}, mergeReorder(current, []int{2, 2, 1, 2, 3}))
}

func TestMergeReorderPartialSubmissionKeepsTailOrder(t *testing.T) {
	current := groupItems(1, 2, 3, 4, 5)

	// omitted items follow the submitted ones in their stored relative order
	assert.Equal(t, []int{4, 2, 1, 3, 5}, mergeReorder(current, []int{4, 2}))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, mergeReorder(current, nil))
}

func TestMergeReorderForeignIDsIgnored(t *testing.T) {
	current := groupItems(1, 2, 3)

	// ids belonging to another group (or nothing) never enter the order
	assert.Equal(t, []int{3, 1, 2}, mergeReorder(current, []int{99, 3, 100, 1, 2}))
	assert.Equal(t, []int{1, 2, 3}, mergeReorder(current, []int{99, 100}))
}

func TestMergeReorderAlwaysCoversEveryItemOnce(t *testing.T) {
	current := groupItems(10, 20, 30, 40)

	order := mergeReorder(current, []int{30, 30, 99, 20})
	assert.Len(t, order, len(current))
	assert.ElementsMatch(t, []int{10, 20, 30, 40}, order)
}
