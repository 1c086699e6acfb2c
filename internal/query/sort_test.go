package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type item struct {
	id       string
	priority string
	status   string
	due      time.Time
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

func TestSortStableKeepsTiedOrder(t *testing.T) {
	items := []item{
		{id: "1", priority: "low"},
		{id: "2", priority: "high"},
		{id: "3", priority: "high"},
		{id: "4", priority: "high"},
	}
	sorted := SortStable(items, ByRank(PriorityRank, func(i item) string { return i.priority }))
	assert.Equal(t, []string{"2", "3", "4", "1"}, ids(sorted))
}

func TestSortStableDoesNotMutateInput(t *testing.T) {
	items := []item{
		{id: "1", priority: "low"},
		{id: "2", priority: "high"},
	}
	SortStable(items, ByRank(PriorityRank, func(i item) string { return i.priority }))
	assert.Equal(t, []string{"1", "2"}, ids(items))
}

func TestPriorityRankBeatsLexicalOrder(t *testing.T) {
	items := []item{
		{id: "1", priority: "medium"},
		{id: "2", priority: "low"},
		{id: "3", priority: "high"},
	}
	sorted := SortStable(items, ByRank(PriorityRank, func(i item) string { return i.priority }))
	assert.Equal(t, []string{"3", "1", "2"}, ids(sorted))
}

func TestStatusRankPutsActiveWorkFirst(t *testing.T) {
	items := []item{
		{id: "1", status: "cancelled"},
		{id: "2", status: "completed"},
		{id: "3", status: "pending"},
		{id: "4", status: "in_progress"},
	}
	sorted := SortStable(items, ByRank(StatusRank, func(i item) string { return i.status }))
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(sorted))
}

func TestByRankUnknownKeySortsLast(t *testing.T) {
	items := []item{
		{id: "1", priority: "mystery"},
		{id: "2", priority: "low"},
	}
	sorted := SortStable(items, ByRank(PriorityRank, func(i item) string { return i.priority }))
	assert.Equal(t, []string{"2", "1"}, ids(sorted))
}

func TestByTimeDirections(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []item{
		{id: "1", due: base.AddDate(0, 0, 2)},
		{id: "2", due: base},
		{id: "3", due: base.AddDate(0, 0, 1)},
	}
	key := func(i item) time.Time { return i.due }

	asc := SortStable(items, ByTime(key, Ascending))
	assert.Equal(t, []string{"2", "3", "1"}, ids(asc))

	desc := SortStable(items, ByTime(key, Descending))
	assert.Equal(t, []string{"1", "3", "2"}, ids(desc))
}

func TestChainBreaksTiesWithLaterComparators(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []item{
		{id: "1", priority: "high", due: base.AddDate(0, 0, 3)},
		{id: "2", priority: "low", due: base},
		{id: "3", priority: "high", due: base.AddDate(0, 0, 1)},
	}
	sorted := SortStable(items, Chain(
		ByRank(PriorityRank, func(i item) string { return i.priority }),
		ByTime(func(i item) time.Time { return i.due }, Ascending),
	))
	assert.Equal(t, []string{"3", "1", "2"}, ids(sorted))
}
