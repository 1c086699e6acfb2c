package query

import (
	"sort"
	"time"
)

// Direction orders sort results.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Rank tables for domain orderings. Lexical comparison on these enums
// produces the wrong order, so sorts must go through an explicit table.
var (
	PriorityRank = map[string]int{"high": 0, "medium": 1, "low": 2}

	StatusRank = map[string]int{
		"in_progress": 0,
		"pending":     1,
		"completed":   2,
		"cancelled":   3,
	}

	CategoryRank = map[string]int{
		"treatment":   0,
		"maintenance": 1,
		"harvest":     2,
		"planting":    3,
		"other":       4,
	}

	ConditionRank = map[string]int{
		"critical":     0,
		"needs_repair": 1,
		"regular":      2,
		"good":         3,
	}
)

// Comparator orders two values: negative when a sorts before b.
type Comparator[T any] func(a, b T) int

// SortStable returns a new slice sorted by cmp. Ties keep their
// original relative order.
func SortStable[T any](items []T, cmp Comparator[T]) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(out[i], out[j]) < 0
	})
	return out
}

// ByRank orders by an explicit rank table over a string key. Keys
// missing from the table sort last.
func ByRank[T any](rank map[string]int, key func(T) string) Comparator[T] {
	return func(a, b T) int {
		return rankOf(rank, key(a)) - rankOf(rank, key(b))
	}
}

// ByTime orders by a time key.
func ByTime[T any](key func(T) time.Time, dir Direction) Comparator[T] {
	return func(a, b T) int {
		at, bt := key(a), key(b)
		cmp := 0
		switch {
		case at.Before(bt):
			cmp = -1
		case at.After(bt):
			cmp = 1
		}
		if dir == Descending {
			cmp = -cmp
		}
		return cmp
	}
}

// ByString orders by a string key.
func ByString[T any](key func(T) string, dir Direction) Comparator[T] {
	return func(a, b T) int {
		ak, bk := key(a), key(b)
		cmp := 0
		switch {
		case ak < bk:
			cmp = -1
		case ak > bk:
			cmp = 1
		}
		if dir == Descending {
			cmp = -cmp
		}
		return cmp
	}
}

// Chain composes comparators left to right: later comparators break
// ties left by earlier ones.
func Chain[T any](cmps ...Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		for _, cmp := range cmps {
			if r := cmp(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

func rankOf(rank map[string]int, key string) int {
	if r, ok := rank[key]; ok {
		return r
	}
	return len(rank)
}
