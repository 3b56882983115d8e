// Package index provides O(log n + k) overlap queries over static genomic
// interval sets using a sorted-slice approach with suffix-max pruning.
package index

import "sort"

// Spanned is any value occupying a 1-based, inclusive genomic interval.
type Spanned interface {
	Span() (start, end int64)
}

// IntervalIndex answers overlap and point queries over a static set of
// intervals. Built once per chromosome and never modified afterward; queries
// are pure reads and safe for concurrent use.
type IntervalIndex[T Spanned] struct {
	intervals []interval[T]
	maxEnd    []int64 // maxEnd[i] = max(end) for intervals[i:]
}

type interval[T Spanned] struct {
	start int64
	end   int64
	value T
}

// Build creates an interval index from a slice of spanned values.
// Items are sorted by (start, end) so query output is deterministic for a
// fixed input set.
func Build[T Spanned](items []T) *IntervalIndex[T] {
	if len(items) == 0 {
		return &IntervalIndex[T]{}
	}

	intervals := make([]interval[T], len(items))
	for i, v := range items {
		start, end := v.Span()
		intervals[i] = interval[T]{start: start, end: end, value: v}
	}

	sort.SliceStable(intervals, func(i, j int) bool {
		if intervals[i].start != intervals[j].start {
			return intervals[i].start < intervals[j].start
		}
		return intervals[i].end < intervals[j].end
	})

	// Build suffix-max array: maxEnd[i] = max(end) for intervals[i:]
	maxEnd := make([]int64, len(intervals))
	maxEnd[len(intervals)-1] = intervals[len(intervals)-1].end
	for i := len(intervals) - 2; i >= 0; i-- {
		maxEnd[i] = intervals[i].end
		if maxEnd[i+1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i+1]
		}
	}

	return &IntervalIndex[T]{intervals: intervals, maxEnd: maxEnd}
}

// Overlapping returns all values whose interval intersects [start, end].
// The result is never an absence value: a miss is a length-0 slice.
// Results are ordered by ascending (start, end).
func (x *IntervalIndex[T]) Overlapping(start, end int64) []T {
	if len(x.intervals) == 0 {
		return nil
	}

	// Candidates must begin at or before the query end.
	hi := sort.Search(len(x.intervals), func(i int) bool {
		return x.intervals[i].start > end
	})

	var result []T
	for i := 0; i < hi; i++ {
		// Prune: maxEnd[i] is the max end for intervals[i:]. If it falls
		// short of the query start, nothing from i onward can overlap.
		if x.maxEnd[i] < start {
			break
		}
		if x.intervals[i].end >= start {
			result = append(result, x.intervals[i].value)
		}
	}

	return result
}

// At returns all values whose interval contains pos. Used for single-position
// lookups such as breakend partner queries.
func (x *IntervalIndex[T]) At(pos int64) []T {
	return x.Overlapping(pos, pos)
}

// Len returns the number of indexed intervals.
func (x *IntervalIndex[T]) Len() int {
	return len(x.intervals)
}

// Items returns all indexed values in (start, end) order.
func (x *IntervalIndex[T]) Items() []T {
	items := make([]T, len(x.intervals))
	for i := range x.intervals {
		items[i] = x.intervals[i].value
	}
	return items
}
