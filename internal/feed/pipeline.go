// Package feed implements the in-memory query pipeline behind the listing
// endpoints: match, text relevance scoring, sorting, pagination and
// projection over candidate sets fetched from the database.
package feed

import "sort"

// Stage transforms a candidate slice. Stages run in the order they were
// added to the pipeline; a stage may record page metadata.
type Stage[T any] func(items []T, meta *Meta) []T

// Pipeline is an ordered sequence of stages over candidates of type T.
// Stage order is load-bearing: scoring must precede sorting, and projection
// runs last so internal ranking state never reaches the response.
type Pipeline[T any] struct {
	stages []Stage[T]
}

// New creates an empty pipeline.
func New[T any]() *Pipeline[T] {
	return &Pipeline[T]{}
}

// Append adds a raw stage.
func (p *Pipeline[T]) Append(s Stage[T]) *Pipeline[T] {
	p.stages = append(p.stages, s)
	return p
}

// Match keeps only items satisfying pred.
func (p *Pipeline[T]) Match(pred func(T) bool) *Pipeline[T] {
	return p.Append(func(items []T, _ *Meta) []T {
		kept := items[:0]
		for _, it := range items {
			if pred(it) {
				kept = append(kept, it)
			}
		}
		return kept
	})
}

// Sort orders items by less using a stable sort, preserving the relative
// order of equal elements from earlier stages.
func (p *Pipeline[T]) Sort(less func(a, b T) bool) *Pipeline[T] {
	return p.Append(func(items []T, _ *Meta) []T {
		sort.SliceStable(items, func(i, j int) bool {
			return less(items[i], items[j])
		})
		return items
	})
}

// Paginate records page metadata over the full result set and narrows it to
// the requested window. An out-of-range page yields an empty window, not an
// error.
func (p *Pipeline[T]) Paginate(req PageRequest) *Pipeline[T] {
	return p.Append(func(items []T, meta *Meta) []T {
		*meta = pageMeta(len(items), req)
		return window(items, req)
	})
}

// Project applies fn to every item. Used as the final stage to shape the
// public view of each item.
func (p *Pipeline[T]) Project(fn func(T) T) *Pipeline[T] {
	return p.Append(func(items []T, _ *Meta) []T {
		for i := range items {
			items[i] = fn(items[i])
		}
		return items
	})
}

// Run executes the stages in order and returns the resulting items along
// with page metadata. Meta is the zero value if no Paginate stage ran.
func (p *Pipeline[T]) Run(items []T) ([]T, Meta) {
	var meta Meta
	for _, s := range p.stages {
		items = s(items, &meta)
	}
	return items, meta
}
