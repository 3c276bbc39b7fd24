// Package chunk splits ordered sequences into fixed-size groups.
package chunk

import "iter"

// Seq yields consecutive groups of size items from items, in order.
// The last group holds the remainder. An empty input yields a single
// empty group. Each yielded slice is owned by the receiver.
func Seq[T any](items iter.Seq[T], size int) iter.Seq[[]T] {
	if size < 1 {
		panic("chunk: size must be greater than 0")
	}

	return func(yield func([]T) bool) {
		var (
			group = make([]T, 0, size)
			seen  int
		)

		for item := range items {
			seen++
			group = append(group, item)
			if len(group) == size {
				if !yield(group) {
					return
				}
				group = make([]T, 0, size)
			}
		}

		// a perfect fit leaves nothing behind unless the input was empty
		if len(group) > 0 || seen == 0 {
			yield(group)
		}
	}
}

// Slice is the eager form of Seq.
func Slice[T any](items []T, size int) [][]T {
	var groups [][]T

	for group := range Seq(Values(items), size) {
		groups = append(groups, group)
	}

	return groups
}

// Values iterates over items in order.
func Values[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}
