package netsuite

import (
	"errors"
	"iter"
)

// ErrEmptyIterator is returned by First when the iterator yields no rows.
var ErrEmptyIterator = errors.New("netsuite: iterator is empty")

// Collect gathers all items from an iterator, such as SuiteQL.Query, into a
// slice. It stops on the first error and returns the items collected so far
// along with the error. For the all-or-nothing contract use
// SuiteQL.QueryAll instead.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	result := make([]T, 0)
	for item, err := range seq {
		if err != nil {
			return result, err
		}
		result = append(result, item)
	}
	return result, nil
}

// First returns the first item from an iterator, or an error if the
// iterator is empty or fails.
func First[T any](seq iter.Seq2[T, error]) (T, error) {
	for item, err := range seq {
		return item, err
	}
	var zero T
	return zero, ErrEmptyIterator
}

// Take returns an iterator that yields at most n items from the source
// iterator. Combined with SuiteQL.Query it stops fetching pages once n rows
// have been seen.
func Take[T any](seq iter.Seq2[T, error], n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		count := 0
		for item, err := range seq {
			if !yield(item, err) || err != nil {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
