// Package internal holds small generic helpers shared across packages.
package internal

import (
	"iter"
)

// IterSeq2Concat chains key/value iterators into one sequence, honoring
// early termination by the consumer.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(key K, value V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}
