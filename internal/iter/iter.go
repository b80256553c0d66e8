package iter

import (
	"context"

	"gopkg.microglot.org/gollum.go/internal/idl"
	"gopkg.microglot.org/gollum.go/internal/optional"
)

// NewIteratorFilter wraps an iterator with a filter so that only values that
// pass the filter are returned.
func NewIteratorFilter[T any](it idl.Iterator[T], f idl.Filter[T]) idl.Iterator[T] {
	return &iteratorFilter[T]{
		iter:   it,
		filter: f,
	}
}

type iteratorFilter[T any] struct {
	iter   idl.Iterator[T]
	filter idl.Filter[T]
}

func (it *iteratorFilter[T]) Next(ctx context.Context) optional.Optional[T] {
	for {
		v := it.iter.Next(ctx)
		if !v.IsPresent() {
			return v
		}
		if it.filter.Keep(ctx, v.Value()) {
			return v
		}
	}
}

func (it *iteratorFilter[T]) Close(ctx context.Context) error {
	return it.iter.Close(ctx)
}

// NewLookahead wraps an iterator in a Lookahead implementation to enable
// peeking at the next n values. Lookahead(0) is the value most recently
// returned by Next, or the first value when Next has not been called yet.
func NewLookahead[T any](it idl.Iterator[T], n uint8) idl.Lookahead[T] {
	return &lookahead[T]{
		iter: it,
		n:    n,
	}
}

// lookahead keeps a ring of n+1 values; head indexes the current value.
// Peeking before the first Next fills the ring without consuming anything, so
// started records whether ring[head] has been returned yet.
type lookahead[T any] struct {
	iter    idl.Iterator[T]
	n       uint8
	head    int
	ring    []optional.Optional[T]
	ready   bool
	started bool
}

func (look *lookahead[T]) fill(ctx context.Context) {
	look.ring = make([]optional.Optional[T], int(look.n)+1)
	for x := range look.ring {
		look.ring[x] = look.iter.Next(ctx)
	}
	look.ready = true
}

func (look *lookahead[T]) Next(ctx context.Context) optional.Optional[T] {
	if !look.ready {
		look.fill(ctx)
	}
	if !look.started {
		look.started = true
		return look.ring[look.head]
	}
	look.ring[look.head] = look.iter.Next(ctx)
	look.head = (look.head + 1) % len(look.ring)
	return look.ring[look.head]
}

func (look *lookahead[T]) Close(ctx context.Context) error {
	return look.iter.Close(ctx)
}

func (look *lookahead[T]) Lookahead(ctx context.Context, n uint8) optional.Optional[T] {
	if !look.ready {
		look.fill(ctx)
	}
	if n > look.n {
		return optional.None[T]()
	}
	return look.ring[(look.head+int(n))%len(look.ring)]
}

// Collect drains it into a slice and closes it.
func Collect[T any](ctx context.Context, it idl.Iterator[T]) ([]T, error) {
	var out []T
	for v := it.Next(ctx); v.IsPresent(); v = it.Next(ctx) {
		out = append(out, v.Value())
	}
	return out, it.Close(ctx)
}

// FilterFunc is an adaptor for simple filter functions that makes them
// compatible with the Filter interface. Use like:
//
//	FilterFunc[T](func(ctx context.Context, val T) bool { return true })
//
// Note that this type should never be referenced directly in any signature.
// Always use Filter as an input or output type.
type FilterFunc[T any] func(ctx context.Context, val T) bool

func (f FilterFunc[T]) Keep(ctx context.Context, val T) bool {
	return f(ctx, val)
}
