package iter

import (
	"context"
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/gollum.go/internal/idl"
	"gopkg.microglot.org/gollum.go/internal/optional"
)

// newSlice iterates over vs.
func newSlice[T any](vs []T) idl.Iterator[T] {
	return &iteratorSlice[T]{slice: vs, offset: -1}
}

type iteratorSlice[T any] struct {
	slice  []T
	offset int
}

func (it *iteratorSlice[T]) Next(ctx context.Context) optional.Optional[T] {
	if it.offset < len(it.slice) {
		it.offset = it.offset + 1
	}
	if it.offset >= len(it.slice) {
		return optional.None[T]()
	}
	return optional.Some(it.slice[it.offset])
}

func (it *iteratorSlice[T]) Close(ctx context.Context) error {
	return nil
}

type elem struct {
	value int
}

func TestLookahead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	numValues := 10

	for x := 0; x < numValues; x = x + 1 {
		t.Run(fmt.Sprintf("LA(%d)", x), func(t *testing.T) {
			elems := make([]*elem, 0, numValues)
			for y := 0; y < numValues; y = y + 1 {
				elems = append(elems, &elem{value: y})
			}
			look := NewLookahead(newSlice(elems), uint8(x))
			for y := 0; y < numValues; y = y + 1 {
				val := look.Next(ctx)
				require.True(t, val.IsPresent())
				require.Equal(t, y, val.Value().value)

				expectedPeek := y + x
				peek := look.Lookahead(ctx, uint8(x))
				if expectedPeek < numValues {
					require.True(t, peek.IsPresent())
					require.Equal(t, expectedPeek, peek.Value().value)
				} else {
					require.False(t, peek.IsPresent())
				}
			}
			require.False(t, look.Next(ctx).IsPresent())
			require.False(t, look.Next(ctx).IsPresent())
			require.Nil(t, look.Close(ctx))
		})
	}
}

func TestLookaheadBeyondWindow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	look := NewLookahead(newSlice([]int{1, 2, 3}), 1)
	require.Equal(t, 1, look.Lookahead(ctx, 0).Value())
	require.Equal(t, 1, look.Next(ctx).Value())
	require.Equal(t, 2, look.Lookahead(ctx, 1).Value())
	require.False(t, look.Lookahead(ctx, 2).IsPresent())
	require.Equal(t, 2, look.Next(ctx).Value())
	require.Equal(t, 3, look.Next(ctx).Value())
	require.False(t, look.Next(ctx).IsPresent())
}

func TestLookaheadPeekFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	for _, n := range []uint8{0, 1, 3} {
		look := NewLookahead(newSlice([]int{1, 2, 3}), n)
		require.Equal(t, 1, look.Lookahead(ctx, 0).Value())
		require.Equal(t, 1, look.Lookahead(ctx, 0).Value())
		values, err := Collect(ctx, look)
		require.NoError(t, err)
		require.Equal(t, []int{1, 2, 3}, values, "lookahead %d", n)
	}
}

func TestLookaheadFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	numValues := 10
	filter := idl.Filter[*elem](FilterFunc[*elem](func(ctx context.Context, val *elem) bool {
		return val.value%2 == 0
	}))
	for x := 0; x < numValues/2; x = x + 1 {
		t.Run(fmt.Sprintf("LA(%d)", x), func(t *testing.T) {
			elems := make([]*elem, 0, numValues)
			for y := 0; y < numValues; y = y + 1 {
				elems = append(elems, &elem{value: y})
			}
			look := NewLookahead(NewIteratorFilter(newSlice(elems), filter), uint8(x))
			for y := 0; y < numValues; y = y + 2 {
				val := look.Next(ctx)
				require.True(t, val.IsPresent())
				require.Equal(t, y, val.Value().value)

				expectedPeek := y + (x * 2)
				peek := look.Lookahead(ctx, uint8(x))
				if expectedPeek < numValues {
					require.True(t, peek.IsPresent())
					require.Equal(t, expectedPeek, peek.Value().value)
				} else {
					require.False(t, peek.IsPresent())
				}
			}
			require.Nil(t, look.Close(ctx))
		})
	}
}

func TestChars(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	testCases := []struct {
		name     string
		input    string
		expected []idl.Char
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:  "ascii",
			input: "f(x)",
			expected: []idl.Char{
				{Point: 'f', Offset: 0, Width: 1},
				{Point: '(', Offset: 1, Width: 1},
				{Point: 'x', Offset: 2, Width: 1},
				{Point: ')', Offset: 3, Width: 1},
			},
		},
		{
			name:  "multi-byte",
			input: "λx",
			expected: []idl.Char{
				{Point: 'λ', Offset: 0, Width: 2},
				{Point: 'x', Offset: 2, Width: 1},
			},
		},
		{
			name:  "invalid utf-8",
			input: "a\xffb",
			expected: []idl.Char{
				{Point: 'a', Offset: 0, Width: 1},
				{Point: utf8.RuneError, Offset: 1, Width: 1},
				{Point: 'b', Offset: 2, Width: 1},
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			out, err := Collect(ctx, NewChars(testCase.input))
			require.Nil(t, err)
			require.Equal(t, testCase.expected, out)
		})
	}
}

var benchEscapeValue *elem
var benchEscapeValuePeek *elem

func BenchmarkLookahead(b *testing.B) {
	ctx := context.Background()
	sliceSize := 1000
	slice := make([]*elem, sliceSize)
	for x := 0; x < sliceSize; x = x + 1 {
		slice[x] = &elem{value: x}
	}

	var loopEscapeValue *elem
	var loopEscapeValuePeek *elem
	b.ResetTimer()
	for n := 0; n < b.N; n = n + 1 {
		look := NewLookahead(newSlice(slice), 1)
		for x := 0; x < sliceSize; x = x + 1 {
			loopEscapeValue = look.Next(ctx).Value()
			loopEscapeValuePeek = look.Lookahead(ctx, 1).Value()
		}
	}
	benchEscapeValue = loopEscapeValue
	benchEscapeValuePeek = loopEscapeValuePeek
}
