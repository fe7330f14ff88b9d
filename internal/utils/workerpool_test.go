package utils

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelForEach(t *testing.T) {
	t.Parallel()

	t.Run("processes every item", func(t *testing.T) {
		var sum atomic.Int64
		items := []int{1, 2, 3, 4, 5}

		errs := ParallelForEach(context.Background(), items, 3, func(ctx context.Context, n int) error {
			sum.Add(int64(n))
			return nil
		})

		require.Len(t, errs, 5)
		assert.NoError(t, FirstError(errs))
		assert.Equal(t, int64(15), sum.Load())
	})

	t.Run("errors are reported in item order", func(t *testing.T) {
		items := []int{1, 2, 3, 4}

		errs := ParallelForEach(context.Background(), items, 4, func(ctx context.Context, n int) error {
			if n%2 == 0 {
				return errors.New("even")
			}
			return nil
		})

		assert.NoError(t, errs[0])
		assert.EqualError(t, errs[1], "even")
		assert.NoError(t, errs[2])
		assert.EqualError(t, errs[3], "even")
	})

	t.Run("empty input", func(t *testing.T) {
		errs := ParallelForEach(context.Background(), []int{}, 3, func(ctx context.Context, n int) error {
			return errors.New("never called")
		})
		assert.Empty(t, errs)
	})

	t.Run("non-positive worker count", func(t *testing.T) {
		var calls atomic.Int32
		errs := ParallelForEach(context.Background(), []int{1, 2}, 0, func(ctx context.Context, n int) error {
			calls.Add(1)
			return nil
		})
		assert.NoError(t, FirstError(errs))
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("cancelled context marks unstarted items", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		errs := ParallelForEach(ctx, []int{1, 2, 3}, 1, func(ctx context.Context, n int) error {
			return nil
		})

		require.Len(t, errs, 3)
		assert.ErrorIs(t, FirstError(errs), context.Canceled)
	})
}

func TestFirstError(t *testing.T) {
	first := errors.New("first")
	assert.Nil(t, FirstError(nil))
	assert.Nil(t, FirstError([]error{nil, nil}))
	assert.Equal(t, first, FirstError([]error{nil, first, errors.New("second")}))
}
