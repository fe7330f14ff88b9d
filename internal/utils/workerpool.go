package utils

import (
	"context"
	"sync"
)

// ParallelForEach executes fn for each item using at most workers
// goroutines. The returned slice holds one error per item, in item order.
// Items never started because ctx was cancelled are reported with ctx.Err().
func ParallelForEach[T any](ctx context.Context, items []T, workers int, fn func(context.Context, T) error) []error {
	if workers <= 0 {
		workers = 1
	}
	if workers > len(items) {
		workers = len(items)
	}

	errors := make([]error, len(items))
	started := make([]bool, len(items))
	taskChan := make(chan int, len(items))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-taskChan:
					if !ok || ctx.Err() != nil {
						return
					}
					mu.Lock()
					started[idx] = true
					mu.Unlock()

					err := fn(ctx, items[idx])

					mu.Lock()
					errors[idx] = err
					mu.Unlock()
				}
			}
		}()
	}

	for i := range items {
		taskChan <- i
	}
	close(taskChan)
	wg.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		for i := range errors {
			if !started[i] && errors[i] == nil {
				errors[i] = ctxErr
			}
		}
	}

	return errors
}

// FirstError returns the first non-nil error from a slice of errors
func FirstError(errors []error) error {
	for _, err := range errors {
		if err != nil {
			return err
		}
	}
	return nil
}
