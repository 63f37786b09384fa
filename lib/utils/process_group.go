package utils

import (
	"runtime"
	"sync"
)

type ParallelOptions struct {
	Routines int
}

type indexed[T any] struct {
	index int
	value T
}

// ParallelMap runs proc for every item and returns the outputs in the same
// order. After the first error no new items are started.
func ParallelMap[T, O any](col []T, proc func(T) (O, error), opts ...ParallelOptions) ([]O, error) {
	routines := Max(Min(runtime.GOMAXPROCS(-1), runtime.NumCPU()/2)-1, 1)
	for _, o := range opts {
		if o.Routines > 0 {
			routines = o.Routines
		}
	}
	routines = Min(routines, Max(len(col), 1))

	input := make(chan indexed[T])
	abort := make(chan struct{})
	result := make([]O, len(col))

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error

	for i := 0; i < routines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for in := range input {
				output, err := proc(in.value)
				if err != nil {
					once.Do(func() {
						firstErr = err
						close(abort)
					})
					continue
				}

				result[in.index] = output
			}
		}()
	}

feed:
	for i, v := range col {
		select {
		case <-abort:
			break feed
		case input <- indexed[T]{i, v}:
		}
	}
	close(input)

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}
