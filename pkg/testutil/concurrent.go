package testutil

import (
	"sync"
	"sync/atomic"

	"tenderai/pkg/apierrors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes    int32
	Errors       int32
	Unauthorized int32
	NotFounds    int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	return r.Successes + r.Errors + r.Unauthorized + r.NotFounds
}

// RunConcurrent executes fn in parallel goroutines and sorts the outcomes by
// normalized error kind.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var successes, errs, unauthorized, notFounds atomic.Int32

	for i := range goroutines {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			err := fn(idx)
			switch {
			case err == nil:
				successes.Add(1)
			case apierrors.IsUnauthorized(err):
				unauthorized.Add(1)
			case apierrors.IsNotFound(err):
				notFounds.Add(1)
			default:
				errs.Add(1)
			}
		}(i)
	}

	wg.Wait()

	return &ConcurrentResult{
		Successes:    successes.Load(),
		Errors:       errs.Load(),
		Unauthorized: unauthorized.Load(),
		NotFounds:    notFounds.Load(),
	}
}
