package async

import "context"

// Future is the eventual result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	done   chan struct{}
}

// Async runs fn in its own goroutine and returns immediately.
// A context cancelled before fn starts completes the future with ctx.Err().
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx, param)
	}()

	return f
}

// Resolved returns an already completed future.
func Resolved[U any](result U, err error) *Future[U] {
	f := &Future[U]{result: result, err: err, done: make(chan struct{})}
	close(f.done)
	return f
}

// Await blocks until the computation completes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// WaitAll awaits every future in order and returns on the first error.
// Results of futures that completed before the error are kept.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	for i, f := range futures {
		res, err := f.Await()
		results[i] = res
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
