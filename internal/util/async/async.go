package async

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Task is a named operation producing zero or more values.
type Task[T any] struct {
	Name string
	Func func(context.Context) ([]T, error)
}

// Gather runs all tasks concurrently and returns their values concatenated
// in task order. Every task runs to completion; failures are joined.
//
// Example:
//
//	out, err := Gather(ctx, []Task[fetched]{
//	    {Name: "network", Func: fetchNetwork},
//	    {Name: "clusters", Func: fetchClusters},
//	})
func Gather[T any](ctx context.Context, tasks []Task[T]) ([]T, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	values := make([][]T, len(tasks))
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Go(func() {
			v, err := task.Func(ctx)
			values[i] = v
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
			}
		})
	}
	wg.Wait()

	var out []T
	for _, v := range values {
		out = append(out, v...)
	}
	return out, errors.Join(errs...)
}
