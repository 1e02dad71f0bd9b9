package cache

import (
	"context"

	"github.com/sourcegraph/conc/pool"
)

// runAll executes independent repository calls concurrently and joins
// them fail fast: the first error is returned and cancels the context
// handed to the remaining calls. Calls already running are not stopped
// and calls that finished are not rolled back.
func runAll(ctx context.Context, ops ...func(context.Context) error) error {
	if len(ops) == 0 {
		return nil
	}

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for _, op := range ops {
		p.Go(op)
	}
	return p.Wait()
}
