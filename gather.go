package exgroup

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Gather runs every fn concurrently and waits for all of them. It returns
// nil if none failed, or a *Group with message msg holding the failures in
// argument order.
//
// Unlike an errgroup, a failure does not cancel the others: every error is
// kept.
func Gather(ctx context.Context, msg string, fns ...func(context.Context) error) error {
	return GatherLimit(ctx, -1, msg, fns...)
}

// GatherLimit is like Gather but runs at most limit functions at once. A
// limit below one means no limit.
func GatherLimit(ctx context.Context, limit int, msg string, fns ...func(context.Context) error) error {
	if limit < 1 {
		limit = -1
	}
	errs := make([]error, len(fns))

	var eg errgroup.Group
	eg.SetLimit(limit)
	for i, fn := range fns {
		i, fn := i, fn
		eg.Go(func() error {
			errs[i] = fn(ctx)
			return nil
		})
	}
	_ = eg.Wait()

	return Join(msg, errs...)
}
