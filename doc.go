// Package exgroup handles failures that happen together.
//
// A Group is a tree of errors: several operations that failed at once, such
// as the branches of a fan-out (see Gather) or the checks of a multi-step
// validation. Instead of collapsing them into the first error, a Group
// keeps all of them, and lets callers deal with the parts they understand
// while the rest keeps propagating.
//
// Errors are selected by kind. Kinds are tags that annotate errors, in the
// spirit of error classes, or stand for a Go type or a sentinel value:
//
//    var (
//        errTimeout  = exgroup.NewKind("timeout")
//        errNotFound = exgroup.KindIs(sql.ErrNoRows)
//        errPath     = exgroup.KindOf(&fs.PathError{})
//    )
//
// A Catcher splits a failure across an ordered table of rules. Each rule
// gets the leaves of its kinds, in a group with the original nesting, and
// decides what happens to them:
//
//    catcher := exgroup.MustCatch(
//        exgroup.On(func(g *exgroup.Group) error {
//            log.Printf("retry later: %v", g)
//            return nil // handled
//        }, errTimeout),
//        exgroup.On(func(g *exgroup.Group) error {
//            return errors.Wrap(g, "lookup") // replaced
//        }, errNotFound, errPath),
//    )
//
//    err := catcher.Do(func() error {
//        return exgroup.Gather(ctx, "sync", fetchA, fetchB, fetchC)
//    })
//
// Whatever the rules did not consume comes out of Do, chained to the
// failure it was produced from (see CauseOf).
//
// A Suppressor is the blunt version: a failure is dropped entirely as soon
// as any of its leaves is of a suppressed kind.
//
//    err = exgroup.Suppress(errTimeout).Do(work)
package exgroup
