package exgroup

type traverseConfig struct {
	depth uint
}

func applyTraverseOpts(opts ...TraverseOption) *traverseConfig {
	cfg := new(traverseConfig)
	for _, f := range opts {
		f(cfg)
	}
	return cfg
}

// TraverseOption configures how far a kind looks into an error's chain.
type TraverseOption func(*traverseConfig)

// Depth sets maximum traversal depth to d elements. Zero means no limit.
func Depth(d uint) TraverseOption {
	return TraverseOption(func(c *traverseConfig) {
		c.depth = d
	})
}

type causer interface {
	Cause() error
}

type wrapper interface {
	Unwrap() error
}

// next returns the error that err wraps, preferring pkg/errors causers.
// Groups are tree nodes and are never stepped into.
func next(err error) error {
	if _, ok := err.(*Group); ok {
		return nil
	}
	if c, ok := err.(causer); ok {
		return c.Cause()
	}
	if w, ok := err.(wrapper); ok {
		return w.Unwrap()
	}
	return nil
}

// chain applies f to err and every intermediate error it wraps, stopping at
// the first match.
//
// Traversal is done in place with a trampoline, without collecting the
// chain into a slice.
func chain(err error, f func(error) bool, cfg *traverseConfig) bool {
	cursor := err
	for depth := uint(0); cursor != nil && (depth < cfg.depth || cfg.depth == 0); depth++ {
		if f(cursor) {
			return true
		}
		cursor = next(cursor)
	}
	return false
}
