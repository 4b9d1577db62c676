package exgroup

// Suppressor discards failures that contain errors of a fixed set of kinds.
type Suppressor struct {
	kinds []*Kind
}

// Suppress returns a Suppressor for kinds. Any is allowed here.
func Suppress(kinds ...*Kind) *Suppressor {
	return &Suppressor{kinds: append([]*Kind(nil), kinds...)}
}

// Do runs fn and handles the error it returns. See Handle.
func (s *Suppressor) Do(fn func() error) error {
	return s.Handle(fn())
}

// Handle returns nil if err belongs to one of the kinds, and err unchanged
// otherwise.
//
// A *Group, or any other tree AsGroup understands, is discarded as a whole
// as soon as one of its leaves belongs to the kinds; the leaves that do not
// are dropped with it. Use a Catcher with a handler returning nil to
// discard only the matching part of a group.
func (s *Suppressor) Handle(err error) error {
	if err == nil {
		return nil
	}

	if matched, _ := AsGroup(err).Split(s.kinds...); matched != nil {
		return nil
	}
	return err
}
