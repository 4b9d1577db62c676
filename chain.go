package exgroup

import (
	"fmt"
	"io"
)

// chained links an error produced while handling a failure to the failure
// that caused it. It unwraps to the produced error only.
type chained struct {
	err   error
	cause error
}

func (c *chained) Error() string {
	return c.err.Error()
}

func (c *chained) Unwrap() error {
	return c.err
}

func (c *chained) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%+v", c.err)
			if c.cause != nil {
				fmt.Fprintf(s, "\ncaused by: %+v", c.cause)
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, c.Error())
	case 'q':
		fmt.Fprintf(s, "%q", c.Error())
	}
}

// CauseOf returns the failure err was produced from by Catch, or nil.
func CauseOf(err error) error {
	switch e := err.(type) {
	case *Group:
		return e.cause
	case *chained:
		return e.cause
	}
	return nil
}

// ContextOf returns the failure that was being handled when the group err
// was produced, as recorded by WithContext, or nil.
func ContextOf(err error) error {
	if g, ok := err.(*Group); ok {
		return g.context
	}
	return nil
}

// causedBy links err to cause. A group is copied to carry the link, since
// it may still be part of the caller's tree; any other error is wrapped so
// its identity survives errors.Is.
func causedBy(err, cause error) error {
	if g, ok := err.(*Group); ok {
		linked := *g
		linked.cause = cause
		return &linked
	}
	if cause == nil {
		return err
	}
	return &chained{err: err, cause: cause}
}
