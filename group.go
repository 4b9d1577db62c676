package exgroup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Group is a tree of failures that happened together. Each child is either
// a leaf error or another *Group.
//
// The structure of a group never changes after construction. Only its link
// fields, cause and context, are set later, by WithContext and by Catch
// when it chains a result to the failure it was produced from.
type Group struct {
	msg     string
	errs    []error
	cause   error
	context error
}

var _ error = new(Group)

// NewGroup returns a group of the non-nil errs. A group without children is
// not a failure, so NewGroup panics if no child remains; use Join where the
// errors may all be nil.
func NewGroup(msg string, errs ...error) *Group {
	children := compact(errs)
	if len(children) == 0 {
		panic("exgroup: NewGroup called without a non-nil error")
	}
	return &Group{msg: msg, errs: children}
}

// Join returns a group of the non-nil errs, or nil if there are none.
func Join(msg string, errs ...error) error {
	if len(compact(errs)) == 0 {
		return nil
	}
	return NewGroup(msg, errs...)
}

// AsGroup returns err as a tree. A *Group is returned as is; values joined
// with errors.Join and *multierror.Error values become a group of their
// children; any other error becomes a one-element group with an empty
// message.
func AsGroup(err error) *Group {
	switch e := err.(type) {
	case nil:
		return nil
	case *Group:
		return e
	case *multierror.Error:
		if errs := compact(e.WrappedErrors()); len(errs) > 0 {
			return &Group{errs: errs}
		}
	case interface{ Unwrap() []error }:
		if errs := compact(e.Unwrap()); len(errs) > 0 {
			return &Group{errs: errs}
		}
	}
	return &Group{errs: []error{err}}
}

func compact(errs []error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// Message returns the message the group was created with.
func (g *Group) Message() string {
	return g.msg
}

// Len returns the number of direct children.
func (g *Group) Len() int {
	return len(g.errs)
}

// Errors returns a copy of the direct children.
func (g *Group) Errors() []error {
	out := make([]error, len(g.errs))
	copy(out, g.errs)
	return out
}

// Unwrap exposes the children to errors.Is and errors.As.
func (g *Group) Unwrap() []error {
	return g.errs
}

// Leaves returns every leaf error of the tree, depth first.
func (g *Group) Leaves() []error {
	var out []error
	for _, err := range g.errs {
		if sub, ok := err.(*Group); ok {
			out = append(out, sub.Leaves()...)
			continue
		}
		out = append(out, err)
	}
	return out
}

// WithContext records err as the failure that was being handled when the
// group was produced, and returns the group.
func (g *Group) WithContext(err error) *Group {
	g.context = err
	return g
}

// Split partitions the tree by kind membership of its leaves. See
// SplitFunc.
func (g *Group) Split(kinds ...*Kind) (matched, rest *Group) {
	return g.SplitFunc(anyOf(kinds))
}

// SplitFunc partitions the tree into the leaves selected by match and the
// rest, keeping the nesting of both sides. A side without leaves is nil; a
// side holding every leaf is g itself. Derived groups carry the message and
// links of the group they were cut from.
func (g *Group) SplitFunc(match func(error) bool) (matched, rest *Group) {
	var in, out []error
	for _, err := range g.errs {
		if sub, ok := err.(*Group); ok {
			m, r := sub.SplitFunc(match)
			if m != nil {
				in = append(in, m)
			}
			if r != nil {
				out = append(out, r)
			}
			continue
		}

		if match(err) {
			in = append(in, err)
		} else {
			out = append(out, err)
		}
	}

	switch {
	case len(out) == 0:
		return g, nil
	case len(in) == 0:
		return nil, g
	}
	return g.derive(in), g.derive(out)
}

// Subgroup returns the part of the tree whose leaves belong to kinds, or nil.
func (g *Group) Subgroup(kinds ...*Kind) *Group {
	matched, _ := g.Split(kinds...)
	return matched
}

func (g *Group) derive(errs []error) *Group {
	return &Group{
		msg:     g.msg,
		errs:    errs,
		cause:   g.cause,
		context: g.context,
	}
}

func anyOf(kinds []*Kind) func(error) bool {
	return func(err error) bool {
		for _, k := range kinds {
			if k != nil && k.In(err) {
				return true
			}
		}
		return false
	}
}

func (g *Group) header() string {
	n := strconv.Itoa(len(g.errs)) + " sub-error"
	if len(g.errs) != 1 {
		n += "s"
	}
	if g.msg == "" {
		return n
	}
	return g.msg + " (" + n + ")"
}

func (g *Group) Error() string {
	var sb strings.Builder
	sb.WriteString(g.header())
	sb.WriteString(": ")
	for i, err := range g.errs {
		if i > 0 {
			sb.WriteString("; ")
		}
		if _, ok := err.(*Group); ok {
			sb.WriteString("[" + err.Error() + "]")
			continue
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Format renders the whole tree with %+v, one child per numbered entry.
func (g *Group) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			g.writeTree(s, "")
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, g.Error())
	case 'q':
		fmt.Fprintf(s, "%q", g.Error())
	}
}

func (g *Group) writeTree(w io.Writer, indent string) {
	io.WriteString(w, g.header())
	for i, err := range g.errs {
		fmt.Fprintf(w, "\n%s+-- %d: ", indent, i+1)
		if sub, ok := err.(*Group); ok {
			sub.writeTree(w, indent+"|   ")
			continue
		}
		detail := fmt.Sprintf("%+v", err)
		io.WriteString(w, strings.ReplaceAll(detail, "\n", "\n"+indent+"|   "))
	}
}
