package exgroup

import (
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// HandlerFunc handles the part of a failure that matched its rule.
//
// Returning nil marks the matched errors as handled. Returning the matched
// group itself, or ErrPassThrough, declines them: they propagate as if
// they had never matched, next to whatever else is left. Any other error
// replaces the matched errors.
type HandlerFunc func(*Group) error

// Rule binds a set of kinds to the handler for errors of those kinds.
type Rule struct {
	Kinds   []*Kind
	Handler HandlerFunc
}

// On returns a rule calling h with the leaves that belong to any of kinds.
func On(h HandlerFunc, kinds ...*Kind) Rule {
	return Rule{Kinds: kinds, Handler: h}
}

// Catcher dispatches the leaves of a failure to an ordered table of rules.
//
// A Catcher holds no per-call state and may be shared between goroutines.
type Catcher struct {
	rules []Rule
}

// Catch validates the rule table and returns a Catcher for it. Every
// problem with the table is reported in a single error selected by
// ErrConfiguration.
func Catch(rules ...Rule) (*Catcher, error) {
	var result *multierror.Error
	table := make([]Rule, 0, len(rules))
	for i, r := range rules {
		if len(r.Kinds) == 0 {
			result = multierror.Append(result, errors.Errorf("rule %d: no kinds given", i))
		}
		for _, k := range r.Kinds {
			if err := k.check(); err != nil {
				result = multierror.Append(result, errors.Wrapf(err, "rule %d", i))
			}
		}
		if r.Handler == nil {
			result = multierror.Append(result, errors.Errorf("rule %d: nil handler", i))
		}
		table = append(table, Rule{
			Kinds:   append([]*Kind(nil), r.Kinds...),
			Handler: r.Handler,
		})
	}

	if result != nil {
		result.ErrorFormat = listFormat
		return nil, ErrConfiguration.Wrap(result.ErrorOrNil(), "invalid rule table")
	}
	return &Catcher{rules: table}, nil
}

// MustCatch is like Catch but panics if the rule table is malformed. It
// simplifies initialization of package level catchers.
func MustCatch(rules ...Rule) *Catcher {
	c, err := Catch(rules...)
	if err != nil {
		panic(err)
	}
	return c
}

func listFormat(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Do runs fn and handles the error it returns. See Handle.
func (c *Catcher) Do(fn func() error) error {
	return c.Handle(fn())
}

// Handle dispatches err across the rule table and returns what is left to
// propagate: nil when everything was handled, err itself when no rule
// matched, or the replacement produced by the handlers.
//
// A replacement is chained to the failure it came from. If err is a
// *Group, the replacement's cause is the group's context; otherwise it is
// err. CauseOf reads the link.
func (c *Catcher) Handle(err error) error {
	if err == nil {
		return nil
	}

	touched, unhandled := c.dispatch(err)
	switch {
	case !touched:
		return err
	case unhandled == nil:
		return nil
	case sameError(unhandled, err):
		return err
	}

	if g, ok := err.(*Group); ok {
		return causedBy(unhandled, g.context)
	}
	return causedBy(unhandled, err)
}

// dispatch runs the rule table over err. It reports whether any rule
// matched at all; if none did, err must propagate as it is.
func (c *Catcher) dispatch(err error) (bool, error) {
	tree := AsGroup(err)
	rest := tree

	var raised []error
	for _, r := range c.rules {
		var matched *Group
		matched, rest = rest.Split(r.Kinds...)
		if matched != nil {
			raised = collect(raised, matched, r.Handler(matched))
		}
		if rest == nil {
			break
		}
	}

	switch {
	case rest == tree:
		return false, nil
	case rest != nil:
		raised = append(raised, rest)
	}

	switch len(raised) {
	case 0:
		return true, nil
	case 1:
		return true, raised[0]
	}
	return true, NewGroup("", raised...)
}

// collect records the outcome of a handler call on matched.
func collect(raised []error, matched *Group, err error) []error {
	switch {
	case err == nil:
		return raised
	case sameError(err, ErrPassThrough), sameError(err, matched):
		return append(raised, matched.errs...)
	}

	for _, r := range raised {
		if sameError(r, err) {
			return raised
		}
	}
	return append(raised, err)
}
