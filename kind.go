package exgroup

import (
	"fmt"
	"io"
	"reflect"

	"github.com/pkg/errors"
)

// Kind identifies a category of leaf errors. A slice of kinds is the
// type-set a rule or a suppressor selects on.
//
// Kinds come in three flavors: tags created with NewKind or Anonymous,
// which annotate errors they lift; type kinds created with KindOf; and
// sentinel kinds created with KindIs. All of them select by walking an
// error's cause chain, so wrapped errors still belong to their kind.
type Kind struct {
	name  string
	named bool
	tag   bool
	any   bool
	broad bool
	empty bool
	root  bool
	typ   reflect.Type
	match func(error) bool
	cfg   *traverseConfig
}

// Any is the reserved kind every error belongs to. It may be suppressed,
// but Catch refuses it: check err != nil instead.
var Any = &Kind{name: "any", named: true, any: true, broad: true, cfg: new(traverseConfig)}

var (
	groupType = reflect.TypeOf((*Group)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

// NewKind returns a named tag kind.
//
// It selects errors lifted by any named kind with exactly the same name,
// so it may be used across package boundaries.
func NewKind(name string) *Kind {
	k := &Kind{name: name, named: true, tag: true, cfg: new(traverseConfig)}
	k.match = k.owns
	return k
}

// Anonymous returns an anonymous tag kind.
//
// It selects only errors it lifted itself. Due to its dependence on an
// address comparison, it should probably not cross package boundaries.
func Anonymous() *Kind {
	k := &Kind{name: "anonymous", tag: true, cfg: new(traverseConfig)}
	k.match = k.owns
	return k
}

// KindOf returns a kind selecting errors with the same dynamic type as
// sample anywhere in their chain. A nil pointer to an interface type, such
// as (*net.Error)(nil), selects errors implementing that interface. An
// interface every error implements, such as error itself, is as broad as
// Any.
func KindOf(sample interface{}, opts ...TraverseOption) *Kind {
	k := &Kind{cfg: applyTraverseOpts(opts...)}
	T := reflect.TypeOf(sample)
	if T == nil {
		k.name = "<nil>"
		return k
	}

	k.typ = T
	k.name = T.String()
	if T.Kind() == reflect.Ptr && T.Elem().Kind() == reflect.Interface {
		iface := T.Elem()
		k.name = iface.String()
		k.broad = errorType.Implements(iface)
		k.match = func(err error) bool {
			return reflect.TypeOf(err).Implements(iface)
		}
		return k
	}

	k.match = func(err error) bool {
		return reflect.TypeOf(err) == T
	}
	return k
}

// KindIs returns a kind selecting errors that have target anywhere in
// their chain.
func KindIs(target error, opts ...TraverseOption) *Kind {
	k := &Kind{cfg: applyTraverseOpts(opts...)}
	if target == nil {
		k.name = "<nil>"
		return k
	}

	k.name = fmt.Sprintf("%q", target.Error())
	k.match = func(err error) bool {
		return sameError(err, target)
	}
	return k
}

// String returns the name of the kind.
func (k *Kind) String() string {
	if k == nil {
		return "<nil>"
	}
	return k.name
}

// In reports whether err belongs to the kind. Groups are never members of
// a kind; their leaves are.
func (k *Kind) In(err error) bool {
	if k == nil || err == nil {
		return false
	}
	if _, ok := err.(*Group); ok {
		return false
	}
	if k.any {
		return true
	}
	if k.match == nil {
		return false
	}
	if k.root {
		return k.match(err)
	}
	return chain(err, k.match, k.cfg)
}

// Lift annotates err with the kind. Only tag kinds annotate; type and
// sentinel kinds return err untouched since it already belongs to them.
func (k *Kind) Lift(err error) error {
	if err == nil || !k.tag {
		return err
	}
	return &kindErr{kind: k, err: err}
}

// New returns a new error of this kind with a stack trace.
func (k *Kind) New(msg string) error {
	return k.Lift(errors.New(msg))
}

// Errorf returns a new formatted error of this kind with a stack trace.
func (k *Kind) Errorf(format string, args ...interface{}) error {
	return k.Lift(errors.Errorf(format, args...))
}

// WithStack lifts err after annotating it with a stack trace.
func (k *Kind) WithStack(err error) error {
	return k.Lift(errors.WithStack(err))
}

// Wrap lifts err after wrapping it with msg and a stack trace.
func (k *Kind) Wrap(err error, msg string) error {
	return k.Lift(errors.Wrap(err, msg))
}

// Wrapf lifts err after wrapping it with a formatted message and a stack
// trace.
func (k *Kind) Wrapf(err error, format string, args ...interface{}) error {
	return k.Lift(errors.Wrapf(err, format, args...))
}

func (k *Kind) owns(err error) bool {
	c, ok := err.(*kindErr)
	if !ok {
		return false
	}
	if c.kind == k {
		return true
	}
	return c.kind.named && k.named && c.kind.name == k.name
}

// check reports why a kind cannot key a Catch rule.
func (k *Kind) check() error {
	switch {
	case k == nil:
		return errors.New("nil kind")
	case k.broad:
		return errors.Errorf("catching %s with Catch is not allowed, check err != nil instead", k.name)
	case k.typ == groupType:
		return errors.New("catching *Group with Catch is not allowed, select on its leaves instead")
	case k.empty, k.match == nil && !k.any:
		return errors.Errorf("kind %s selects nothing", k.name)
	}
	return nil
}

type kindErr struct {
	kind *Kind
	err  error
}

func (c *kindErr) Error() string {
	if c.kind.named {
		return c.kind.name + ": " + c.err.Error()
	}
	return c.err.Error()
}

func (c *kindErr) Cause() error {
	return c.err
}

func (c *kindErr) Unwrap() error {
	return c.err
}

func (c *kindErr) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			if c.kind.named {
				io.WriteString(s, c.kind.name+": ")
			}
			fmt.Fprintf(s, "%+v", c.err)
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, c.Error())
	case 'q':
		fmt.Fprintf(s, "%q", c.Error())
	}
}

// sameError compares errors by identity without panicking on
// uncomparable dynamic types.
func sameError(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
