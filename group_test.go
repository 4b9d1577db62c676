package exgroup

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroup(t *testing.T) {
	a, b := errors.New("a"), errors.New("b")

	g := NewGroup("batch", nil, a, nil, b)
	assert.Equal(t, "batch", g.Message())
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []error{a, b}, g.Errors())

	// Errors hands out a copy
	g.Errors()[0] = nil
	assert.Equal(t, a, g.Errors()[0])

	assert.Panics(t, func() { NewGroup("empty") })
	assert.Panics(t, func() { NewGroup("empty", nil, nil) })
}

func TestJoin(t *testing.T) {
	assert.Nil(t, Join("none"))
	assert.Nil(t, Join("none", nil, nil))

	a := errors.New("a")
	err := Join("one", nil, a)
	require.IsType(t, &Group{}, err)
	assert.Equal(t, []error{a}, err.(*Group).Errors())
}

func TestGroupError(t *testing.T) {
	a, b, c := errors.New("a"), errors.New("b"), errors.New("c")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "flat", err: NewGroup("batch", a, b), want: "batch (2 sub-errors): a; b"},
		{name: "single", err: NewGroup("batch", a), want: "batch (1 sub-error): a"},
		{name: "no message", err: NewGroup("", a, b), want: "2 sub-errors: a; b"},
		{
			name: "nested",
			err:  NewGroup("outer", a, NewGroup("inner", b, c)),
			want: "outer (2 sub-errors): a; [inner (2 sub-errors): b; c]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.Equal(t, tt.want, fmt.Sprintf("%v", tt.err))
		})
	}
}

func TestGroupFormatTree(t *testing.T) {
	g := NewGroup("outer", errors.New("a"), NewGroup("inner", errNet.New("b")))

	out := fmt.Sprintf("%+v", g)
	assert.Contains(t, out, "outer (2 sub-errors)\n+-- 1: a")
	assert.Contains(t, out, "+-- 2: inner (1 sub-error)\n|   +-- 1: net: b")
	assert.Contains(t, out, "group_test.go")
}

func TestGroupUnwrap(t *testing.T) {
	target := &codeErr{code: 7}
	g := NewGroup("", errors.New("a"), NewGroup("", errors.Wrap(target, "deep")))

	assert.True(t, errors.Is(g, target))

	var ce *codeErr
	require.True(t, errors.As(g, &ce))
	assert.Same(t, target, ce)
}

func TestGroupLeaves(t *testing.T) {
	a, b, c, d := errors.New("a"), errors.New("b"), errors.New("c"), errors.New("d")
	g := NewGroup("", a, NewGroup("", b, NewGroup("", c)), d)
	assert.Equal(t, []error{a, b, c, d}, g.Leaves())
}

func TestGroupSplit(t *testing.T) {
	a, c := errNet.New("a"), errNet.New("c")
	b, d := errDisk.New("b"), errDisk.New("d")
	prior := errors.New("prior")

	g := NewGroup("top", a, NewGroup("mid", b, c), d).WithContext(prior)

	matched, rest := g.Split(errNet)
	require.NotNil(t, matched)
	require.NotNil(t, rest)

	assert.Equal(t, []error{a, c}, matched.Leaves())
	assert.Equal(t, []error{b, d}, rest.Leaves())

	// nesting is kept on both sides
	assert.Equal(t, "top", matched.Message())
	require.IsType(t, &Group{}, matched.Errors()[1])
	assert.Equal(t, "mid", matched.Errors()[1].(*Group).Message())
	require.IsType(t, &Group{}, rest.Errors()[0])
	assert.Equal(t, "mid", rest.Errors()[0].(*Group).Message())

	// links are carried over
	assert.Same(t, prior, ContextOf(matched))
	assert.Same(t, prior, ContextOf(rest))

	// the original is untouched
	assert.Equal(t, []error{a, b, c, d}, g.Leaves())
}

func TestGroupSplitIdentity(t *testing.T) {
	g := NewGroup("", errNet.New("a"), NewGroup("", errNet.New("b")))

	matched, rest := g.Split(errNet)
	assert.Same(t, g, matched)
	assert.Nil(t, rest)

	matched, rest = g.Split(errDisk)
	assert.Nil(t, matched)
	assert.Same(t, g, rest)

	matched, rest = g.Split()
	assert.Nil(t, matched)
	assert.Same(t, g, rest)
}

func TestGroupSubgroup(t *testing.T) {
	a := errNet.New("a")
	g := NewGroup("", a, errDisk.New("b"))

	assert.Equal(t, []error{a}, g.Subgroup(errNet).Leaves())
	assert.Nil(t, g.Subgroup(KindIs(errSentinel)))
}

// randomTree builds a tree over leaves lifted at random by errNet, errDisk
// or nothing.
func randomTree(r *rand.Rand, depth int) *Group {
	n := 1 + r.Intn(4)
	errs := make([]error, 0, n)
	for i := 0; i < n; i++ {
		if depth > 0 && r.Intn(3) == 0 {
			errs = append(errs, randomTree(r, depth-1))
			continue
		}
		leaf := errors.Errorf("leaf %d.%d", depth, i)
		switch r.Intn(3) {
		case 0:
			leaf = errNet.Lift(leaf)
		case 1:
			leaf = errDisk.Lift(leaf)
		}
		errs = append(errs, leaf)
	}
	return NewGroup(fmt.Sprint("depth ", depth), errs...)
}

func TestGroupSplitLaw(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		g := randomTree(r, 3)
		matched, rest := g.Split(errNet)

		var leaves []error
		if matched != nil {
			for _, err := range matched.Leaves() {
				assert.True(t, errNet.In(err))
			}
			leaves = append(leaves, matched.Leaves()...)
		}
		if rest != nil {
			for _, err := range rest.Leaves() {
				assert.False(t, errNet.In(err))
			}
			leaves = append(leaves, rest.Leaves()...)
		}
		assert.ElementsMatch(t, g.Leaves(), leaves)
	}
}

func TestAsGroup(t *testing.T) {
	a, b := errors.New("a"), errors.New("b")

	assert.Nil(t, AsGroup(nil))

	g := NewGroup("g", a)
	assert.Same(t, g, AsGroup(g))

	leaf := AsGroup(a)
	assert.Equal(t, "", leaf.Message())
	assert.Equal(t, []error{a}, leaf.Errors())

	joined := AsGroup(joinErrs{a, b})
	assert.Equal(t, []error{a, b}, joined.Errors())

	multi := AsGroup(multierror.Append(nil, a, b))
	assert.Equal(t, []error{a, b}, multi.Errors())
}

// joinErrs stands in for the value errors.Join returns.
type joinErrs []error

func (j joinErrs) Error() string   { return "joined" }
func (j joinErrs) Unwrap() []error { return j }
