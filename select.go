package exgroup

import (
	"strings"
	"sync"
)

// rootKind returns a kind applying f to a leaf as a whole, without walking
// its chain; the kinds f consults walk it themselves.
func rootKind(name string, broad bool, f func(error) bool) *Kind {
	return &Kind{
		name:  name,
		broad: broad,
		root:  true,
		match: f,
		cfg:   new(traverseConfig),
	}
}

func names(kinds []*Kind) string {
	ss := make([]string, len(kinds))
	for i, k := range kinds {
		ss[i] = k.String()
	}
	return strings.Join(ss, ", ")
}

// broad reports whether k selects every error. A nil kind selects none.
func broad(k *Kind) bool {
	return k != nil && k.broad
}

// empty reports whether k selects no error at all.
func empty(k *Kind) bool {
	return k == nil || k.empty || (k.match == nil && !k.any)
}

// Or returns a kind that an error belongs to if it belongs to any of kinds.
// Or over Any is as broad as Any, and Catch refuses it the same way.
func Or(kinds ...*Kind) *Kind {
	k := rootKind("or("+names(kinds)+")", false, anyOf(kinds))
	k.empty = true
	for _, o := range kinds {
		k.broad = k.broad || broad(o)
		k.empty = k.empty && empty(o)
	}
	return k
}

// And returns a kind that an error belongs to only if it belongs to all of
// kinds. A nil kind selects nothing.
func And(kinds ...*Kind) *Kind {
	k := rootKind("and("+names(kinds)+")", true, func(err error) bool {
		for _, o := range kinds {
			if !o.In(err) {
				return false
			}
		}
		return true
	})
	for _, o := range kinds {
		k.broad = k.broad && broad(o)
		k.empty = k.empty || empty(o)
	}
	return k
}

// Not returns a kind that an error belongs to if it does not belong to k.
// A nil kind selects nothing, so Not(nil) is as broad as Any.
func Not(k *Kind) *Kind {
	n := rootKind("not("+k.String()+")", empty(k), func(err error) bool {
		return !k.In(err)
	})
	n.empty = broad(k)
	return n
}

// Grep returns a kind that an error belongs to if str is a substring of its
// message.
func Grep(str string) *Kind {
	return rootKind("grep("+str+")", false, func(err error) bool {
		return strings.Contains(err.Error(), str)
	})
}

// Call returns a kind that calls f with every error found to belong to k.
//
// This can be useful if a certain error condition needs to be handled a
// certain way in all cases, such as logging every leaf a rule or a
// suppressor picks up.
func Call(f func(error), k *Kind) *Kind {
	c := rootKind(k.String(), broad(k), func(err error) bool {
		ok := k.In(err)
		if ok {
			f(err)
		}
		return ok
	})
	c.empty = empty(k)
	return c
}

// Once is an idempotent alternative to Call. However many errors the
// returned kind selects, f runs exactly once, with the first of them.
func Once(f func(error), k *Kind) *Kind {
	var once sync.Once
	o := rootKind(k.String(), broad(k), func(err error) bool {
		ok := k.In(err)
		if ok {
			once.Do(func() {
				f(err)
			})
		}
		return ok
	})
	o.empty = empty(k)
	return o
}
