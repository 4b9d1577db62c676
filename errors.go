package exgroup

import (
	"github.com/pkg/errors"
)

// ErrConfiguration selects the errors Catch returns for a malformed rule
// table.
var ErrConfiguration = NewKind("exgroup: configuration")

// ErrPassThrough may be returned by a handler to decline the errors it was
// given. Returning the matched group itself has the same effect.
var ErrPassThrough = errors.New("exgroup: pass through")
