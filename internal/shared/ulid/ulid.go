package ulid

import (
	"github.com/oklog/ulid/v2"
)

// New returns a lexicographically time-ordered id. It names auto-keyed
// documents and request ids. Tests may swap it for a deterministic source.
var New = func() string {
	return ulid.Make().String()
}
