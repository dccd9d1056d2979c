package pathexpr

import "errors"

// ErrMalformedPath indicates the path expression cannot be compiled.
// All compilation failures wrap this sentinel so callers can classify
// them with errors.Is().
var ErrMalformedPath = errors.New("pathexpr: malformed path")
