package fetch

import "errors"

// ErrTransport marks a connection-level fetch failure. It says nothing
// about whether the requested game exists.
var ErrTransport = errors.New("fetch transport failure")
