package walk

import "errors"

// ErrUndecodablePayload marks a probe response body that is not JSON at
// all. The requested game's existence stays unknown, so the walk cannot
// treat it as a miss; it aborts instead.
var ErrUndecodablePayload = errors.New("undecodable game payload")
