package restdays

import "errors"

// ErrNonMonotonicTimestamp marks a team series whose game timestamps are
// not strictly increasing. The series cannot be analyzed.
var ErrNonMonotonicTimestamp = errors.New("non-monotonic game timestamp")
