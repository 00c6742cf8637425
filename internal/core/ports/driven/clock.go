package driven

import "time"

// Clock is a source of the current time, injectable for tests.
type Clock interface {
	Now() time.Time
}
