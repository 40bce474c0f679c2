package goal

import "errors"

// ErrNoGoal indicates goal selection was attempted on an empty set.
var ErrNoGoal = errors.New("no goal")
