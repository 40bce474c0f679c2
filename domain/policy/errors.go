package policy

import "errors"

// ErrBudgetExceeded indicates a consumption would pass a budget limit.
var ErrBudgetExceeded = errors.New("budget exceeded")
