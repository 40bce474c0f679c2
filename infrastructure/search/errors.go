package search

import "errors"

// ErrBudgetExhausted indicates the search stopped before the space was
// exhausted: the expansion budget ran out, or the context was cancelled or
// passed its deadline. The underlying cause is wrapped.
var ErrBudgetExhausted = errors.New("search budget exhausted")
