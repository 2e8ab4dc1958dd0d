package domain

// Result is what a screen receives from a repository call: either live data,
// or the caller-provided fallback together with the error that triggered it.
type Result[T any] struct {
	Data     T     `json:"data"`
	Err      error `json:"-"`
	Fallback bool  `json:"fallback"`
}

// Live wraps data fetched from the backend.
func Live[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Failed carries an error with no usable data.
func Failed[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// Substituted carries fallback data and the error that caused the substitution.
func Substituted[T any](data T, err error) Result[T] {
	return Result[T]{Data: data, Err: err, Fallback: true}
}

// OK reports whether Data came from the backend.
func (r Result[T]) OK() bool {
	return r.Err == nil && !r.Fallback
}

// Usable reports whether Data can be rendered, live or substituted.
func (r Result[T]) Usable() bool {
	return r.Err == nil || r.Fallback
}
