package orchestrator

// Result holds either a value or the error that prevented it.
type Result[T any] struct {
	value T
	err   error
}

// Ok wraps a value.
func Ok[T any](v T) Result[T] { return Result[T]{value: v} }

// Fail wraps an error.
func Fail[T any](err error) Result[T] { return Result[T]{err: err} }

// Attempt runs fn and captures its outcome. A nil error with a nil pointer result is the
// caller's responsibility to reject inside fn.
func Attempt[T any](fn func() (T, error)) Result[T] {
	v, err := fn()
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// Err returns the captured error.
func (r Result[T]) Err() error { return r.err }

// Unwrap returns the value and error.
func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

// UnwrapOrElse returns the value, or the result of fallback applied to the error.
func (r Result[T]) UnwrapOrElse(fallback func(error) T) T {
	if r.err != nil {
		return fallback(r.err)
	}
	return r.value
}
