package client

// Result is the success/failure envelope returned by every public
// operation. Exactly one of {value, error} is meaningful: a failing Result
// never carries a usable value.
type Result[T any] struct {
	value T
	err   error
}

// Ok creates a Result for a successful operation
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Fail creates a Result for a failed operation
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Success reports whether the operation succeeded
func (r Result[T]) Success() bool {
	return r.err == nil
}

// Failure reports whether the operation failed
func (r Result[T]) Failure() bool {
	return r.err != nil
}

// Value returns the operation result. It is the zero value when the
// operation failed.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the error describing why the operation failed, or nil
func (r Result[T]) Err() error {
	return r.err
}

// Unpack returns the value and error as an ordinary Go pair
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}
