// Package errs holds the error types shared by the route engine's layers.
//
// Each type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound, ErrVersionIsInvalid) with a struct carrying the
// offending parameter and an optional cause. Unwrap returns the sentinel so
// callers classify with errors.Is and adapters map classes to status codes.
package errs
