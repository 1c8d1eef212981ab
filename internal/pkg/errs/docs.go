// Package errs provides standardized error types for the ferryops application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found (or is outside the caller's scope)
//   - InvalidStateError: For when a state transition is not permitted from the current state
//   - VersionIsInvalidError: For when a conditional update lost a race against a concurrent writer
//   - ForbiddenError: For when an identified caller may not see or change a resource
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The HTTP adapter classifies errors with errors.Is against the sentinels, so
// every caller-visible failure of an operation maps to exactly one category.
package errs
