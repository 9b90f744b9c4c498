// Package errs provides standardized error types for the tracking service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the scenarios the HTTP and websocket
// surfaces need to distinguish:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed or missing caller input
//   - ObjectNotFoundError: a referenced object does not exist
//   - NotAuthorizedError: the acting identity is not entitled to the operation
//   - InvalidStateError: the operation is not valid for the current lifecycle
//     state of an order
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g. ErrNotAuthorized)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is can classify against the sentinel
//
// Transport layers map the sentinels to status codes (400/403/404); anything
// that does not unwrap to a sentinel is treated as an infrastructure failure.
package errs
