// Package errs provides the typed errors shared by the domain, the use cases and the adapters.
//
// Every error type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid, ...) with a struct
// carrying details, New...Error / New...ErrorWithCause constructors and an Unwrap method that
// returns the sentinel, so callers classify failures with errors.Is:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: the addressed object does not exist in the expected state
//   - ObjectAlreadyExistsError: an active object with the same identity already exists
//   - ObjectAlreadyRemovedError: the object exists but was already removed
//   - BatchPersistenceError: an all-or-nothing batch could not be stored
package errs
