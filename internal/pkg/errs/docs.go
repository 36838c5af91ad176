// Package errs is the error vocabulary shared by the domain, the use cases and
// the adapters.
//
// Every kind comes as a sentinel plus a struct carrying the details:
//   - ValueIsRequiredError, ValueIsInvalidError and ValueIsOutOfRangeError are
//     validation failures
//   - ObjectNotFoundError names the entity and the id that was missing or not visible
//   - InvalidTransitionError records the entity, its id and the requested from/to move
//   - ConflictError signals a row changed under a compare-and-swap update
//
// The structs unwrap to their sentinel only, so callers classify with
// errors.Is(err, errs.ErrObjectNotFound) and read the cause from Error().
// The HTTP adapter maps the sentinels to status codes.
package errs
