// Package errors provides error handling conventions for the modcheck CLI.
//
// This package defines sentinel errors for environment and input failures,
// an ExitError type that carries a process exit code, and thin re-exports of
// [github.com/cockroachdb/errors] so every package wraps errors the same way.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrNotInModule) {
//	    // not inside a module root
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): every invoked validator passed
//   - ExitUser (1): invalid input, configuration, or environment precondition
//   - ExitSystem (2): I/O or subprocess failure outside any validator
//
// Validator failures are not errors in this sense. They surface as the
// aggregated exit code carried by a silent [ExitError]:
//
//	return errors.NewSilentExit(outcome.ExitCode)
package errors
