// Package validate selects, runs and aggregates module validators.
//
// A [Registry] holds every available [Validator] in a fixed order. For each
// invocation the [Dispatcher] checks environment preconditions, uses [Select]
// to turn positional arguments into validators and targets, runs them with a
// [Coordinator] (sequential fail-fast, or parallel with max aggregation), and
// writes the shared report in every requested format.
//
// # Exit Codes
//
// Each validator returns an integer exit code where 0 is success. Sequential
// runs stop at the first nonzero code and return it. Parallel runs always run
// every selected validator and return the largest code; a larger code means
// only "sorts higher", not "more severe".
//
// # Composite Validators
//
// [Chain] groups several validators under one name and runs them in order,
// stopping at the first failure. The built-in "metadata" and "ruby" groups are
// chains.
package validate
