// Package plan generates build plans by matching test suites against board
// peripheral capabilities.
//
// The flow is: the peripheral matrix (internal/matrix) declares which tests
// each board should build and which peripherals the board has; InferPeripherals
// guesses what a test needs from its path; the Generator keeps only the
// combinations a board can actually support. The result is an ordered list of
// Entry values that the reporters summarize and export.
//
// Plans are deterministic: board iteration is sorted (or follows the caller's
// filter), test iteration follows declaration order, and the inference table
// is fixed. Running the generator twice over the same matrix produces
// byte-identical exports.
package plan
