// Package progress keeps cumulative process lifecycle counters. A tracker
// can be carried in a context so that any component receiving it updates the
// same counters.
package progress
