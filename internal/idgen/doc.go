// Package idgen hands out identifiers: a monotonic integer sequence for
// process IDs and opaque UUID strings for events and queue messages. It lives
// under `internal` because callers should not rely on the exact format of the
// opaque identifiers.
package idgen
