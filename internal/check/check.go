// Package check holds the build-wide switch for memory and iterator checks
// and the fail-fast assertion helpers shared by the allocator packages.
//
// Checks are on by default. Building with -tags nomemcheck compiles out the
// leak counter and the iterator owner tags; the switch changes struct layout,
// so it must be the same for the whole build.
package check

import "fmt"

// That panics with err wrapped together with a formatted detail when cond is
// false. The arguments are boxed even when cond holds; hot paths test the
// condition themselves and call Fail.
func That(cond bool, err error, format string, args ...interface{}) {
	if !cond {
		Fail(err, format, args...)
	}
}

// Fail panics with err wrapped together with a formatted detail.
func Fail(err error, format string, args ...interface{}) {
	panic(fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...)))
}
