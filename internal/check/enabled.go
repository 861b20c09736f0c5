//go:build !nomemcheck

package check

// Enabled reports whether leak tracking and iterator validation are compiled in.
const Enabled = true
