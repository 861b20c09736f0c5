//go:build nomemcheck

package check

const Enabled = false
