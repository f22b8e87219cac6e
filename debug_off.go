//go:build !heavydebug

package paintcore

// HeavyDebug reports whether invariant checks are compiled in.
// Build with -tags heavydebug to enable them.
const HeavyDebug = false
