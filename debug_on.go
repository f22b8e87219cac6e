//go:build heavydebug

package paintcore

// HeavyDebug reports whether invariant checks are compiled in.
const HeavyDebug = true
