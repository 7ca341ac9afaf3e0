// Package execshell wraps external process execution behind a ShellExecutor
// that logs command lifecycles, notifies observers, and converts non-zero
// exits and launch failures into typed errors.
package execshell
