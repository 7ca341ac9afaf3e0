// Package ui adapts command lifecycle events into human-readable console
// output when the CLI runs with console logging enabled.
package ui
