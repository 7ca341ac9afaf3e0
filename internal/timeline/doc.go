// Package timeline groups activity records from a timeline CSV export by
// month and renders summary and per-record detail reports.
package timeline
