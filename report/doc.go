// Package report accumulates per-page warnings and run totals for a staging
// run.
//
// Nothing that goes wrong after the input document has been opened aborts a
// run. Each recoverable problem becomes a [Warning] attached to the page it
// happened on, and the [Aggregator] rolls page results up into the run
// [Report] that is written next to the staging data.
package report
