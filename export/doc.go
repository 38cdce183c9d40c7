// Package export writes staging results to disk.
//
// A run produces, in one output directory:
//
//   - the staging CSV, one row per product and size
//   - review.csv, one row per product with its matched image
//   - report.json, the run report
//   - review.html, a browsable table with image thumbnails
//   - images/, the extracted slot images named after their slot
//   - staging.db, an optional SQLite copy of the above
//
// Use [WriteDir] to produce everything at once or the individual writers to
// target an io.Writer.
package export
