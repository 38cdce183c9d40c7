// Package model defines the data types shared by the catalog staging
// pipeline.
//
// Positioned input ([Word], [Image]) is produced by the source package and is
// read-only. [ProductChunk] is the unit the parser emits for one printed
// product; it is mutated only while references and images are resolved for
// its page. [ProductRecord] is the final, size-expanded output row.
//
// # Confidence
//
// Every chunk carries a coarse [Confidence] label used for review triage.
// Resolution may promote Low to Medium when a reference code is recovered.
// The only demotion is the missing-image rule, which forces Low.
package model
