// Package sentiment implements the sentiment aggregation pipeline.
//
// Normalize maps heterogeneous classifier vocabularies onto the canonical
// three-class taxonomy. Aggregate is a pure fold from classified comments to
// per-platform summaries with the weighted health score. Pipeline orchestrates
// one full batch run: load, classify, attribute, aggregate, persist.
package sentiment
