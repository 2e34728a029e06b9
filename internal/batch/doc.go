// Package batch orchestrates transcript extraction for catalog videos.
//
// A run claims pending videos from the catalog with a bounded worker pool and
// takes each one through the full pipeline: caption download into a scoped
// scratch directory, VTT parsing, stitching, formatting, and the final write
// into the output directory. Videos are fully independent, so per-video
// failures are recorded on their catalog row and never stop the batch.
package batch
