// Package services defines the shared error taxonomy for ytscribe's external
// collaborators and the mapping from failures to catalog statuses.
//
// Errors raised while processing a single video are tagged with one of the
// exported sentinel markers so batch code can decide whether the video failed,
// simply has no captions, or should be skipped, without string matching.
package services
