// Package metadata defines the channel-video metadata row and its fixed CSV
// layout. The column order is part of the output contract and never reflows.
package metadata
