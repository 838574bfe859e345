// Package batch drives the combine pipeline over input files: directory
// setup, file discovery, per-file recovery, history recording, and run
// summaries.
//
// Per-file errors never abort a run; only directory creation, preflight, and
// lock acquisition failures do. Files are processed strictly one at a time
// with no state shared between them.
package batch
