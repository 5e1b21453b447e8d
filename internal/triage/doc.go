// Package triage drives the per-file sorting workflow: a folder is scanned,
// each file is previewed in turn, and Save renames it into a category folder
// (optionally converting images to PDF) before moving on to the next one.
//
// The Controller never shows dialogs itself. Each transition returns an
// Outcome telling the caller what happened and what, if anything, the user
// must confirm before Save is called again.
package triage
