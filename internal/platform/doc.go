package platform

// Package platform contains OS/platform integration: filesystem helpers used
// by the triage workflow (mkdir, move across devices, atomic writes, program
// base directory) and OS open/reveal of files.
