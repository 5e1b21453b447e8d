package queue

// Package queue scans a folder for triageable files and walks them in a
// fixed, lexicographic order. The set of files is captured once per scan and
// never re-read during a session.
