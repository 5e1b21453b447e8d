package convert

// Package convert writes a scanned image as a single-page PDF using gofpdf.
// JPEG data is embedded unchanged; PNG data is flattened to opaque RGB first.
